package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"insuro/internal/models"
)

// EventType names a claimant-facing notification.
type EventType string

const (
	EventClaimSubmitted    EventType = "claim_submitted"
	EventClaimStatusUpdate EventType = "claim_status_update"
)

// Event describes something the claimant should hear about.
type Event struct {
	Type      EventType
	ClaimID   string
	UserID    string
	ClaimType models.ClaimType
	From      models.ClaimStatus
	To        models.ClaimStatus
}

// Notifier delivers claim events. Delivery failures must not undo the
// operation that raised the event, so callers only log returned errors.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Service is a minimal notifier that records events in the log. Email
// delivery is handled outside this service.
type Service struct {
	logger *zap.Logger
}

// NewService creates a notifier writing to logger, or to the global logger
// when logger is nil.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.L()
	}
	return &Service{logger: logger.Named("notification")}
}

func (s *Service) Notify(ctx context.Context, event Event) error {
	s.logger.Info("claim notification",
		zap.String("type", string(event.Type)),
		zap.String("subject", Subject(event)),
		zap.String("claim_id", event.ClaimID),
		zap.String("user_id", event.UserID),
		zap.String("from", string(event.From)),
		zap.String("to", string(event.To)),
	)
	return nil
}

// Subject renders the message subject for event.
func Subject(event Event) string {
	switch event.Type {
	case EventClaimSubmitted:
		return fmt.Sprintf("Claim Submitted Successfully - %s", event.ClaimID)
	case EventClaimStatusUpdate:
		return fmt.Sprintf("Claim %s: %s", event.To, event.ClaimID)
	default:
		return "Notification from Insuro"
	}
}

// StatusChanged builds a status update event.
func StatusChanged(claim *models.Claim, from models.ClaimStatus) Event {
	return Event{
		Type:      EventClaimStatusUpdate,
		ClaimID:   claim.ID,
		UserID:    claim.UserID,
		ClaimType: claim.ClaimType,
		From:      from,
		To:        claim.Status,
	}
}
