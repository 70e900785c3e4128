package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_KindsAndSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		sentinel error
	}{
		{"validation", Validation("claim type is required", nil), KindValidation, ErrValidation},
		{"not found", NotFound("abc"), KindNotFound, ErrClaimNotFound},
		{"persistence", Persistence("claims: update", stderrors.New("conn reset")), KindPersistence, ErrPersistence},
		{"transition", InvalidTransition("Approved", "Rejected"), KindInvalidTransition, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("assess: %w", tt.err)

			assert.Equal(t, tt.kind, KindOf(wrapped))
			assert.True(t, IsKind(wrapped, tt.kind))
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestPersistence_KeepsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Persistence("claims: find", cause)

	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "claims: find")
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(stderrors.New("boom")))
	assert.False(t, IsKind(nil, KindNotFound))
}

func TestLocked(t *testing.T) {
	err := Locked("c-1", "Under Review")
	assert.Equal(t, KindInvalidTransition, KindOf(err))
	assert.Equal(t, CodeClaimLocked, err.Code)
	assert.Equal(t, "claim c-1 is Under Review and can no longer be edited", err.Error())
	assert.NotErrorIs(t, err, ErrInvalidTransition)
}

func TestNotFound_Message(t *testing.T) {
	err := NotFound("c-1")
	assert.Equal(t, "claim c-1 not found", err.Error())
	assert.Equal(t, CodeClaimNotFound, err.Code)
}
