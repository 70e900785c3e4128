package models

// ClaimStatus is a node of the claim review state machine.
type ClaimStatus string

const (
	ClaimStatusPending       ClaimStatus = "Pending"
	ClaimStatusUnderReview   ClaimStatus = "Under Review"
	ClaimStatusPendingReview ClaimStatus = "Pending Review"
	ClaimStatusApproved      ClaimStatus = "Approved"
	ClaimStatusRejected      ClaimStatus = "Rejected"
)

// AllClaimStatuses lists every status in workflow order.
var AllClaimStatuses = []ClaimStatus{
	ClaimStatusPending,
	ClaimStatusUnderReview,
	ClaimStatusPendingReview,
	ClaimStatusApproved,
	ClaimStatusRejected,
}

func claimStatusTransitions() map[ClaimStatus][]ClaimStatus {
	return map[ClaimStatus][]ClaimStatus{
		ClaimStatusPending: {
			ClaimStatusUnderReview,
			ClaimStatusPendingReview,
			ClaimStatusApproved,
			ClaimStatusRejected,
		},
		ClaimStatusUnderReview: {
			ClaimStatusApproved,
			ClaimStatusRejected,
		},
		ClaimStatusPendingReview: {
			ClaimStatusApproved,
			ClaimStatusRejected,
		},
		ClaimStatusApproved: {},
		ClaimStatusRejected: {},
	}
}

// CanTransition reports whether a claim may move from one status to another.
// Staying in the same status is always allowed so re-runs are idempotent.
func CanTransition(from, to ClaimStatus) bool {
	if from == to {
		return true
	}
	targets, ok := claimStatusTransitions()[from]
	if !ok {
		return false
	}
	for _, target := range targets {
		if target == to {
			return true
		}
	}
	return false
}

// CanAutoRoute reports whether the automated assessment pass may move a
// claim from one status to another. Only Pending claims are routed; once a
// claim is held or decided, only a human moves it.
func CanAutoRoute(from, to ClaimStatus) bool {
	if from == to {
		return from.IsValid()
	}
	return from == ClaimStatusPending && CanTransition(from, to)
}

// IsValid reports whether s is a known status.
func (s ClaimStatus) IsValid() bool {
	_, ok := claimStatusTransitions()[s]
	return ok
}

// IsTerminal reports whether no further transitions leave s.
func (s ClaimStatus) IsTerminal() bool {
	return s == ClaimStatusApproved || s == ClaimStatusRejected
}

// AwaitsDisposition reports whether a human reviewer can still decide the claim.
func (s ClaimStatus) AwaitsDisposition() bool {
	return s == ClaimStatusPending || s == ClaimStatusUnderReview || s == ClaimStatusPendingReview
}
