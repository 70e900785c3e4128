package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "insuro/internal/errors"
)

type claimPayload struct {
	ClaimType    string    `json:"claim_type" validate:"required,claimtype"`
	Description  string    `json:"description" validate:"max=5000"`
	IncidentDate time.Time `json:"incident_date" validate:"required,notfuture"`
	Status       string    `json:"status,omitempty" validate:"omitempty,claimstatus"`
}

func TestValidatorStruct(t *testing.T) {
	now := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	v := NewWithClock(func() time.Time { return now })

	tests := []struct {
		name       string
		payload    claimPayload
		wantFields []string
	}{
		{
			name:    "valid",
			payload: claimPayload{ClaimType: "Collision", Description: "Rear-ended", IncidentDate: now.AddDate(0, 0, -2)},
		},
		{
			name:    "free-form type is accepted",
			payload: claimPayload{ClaimType: "Hail", IncidentDate: now},
		},
		{
			name:    "later today in an eastern zone is accepted",
			payload: claimPayload{ClaimType: "Theft", IncidentDate: time.Date(2026, time.May, 11, 0, 0, 0, 0, time.UTC)},
		},
		{
			name:       "missing type and date",
			payload:    claimPayload{},
			wantFields: []string{"claim_type", "incident_date"},
		},
		{
			name:       "future incident",
			payload:    claimPayload{ClaimType: "Collision", IncidentDate: now.AddDate(0, 0, 3)},
			wantFields: []string{"incident_date"},
		},
		{
			name:       "description too long",
			payload:    claimPayload{ClaimType: "Collision", Description: strings.Repeat("x", 5001), IncidentDate: now},
			wantFields: []string{"description"},
		},
		{
			name:       "overlong type",
			payload:    claimPayload{ClaimType: strings.Repeat("t", MaxClaimTypeLength+1), IncidentDate: now},
			wantFields: []string{"claim_type"},
		},
		{
			name:       "unknown status",
			payload:    claimPayload{ClaimType: "Collision", IncidentDate: now, Status: "Closed"},
			wantFields: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.payload)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

			var fields FieldErrors
			require.True(t, errors.As(err, &fields))
			got := make([]string, 0, len(fields))
			for _, f := range fields {
				got = append(got, f.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, got)
		})
	}
}

func TestValidatorNotFutureString(t *testing.T) {
	now := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	v := NewWithClock(func() time.Time { return now })

	type datePayload struct {
		IncidentDate string `json:"incidentDate" validate:"required,notfuture"`
	}

	assert.NoError(t, v.Struct(datePayload{IncidentDate: "2026-05-10"}))
	assert.NoError(t, v.Struct(datePayload{IncidentDate: "2026-05-11"}))
	assert.Error(t, v.Struct(datePayload{IncidentDate: "2026-05-12"}))
	assert.Error(t, v.Struct(datePayload{IncidentDate: "10/05/2026"}))
}

func TestFieldErrorsMessage(t *testing.T) {
	errs := FieldErrors{
		{Field: "claim_type", Message: "is required"},
		{Field: "incident_date", Message: "must not be in the future"},
	}
	assert.Equal(t, "claim_type: is required; incident_date: must not be in the future", errs.Error())
}

func TestStruct_NonStructPayload(t *testing.T) {
	err := New().Struct("not a struct")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
