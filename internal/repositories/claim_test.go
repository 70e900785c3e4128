package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	apperrors "insuro/internal/errors"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Kind
	}{
		{"record not found", gorm.ErrRecordNotFound, apperrors.KindNotFound},
		{"wrapped record not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), apperrors.KindNotFound},
		{"driver failure", errors.New("connection refused"), apperrors.KindPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError("find claim", "c-9", tt.err)
			assert.Equal(t, tt.want, apperrors.KindOf(err))
		})
	}

	assert.Contains(t, mapError("find claim", "c-9", gorm.ErrRecordNotFound).Error(), "c-9")
}
