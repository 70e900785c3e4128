package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClaimFile references a document uploaded for a claim. Content lives in
// external storage and is never read by the engine.
type ClaimFile struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ClaimID    string    `gorm:"type:varchar(36);not null;index" json:"claim_id"`
	FileURL    string    `gorm:"type:text;not null" json:"file_url"`
	FileType   string    `gorm:"type:varchar(64)" json:"file_type,omitempty"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (f *ClaimFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
