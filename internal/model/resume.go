package model

import "time"

// Resume holds the metadata record for a stored resume file. There is
// at most one per email; a re-upload replaces the record.
type Resume struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Email          string `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	ResumeFilename string `json:"resumeFilename,omitempty" gorm:"type:varchar(512)"`
	StoredFilename string `json:"storedFilename,omitempty" gorm:"type:varchar(512)"`
	ResumeURL      string `json:"resumeUrl,omitempty" gorm:"type:varchar(1024)"`
	UploadedAt     string `json:"uploadedAt,omitempty" gorm:"type:varchar(64)"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
