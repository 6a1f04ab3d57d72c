package model

import (
	"time"

	"gorm.io/datatypes"
)

// Application statuses.
const (
	ApplicationStatusInReview = "In Review"
	ApplicationStatusSelected = "Selected"
	ApplicationStatusRejected = "Rejected"
)

// Application records a student applying to an internship. The embedded
// snapshot is written once at creation; the profile fields (phone,
// university, course, year) are back-filled at read time from the
// matching user and never persisted.
type Application struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	InternshipID    string `json:"internshipId,omitempty" gorm:"type:varchar(64);index"`
	StudentEmail    string `json:"studentEmail,omitempty" gorm:"type:varchar(255);index"`
	StudentName     string `json:"studentName,omitempty" gorm:"type:varchar(255)"`
	Company         string `json:"company,omitempty" gorm:"type:varchar(255);index"`
	Status          string `json:"status,omitempty" gorm:"type:varchar(50);index"`
	AppliedDate     string `json:"appliedDate,omitempty" gorm:"type:varchar(64)"`
	InternshipTitle string `json:"internshipTitle,omitempty" gorm:"type:varchar(255)"`
	Stipend         string `json:"stipend,omitempty" gorm:"type:varchar(100)"`

	Snapshot *InternshipSnapshot `json:"internship,omitempty" gorm:"column:internship;type:jsonb;serializer:json"`

	Phone      string `json:"phone,omitempty" gorm:"-"`
	University string `json:"university,omitempty" gorm:"-"`
	Course     string `json:"course,omitempty" gorm:"-"`
	Year       string `json:"year,omitempty" gorm:"-"`

	Extra datatypes.JSONMap `json:"-" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Doc is the wire representation of the application.
func (a *Application) Doc() map[string]interface{} {
	return Doc(a, a.Extra)
}
