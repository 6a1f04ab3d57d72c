package model

import (
	"time"

	"gorm.io/datatypes"
)

// User status values used by the admin suspend/activate endpoints.
const (
	UserStatusActive    = "Active"
	UserStatusSuspended = "Suspended"
)

// User represents a student or admin account. Fields the frontend sends
// that have no column here land in Extra.
type User struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	FullName    string `json:"fullName,omitempty" gorm:"type:varchar(255)"`
	Email       string `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	Password    string `json:"-" gorm:"type:varchar(255)"`
	UserType    string `json:"userType,omitempty" gorm:"type:varchar(50);index"`
	Status      string `json:"status,omitempty" gorm:"type:varchar(50)"`
	IsAdmin     bool   `json:"isAdmin,omitempty"`
	Phone       string `json:"phone,omitempty" gorm:"type:varchar(50)"`
	University  string `json:"university,omitempty" gorm:"type:varchar(255);index"`
	Course      string `json:"course,omitempty" gorm:"type:varchar(255)"`
	YearOfStudy string `json:"yearOfStudy,omitempty" gorm:"type:varchar(50)"`

	Extra datatypes.JSONMap `json:"-" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Doc is the password-free wire representation of the account.
func (u *User) Doc() map[string]interface{} {
	return Doc(u, u.Extra)
}
