package model

import (
	"time"

	"gorm.io/datatypes"
)

// Verification lifecycle of a company account.
const (
	VerificationPending  = "Pending"
	VerificationVerified = "Verified"
	VerificationRejected = "Rejected"
)

// Company is a company account. It mirrors the User shape plus the
// directory and verification fields.
type Company struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	FullName    string `json:"fullName,omitempty" gorm:"type:varchar(255)"`
	CompanyName string `json:"companyName,omitempty" gorm:"type:varchar(255)"`
	Designation string `json:"designation,omitempty" gorm:"type:varchar(255)"`
	Email       string `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	Password    string `json:"-" gorm:"type:varchar(255)"`
	UserType    string `json:"userType,omitempty" gorm:"type:varchar(50)"`
	Status      string `json:"status,omitempty" gorm:"type:varchar(50)"`
	Phone       string `json:"phone,omitempty" gorm:"type:varchar(50)"`
	LinkedIn    string `json:"linkedin,omitempty" gorm:"type:varchar(512)"`

	VerificationStatus      string `json:"verificationStatus,omitempty" gorm:"type:varchar(50);index"`
	VerificationDocumentURL string `json:"verificationDocumentUrl,omitempty" gorm:"type:varchar(1024)"`
	VerificationRequestedAt string `json:"verificationRequestedAt,omitempty" gorm:"type:varchar(64)"`
	VerificationReviewedAt  string `json:"verificationReviewedAt,omitempty" gorm:"type:varchar(64)"`

	Extra datatypes.JSONMap `json:"-" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Doc is the password-free wire representation of the company.
func (c *Company) Doc() map[string]interface{} {
	return Doc(c, c.Extra)
}

// DisplayName resolves the name shown in admin listings, falling back
// through the legacy extension fields older records used.
func (c *Company) DisplayName() string {
	return FirstNonEmpty(
		c.CompanyName,
		ExtraString(c.Extra, "company"),
		ExtraString(c.Extra, "name"),
	)
}
