package model

import (
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// Internship posting statuses. A freshly created posting carries no
// status at all; admins move it to Active or Rejected.
const (
	InternshipStatusPending  = "Pending Approval"
	InternshipStatusActive   = "Active"
	InternshipStatusRejected = "Rejected"
)

// Internship is a posting created by a company.
type Internship struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Title        string   `json:"title,omitempty" gorm:"type:varchar(255)"`
	Position     string   `json:"position,omitempty" gorm:"type:varchar(255)"`
	Company      string   `json:"company,omitempty" gorm:"type:varchar(255);index"`
	CompanyEmail string   `json:"companyEmail,omitempty" gorm:"type:varchar(255);index"`
	Status       string   `json:"status,omitempty" gorm:"type:varchar(50);index"`
	Tags         []string `json:"tags,omitempty" gorm:"serializer:json"`
	Location     string   `json:"location,omitempty" gorm:"type:varchar(255)"`
	Duration     string   `json:"duration,omitempty" gorm:"type:varchar(100)"`
	Stipend      string   `json:"stipend,omitempty" gorm:"type:varchar(100)"`
	Deadline     string   `json:"deadline,omitempty" gorm:"type:varchar(64)"`
	Posted       string   `json:"posted" gorm:"type:varchar(64)"`
	Description  string   `json:"description,omitempty" gorm:"type:text"`

	Extra datatypes.JSONMap `json:"-" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Doc is the wire representation of the posting.
func (i *Internship) Doc() map[string]interface{} {
	return Doc(i, i.Extra)
}

// InternshipSnapshot is the denormalized copy embedded into an
// application at creation time. Once stored it never changes, even if
// the source posting does.
type InternshipSnapshot struct {
	ID       string   `json:"id"`
	Position string   `json:"position"`
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Stipend  string   `json:"stipend"`
	Location string   `json:"location"`
	Duration string   `json:"duration"`
	Deadline string   `json:"deadline"`
	Tags     []string `json:"tags"`
}

// Snapshot builds the embeddable copy, falling back through the legacy
// extension fields older postings carried (salary/remuneration for
// stipend, city for location, period for duration, skills for tags).
func (i *Internship) Snapshot() *InternshipSnapshot {
	snap := &InternshipSnapshot{
		ID:       strconv.FormatUint(uint64(i.ID), 10),
		Position: FirstNonEmpty(i.Position, i.Title),
		Title:    i.Title,
		Company:  FirstNonEmpty(i.Company, ExtraString(i.Extra, "companyName")),
		Stipend: FirstNonEmpty(
			i.Stipend,
			ExtraString(i.Extra, "salary"),
			ExtraString(i.Extra, "remuneration"),
		),
		Location: FirstNonEmpty(i.Location, ExtraString(i.Extra, "city")),
		Duration: FirstNonEmpty(i.Duration, ExtraString(i.Extra, "period")),
		Deadline: i.Deadline,
		Tags:     i.Tags,
	}
	if len(snap.Tags) == 0 {
		snap.Tags = ExtraStrings(i.Extra, "skills")
	}
	if snap.Tags == nil {
		snap.Tags = []string{}
	}
	return snap
}
