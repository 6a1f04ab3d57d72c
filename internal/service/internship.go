package service

import (
	"context"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/model"
	"github.com/SamarthBhogre/InternLink/internal/store"
	"go.uber.org/zap"
)

// internshipUpdateAllowList names the fields a PUT may change. Anything
// else in the body is silently dropped, not rejected.
var internshipUpdateAllowList = []string{
	"title", "duration", "location", "stipend", "tags", "description",
	"deadline", "company", "companyEmail", "posted", "status",
}

// InternshipService owns the internship catalog.
type InternshipService struct {
	internships store.InternshipStore
	log         *zap.Logger
}

func NewInternshipService(internships store.InternshipStore, log *zap.Logger) *InternshipService {
	return &InternshipService{internships: internships, log: log}
}

// Create stores a posting from the raw request body. The response
// summary excludes the description.
func (s *InternshipService) Create(ctx context.Context, body map[string]interface{}) (map[string]interface{}, error) {
	title := strField(body, "title")
	company := strField(body, "company")
	companyEmail := strField(body, "companyEmail")
	if title == "" || company == "" || companyEmail == "" {
		return nil, apperr.Validation("Missing required fields")
	}

	internship := &model.Internship{
		Title:        title,
		Position:     strField(body, "position"),
		Company:      company,
		CompanyEmail: companyEmail,
		Status:       strField(body, "status"),
		Tags:         strsField(body, "tags"),
		Location:     strField(body, "location"),
		Duration:     strField(body, "duration"),
		Stipend:      strField(body, "stipend"),
		Deadline:     strField(body, "deadline"),
		Posted:       strField(body, "posted"),
		Description:  strField(body, "description"),
		Extra: extraFrom(body,
			"title", "position", "company", "companyEmail", "status", "tags",
			"location", "duration", "stipend", "deadline", "posted", "description"),
	}
	if err := s.internships.Create(ctx, internship); err != nil {
		return nil, err
	}
	s.log.Info("Internship created",
		zap.Uint("id", internship.ID),
		zap.String("title", title),
		zap.String("company", company))

	doc := internship.Doc()
	delete(doc, "description")
	return doc, nil
}

// List returns postings matching the filter.
func (s *InternshipService) List(ctx context.Context, company, q string) ([]map[string]interface{}, error) {
	internships, err := s.internships.List(ctx, store.InternshipFilter{Company: company, Query: q})
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(internships))
	for i := range internships {
		out = append(out, internships[i].Doc())
	}
	return out, nil
}

// Update applies the allow-listed fields of the body to the posting and
// returns the post-update record.
func (s *InternshipService) Update(ctx context.Context, id string, body map[string]interface{}) (map[string]interface{}, error) {
	updatable := false
	for _, key := range internshipUpdateAllowList {
		if _, ok := body[key]; ok {
			updatable = true
			break
		}
	}
	if !updatable {
		return nil, apperr.Validation("Nothing to update")
	}

	internship, err := s.internships.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, key := range internshipUpdateAllowList {
		if _, ok := body[key]; !ok {
			continue
		}
		switch key {
		case "title":
			internship.Title = strField(body, key)
		case "duration":
			internship.Duration = strField(body, key)
		case "location":
			internship.Location = strField(body, key)
		case "stipend":
			internship.Stipend = strField(body, key)
		case "tags":
			internship.Tags = strsField(body, key)
		case "description":
			internship.Description = strField(body, key)
		case "deadline":
			internship.Deadline = strField(body, key)
		case "company":
			internship.Company = strField(body, key)
		case "companyEmail":
			internship.CompanyEmail = strField(body, key)
		case "posted":
			internship.Posted = strField(body, key)
		case "status":
			internship.Status = strField(body, key)
		}
	}
	if err := s.internships.Save(ctx, internship); err != nil {
		return nil, err
	}
	s.log.Info("Internship updated", zap.Uint("id", internship.ID))
	return internship.Doc(), nil
}

// Approve marks the posting Active.
func (s *InternshipService) Approve(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, model.InternshipStatusActive)
}

// Reject marks the posting Rejected.
func (s *InternshipService) Reject(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, model.InternshipStatusRejected)
}

func (s *InternshipService) setStatus(ctx context.Context, id, status string) error {
	internship, err := s.internships.Resolve(ctx, id)
	if err != nil {
		return err
	}
	if err := s.internships.UpdateFields(ctx, internship.ID, map[string]interface{}{"status": status}); err != nil {
		return err
	}
	s.log.Info("Internship status changed",
		zap.Uint("id", internship.ID),
		zap.String("status", status))
	return nil
}
