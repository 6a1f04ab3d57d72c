package service

import (
	"context"
	"mime/multipart"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/model"
	"github.com/SamarthBhogre/InternLink/internal/store"
	"github.com/SamarthBhogre/InternLink/internal/upload"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// profileUpdateAllowList names the fields a profile patch may change.
var profileUpdateAllowList = []string{
	"fullName", "companyName", "designation", "phone", "linkedin",
}

// CompanyService owns the company directory and the verification flow.
// Some deployments register companies as plain users, so every write
// falls back to the users collection when no company matches.
type CompanyService struct {
	companies store.CompanyStore
	users     store.UserStore
	uploader  *upload.Storage
	log       *zap.Logger
}

func NewCompanyService(companies store.CompanyStore, users store.UserStore, uploader *upload.Storage, log *zap.Logger) *CompanyService {
	return &CompanyService{companies: companies, users: users, uploader: uploader, log: log}
}

// GetByEmail looks a company up by exact email.
func (s *CompanyService) GetByEmail(ctx context.Context, email string) (map[string]interface{}, error) {
	company, err := s.companies.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return company.Doc(), nil
}

// RequestVerification marks a company Pending and stores the supporting
// document. The document may arrive as an uploaded file or as a
// pre-hosted URL.
func (s *CompanyService) RequestVerification(ctx context.Context, email, linkedin, documentURL string, document *multipart.FileHeader) error {
	if email == "" || linkedin == "" {
		return apperr.Validation("Missing email or linkedin")
	}

	if document != nil {
		url, stored, err := s.uploader.SaveMultipart(document, "doc")
		if err != nil {
			return err
		}
		documentURL = url
		s.log.Info("Verification document stored",
			zap.String("email", email),
			zap.String("stored_filename", stored))
	}

	fields := map[string]interface{}{
		"linked_in":                 linkedin,
		"verification_status":       model.VerificationPending,
		"verification_requested_at": nowISO(),
	}
	if documentURL != "" {
		fields["verification_document_url"] = documentURL
	}

	matched, err := s.companies.UpdateByEmail(ctx, email, fields)
	if err != nil {
		return err
	}
	if matched == 0 {
		// Company registered as a plain user: the verification fields
		// have no column there and live in the extension map.
		user, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			if apperr.Is(err, apperr.CodeNotFound) {
				return apperr.NotFound("Company not found")
			}
			return err
		}
		extra := user.Extra
		if extra == nil {
			extra = datatypes.JSONMap{}
		}
		extra["linkedin"] = linkedin
		extra["verificationStatus"] = model.VerificationPending
		extra["verificationRequestedAt"] = nowISO()
		if documentURL != "" {
			extra["verificationDocumentUrl"] = documentURL
		}
		if err := s.users.UpdateFields(ctx, user.ID, map[string]interface{}{"extra": extra}); err != nil {
			return err
		}
	}
	s.log.Info("Verification requested", zap.String("email", email))
	return nil
}

// ListPendingVerifications returns the pending companies reshaped into
// the fixed projection the admin dashboard renders.
func (s *CompanyService) ListPendingVerifications(ctx context.Context) ([]map[string]interface{}, error) {
	companies, err := s.companies.ListPendingVerifications(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(companies))
	for i := range companies {
		company := &companies[i]
		out = append(out, map[string]interface{}{
			"id":                      company.ID,
			"companyName":             company.DisplayName(),
			"representative":          model.FirstNonEmpty(company.FullName, model.ExtraString(company.Extra, "representative")),
			"email":                   company.Email,
			"verificationRequestedAt": company.VerificationRequestedAt,
			"verificationDocumentUrl": company.VerificationDocumentURL,
			"linkedin":                company.LinkedIn,
			"verificationStatus":      company.VerificationStatus,
		})
	}
	return out, nil
}

// ProcessVerification decides a pending request. Only approve and
// reject are valid actions; the identifier may be a generated id or the
// company's email.
func (s *CompanyService) ProcessVerification(ctx context.Context, id, action string) (string, error) {
	if action != "approve" && action != "reject" {
		return "", apperr.Validation("Invalid action")
	}
	newStatus := model.VerificationVerified
	if action == "reject" {
		newStatus = model.VerificationRejected
	}

	company, err := s.companies.ResolveByIDOrEmail(ctx, id)
	if err != nil {
		return "", err
	}
	err = s.companies.UpdateFields(ctx, company.ID, map[string]interface{}{
		"verification_status":      newStatus,
		"verification_reviewed_at": nowISO(),
	})
	if err != nil {
		return "", err
	}
	s.log.Info("Verification processed",
		zap.String("email", company.Email),
		zap.String("status", newStatus))
	return newStatus, nil
}

// UpdateProfileByEmail patches the allow-listed profile fields, trying
// the companies collection first and falling back to users. Returns the
// post-update document.
func (s *CompanyService) UpdateProfileByEmail(ctx context.Context, email string, body map[string]interface{}) (map[string]interface{}, error) {
	if email == "" {
		return nil, apperr.Validation("Missing email")
	}

	columns := map[string]string{
		"fullName":    "full_name",
		"companyName": "company_name",
		"designation": "designation",
		"phone":       "phone",
		"linkedin":    "linked_in",
	}
	fields := map[string]interface{}{}
	for _, key := range profileUpdateAllowList {
		if value, ok := body[key]; ok {
			fields[columns[key]] = value
		}
	}
	if len(fields) == 0 {
		return nil, apperr.Validation("Nothing to update")
	}

	matched, err := s.companies.UpdateByEmail(ctx, email, fields)
	if err != nil {
		return nil, err
	}
	if matched > 0 {
		company, err := s.companies.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return company.Doc(), nil
	}

	// Fall back to the users collection. Users only have columns for
	// the name and phone; the company-flavored fields go to the
	// extension map.
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	userFields := map[string]interface{}{}
	if value, ok := body["fullName"]; ok {
		userFields["full_name"] = value
	}
	if value, ok := body["phone"]; ok {
		userFields["phone"] = value
	}
	extra := user.Extra
	for _, key := range []string{"companyName", "designation", "linkedin"} {
		if value, ok := body[key]; ok {
			if extra == nil {
				extra = datatypes.JSONMap{}
			}
			extra[key] = value
		}
	}
	if extra != nil {
		userFields["extra"] = extra
	}
	if err := s.users.UpdateFields(ctx, user.ID, userFields); err != nil {
		return nil, err
	}
	updated, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return updated.Doc(), nil
}
