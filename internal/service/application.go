package service

import (
	"context"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/model"
	"github.com/SamarthBhogre/InternLink/internal/store"
	"go.uber.org/zap"
)

// ApplicationService owns applications and the only cross-entity logic
// in the system: embedding an internship snapshot at creation time and
// back-filling student profile fields at read time.
type ApplicationService struct {
	applications store.ApplicationStore
	internships  store.InternshipStore
	users        store.UserStore
	log          *zap.Logger
}

func NewApplicationService(applications store.ApplicationStore, internships store.InternshipStore, users store.UserStore, log *zap.Logger) *ApplicationService {
	return &ApplicationService{applications: applications, internships: internships, users: users, log: log}
}

// Create stores an application. When the referenced internship can be
// found, its snapshot is embedded and empty top-level fields are
// back-filled from it; caller-supplied values always win. The lookup is
// best-effort: a miss degrades the record, never the request.
func (s *ApplicationService) Create(ctx context.Context, body map[string]interface{}) (map[string]interface{}, error) {
	internshipID := idString(body["internshipId"])
	studentEmail := strField(body, "studentEmail")
	studentName := strField(body, "studentName")
	company := strField(body, "company")
	if internshipID == "" || studentEmail == "" || studentName == "" || company == "" {
		return nil, apperr.Validation("Missing required fields")
	}

	application := &model.Application{
		InternshipID:    internshipID,
		StudentEmail:    studentEmail,
		StudentName:     studentName,
		Company:         company,
		Status:          strField(body, "status"),
		AppliedDate:     strField(body, "appliedDate"),
		InternshipTitle: strField(body, "internshipTitle"),
		Stipend:         strField(body, "stipend"),
		Extra: extraFrom(body,
			"internshipId", "studentEmail", "studentName", "company", "status",
			"appliedDate", "internshipTitle", "stipend"),
	}
	// Guarantee an applied date so clients can show "Applied On";
	// legacy writers sometimes used an "applied" field instead.
	if application.AppliedDate == "" && model.ExtraString(application.Extra, "applied") == "" {
		application.AppliedDate = nowISO()
	}
	if application.Status == "" {
		application.Status = model.ApplicationStatusInReview
	}

	if internship, err := s.internships.Resolve(ctx, internshipID); err == nil {
		snap := internship.Snapshot()
		application.Snapshot = snap
		application.InternshipTitle = model.FirstNonEmpty(application.InternshipTitle, snap.Position, snap.Title)
		application.Company = model.FirstNonEmpty(application.Company, snap.Company)
		application.Stipend = model.FirstNonEmpty(application.Stipend, snap.Stipend)
	} else {
		s.log.Debug("Internship snapshot skipped",
			zap.String("internship_id", internshipID),
			zap.Error(err))
	}

	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}
	s.log.Info("Application created",
		zap.Uint("id", application.ID),
		zap.String("internship_id", internshipID),
		zap.String("student_email", studentEmail))
	return application.Doc(), nil
}

// List returns applications matching the filter, each enriched from
// the student's user record and carrying an internship snapshot where
// one can still be found.
func (s *ApplicationService) List(ctx context.Context, filter store.ApplicationFilter) ([]map[string]interface{}, error) {
	applications, err := s.applications.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(applications))
	for i := range applications {
		application := &applications[i]
		s.enrichFromUser(ctx, application)
		s.attachSnapshot(ctx, application)
		out = append(out, application.Doc())
	}
	return out, nil
}

// Get fetches one application with the same read-time enrichment as
// List.
func (s *ApplicationService) Get(ctx context.Context, id string) (map[string]interface{}, error) {
	application, err := s.applications.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	s.enrichFromUser(ctx, application)
	s.attachSnapshot(ctx, application)
	return application.Doc(), nil
}

// UpdateStatus changes the only mutable field of an application.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, body map[string]interface{}) error {
	if _, ok := body["status"]; !ok {
		return apperr.Validation("Nothing to update")
	}
	application, err := s.applications.Resolve(ctx, id)
	if err != nil {
		return err
	}
	return s.applications.UpdateFields(ctx, application.ID, map[string]interface{}{
		"status": strField(body, "status"),
	})
}

// Delete removes an application, resolving the identifier through the
// same strategy chain as reads.
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	application, err := s.applications.Resolve(ctx, id)
	if err != nil {
		return err
	}
	if err := s.applications.Delete(ctx, application.ID); err != nil {
		return err
	}
	s.log.Info("Application deleted", zap.Uint("id", application.ID))
	return nil
}

// enrichFromUser back-fills missing student profile fields from the
// users collection. Read-time only, never persisted, and never
// overwrites a value the application already has.
func (s *ApplicationService) enrichFromUser(ctx context.Context, application *model.Application) {
	email := model.FirstNonEmpty(application.StudentEmail, model.ExtraString(application.Extra, "email"))
	if email == "" {
		return
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Debug("Application enrichment skipped",
			zap.String("student_email", email),
			zap.Error(err))
		return
	}
	if application.StudentName == "" {
		application.StudentName = model.FirstNonEmpty(user.FullName, model.ExtraString(user.Extra, "name"))
	}
	if application.StudentEmail == "" {
		application.StudentEmail = user.Email
	}
	if application.Phone == "" {
		application.Phone = user.Phone
	}
	if application.University == "" {
		application.University = user.University
	}
	if application.Course == "" {
		application.Course = user.Course
	}
	if application.Year == "" {
		application.Year = model.FirstNonEmpty(user.YearOfStudy, model.ExtraString(user.Extra, "year"))
	}
}

// attachSnapshot fills in a snapshot for applications stored before
// snapshots existed. Best-effort and read-time only; the stored record
// keeps whatever it was written with.
func (s *ApplicationService) attachSnapshot(ctx context.Context, application *model.Application) {
	if application.Snapshot != nil || application.InternshipID == "" {
		return
	}
	internship, err := s.internships.Resolve(ctx, application.InternshipID)
	if err != nil {
		s.log.Debug("Snapshot backfill skipped",
			zap.String("internship_id", application.InternshipID),
			zap.Error(err))
		return
	}
	application.Snapshot = internship.Snapshot()
	if application.Stipend == "" {
		application.Stipend = application.Snapshot.Stipend
	}
}
