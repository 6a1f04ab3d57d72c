package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/model"
	"github.com/SamarthBhogre/InternLink/internal/store"
	"gorm.io/datatypes"
)

// The fakes below mirror the Postgres stores over plain maps so the
// services can be exercised without a database. Reads hand out copies
// to keep the round-trip semantics honest.

func extraID(extra map[string]interface{}) string {
	if extra == nil {
		return ""
	}
	s, _ := extra["id"].(string)
	return s
}

func idCandidates(id string) []string {
	candidates := []string{id}
	if n, err := strconv.Atoi(id); err == nil {
		if normalized := strconv.Itoa(n); normalized != id {
			candidates = append(candidates, normalized)
		}
	}
	return candidates
}

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*model.User)}
}

func cloneUser(u *model.User) *model.User {
	copied := *u
	return &copied
}

func (s *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperr.Conflict("duplicate key")
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, apperr.NotFound("Not found")
}

func (s *fakeUserStore) Search(ctx context.Context, q string) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(q)
	var out []model.User
	for _, user := range s.users {
		if q == "" ||
			strings.Contains(strings.ToLower(user.FullName), needle) ||
			strings.Contains(strings.ToLower(user.Email), needle) {
			out = append(out, *cloneUser(user))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeUserStore) Resolve(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		if user, ok := s.users[uint(n)]; ok {
			return cloneUser(user), nil
		}
	}
	for _, user := range s.users {
		if extraID(user.Extra) == id {
			return cloneUser(user), nil
		}
	}
	return nil, apperr.NotFound("Not found")
}

func (s *fakeUserStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return apperr.NotFound("Not found")
	}
	applyUserFields(user, fields)
	return nil
}

func (s *fakeUserStore) UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched int64
	for _, user := range s.users {
		if user.Email == email {
			applyUserFields(user, fields)
			matched++
		}
	}
	return matched, nil
}

func applyUserFields(user *model.User, fields map[string]interface{}) {
	for column, value := range fields {
		switch column {
		case "full_name":
			user.FullName, _ = value.(string)
		case "phone":
			user.Phone, _ = value.(string)
		case "status":
			user.Status, _ = value.(string)
		case "extra":
			switch extra := value.(type) {
			case datatypes.JSONMap:
				user.Extra = extra
			case map[string]interface{}:
				user.Extra = extra
			}
		}
	}
}

func (s *fakeUserStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return apperr.NotFound("Not found")
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func (s *fakeUserStore) CountStudents(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, user := range s.users {
		if user.UserType == "student" || user.UserType == "" {
			count++
		}
	}
	return count, nil
}

func (s *fakeUserStore) TopUniversities(ctx context.Context, limit int) ([]store.GroupCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[string]int64{}
	for _, user := range s.users {
		if user.University != "" {
			counts[user.University]++
		}
	}
	return topGroups(counts, limit), nil
}

func topGroups(counts map[string]int64, limit int) []store.GroupCount {
	out := make([]store.GroupCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, store.GroupCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

type fakeCompanyStore struct {
	mu        sync.Mutex
	nextID    uint
	companies map[uint]*model.Company
}

func newFakeCompanyStore() *fakeCompanyStore {
	return &fakeCompanyStore{companies: make(map[uint]*model.Company)}
}

func cloneCompany(c *model.Company) *model.Company {
	copied := *c
	return &copied
}

func (s *fakeCompanyStore) Create(ctx context.Context, company *model.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.companies {
		if existing.Email == company.Email {
			return apperr.Conflict("duplicate key")
		}
	}
	s.nextID++
	company.ID = s.nextID
	s.companies[company.ID] = cloneCompany(company)
	return nil
}

func (s *fakeCompanyStore) FindByEmail(ctx context.Context, email string) (*model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, company := range s.companies {
		if company.Email == email {
			return cloneCompany(company), nil
		}
	}
	return nil, apperr.NotFound("Not found")
}

func (s *fakeCompanyStore) Resolve(ctx context.Context, id string) (*model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		if company, ok := s.companies[uint(n)]; ok {
			return cloneCompany(company), nil
		}
	}
	for _, company := range s.companies {
		if extraID(company.Extra) == id {
			return cloneCompany(company), nil
		}
	}
	return nil, apperr.NotFound("Not found")
}

func (s *fakeCompanyStore) ResolveByIDOrEmail(ctx context.Context, id string) (*model.Company, error) {
	if company, err := s.Resolve(ctx, id); err == nil {
		return company, nil
	}
	return s.FindByEmail(ctx, id)
}

func (s *fakeCompanyStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	company, ok := s.companies[id]
	if !ok {
		return apperr.NotFound("Not found")
	}
	applyCompanyFields(company, fields)
	return nil
}

func (s *fakeCompanyStore) UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched int64
	for _, company := range s.companies {
		if company.Email == email {
			applyCompanyFields(company, fields)
			matched++
		}
	}
	return matched, nil
}

func applyCompanyFields(company *model.Company, fields map[string]interface{}) {
	for column, value := range fields {
		text, _ := value.(string)
		switch column {
		case "full_name":
			company.FullName = text
		case "company_name":
			company.CompanyName = text
		case "designation":
			company.Designation = text
		case "phone":
			company.Phone = text
		case "linked_in":
			company.LinkedIn = text
		case "verification_status":
			company.VerificationStatus = text
		case "verification_document_url":
			company.VerificationDocumentURL = text
		case "verification_requested_at":
			company.VerificationRequestedAt = text
		case "verification_reviewed_at":
			company.VerificationReviewedAt = text
		}
	}
}

func (s *fakeCompanyStore) ListPendingVerifications(ctx context.Context) ([]model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Company
	for _, company := range s.companies {
		if company.VerificationStatus == model.VerificationPending {
			out = append(out, *cloneCompany(company))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeCompanyStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[id]; !ok {
		return apperr.NotFound("Not found")
	}
	delete(s.companies, id)
	return nil
}

func (s *fakeCompanyStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.companies)), nil
}

type fakeInternshipStore struct {
	mu          sync.Mutex
	nextID      uint
	internships map[uint]*model.Internship
}

func newFakeInternshipStore() *fakeInternshipStore {
	return &fakeInternshipStore{internships: make(map[uint]*model.Internship)}
}

func cloneInternship(i *model.Internship) *model.Internship {
	copied := *i
	copied.Tags = append([]string(nil), i.Tags...)
	return &copied
}

func (s *fakeInternshipStore) Create(ctx context.Context, internship *model.Internship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	internship.ID = s.nextID
	s.internships[internship.ID] = cloneInternship(internship)
	return nil
}

func (s *fakeInternshipStore) List(ctx context.Context, filter store.InternshipFilter) ([]model.Internship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(filter.Query)
	var out []model.Internship
	for _, internship := range s.internships {
		if filter.Company != "" &&
			internship.Company != filter.Company && internship.CompanyEmail != filter.Company {
			continue
		}
		if filter.Query != "" {
			haystack := strings.ToLower(strings.Join(append([]string{
				internship.Title, internship.Position, internship.Company,
			}, internship.Tags...), " "))
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		out = append(out, *cloneInternship(internship))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeInternshipStore) Resolve(ctx context.Context, id string) (*model.Internship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		if internship, ok := s.internships[uint(n)]; ok {
			return cloneInternship(internship), nil
		}
	}
	for _, internship := range s.internships {
		if extraID(internship.Extra) == id {
			return cloneInternship(internship), nil
		}
	}
	return nil, apperr.NotFound("Not found")
}

func (s *fakeInternshipStore) Save(ctx context.Context, internship *model.Internship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.internships[internship.ID]; !ok {
		return apperr.NotFound("Not found")
	}
	s.internships[internship.ID] = cloneInternship(internship)
	return nil
}

func (s *fakeInternshipStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	internship, ok := s.internships[id]
	if !ok {
		return apperr.NotFound("Not found")
	}
	if value, ok := fields["status"]; ok {
		internship.Status, _ = value.(string)
	}
	return nil
}

func (s *fakeInternshipStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.internships)), nil
}

func (s *fakeInternshipStore) CountByStatus(ctx context.Context, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, internship := range s.internships {
		if internship.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *fakeInternshipStore) TopCompanies(ctx context.Context, limit int) ([]store.GroupCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[string]int64{}
	for _, internship := range s.internships {
		if internship.Company != "" {
			counts[internship.Company]++
		}
	}
	return topGroups(counts, limit), nil
}

type fakeApplicationStore struct {
	mu           sync.Mutex
	nextID       uint
	applications map[uint]*model.Application
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{applications: make(map[uint]*model.Application)}
}

func cloneApplication(a *model.Application) *model.Application {
	copied := *a
	if a.Snapshot != nil {
		snapshot := *a.Snapshot
		snapshot.Tags = append([]string(nil), a.Snapshot.Tags...)
		copied.Snapshot = &snapshot
	}
	return &copied
}

func (s *fakeApplicationStore) Create(ctx context.Context, application *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	application.ID = s.nextID
	stored := cloneApplication(application)
	// The profile fields have no column; a round-trip loses them.
	stored.Phone, stored.University, stored.Course, stored.Year = "", "", "", ""
	s.applications[application.ID] = stored
	return nil
}

func (s *fakeApplicationStore) List(ctx context.Context, filter store.ApplicationFilter) ([]model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Application
	for _, application := range s.applications {
		if filter.Company != "" && application.Company != filter.Company {
			continue
		}
		if filter.StudentEmail != "" && application.StudentEmail != filter.StudentEmail {
			continue
		}
		if filter.InternshipID != "" {
			matched := false
			for _, candidate := range idCandidates(filter.InternshipID) {
				if application.InternshipID == candidate {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, *cloneApplication(application))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeApplicationStore) Resolve(ctx context.Context, id string) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		if application, ok := s.applications[uint(n)]; ok {
			return cloneApplication(application), nil
		}
	}
	for _, application := range s.applications {
		if extraID(application.Extra) == id {
			return cloneApplication(application), nil
		}
	}
	return nil, apperr.NotFound("Not found")
}

func (s *fakeApplicationStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	application, ok := s.applications[id]
	if !ok {
		return apperr.NotFound("Not found")
	}
	if value, ok := fields["status"]; ok {
		application.Status, _ = value.(string)
	}
	return nil
}

func (s *fakeApplicationStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.applications[id]; !ok {
		return apperr.NotFound("Not found")
	}
	delete(s.applications, id)
	return nil
}

func (s *fakeApplicationStore) Count(ctx context.Context, company string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, application := range s.applications {
		if company == "" || application.Company == company {
			count++
		}
	}
	return count, nil
}

func (s *fakeApplicationStore) CountByStatus(ctx context.Context, company, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, application := range s.applications {
		if company != "" && application.Company != company {
			continue
		}
		if application.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *fakeApplicationStore) CountInReview(ctx context.Context, company string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, application := range s.applications {
		if company != "" && application.Company != company {
			continue
		}
		switch application.Status {
		case model.ApplicationStatusInReview, "Pending", "":
			count++
		}
	}
	return count, nil
}

type fakeResumeStore struct {
	mu      sync.Mutex
	nextID  uint
	resumes map[string]*model.Resume
}

func newFakeResumeStore() *fakeResumeStore {
	return &fakeResumeStore{resumes: make(map[string]*model.Resume)}
}

func (s *fakeResumeStore) Upsert(ctx context.Context, resume *model.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.resumes[resume.Email]; ok {
		resume.ID = existing.ID
	} else {
		s.nextID++
		resume.ID = s.nextID
	}
	copied := *resume
	s.resumes[resume.Email] = &copied
	return nil
}

func (s *fakeResumeStore) FindByEmail(ctx context.Context, email string) (*model.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resume, ok := s.resumes[email]
	if !ok {
		return nil, apperr.NotFound("Not found")
	}
	copied := *resume
	return &copied, nil
}

func (s *fakeResumeStore) DeleteByEmail(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resumes[email]; !ok {
		return apperr.NotFound("Not found")
	}
	delete(s.resumes, email)
	return nil
}
