package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/model"
	"github.com/SamarthBhogre/InternLink/internal/service"
	"github.com/SamarthBhogre/InternLink/internal/store"
	"github.com/SamarthBhogre/InternLink/internal/upload"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memUserStore is the minimal in-memory rendition of the users
// collection the routing tests need.
type memUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uint]*model.User)}
}

func (s *memUserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperr.Conflict("duplicate key")
		}
	}
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Not found")
}

func (s *memUserStore) Search(ctx context.Context, q string) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(q)
	var out []model.User
	for _, user := range s.users {
		if q == "" ||
			strings.Contains(strings.ToLower(user.FullName), needle) ||
			strings.Contains(strings.ToLower(user.Email), needle) {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (s *memUserStore) Resolve(ctx context.Context, id string) (*model.User, error) {
	return nil, apperr.NotFound("Not found")
}

func (s *memUserStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return apperr.NotFound("Not found")
}

func (s *memUserStore) UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) (int64, error) {
	return 0, nil
}

func (s *memUserStore) Delete(ctx context.Context, id uint) error {
	return apperr.NotFound("Not found")
}

func (s *memUserStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func (s *memUserStore) CountStudents(ctx context.Context) (int64, error) {
	return s.Count(ctx)
}

func (s *memUserStore) TopUniversities(ctx context.Context, limit int) ([]store.GroupCount, error) {
	return nil, nil
}

// memCompanyStore keeps registration routing honest; the company flows
// themselves are covered by the service tests.
type memCompanyStore struct {
	mu        sync.Mutex
	nextID    uint
	companies map[uint]*model.Company
}

func newMemCompanyStore() *memCompanyStore {
	return &memCompanyStore{companies: make(map[uint]*model.Company)}
}

func (s *memCompanyStore) Create(ctx context.Context, company *model.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.companies {
		if existing.Email == company.Email {
			return apperr.Conflict("duplicate key")
		}
	}
	s.nextID++
	company.ID = s.nextID
	copied := *company
	s.companies[company.ID] = &copied
	return nil
}

func (s *memCompanyStore) FindByEmail(ctx context.Context, email string) (*model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, company := range s.companies {
		if company.Email == email {
			copied := *company
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Not found")
}

func (s *memCompanyStore) Resolve(ctx context.Context, id string) (*model.Company, error) {
	return nil, apperr.NotFound("Not found")
}

func (s *memCompanyStore) ResolveByIDOrEmail(ctx context.Context, id string) (*model.Company, error) {
	return s.FindByEmail(ctx, id)
}

func (s *memCompanyStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return apperr.NotFound("Not found")
}

func (s *memCompanyStore) UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) (int64, error) {
	return 0, nil
}

func (s *memCompanyStore) ListPendingVerifications(ctx context.Context) ([]model.Company, error) {
	return nil, nil
}

func (s *memCompanyStore) Delete(ctx context.Context, id uint) error {
	return apperr.NotFound("Not found")
}

func (s *memCompanyStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.companies)), nil
}

type memResumeStore struct {
	mu      sync.Mutex
	resumes map[string]*model.Resume
}

func newMemResumeStore() *memResumeStore {
	return &memResumeStore{resumes: make(map[string]*model.Resume)}
}

func (s *memResumeStore) Upsert(ctx context.Context, resume *model.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *resume
	s.resumes[resume.Email] = &copied
	return nil
}

func (s *memResumeStore) FindByEmail(ctx context.Context, email string) (*model.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resume, ok := s.resumes[email]
	if !ok {
		return nil, apperr.NotFound("Not found")
	}
	copied := *resume
	return &copied, nil
}

func (s *memResumeStore) DeleteByEmail(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resumes[email]; !ok {
		return apperr.NotFound("Not found")
	}
	delete(s.resumes, email)
	return nil
}

// newTestServer wires the identity and resume routes the way the
// entrypoint does.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	log := zap.NewNop()

	uploader, err := upload.New(t.TempDir(), "http://test.local")
	require.NoError(t, err)

	identitySvc := service.NewIdentityService(newMemUserStore(), newMemCompanyStore(), log)
	resumeSvc := service.NewResumeService(newMemResumeStore(), uploader, log)
	analyticsSvc := service.NewAnalyticsService(newMemUserStore(), newMemCompanyStore(), nil, nil, log)

	authHandler := NewAuthHandler(identitySvc)
	userHandler := NewUserHandler(identitySvc)
	resumeHandler := NewResumeHandler(resumeSvc)
	analyticsHandler := NewAnalyticsHandler(analyticsSvc)

	e := echo.New()
	api := e.Group("/api")
	api.POST("/users", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/users", userHandler.List)
	api.POST("/upload_resume", resumeHandler.Upload)
	api.DELETE("/upload_resume", resumeHandler.Delete)
	api.GET("/resume", resumeHandler.Get)
	api.GET("/company/overview", analyticsHandler.CompanySummary)
	return e
}

func doJSON(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRegisterLoginSearchFlow(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/users", map[string]interface{}{
		"email":    "a@x.com",
		"password": "p",
		"userType": "student",
		"fullName": "Ada",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody(t, rec)
	assert.Equal(t, "User created", created["msg"])

	rec = doJSON(e, http.MethodPost, "/api/login", map[string]interface{}{
		"email":    "a@x.com",
		"password": "p",
		"userType": "student",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decodeBody(t, rec)
	assert.Equal(t, "Login successful", login["msg"])
	user, ok := login["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user["email"])
	assert.NotContains(t, user, "password")

	rec = doJSON(e, http.MethodGet, "/api/users?q=a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decodeBody(t, rec)
	users, ok := listing["users"].([]interface{})
	require.True(t, ok)
	require.Len(t, users, 1)
	assert.Equal(t, "a@x.com", users[0].(map[string]interface{})["email"])
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	e := newTestServer(t)
	body := map[string]interface{}{"email": "a@x.com", "password": "p", "userType": "student"}

	require.Equal(t, http.StatusCreated, doJSON(e, http.MethodPost, "/api/users", body).Code)
	rec := doJSON(e, http.MethodPost, "/api/users", body)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", decodeBody(t, rec)["msg"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/login", map[string]interface{}{
		"email":    "ghost@x.com",
		"password": "p",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["msg"])
}

func TestResumeUploadAndFetch(t *testing.T) {
	e := newTestServer(t)
	dataURL := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("cv"))

	rec := doJSON(e, http.MethodPost, "/api/upload_resume", map[string]interface{}{
		"email":   "a@x.com",
		"dataUrl": dataURL,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	uploaded := decodeBody(t, rec)
	url, ok := uploaded["url"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(url, "http://test.local/uploads/"))

	rec = doJSON(e, http.MethodGet, "/api/resume?email=a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody(t, rec)
	resume, ok := fetched["resume"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, url, resume["resumeUrl"])

	rec = doJSON(e, http.MethodDelete, "/api/upload_resume", map[string]interface{}{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, http.StatusNotFound, doJSON(e, http.MethodGet, "/api/resume?email=a@x.com", nil).Code)
}

func TestResumeUploadMissingPayload(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodPost, "/api/upload_resume", map[string]interface{}{"email": "a@x.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompanyOverviewMissingParameter(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/api/company/overview", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing company parameter", decodeBody(t, rec)["msg"])
}
