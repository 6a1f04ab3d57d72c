package service

import (
	"context"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/model"
	"github.com/SamarthBhogre/InternLink/internal/store"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// IdentityService registers accounts, checks credentials and owns the
// admin-side user operations. Company accounts live in their own
// collection; everything else goes to users.
type IdentityService struct {
	users     store.UserStore
	companies store.CompanyStore
	log       *zap.Logger
}

func NewIdentityService(users store.UserStore, companies store.CompanyStore, log *zap.Logger) *IdentityService {
	return &IdentityService{users: users, companies: companies, log: log}
}

// Register creates an account from the raw request body. Unknown
// fields are kept in the extension map; the password is stored as a
// bcrypt hash and never returned.
func (s *IdentityService) Register(ctx context.Context, body map[string]interface{}) (map[string]interface{}, error) {
	email := strField(body, "email")
	password := strField(body, "password")
	if email == "" || password == "" {
		return nil, apperr.Validation("Missing email or password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	role := strField(body, "userType")
	if role == "company" {
		company := &model.Company{
			FullName:    strField(body, "fullName"),
			CompanyName: strField(body, "companyName"),
			Designation: strField(body, "designation"),
			Email:       email,
			Password:    string(hashed),
			UserType:    role,
			Status:      strField(body, "status"),
			Phone:       strField(body, "phone"),
			LinkedIn:    strField(body, "linkedin"),
			Extra: extraFrom(body,
				"fullName", "companyName", "designation", "email", "userType", "status", "phone", "linkedin"),
		}
		if err := s.companies.Create(ctx, company); err != nil {
			if apperr.Is(err, apperr.CodeConflict) {
				return nil, apperr.Conflict("Email already registered")
			}
			return nil, err
		}
		s.log.Info("Company registered", zap.String("email", email))
		return map[string]interface{}{"id": company.ID, "email": email, "userType": role}, nil
	}

	user := &model.User{
		FullName:    strField(body, "fullName"),
		Email:       email,
		Password:    string(hashed),
		UserType:    role,
		Status:      strField(body, "status"),
		IsAdmin:     boolField(body, "isAdmin"),
		Phone:       strField(body, "phone"),
		University:  strField(body, "university"),
		Course:      strField(body, "course"),
		YearOfStudy: strField(body, "yearOfStudy"),
		Extra: extraFrom(body,
			"fullName", "email", "userType", "status", "isAdmin", "phone", "university", "course", "yearOfStudy"),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperr.Is(err, apperr.CodeConflict) {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, err
	}
	s.log.Info("User registered", zap.String("email", email), zap.String("user_type", role))
	return map[string]interface{}{"id": user.ID, "email": email, "userType": role}, nil
}

// Login verifies credentials against the collection the userType
// selects. An unknown email and a wrong password are indistinguishable
// to the caller.
func (s *IdentityService) Login(ctx context.Context, email, password, userType string) (map[string]interface{}, error) {
	if userType == "company" {
		company, err := s.companies.FindByEmail(ctx, email)
		if err != nil {
			if apperr.Is(err, apperr.CodeNotFound) {
				return nil, apperr.Auth("Invalid credentials")
			}
			return nil, err
		}
		if bcrypt.CompareHashAndPassword([]byte(company.Password), []byte(password)) != nil {
			return nil, apperr.Auth("Invalid credentials")
		}
		return company.Doc(), nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, apperr.Auth("Invalid credentials")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.Auth("Invalid credentials")
	}
	return user.Doc(), nil
}

// SeedAdmin creates the configured administrator account when missing.
// Safe to run on every startup.
func (s *IdentityService) SeedAdmin(ctx context.Context, email, password string) error {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !apperr.Is(err, apperr.CodeNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Storage(err)
	}
	admin := &model.User{
		FullName: "Platform Admin",
		Email:    email,
		Password: string(hashed),
		UserType: "admin",
		IsAdmin:  true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		// Another instance may have seeded concurrently.
		if apperr.Is(err, apperr.CodeConflict) {
			return nil
		}
		return err
	}
	s.log.Info("Seeded admin user", zap.String("email", email))
	return nil
}

// SearchUsers lists users, optionally narrowed by a case-insensitive
// substring over name and email.
func (s *IdentityService) SearchUsers(ctx context.Context, q string) ([]map[string]interface{}, error) {
	users, err := s.users.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		out = append(out, users[i].Doc())
	}
	return out, nil
}

// DeleteUser removes an account by identifier, trying the users
// collection first and falling back to companies.
func (s *IdentityService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.users.Resolve(ctx, id)
	if err == nil {
		return s.users.Delete(ctx, user.ID)
	}
	if !apperr.Is(err, apperr.CodeNotFound) {
		return err
	}
	company, err := s.companies.Resolve(ctx, id)
	if err != nil {
		return err
	}
	return s.companies.Delete(ctx, company.ID)
}

// SuspendUser marks an account Suspended.
func (s *IdentityService) SuspendUser(ctx context.Context, id string) error {
	return s.setUserStatus(ctx, id, model.UserStatusSuspended)
}

// ActivateUser marks an account Active.
func (s *IdentityService) ActivateUser(ctx context.Context, id string) error {
	return s.setUserStatus(ctx, id, model.UserStatusActive)
}

func (s *IdentityService) setUserStatus(ctx context.Context, id, status string) error {
	user, err := s.users.Resolve(ctx, id)
	if err != nil {
		return err
	}
	return s.users.UpdateFields(ctx, user.ID, map[string]interface{}{"status": status})
}
