package store

import (
	"context"
	"errors"
	"time"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/model"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"gorm.io/gorm"
)

// UserStore is the users collection.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Search(ctx context.Context, q string) ([]model.User, error)
	Resolve(ctx context.Context, id string) (*model.User, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	// UpdateByEmail patches whichever user matches the email; the
	// returned count tells callers whether anything matched.
	UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountStudents(ctx context.Context) (int64, error)
	TopUniversities(ctx context.Context, limit int) ([]GroupCount, error)
}

type userStore struct {
	db *gorm.DB
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return wrapErr(s.db.WithContext(ctx).Create(user).Error)
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (s *userStore) Search(ctx context.Context, q string) ([]model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := s.db.WithContext(ctx).Model(&model.User{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("(full_name ILIKE ? OR email ILIKE ?)", like, like)
	}
	var users []model.User
	if err := query.Find(&users).Error; err != nil {
		return nil, wrapErr(err)
	}
	return users, nil
}

func (s *userStore) Resolve(ctx context.Context, id string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	return resolveByID[model.User](ctx, s.db, id)
}

func (s *userStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Not found")
	}
	return nil
}

func (s *userStore) UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) (int64, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Updates(fields)
	if res.Error != nil {
		return 0, wrapErr(res.Error)
	}
	return res.RowsAffected, nil
}

func (s *userStore) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	res := s.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Not found")
	}
	return nil
}

func (s *userStore) Count(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, wrapErr(err)
}

// CountStudents treats accounts with no explicit userType as students,
// matching how older records were written.
func (s *userStore) CountStudents(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("user_type IN ?", []string{"student", ""}).
		Count(&count).Error
	return count, wrapErr(err)
}

func (s *userStore) TopUniversities(ctx context.Context, limit int) ([]GroupCount, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var out []GroupCount
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Select("university AS name, COUNT(*) AS count").
		Where("university <> ''").
		Group("university").
		Order("count DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapErr(err)
	}
	return out, nil
}
