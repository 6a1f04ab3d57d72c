package store

import (
	"context"
	"strconv"
	"time"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/model"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"gorm.io/gorm"
)

// ApplicationFilter narrows a listing; all fields are exact matches.
type ApplicationFilter struct {
	Company      string
	StudentEmail string
	InternshipID string
}

// ApplicationStore is the applications collection.
type ApplicationStore interface {
	Create(ctx context.Context, application *model.Application) error
	List(ctx context.Context, filter ApplicationFilter) ([]model.Application, error)
	Resolve(ctx context.Context, id string) (*model.Application, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, company string) (int64, error)
	CountByStatus(ctx context.Context, company, status string) (int64, error)
	// CountInReview buckets Pending and status-less records together
	// with In Review, as legacy writers were inconsistent here.
	CountInReview(ctx context.Context, company string) (int64, error)
}

type applicationStore struct {
	db *gorm.DB
}

func (s *applicationStore) Create(ctx context.Context, application *model.Application) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return wrapErr(s.db.WithContext(ctx).Create(application).Error)
}

func (s *applicationStore) List(ctx context.Context, filter ApplicationFilter) ([]model.Application, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := s.db.WithContext(ctx).Model(&model.Application{})
	if filter.Company != "" {
		query = query.Where("company = ?", filter.Company)
	}
	if filter.StudentEmail != "" {
		query = query.Where("student_email = ?", filter.StudentEmail)
	}
	if filter.InternshipID != "" {
		// Accept both the raw identifier and its numeric
		// normalization, so "007" still finds records stored as "7".
		candidates := []string{filter.InternshipID}
		if n, err := strconv.Atoi(filter.InternshipID); err == nil {
			if normalized := strconv.Itoa(n); normalized != filter.InternshipID {
				candidates = append(candidates, normalized)
			}
		}
		query = query.Where("internship_id IN ?", candidates)
	}
	var applications []model.Application
	if err := query.Find(&applications).Error; err != nil {
		return nil, wrapErr(err)
	}
	return applications, nil
}

func (s *applicationStore) Resolve(ctx context.Context, id string) (*model.Application, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	return resolveByID[model.Application](ctx, s.db, id)
}

func (s *applicationStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	res := s.db.WithContext(ctx).Model(&model.Application{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Not found")
	}
	return nil
}

func (s *applicationStore) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	res := s.db.WithContext(ctx).Delete(&model.Application{}, id)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Not found")
	}
	return nil
}

func (s *applicationStore) Count(ctx context.Context, company string) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := s.db.WithContext(ctx).Model(&model.Application{})
	if company != "" {
		query = query.Where("company = ?", company)
	}
	var count int64
	err := query.Count(&count).Error
	return count, wrapErr(err)
}

func (s *applicationStore) CountByStatus(ctx context.Context, company, status string) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := s.db.WithContext(ctx).Model(&model.Application{}).Where("status = ?", status)
	if company != "" {
		query = query.Where("company = ?", company)
	}
	var count int64
	err := query.Count(&count).Error
	return count, wrapErr(err)
}

func (s *applicationStore) CountInReview(ctx context.Context, company string) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	// NULL statuses exist on rows written before this service; they
	// bucket with In Review like the empty string does.
	query := s.db.WithContext(ctx).Model(&model.Application{}).
		Where("(status IN ? OR status IS NULL)", []string{model.ApplicationStatusInReview, "Pending", ""})
	if company != "" {
		query = query.Where("company = ?", company)
	}
	var count int64
	err := query.Count(&count).Error
	return count, wrapErr(err)
}
