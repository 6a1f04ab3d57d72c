package store

import (
	"context"
	"time"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/model"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"gorm.io/gorm"
)

// InternshipFilter narrows a listing. Company matches either the
// company name or the company email exactly; Query is a
// case-insensitive substring over title, position, company and tags.
type InternshipFilter struct {
	Company string
	Query   string
}

// InternshipStore is the internships collection.
type InternshipStore interface {
	Create(ctx context.Context, internship *model.Internship) error
	List(ctx context.Context, filter InternshipFilter) ([]model.Internship, error)
	Resolve(ctx context.Context, id string) (*model.Internship, error)
	Save(ctx context.Context, internship *model.Internship) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	TopCompanies(ctx context.Context, limit int) ([]GroupCount, error)
}

type internshipStore struct {
	db *gorm.DB
}

func (s *internshipStore) Create(ctx context.Context, internship *model.Internship) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return wrapErr(s.db.WithContext(ctx).Create(internship).Error)
}

func (s *internshipStore) List(ctx context.Context, filter InternshipFilter) ([]model.Internship, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := s.db.WithContext(ctx).Model(&model.Internship{})
	if filter.Company != "" {
		query = query.Where("(company = ? OR company_email = ?)", filter.Company, filter.Company)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where(
			"(title ILIKE ? OR position ILIKE ? OR company ILIKE ? OR tags::text ILIKE ?)",
			like, like, like, like,
		)
	}
	var internships []model.Internship
	if err := query.Find(&internships).Error; err != nil {
		return nil, wrapErr(err)
	}
	return internships, nil
}

func (s *internshipStore) Resolve(ctx context.Context, id string) (*model.Internship, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	return resolveByID[model.Internship](ctx, s.db, id)
}

func (s *internshipStore) Save(ctx context.Context, internship *model.Internship) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	return wrapErr(s.db.WithContext(ctx).Save(internship).Error)
}

func (s *internshipStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	res := s.db.WithContext(ctx).Model(&model.Internship{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Not found")
	}
	return nil
}

func (s *internshipStore) Count(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Internship{}).Count(&count).Error
	return count, wrapErr(err)
}

func (s *internshipStore) CountByStatus(ctx context.Context, status string) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Internship{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, wrapErr(err)
}

func (s *internshipStore) TopCompanies(ctx context.Context, limit int) ([]GroupCount, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var out []GroupCount
	err := s.db.WithContext(ctx).Model(&model.Internship{}).
		Select("company AS name, COUNT(*) AS count").
		Where("company <> ''").
		Group("company").
		Order("count DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return out, nil
}
