package store

import (
	"context"
	"time"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/model"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"gorm.io/gorm"
)

// CompanyStore is the companies collection.
type CompanyStore interface {
	Create(ctx context.Context, company *model.Company) error
	FindByEmail(ctx context.Context, email string) (*model.Company, error)
	Resolve(ctx context.Context, id string) (*model.Company, error)
	// ResolveByIDOrEmail is the verification-review lookup: generated
	// id first, then email.
	ResolveByIDOrEmail(ctx context.Context, id string) (*model.Company, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) (int64, error)
	ListPendingVerifications(ctx context.Context) ([]model.Company, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type companyStore struct {
	db *gorm.DB
}

func (s *companyStore) Create(ctx context.Context, company *model.Company) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return wrapErr(s.db.WithContext(ctx).Create(company).Error)
}

func (s *companyStore) FindByEmail(ctx context.Context, email string) (*model.Company, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var company model.Company
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&company).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &company, nil
}

func (s *companyStore) Resolve(ctx context.Context, id string) (*model.Company, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	return resolveByID[model.Company](ctx, s.db, id)
}

func (s *companyStore) ResolveByIDOrEmail(ctx context.Context, id string) (*model.Company, error) {
	company, err := s.Resolve(ctx, id)
	if err == nil {
		return company, nil
	}
	if !apperr.Is(err, apperr.CodeNotFound) {
		return nil, err
	}
	return s.FindByEmail(ctx, id)
}

func (s *companyStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	res := s.db.WithContext(ctx).Model(&model.Company{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Not found")
	}
	return nil
}

func (s *companyStore) UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) (int64, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())
	res := s.db.WithContext(ctx).Model(&model.Company{}).Where("email = ?", email).Updates(fields)
	if res.Error != nil {
		return 0, wrapErr(res.Error)
	}
	return res.RowsAffected, nil
}

func (s *companyStore) ListPendingVerifications(ctx context.Context) ([]model.Company, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var companies []model.Company
	err := s.db.WithContext(ctx).
		Where("verification_status = ?", model.VerificationPending).
		Find(&companies).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return companies, nil
}

func (s *companyStore) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	res := s.db.WithContext(ctx).Delete(&model.Company{}, id)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Not found")
	}
	return nil
}

func (s *companyStore) Count(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Company{}).Count(&count).Error
	return count, wrapErr(err)
}
