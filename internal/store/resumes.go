package store

import (
	"context"
	"time"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/model"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResumeStore keeps at most one metadata record per email.
type ResumeStore interface {
	Upsert(ctx context.Context, resume *model.Resume) error
	FindByEmail(ctx context.Context, email string) (*model.Resume, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type resumeStore struct {
	db *gorm.DB
}

func (s *resumeStore) Upsert(ctx context.Context, resume *model.Resume) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"resume_filename", "stored_filename", "resume_url", "uploaded_at", "updated_at",
		}),
	}).Create(resume).Error
	return wrapErr(err)
}

func (s *resumeStore) FindByEmail(ctx context.Context, email string) (*model.Resume, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var resume model.Resume
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&resume).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &resume, nil
}

func (s *resumeStore) DeleteByEmail(ctx context.Context, email string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	res := s.db.WithContext(ctx).Where("email = ?", email).Delete(&model.Resume{})
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Not found")
	}
	return nil
}
