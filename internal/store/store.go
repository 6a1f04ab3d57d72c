// Package store wraps the database behind per-collection interfaces so
// services receive their storage as an explicit dependency and tests
// can substitute in-memory doubles.
package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"gorm.io/gorm"
)

// GroupCount is one bucket of a group-count aggregation.
type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Stores bundles every collection store for injection at startup.
type Stores struct {
	Users        UserStore
	Companies    CompanyStore
	Internships  InternshipStore
	Applications ApplicationStore
	Resumes      ResumeStore
}

// New builds GORM-backed stores over a shared handle.
func New(db *gorm.DB) *Stores {
	return &Stores{
		Users:        &userStore{db: db},
		Companies:    &companyStore{db: db},
		Internships:  &internshipStore{db: db},
		Applications: &applicationStore{db: db},
		Resumes:      &resumeStore{db: db},
	}
}

// resolveByID is the one identifier-resolution routine shared by every
// collection. Identifiers may be a numeric primary key or an arbitrary
// caller-supplied string kept in the extra map's "id" field; strategies
// are tried in that order and the first hit wins.
func resolveByID[T any](ctx context.Context, db *gorm.DB, id string) (*T, error) {
	var out T
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		err := db.WithContext(ctx).First(&out, n).Error
		if err == nil {
			return &out, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Storage(err)
		}
	}
	err := db.WithContext(ctx).Where("extra->>'id' = ?", id).First(&out).Error
	if err == nil {
		return &out, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Not found")
	}
	return nil, apperr.Storage(err)
}

// wrapErr translates storage failures into the service error taxonomy.
// Unique-constraint violations use the driver's native signal, never a
// message-substring match.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("Not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("duplicate key")
	default:
		return apperr.Storage(err)
	}
}
