package service

import (
	"context"
	"strings"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/model"
	"github.com/SamarthBhogre/InternLink/internal/store"
	"go.uber.org/zap"
)

// topLimit caps the group-count leaderboards in the admin dashboard.
const topLimit = 6

// AnalyticsService computes read-only aggregates over the other
// collections.
type AnalyticsService struct {
	users        store.UserStore
	companies    store.CompanyStore
	internships  store.InternshipStore
	applications store.ApplicationStore
	log          *zap.Logger
}

func NewAnalyticsService(users store.UserStore, companies store.CompanyStore, internships store.InternshipStore, applications store.ApplicationStore, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{users: users, companies: companies, internships: internships, applications: applications, log: log}
}

// PlatformSummary returns the platform-wide aggregate counts.
func (s *AnalyticsService) PlatformSummary(ctx context.Context) (map[string]interface{}, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalCompanies, err := s.companies.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalInternships, err := s.internships.Count(ctx)
	if err != nil {
		return nil, err
	}
	pendingApprovals, err := s.internships.CountByStatus(ctx, model.InternshipStatusPending)
	if err != nil {
		return nil, err
	}
	totalApplications, err := s.applications.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	activeStudents, err := s.users.CountStudents(ctx)
	if err != nil {
		return nil, err
	}

	selected, err := s.applications.CountByStatus(ctx, "", model.ApplicationStatusSelected)
	if err != nil {
		return nil, err
	}
	inReview, err := s.applications.CountInReview(ctx, "")
	if err != nil {
		return nil, err
	}
	rejected, err := s.applications.CountByStatus(ctx, "", model.ApplicationStatusRejected)
	if err != nil {
		return nil, err
	}

	// The leaderboards are decoration; an aggregation failure should
	// not take the dashboard down.
	topUniversities := []map[string]interface{}{}
	if buckets, err := s.users.TopUniversities(ctx, topLimit); err != nil {
		s.log.Debug("Top universities aggregation failed", zap.Error(err))
	} else {
		for _, b := range buckets {
			topUniversities = append(topUniversities, map[string]interface{}{"university": b.Name, "count": b.Count})
		}
	}
	topCompanies := []map[string]interface{}{}
	if buckets, err := s.internships.TopCompanies(ctx, topLimit); err != nil {
		s.log.Debug("Top companies aggregation failed", zap.Error(err))
	} else {
		for _, b := range buckets {
			topCompanies = append(topCompanies, map[string]interface{}{"company": b.Name, "count": b.Count})
		}
	}

	return map[string]interface{}{
		"totalUsers":            totalUsers + totalCompanies,
		"activeStudents":        activeStudents,
		"activeCompanies":       totalCompanies,
		"totalInternships":      totalInternships,
		"pendingApprovals":      pendingApprovals,
		"thisMonthApplications": totalApplications,
		"applicationStatusCounts": map[string]interface{}{
			"selected": selected,
			"inReview": inReview,
			"rejected": rejected,
			"total":    totalApplications,
		},
		"topUniversities": topUniversities,
		"topCompanies":    topCompanies,
	}, nil
}

// CompanySummary returns the same aggregate shape restricted to one
// company, identified by name or email.
func (s *AnalyticsService) CompanySummary(ctx context.Context, company string) (map[string]interface{}, error) {
	if company == "" {
		return nil, apperr.Validation("Missing company parameter")
	}

	internships, err := s.internships.List(ctx, store.InternshipFilter{Company: company})
	if err != nil {
		return nil, err
	}
	var active, pending int64
	for i := range internships {
		switch strings.ToLower(internships[i].Status) {
		case "active":
			active++
		case "pending approval", "pending":
			pending++
		}
	}

	totalApplications, err := s.applications.Count(ctx, company)
	if err != nil {
		return nil, err
	}
	selected, err := s.applications.CountByStatus(ctx, company, model.ApplicationStatusSelected)
	if err != nil {
		return nil, err
	}
	inReview, err := s.applications.CountInReview(ctx, company)
	if err != nil {
		return nil, err
	}
	rejected, err := s.applications.CountByStatus(ctx, company, model.ApplicationStatusRejected)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"company":            company,
		"totalInternships":   len(internships),
		"activeInternships":  active,
		"pendingInternships": pending,
		"totalApplications":  totalApplications,
		"applicationStatusCounts": map[string]interface{}{
			"selected": selected,
			"inReview": inReview,
			"rejected": rejected,
			"total":    totalApplications,
		},
	}, nil
}
