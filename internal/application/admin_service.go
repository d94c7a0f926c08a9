package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
	repo "github.com/hirewire/hirewire-api/internal/domain/repository"
)

// AdminService backs the admin dashboard: platform stats, analytics trends,
// and moderation over users, jobs, and applications.
type AdminService struct {
	Users  repo.UserRepository
	Jobs   repo.JobRepository
	Apps   repo.ApplicationRepository
	JobSvc *JobService
	Logger *logrus.Logger
}

func NewAdminService(users repo.UserRepository, jobs repo.JobRepository, apps repo.ApplicationRepository, jobSvc *JobService, logger *logrus.Logger) *AdminService {
	return &AdminService{Users: users, Jobs: jobs, Apps: apps, JobSvc: jobSvc, Logger: logger}
}

// DashboardStats is the at-a-glance view on the admin landing page.
type DashboardStats struct {
	Users struct {
		Total      int64            `json:"total"`
		ByRole     map[string]int64 `json:"byRole"`
		NewLast30d int64            `json:"newLast30Days"`
	} `json:"users"`
	Jobs struct {
		Total    int64 `json:"total"`
		Open     int64 `json:"open"`
		Approved int64 `json:"approved"`
		Pending  int64 `json:"pending"`
	} `json:"jobs"`
	Applications struct {
		Total      int64 `json:"total"`
		NewLast30d int64 `json:"newLast30Days"`
	} `json:"applications"`
	RecentUsers        []*entity.User        `json:"recentUsers"`
	RecentJobs         []*entity.Job         `json:"recentJobs"`
	RecentApplications []*entity.Application `json:"recentApplications"`
}

func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	out := &DashboardStats{}
	thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)

	roleCounts, err := s.Users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	out.Users.ByRole = make(map[string]int64, len(roleCounts))
	for _, rc := range roleCounts {
		out.Users.ByRole[rc.Role.String()] = rc.Count
		out.Users.Total += rc.Count
	}
	userDays, err := s.Users.CreatedSince(ctx, thirtyDaysAgo)
	if err != nil {
		return nil, err
	}
	out.Users.NewLast30d = sumDays(userDays)

	approved, pending, err := s.Jobs.CountApproved(ctx)
	if err != nil {
		return nil, err
	}
	open, err := s.Jobs.CountOpen(ctx)
	if err != nil {
		return nil, err
	}
	out.Jobs.Approved = approved
	out.Jobs.Pending = pending
	out.Jobs.Open = open
	out.Jobs.Total = approved + pending

	appDays, err := s.Apps.CreatedSince(ctx, thirtyDaysAgo)
	if err != nil {
		return nil, err
	}
	out.Applications.NewLast30d = sumDays(appDays)
	if _, total, err := s.Apps.List(ctx, repo.ApplicationFilter{Page: 1, Limit: 1}); err == nil {
		out.Applications.Total = total
	} else {
		return nil, err
	}

	if out.RecentUsers, err = s.Users.Recent(ctx, 5); err != nil {
		return nil, err
	}
	if out.RecentJobs, err = s.Jobs.Recent(ctx, 5); err != nil {
		return nil, err
	}
	if out.RecentApplications, err = s.Apps.Recent(ctx, 5); err != nil {
		return nil, err
	}
	return out, nil
}

// TrendPoint is one day on an analytics chart.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Analytics reports per-day creation trends plus skill and location facets
// over the requested period.
type Analytics struct {
	PeriodDays        int              `json:"periodDays"`
	UserTrends        []TrendPoint     `json:"userTrends"`
	JobTrends         []TrendPoint     `json:"jobTrends"`
	ApplicationTrends []TrendPoint     `json:"applicationTrends"`
	TopSkills         []repo.TermCount `json:"topSkills"`
	TopLocations      []repo.TermCount `json:"topLocations"`
}

func (s *AdminService) Analytics(ctx context.Context, periodDays int) (*Analytics, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	if periodDays > 365 {
		periodDays = 365
	}
	since := time.Now().UTC().AddDate(0, 0, -periodDays)

	userDays, err := s.Users.CreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	jobDays, err := s.Jobs.CreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	appDays, err := s.Apps.CreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	skills, err := s.Jobs.TopSkills(ctx, 10)
	if err != nil {
		return nil, err
	}
	locations, err := s.Jobs.TopLocations(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		PeriodDays:        periodDays,
		UserTrends:        toTrend(userDays),
		JobTrends:         toTrend(jobDays),
		ApplicationTrends: toTrend(appDays),
		TopSkills:         skills,
		TopLocations:      locations,
	}, nil
}

// ListUsers is the unconstrained admin user listing.
func (s *AdminService) ListUsers(ctx context.Context, f repo.UserFilter) ([]*entity.User, int64, error) {
	return s.Users.List(ctx, f)
}

// SetUserActive toggles an account on or off.
func (s *AdminService) SetUserActive(ctx context.Context, id string, active bool) (*entity.User, error) {
	u, err := s.Users.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if err := s.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ListJobs is the unconstrained admin job listing, including unapproved and
// inactive postings.
func (s *AdminService) ListJobs(ctx context.Context, f repo.JobFilter) ([]*entity.Job, int64, error) {
	return s.Jobs.List(ctx, f)
}

// ApproveJob marks a posting approved so it can appear publicly.
func (s *AdminService) ApproveJob(ctx context.Context, id string) (*entity.Job, error) {
	return s.JobSvc.SetApproved(ctx, id, true)
}

func (s *AdminService) DeleteJob(ctx context.Context, id string) error {
	return s.JobSvc.Delete(ctx, id)
}

// ListApplications is the unconstrained admin application listing.
func (s *AdminService) ListApplications(ctx context.Context, f repo.ApplicationFilter) ([]*entity.Application, int64, error) {
	return s.Apps.List(ctx, f)
}

func sumDays(days []repo.DailyCount) int64 {
	var n int64
	for _, d := range days {
		n += d.Count
	}
	return n
}

func toTrend(days []repo.DailyCount) []TrendPoint {
	out := make([]TrendPoint, 0, len(days))
	for _, d := range days {
		out = append(out, TrendPoint{Date: d.Day.Format("2006-01-02"), Count: d.Count})
	}
	return out
}
