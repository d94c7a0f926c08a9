package application_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
	"github.com/hirewire/hirewire-api/internal/domain/repository"
)

// In-memory repository fakes. They implement only as much filter logic as
// the service tests exercise.

type memUserRepo struct {
	seq   int
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range m.users {
		if strings.EqualFold(ex.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	u.IsActive = true // matches the column default
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) SetActive(_ context.Context, id string, active bool) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.IsActive = active
	return u, nil
}

func (m *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUserRepo) List(context.Context, repository.UserFilter) ([]*entity.User, int64, error) {
	out := make([]*entity.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (m *memUserRepo) CountByRole(context.Context) ([]repository.RoleCount, error) {
	counts := map[entity.Role]int64{}
	for _, u := range m.users {
		counts[u.Role]++
	}
	out := []repository.RoleCount{}
	for r, n := range counts {
		out = append(out, repository.RoleCount{Role: r, Count: n})
	}
	return out, nil
}

func (m *memUserRepo) CreatedSince(context.Context, time.Time) ([]repository.DailyCount, error) {
	return nil, nil
}

func (m *memUserRepo) Recent(context.Context, int) ([]*entity.User, error) { return nil, nil }

type memJobRepo struct {
	seq  int
	jobs map[string]*entity.Job
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: map[string]*entity.Job{}}
}

func (m *memJobRepo) Create(_ context.Context, j *entity.Job) error {
	m.seq++
	j.ID = fmt.Sprintf("job-%d", m.seq)
	j.IsActive = true
	j.CreatedAt = time.Now()
	j.UpdatedAt = j.CreatedAt
	m.jobs[j.ID] = j
	return nil
}

func (m *memJobRepo) GetByID(_ context.Context, id string) (*entity.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return j, nil
}

func (m *memJobRepo) Update(_ context.Context, j *entity.Job) error {
	if _, ok := m.jobs[j.ID]; !ok {
		return repository.ErrNotFound
	}
	m.jobs[j.ID] = j
	return nil
}

func (m *memJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.jobs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.jobs, id)
	return nil
}

func (m *memJobRepo) List(_ context.Context, f repository.JobFilter) ([]*entity.Job, int64, error) {
	out := []*entity.Job{}
	for _, j := range m.jobs {
		if f.RecruiterID != "" && j.RecruiterID != f.RecruiterID {
			continue
		}
		if f.OpenOnly && !j.IsOpen() {
			continue
		}
		if f.Approved != nil && j.IsApproved != *f.Approved {
			continue
		}
		if f.Active != nil && j.IsActive != *f.Active {
			continue
		}
		out = append(out, j)
	}
	return out, int64(len(out)), nil
}

func (m *memJobRepo) IncrementViews(_ context.Context, id string) error {
	j, ok := m.jobs[id]
	if !ok {
		return repository.ErrNotFound
	}
	j.Views++
	return nil
}

func (m *memJobRepo) TitleSuggestions(_ context.Context, prefix string, limit int) ([]string, error) {
	out := []string{}
	for _, j := range m.jobs {
		if len(out) >= limit {
			break
		}
		if strings.HasPrefix(strings.ToLower(j.Title), strings.ToLower(prefix)) {
			out = append(out, j.Title)
		}
	}
	return out, nil
}

func (m *memJobRepo) CountApproved(context.Context) (int64, int64, error) {
	var approved, pending int64
	for _, j := range m.jobs {
		if j.IsApproved {
			approved++
		} else {
			pending++
		}
	}
	return approved, pending, nil
}

func (m *memJobRepo) CountOpen(context.Context) (int64, error) {
	var n int64
	for _, j := range m.jobs {
		if j.IsOpen() {
			n++
		}
	}
	return n, nil
}

func (m *memJobRepo) CreatedSince(context.Context, time.Time) ([]repository.DailyCount, error) {
	return nil, nil
}

func (m *memJobRepo) TopSkills(context.Context, int) ([]repository.TermCount, error) {
	return nil, nil
}

func (m *memJobRepo) TopLocations(context.Context, int) ([]repository.TermCount, error) {
	return nil, nil
}

func (m *memJobRepo) Recent(context.Context, int) ([]*entity.Job, error) { return nil, nil }

type memAppRepo struct {
	seq  int
	apps map[string]*entity.Application
	jobs *memJobRepo
}

func newMemAppRepo(jobs *memJobRepo) *memAppRepo {
	return &memAppRepo{apps: map[string]*entity.Application{}, jobs: jobs}
}

func (m *memAppRepo) Create(_ context.Context, a *entity.Application) error {
	for _, ex := range m.apps {
		if ex.JobID == a.JobID && ex.ApplicantID == a.ApplicantID {
			return repository.ErrDuplicate
		}
	}
	m.seq++
	a.ID = fmt.Sprintf("app-%d", m.seq)
	now := time.Now()
	a.AppliedAt = now
	a.CreatedAt = now
	a.UpdatedAt = now
	m.apps[a.ID] = a
	if j, ok := m.jobs.jobs[a.JobID]; ok {
		j.Applications++
	}
	return nil
}

func (m *memAppRepo) GetByID(_ context.Context, id string) (*entity.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (m *memAppRepo) GetByJobAndApplicant(_ context.Context, jobID, applicantID string) (*entity.Application, error) {
	for _, a := range m.apps {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memAppRepo) Update(_ context.Context, a *entity.Application) error {
	if _, ok := m.apps[a.ID]; !ok {
		return repository.ErrNotFound
	}
	m.apps[a.ID] = a
	return nil
}

func (m *memAppRepo) List(_ context.Context, f repository.ApplicationFilter) ([]*entity.Application, int64, error) {
	out := []*entity.Application{}
	for _, a := range m.apps {
		if f.ApplicantID != "" && a.ApplicantID != f.ApplicantID {
			continue
		}
		if f.RecruiterID != "" && a.RecruiterID != f.RecruiterID {
			continue
		}
		if f.JobID != "" && a.JobID != f.JobID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (m *memAppRepo) CountByStatus(_ context.Context, recruiterID string) ([]repository.StatusCount, error) {
	counts := map[entity.ApplicationStatus]int64{}
	for _, a := range m.apps {
		if a.RecruiterID == recruiterID {
			counts[a.Status]++
		}
	}
	out := []repository.StatusCount{}
	for s, n := range counts {
		out = append(out, repository.StatusCount{Status: s, Count: n})
	}
	return out, nil
}

func (m *memAppRepo) CountForRecruiter(_ context.Context, recruiterID string, since *time.Time) (int64, error) {
	var n int64
	for _, a := range m.apps {
		if a.RecruiterID != recruiterID {
			continue
		}
		if since != nil && a.CreatedAt.Before(*since) {
			continue
		}
		n++
	}
	return n, nil
}

func (m *memAppRepo) CreatedSince(context.Context, time.Time) ([]repository.DailyCount, error) {
	return nil, nil
}

func (m *memAppRepo) Recent(context.Context, int) ([]*entity.Application, error) {
	return nil, nil
}
