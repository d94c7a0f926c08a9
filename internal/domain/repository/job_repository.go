package repository

import (
	"context"
	"time"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
)

// JobFilter narrows paginated job listings. The zero value matches all jobs;
// public listing callers must set OpenOnly.
type JobFilter struct {
	Search      string // free text over title, description, location
	Location    string // substring, case-insensitive
	JobType     entity.JobType
	Experience  entity.ExperienceLevel
	MinSalary   int64 // 0 = unset; matches salary_max >= MinSalary
	MaxSalary   int64 // 0 = unset; matches salary_min <= MaxSalary
	Skills      []string
	RecruiterID string
	OpenOnly    bool // is_active AND is_approved
	Approved    *bool
	Active      *bool
	SortBy      string // whitelisted column, default created_at
	SortOrder   string // asc|desc, default desc
	Page        int
	Limit       int
}

// TermCount is a grouped aggregate row (skill or location facets).
type TermCount struct {
	Term  string
	Count int64
}

// JobRepository defines job posting persistence operations.
type JobRepository interface {
	Create(ctx context.Context, j *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	Update(ctx context.Context, j *entity.Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f JobFilter) ([]*entity.Job, int64, error)
	// IncrementViews adds one to the view counter with a single atomic write.
	IncrementViews(ctx context.Context, id string) error
	TitleSuggestions(ctx context.Context, prefix string, limit int) ([]string, error)
	CountApproved(ctx context.Context) (approved int64, pending int64, err error)
	CountOpen(ctx context.Context) (int64, error)
	CreatedSince(ctx context.Context, since time.Time) ([]DailyCount, error)
	TopSkills(ctx context.Context, limit int) ([]TermCount, error)
	TopLocations(ctx context.Context, limit int) ([]TermCount, error)
	Recent(ctx context.Context, limit int) ([]*entity.Job, error)
}
