package repository

import (
	"context"
	"time"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
)

// ApplicationFilter narrows paginated application listings.
type ApplicationFilter struct {
	ApplicantID string
	RecruiterID string
	JobID       string
	Status      entity.ApplicationStatus
	Page        int
	Limit       int
}

// StatusCount is a per-status aggregate row.
type StatusCount struct {
	Status entity.ApplicationStatus
	Count  int64
}

// ApplicationRepository defines application persistence operations.
type ApplicationRepository interface {
	// Create inserts the application and increments the job's application
	// counter inside one transaction. A duplicate (job, applicant) pair
	// surfaces as ErrDuplicate.
	Create(ctx context.Context, a *entity.Application) error
	GetByID(ctx context.Context, id string) (*entity.Application, error)
	GetByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*entity.Application, error)
	Update(ctx context.Context, a *entity.Application) error
	List(ctx context.Context, f ApplicationFilter) ([]*entity.Application, int64, error)
	CountByStatus(ctx context.Context, recruiterID string) ([]StatusCount, error)
	CountForRecruiter(ctx context.Context, recruiterID string, since *time.Time) (int64, error)
	CreatedSince(ctx context.Context, since time.Time) ([]DailyCount, error)
	Recent(ctx context.Context, limit int) ([]*entity.Application, error)
}
