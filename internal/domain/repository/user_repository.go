package repository

import (
	"context"
	"time"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
)

// UserFilter narrows paginated user listings.
type UserFilter struct {
	Role     entity.Role // empty = any role
	Search   string      // matches name, email, company name
	Skills   []string    // any-overlap match
	IsActive *bool       // nil = any
	Page     int
	Limit    int
}

// RoleCount is a per-role aggregate row.
type RoleCount struct {
	Role  entity.Role
	Count int64
}

// DailyCount is one day's worth of created records, for trend charts.
type DailyCount struct {
	Day   time.Time
	Count int64
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	SetActive(ctx context.Context, id string, active bool) (*entity.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f UserFilter) ([]*entity.User, int64, error)
	CountByRole(ctx context.Context) ([]RoleCount, error)
	CreatedSince(ctx context.Context, since time.Time) ([]DailyCount, error)
	Recent(ctx context.Context, limit int) ([]*entity.User, error)
}
