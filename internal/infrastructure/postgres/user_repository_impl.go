package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
	"github.com/hirewire/hirewire-api/internal/domain/repository"
)

const userColumns = `id, name, email, password_hash, role, bio, skills, resume_url, experience,
	company_name, company_description, company_website, company_location,
	phone, location, is_active, is_verified, avatar_url, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Bio, &u.Skills,
		&u.ResumeURL, &u.Experience,
		&u.Company.Name, &u.Company.Description, &u.Company.Website, &u.Company.Location,
		&u.Phone, &u.Location, &u.IsActive, &u.IsVerified, &u.AvatarURL,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, bio, skills, resume_url, experience,
			company_name, company_description, company_website, company_location,
			phone, location, avatar_url)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, is_active, is_verified, created_at, updated_at
	`, u.Name, u.Email, u.Password, u.Role, u.Bio, u.Skills, u.ResumeURL, u.Experience,
		u.Company.Name, u.Company.Description, u.Company.Website, u.Company.Location,
		u.Phone, u.Location, u.AvatarURL)

	err := row.Scan(&u.ID, &u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = lower($1)`, email)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, password_hash = $2, bio = $3, skills = $4, resume_url = $5,
			experience = $6, company_name = $7, company_description = $8,
			company_website = $9, company_location = $10, phone = $11, location = $12,
			avatar_url = $13, is_verified = $14, updated_at = $15
		WHERE id = $16
	`, u.Name, u.Password, u.Bio, u.Skills, u.ResumeURL, u.Experience,
		u.Company.Name, u.Company.Description, u.Company.Website, u.Company.Location,
		u.Phone, u.Location, u.AvatarURL, u.IsVerified, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET is_active = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+userColumns, active, id)
	return scanUser(row)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int64, error) {
	where := []string{"TRUE"}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Role != "" {
		where = append(where, "role = "+arg(f.Role))
	}
	if f.IsActive != nil {
		where = append(where, "is_active = "+arg(*f.IsActive))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR email ILIKE %s OR company_name ILIKE %s OR bio ILIKE %s OR location ILIKE %s)", p, p, p, p, p))
	}
	if len(f.Skills) > 0 {
		where = append(where, "skills && "+arg(f.Skills))
	}

	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := 0
	if f.Page > 1 {
		offset = (f.Page - 1) * limit
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY created_at DESC LIMIT %s OFFSET %s`,
		userColumns, cond, arg(limit), arg(offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) CountByRole(ctx context.Context) ([]repository.RoleCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT role, count(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.RoleCount
	for rows.Next() {
		var rc repository.RoleCount
		if err := rows.Scan(&rc.Role, &rc.Count); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r *UserRepository) CreatedSince(ctx context.Context, since time.Time) ([]repository.DailyCount, error) {
	return dailyCounts(ctx, r.pool, `
		SELECT date_trunc('day', created_at) AS day, count(*)
		FROM users WHERE created_at >= $1
		GROUP BY day ORDER BY day`, since)
}

func (r *UserRepository) Recent(ctx context.Context, limit int) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
