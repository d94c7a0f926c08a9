package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
	"github.com/hirewire/hirewire-api/internal/domain/repository"
)

const applicationColumns = `id, job_id, applicant_id, recruiter_id, status, cover_letter,
	resume_url, expected_salary, availability, notes, recruiter_notes, interview_date,
	applied_at, reviewed_at, withdrawn_at, created_at, updated_at`

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func scanApplication(row pgx.Row) (*entity.Application, error) {
	a := &entity.Application{}
	err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.RecruiterID, &a.Status,
		&a.CoverLetter, &a.ResumeURL, &a.ExpectedSalary, &a.Availability,
		&a.Notes, &a.RecruiterNotes, &a.InterviewDate,
		&a.AppliedAt, &a.ReviewedAt, &a.WithdrawnAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Create inserts the application and bumps the job's application counter in
// one transaction, so the two writes cannot diverge on partial failure.
func (r *ApplicationRepository) Create(ctx context.Context, a *entity.Application) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO applications (job_id, applicant_id, recruiter_id, cover_letter,
			resume_url, expected_salary, availability, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, applied_at, created_at, updated_at
	`, a.JobID, a.ApplicantID, a.RecruiterID, a.CoverLetter,
		a.ResumeURL, a.ExpectedSalary, a.Availability, a.Notes)

	if err := row.Scan(&a.ID, &a.Status, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE jobs SET applications = applications + 1 WHERE id = $1`, a.JobID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) GetByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*entity.Application, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND applicant_id = $2`,
		jobID, applicantID)
	return scanApplication(row)
}

func (r *ApplicationRepository) Update(ctx context.Context, a *entity.Application) error {
	a.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE applications
		SET status = $1, recruiter_notes = $2, interview_date = $3,
			reviewed_at = $4, withdrawn_at = $5, updated_at = $6
		WHERE id = $7
	`, a.Status, a.RecruiterNotes, a.InterviewDate, a.ReviewedAt, a.WithdrawnAt, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) List(ctx context.Context, f repository.ApplicationFilter) ([]*entity.Application, int64, error) {
	where := []string{"TRUE"}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ApplicantID != "" {
		where = append(where, "applicant_id = "+arg(f.ApplicantID))
	}
	if f.RecruiterID != "" {
		where = append(where, "recruiter_id = "+arg(f.RecruiterID))
	}
	if f.JobID != "" {
		where = append(where, "job_id = "+arg(f.JobID))
	}
	if f.Status != "" {
		where = append(where, "status = "+arg(f.Status))
	}

	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM applications WHERE `+cond, args...).Scan(&total); err != nil {
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

	query := fmt.Sprintf(`SELECT %s FROM applications WHERE %s ORDER BY applied_at DESC LIMIT %s OFFSET %s`,
		applicationColumns, cond, arg(limit), arg(offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	apps := make([]*entity.Application, 0, limit)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		apps = append(apps, a)
	}
	return apps, total, rows.Err()
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, recruiterID string) ([]repository.StatusCount, error) {
	query := `SELECT status, count(*) FROM applications`
	args := []any{}
	if recruiterID != "" {
		query += ` WHERE recruiter_id = $1`
		args = append(args, recruiterID)
	}
	query += ` GROUP BY status`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.StatusCount
	for rows.Next() {
		var sc repository.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (r *ApplicationRepository) CountForRecruiter(ctx context.Context, recruiterID string, since *time.Time) (int64, error) {
	query := `SELECT count(*) FROM applications WHERE recruiter_id = $1`
	args := []any{recruiterID}
	if since != nil {
		query += ` AND applied_at >= $2`
		args = append(args, *since)
	}
	var n int64
	err := r.pool.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *ApplicationRepository) CreatedSince(ctx context.Context, since time.Time) ([]repository.DailyCount, error) {
	return dailyCounts(ctx, r.pool, `
		SELECT date_trunc('day', applied_at) AS day, count(*)
		FROM applications WHERE applied_at >= $1
		GROUP BY day ORDER BY day`, since)
}

func (r *ApplicationRepository) Recent(ctx context.Context, limit int) ([]*entity.Application, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications ORDER BY applied_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*entity.Application, 0, limit)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)
