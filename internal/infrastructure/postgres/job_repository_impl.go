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

const jobColumns = `id, recruiter_id, title, description, requirements, responsibilities,
	skills, experience, salary_min, salary_max, salary_currency, location, job_type,
	company_name, company_description, company_website, company_location,
	is_active, is_approved, application_deadline, benefits, tags, views, applications,
	created_at, updated_at`

// sortColumns whitelists client-supplied sort keys.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"views":     "views",
	"salaryMin": "salary_min",
	"salaryMax": "salary_max",
}

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func scanJob(row pgx.Row) (*entity.Job, error) {
	j := &entity.Job{}
	err := row.Scan(&j.ID, &j.RecruiterID, &j.Title, &j.Description, &j.Requirements,
		&j.Responsibilities, &j.Skills, &j.Experience,
		&j.Salary.Min, &j.Salary.Max, &j.Salary.Currency, &j.Location, &j.JobType,
		&j.Company.Name, &j.Company.Description, &j.Company.Website, &j.Company.Location,
		&j.IsActive, &j.IsApproved, &j.Deadline, &j.Benefits, &j.Tags,
		&j.Views, &j.Applications, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return j, nil
}

func (r *JobRepository) Create(ctx context.Context, j *entity.Job) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO jobs (recruiter_id, title, description, requirements, responsibilities,
			skills, experience, salary_min, salary_max, salary_currency, location, job_type,
			company_name, company_description, company_website, company_location,
			is_approved, application_deadline, benefits, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, is_active, views, applications, created_at, updated_at
	`, j.RecruiterID, j.Title, j.Description, j.Requirements, j.Responsibilities,
		j.Skills, j.Experience, j.Salary.Min, j.Salary.Max, j.Salary.Currency,
		j.Location, j.JobType,
		j.Company.Name, j.Company.Description, j.Company.Website, j.Company.Location,
		j.IsApproved, j.Deadline, j.Benefits, j.Tags)

	return row.Scan(&j.ID, &j.IsActive, &j.Views, &j.Applications, &j.CreatedAt, &j.UpdatedAt)
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) Update(ctx context.Context, j *entity.Job) error {
	j.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE jobs
		SET title = $1, description = $2, requirements = $3, responsibilities = $4,
			skills = $5, experience = $6, salary_min = $7, salary_max = $8,
			salary_currency = $9, location = $10, job_type = $11,
			company_name = $12, company_description = $13, company_website = $14,
			company_location = $15, is_active = $16, is_approved = $17,
			application_deadline = $18, benefits = $19, tags = $20, updated_at = $21
		WHERE id = $22
	`, j.Title, j.Description, j.Requirements, j.Responsibilities,
		j.Skills, j.Experience, j.Salary.Min, j.Salary.Max, j.Salary.Currency,
		j.Location, j.JobType,
		j.Company.Name, j.Company.Description, j.Company.Website, j.Company.Location,
		j.IsActive, j.IsApproved, j.Deadline, j.Benefits, j.Tags, j.UpdatedAt, j.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *JobRepository) List(ctx context.Context, f repository.JobFilter) ([]*entity.Job, int64, error) {
	where := []string{"TRUE"}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.OpenOnly {
		where = append(where, "is_active AND is_approved")
	}
	if f.Approved != nil {
		where = append(where, "is_approved = "+arg(*f.Approved))
	}
	if f.Active != nil {
		where = append(where, "is_active = "+arg(*f.Active))
	}
	if f.RecruiterID != "" {
		where = append(where, "recruiter_id = "+arg(f.RecruiterID))
	}
	if f.Search != "" {
		where = append(where, fmt.Sprintf(
			"to_tsvector('english', title || ' ' || description || ' ' || location) @@ websearch_to_tsquery('english', %s)",
			arg(f.Search)))
	}
	if f.Location != "" {
		where = append(where, "location ILIKE "+arg("%"+f.Location+"%"))
	}
	if f.JobType != "" {
		where = append(where, "job_type = "+arg(f.JobType))
	}
	if f.Experience != "" {
		where = append(where, "experience = "+arg(f.Experience))
	}
	// salary bounds match any overlapping advertised range
	if f.MinSalary > 0 {
		where = append(where, "salary_max >= "+arg(f.MinSalary))
	}
	if f.MaxSalary > 0 {
		where = append(where, "salary_min <= "+arg(f.MaxSalary))
	}
	if len(f.Skills) > 0 {
		where = append(where, "skills && "+arg(f.Skills))
	}

	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM jobs WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol, ok := sortColumns[f.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		order = "ASC"
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := 0
	if f.Page > 1 {
		offset = (f.Page - 1) * limit
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s ORDER BY %s %s LIMIT %s OFFSET %s`,
		jobColumns, cond, sortCol, order, arg(limit), arg(offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := make([]*entity.Job, 0, limit)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

// IncrementViews is a single atomic write; no read-modify-write round trip.
func (r *JobRepository) IncrementViews(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *JobRepository) TitleSuggestions(ctx context.Context, prefix string, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT title FROM jobs
		WHERE is_active AND is_approved AND title ILIKE $1
		GROUP BY title ORDER BY count(*) DESC LIMIT $2
	`, prefix+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	titles := make([]string, 0, limit)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

func (r *JobRepository) CountApproved(ctx context.Context) (int64, int64, error) {
	var approved, pending int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FILTER (WHERE is_approved),
		       count(*) FILTER (WHERE NOT is_approved)
		FROM jobs`).Scan(&approved, &pending)
	return approved, pending, err
}

func (r *JobRepository) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM jobs WHERE is_active AND is_approved`).Scan(&n)
	return n, err
}

func (r *JobRepository) CreatedSince(ctx context.Context, since time.Time) ([]repository.DailyCount, error) {
	return dailyCounts(ctx, r.pool, `
		SELECT date_trunc('day', created_at) AS day, count(*)
		FROM jobs WHERE created_at >= $1
		GROUP BY day ORDER BY day`, since)
}

func (r *JobRepository) TopSkills(ctx context.Context, limit int) ([]repository.TermCount, error) {
	return termCounts(ctx, r.pool, `
		SELECT skill, count(*) FROM jobs, unnest(skills) AS skill
		GROUP BY skill ORDER BY count(*) DESC LIMIT $1`, limit)
}

func (r *JobRepository) TopLocations(ctx context.Context, limit int) ([]repository.TermCount, error) {
	return termCounts(ctx, r.pool, `
		SELECT location, count(*) FROM jobs
		GROUP BY location ORDER BY count(*) DESC LIMIT $1`, limit)
}

func (r *JobRepository) Recent(ctx context.Context, limit int) ([]*entity.Job, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*entity.Job, 0, limit)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

var _ repository.JobRepository = (*JobRepository)(nil)
