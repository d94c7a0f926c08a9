package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
	repo "github.com/hirewire/hirewire-api/internal/domain/repository"
)

var ErrJobNotFound = errors.New("job not found")

// JobService covers posting CRUD, the public listing, counters, and the
// search index. Every job document is mirrored into Elasticsearch on write;
// suggestion queries fall back to SQL when the index is unavailable.
type JobService struct {
	Jobs        repo.JobRepository
	Logger      *logrus.Logger
	ES          *elasticsearch.Client
	ESJobsIndex string
}

func NewJobService(jobs repo.JobRepository, logger *logrus.Logger, es *elasticsearch.Client, esJobsIndex string) *JobService {
	return &JobService{Jobs: jobs, Logger: logger, ES: es, ESJobsIndex: esJobsIndex}
}

// CreateInput carries everything a recruiter submits for a new posting.
type CreateJobInput struct {
	Title            string
	Description      string
	Requirements     string
	Responsibilities string
	Skills           []string
	Experience       entity.ExperienceLevel
	Salary           entity.Salary
	Location         string
	JobType          entity.JobType
	Company          entity.Company
	Deadline         *time.Time
	Benefits         []string
	Tags             []string
}

// Create stores a posting owned by the creator. Postings await admin
// approval unless the creator is an admin.
func (s *JobService) Create(ctx context.Context, creator *entity.User, in CreateJobInput) (*entity.Job, error) {
	if in.Salary.Currency == "" {
		in.Salary.Currency = "USD"
	}
	j := &entity.Job{
		RecruiterID:      creator.ID,
		Title:            in.Title,
		Description:      in.Description,
		Requirements:     in.Requirements,
		Responsibilities: in.Responsibilities,
		Skills:           in.Skills,
		Experience:       in.Experience,
		Salary:           in.Salary,
		Location:         in.Location,
		JobType:          in.JobType,
		Company:          in.Company,
		IsApproved:       creator.IsAdmin(),
		Deadline:         in.Deadline,
		Benefits:         orEmpty(in.Benefits),
		Tags:             orEmpty(in.Tags),
	}
	if err := s.Jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	s.indexJob(ctx, j)
	return j, nil
}

// Get returns any posting by id, without visibility rules. Used by owners
// and admins.
func (s *JobService) Get(ctx context.Context, id string) (*entity.Job, error) {
	j, err := s.Jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return j, nil
}

// GetPublic returns a posting for the public detail page: missing and
// not-open postings are both reported as not found, and the view counter is
// incremented as a side effect of the fetch.
func (s *JobService) GetPublic(ctx context.Context, id string) (*entity.Job, error) {
	j, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !j.IsOpen() {
		return nil, ErrJobNotFound
	}
	if err := s.Jobs.IncrementViews(ctx, id); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("job_id", id).Warn("view counter increment failed")
	}
	j.Views++
	return j, nil
}

// UpdateJobInput holds optional replacements; nil/zero fields keep the
// stored value. The owning recruiter never changes.
type UpdateJobInput struct {
	Title            *string
	Description      *string
	Requirements     *string
	Responsibilities *string
	Skills           []string
	Experience       entity.ExperienceLevel
	Salary           *entity.Salary
	Location         *string
	JobType          entity.JobType
	Company          *entity.Company
	Deadline         *time.Time
	Benefits         []string
	Tags             []string
}

func (s *JobService) Update(ctx context.Context, id string, in UpdateJobInput) (*entity.Job, error) {
	j, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		j.Title = *in.Title
	}
	if in.Description != nil {
		j.Description = *in.Description
	}
	if in.Requirements != nil {
		j.Requirements = *in.Requirements
	}
	if in.Responsibilities != nil {
		j.Responsibilities = *in.Responsibilities
	}
	if in.Skills != nil {
		j.Skills = in.Skills
	}
	if in.Experience != "" {
		j.Experience = in.Experience
	}
	if in.Salary != nil {
		j.Salary = *in.Salary
		if j.Salary.Currency == "" {
			j.Salary.Currency = "USD"
		}
	}
	if in.Location != nil {
		j.Location = *in.Location
	}
	if in.JobType != "" {
		j.JobType = in.JobType
	}
	if in.Company != nil {
		j.Company = *in.Company
	}
	if in.Deadline != nil {
		j.Deadline = in.Deadline
	}
	if in.Benefits != nil {
		j.Benefits = in.Benefits
	}
	if in.Tags != nil {
		j.Tags = in.Tags
	}

	if err := s.Jobs.Update(ctx, j); err != nil {
		return nil, err
	}
	s.indexJob(ctx, j)
	return j, nil
}

func (s *JobService) Delete(ctx context.Context, id string) error {
	if err := s.Jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrJobNotFound
		}
		return err
	}
	s.removeFromIndex(ctx, id)
	return nil
}

// ToggleStatus flips the active flag and returns the updated posting.
func (s *JobService) ToggleStatus(ctx context.Context, id string) (*entity.Job, error) {
	j, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	j.IsActive = !j.IsActive
	if err := s.Jobs.Update(ctx, j); err != nil {
		return nil, err
	}
	s.indexJob(ctx, j)
	return j, nil
}

// SetApproved records an admin's approval decision.
func (s *JobService) SetApproved(ctx context.Context, id string, approved bool) (*entity.Job, error) {
	j, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	j.IsApproved = approved
	if err := s.Jobs.Update(ctx, j); err != nil {
		return nil, err
	}
	s.indexJob(ctx, j)
	return j, nil
}

// ListPublic returns only active, approved postings.
func (s *JobService) ListPublic(ctx context.Context, f repo.JobFilter) ([]*entity.Job, int64, error) {
	f.OpenOnly = true
	f.RecruiterID = ""
	f.Approved = nil
	f.Active = nil
	return s.Jobs.List(ctx, f)
}

// ListForRecruiter returns a recruiter's own postings with an optional
// status facet: active, pending (awaiting approval), or inactive.
func (s *JobService) ListForRecruiter(ctx context.Context, recruiterID, status string, page, limit int) ([]*entity.Job, int64, error) {
	f := repo.JobFilter{RecruiterID: recruiterID, Page: page, Limit: limit}
	t, fa := true, false
	switch status {
	case "active":
		f.Active, f.Approved = &t, &t
	case "pending":
		f.Approved = &fa
	case "inactive":
		f.Active = &fa
	}
	return s.Jobs.List(ctx, f)
}

// List is the unconstrained admin listing.
func (s *JobService) List(ctx context.Context, f repo.JobFilter) ([]*entity.Job, int64, error) {
	return s.Jobs.List(ctx, f)
}

// Suggestions returns up to 5 posting titles matching the prefix. Queries
// shorter than two characters return nothing.
func (s *JobService) Suggestions(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	if len(q) < 2 {
		return []string{}, nil
	}
	if titles, err := s.esSuggestions(ctx, q); err == nil {
		return titles, nil
	}
	return s.Jobs.TitleSuggestions(ctx, q, 5)
}

func (s *JobService) esSuggestions(ctx context.Context, q string) ([]string, error) {
	if s.ES == nil || s.ESJobsIndex == "" {
		return nil, errors.New("search index not configured")
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"match_phrase_prefix": map[string]any{"title": q},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"is_active": true}},
					map[string]any{"term": map[string]any{"is_approved": true}},
				},
			},
		},
		"_source": []string{"title"},
		"size":    5,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESJobsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, errors.New(res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					Title string `json:"title"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(parsed.Hits.Hits))
	out := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		if !seen[h.Source.Title] {
			seen[h.Source.Title] = true
			out = append(out, h.Source.Title)
		}
	}
	return out, nil
}

func (s *JobService) indexJob(ctx context.Context, j *entity.Job) {
	if s.ES == nil || s.ESJobsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          j.ID,
		"title":       j.Title,
		"description": j.Description,
		"skills":      j.Skills,
		"location":    j.Location,
		"job_type":    j.JobType,
		"experience":  j.Experience,
		"is_active":   j.IsActive,
		"is_approved": j.IsApproved,
		"created_at":  j.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  j.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESJobsIndex, DocumentID: j.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("job_id", j.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("job_id", j.ID).Warn("es index response error")
	}
}

func (s *JobService) removeFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESJobsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESJobsIndex, DocumentID: id}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("job_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
