package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
	repo "github.com/hirewire/hirewire-api/internal/domain/repository"
	"github.com/hirewire/hirewire-api/pkg/helpers"
	"github.com/hirewire/hirewire-api/pkg/mailer"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationAccess   = errors.New("application access denied")
	ErrJobUnavailable      = errors.New("job not open for applications")
	ErrAlreadyApplied      = errors.New("already applied for this job")
	ErrWithdrawForbidden   = errors.New("application cannot be withdrawn")
)

// ApplicationService handles the apply/track/decide lifecycle. The recruiter
// on an application is snapshotted from the job at apply time; later job
// edits do not move existing applications.
type ApplicationService struct {
	Apps   repo.ApplicationRepository
	Jobs   repo.JobRepository
	Users  repo.UserRepository
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher
}

func NewApplicationService(apps repo.ApplicationRepository, jobs repo.JobRepository, users repo.UserRepository, logger *logrus.Logger, pub *helpers.RabbitPublisher) *ApplicationService {
	return &ApplicationService{Apps: apps, Jobs: jobs, Users: users, Logger: logger, Pub: pub}
}

type ApplyInput struct {
	JobID          string
	CoverLetter    string
	ResumeURL      string
	ExpectedSalary *int64
	Availability   entity.Availability
	Notes          string
}

// Apply files an application against an open posting. The insert and the
// job's application counter move in one transaction; a second application by
// the same user for the same job fails with ErrAlreadyApplied regardless of
// interleaving.
func (s *ApplicationService) Apply(ctx context.Context, applicant *entity.User, in ApplyInput) (*entity.Application, error) {
	j, err := s.Jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if !j.IsOpen() {
		return nil, ErrJobUnavailable
	}

	resume := in.ResumeURL
	if resume == "" {
		resume = applicant.ResumeURL
	}
	a := &entity.Application{
		JobID:          j.ID,
		ApplicantID:    applicant.ID,
		RecruiterID:    j.RecruiterID,
		Status:         entity.StatusPending,
		CoverLetter:    in.CoverLetter,
		ResumeURL:      resume,
		ExpectedSalary: in.ExpectedSalary,
		Availability:   in.Availability,
		Notes:          in.Notes,
	}
	if err := s.Apps.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}
	return a, nil
}

// Get returns an application if the caller is its applicant, its recruiter,
// or an admin.
func (s *ApplicationService) Get(ctx context.Context, u *entity.User, id string) (*entity.Application, error) {
	a, err := s.Apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if !a.AccessibleBy(u) {
		return nil, ErrApplicationAccess
	}
	return a, nil
}

type UpdateStatusInput struct {
	Status         entity.ApplicationStatus
	RecruiterNotes *string
	InterviewDate  *time.Time
}

// UpdateStatus lets the owning recruiter (or an admin) move an application
// through the pipeline. Moving to reviewed stamps the review time. The
// applicant is notified by email.
func (s *ApplicationService) UpdateStatus(ctx context.Context, u *entity.User, id string, in UpdateStatusInput) (*entity.Application, error) {
	a, err := s.Apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if !u.IsAdmin() && a.RecruiterID != u.ID {
		return nil, ErrApplicationAccess
	}

	a.SetStatus(in.Status, time.Now().UTC())
	if in.RecruiterNotes != nil {
		a.RecruiterNotes = *in.RecruiterNotes
	}
	if in.InterviewDate != nil {
		a.InterviewDate = in.InterviewDate
	}
	if err := s.Apps.Update(ctx, a); err != nil {
		return nil, err
	}

	s.notifyApplicant(ctx, a)
	return a, nil
}

// Withdraw retires the caller's own application. Hired applications cannot
// be withdrawn.
func (s *ApplicationService) Withdraw(ctx context.Context, u *entity.User, id string) (*entity.Application, error) {
	a, err := s.Apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if a.ApplicantID != u.ID {
		return nil, ErrApplicationAccess
	}
	if err := a.CanWithdraw(u); err != nil {
		return nil, ErrWithdrawForbidden
	}

	a.Withdraw(time.Now().UTC())
	if err := s.Apps.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ForApplicant lists the caller's own applications, newest first.
func (s *ApplicationService) ForApplicant(ctx context.Context, applicantID string, status entity.ApplicationStatus, page, limit int) ([]*entity.Application, int64, error) {
	return s.Apps.List(ctx, repo.ApplicationFilter{
		ApplicantID: applicantID,
		Status:      status,
		Page:        page,
		Limit:       limit,
	})
}

// ForRecruiter lists applications filed against the recruiter's postings.
func (s *ApplicationService) ForRecruiter(ctx context.Context, recruiterID string, status entity.ApplicationStatus, jobID string, page, limit int) ([]*entity.Application, int64, error) {
	return s.Apps.List(ctx, repo.ApplicationFilter{
		RecruiterID: recruiterID,
		JobID:       jobID,
		Status:      status,
		Page:        page,
		Limit:       limit,
	})
}

// ForJob lists applications for one posting. Only the posting's owner or an
// admin may see them.
func (s *ApplicationService) ForJob(ctx context.Context, u *entity.User, jobID string, status entity.ApplicationStatus, page, limit int) ([]*entity.Application, int64, error) {
	j, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, 0, ErrJobNotFound
		}
		return nil, 0, err
	}
	if !j.OwnedBy(u) {
		return nil, 0, ErrApplicationAccess
	}
	return s.Apps.List(ctx, repo.ApplicationFilter{
		JobID:  jobID,
		Status: status,
		Page:   page,
		Limit:  limit,
	})
}

// CheckApplied reports whether the user has already applied to the job and
// returns the application when they have.
func (s *ApplicationService) CheckApplied(ctx context.Context, applicantID, jobID string) (*entity.Application, error) {
	a, err := s.Apps.GetByJobAndApplicant(ctx, jobID, applicantID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// RecruiterStats summarizes a recruiter's incoming applications.
type RecruiterStats struct {
	Total    int64            `json:"total"`
	LastWeek int64            `json:"lastWeek"`
	ByStatus map[string]int64 `json:"byStatus"`
}

func (s *ApplicationService) Stats(ctx context.Context, recruiterID string) (*RecruiterStats, error) {
	total, err := s.Apps.CountForRecruiter(ctx, recruiterID, nil)
	if err != nil {
		return nil, err
	}
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	lastWeek, err := s.Apps.CountForRecruiter(ctx, recruiterID, &weekAgo)
	if err != nil {
		return nil, err
	}
	counts, err := s.Apps.CountByStatus(ctx, recruiterID)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status.String()] = c.Count
	}
	return &RecruiterStats{Total: total, LastWeek: lastWeek, ByStatus: byStatus}, nil
}

func (s *ApplicationService) notifyApplicant(ctx context.Context, a *entity.Application) {
	if s.Pub == nil {
		return
	}
	applicant, err := s.Users.GetByID(ctx, a.ApplicantID)
	if err != nil {
		return
	}
	j, err := s.Jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return
	}

	data := map[string]any{
		"Name":     applicant.Name,
		"JobTitle": j.Title,
		"Company":  j.Company.Name,
		"Status":   a.Status.String(),
		"Notes":    a.RecruiterNotes,
	}
	if a.InterviewDate != nil {
		data["InterviewDate"] = a.InterviewDate.Format("Jan 2, 2006 15:04 MST")
	}
	job := mailer.EmailJob{To: applicant.Email, Template: "application_status", Data: data}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("application_id", a.ID).Warn("enqueue status email failed")
	}
}
