package entity

import (
	"fmt"
	"time"
)

// ApplicationStatus is the closed set of application states. Withdrawal is a
// first-class status rather than a separate boolean, so a record cannot hold
// an inconsistent status/withdrawn pair.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewed    ApplicationStatus = "reviewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusHired       ApplicationStatus = "hired"
	StatusWithdrawn   ApplicationStatus = "withdrawn"
)

// ParseApplicationStatus validates a raw status string. Withdrawn is excluded:
// it is reachable only through the withdrawal path, never by a status update.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(s) {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusHired:
		return ApplicationStatus(s), nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

func (s ApplicationStatus) String() string { return string(s) }

// Availability is the applicant's declared start timeframe.
type Availability string

const (
	AvailabilityImmediate   Availability = "immediate"
	AvailabilityTwoWeeks    Availability = "2-weeks"
	AvailabilityOneMonth    Availability = "1-month"
	AvailabilityThreeMonths Availability = "3-months"
	AvailabilityNegotiable  Availability = "negotiable"
)

func ParseAvailability(s string) (Availability, error) {
	switch Availability(s) {
	case AvailabilityImmediate, AvailabilityTwoWeeks, AvailabilityOneMonth,
		AvailabilityThreeMonths, AvailabilityNegotiable:
		return Availability(s), nil
	}
	return "", fmt.Errorf("unknown availability %q", s)
}

// Application joins one job posting and one applicant. RecruiterID is copied
// from the job at creation time and not re-derived afterwards. The
// (JobID, ApplicantID) pair is unique, enforced by a database constraint.
type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"job"`
	ApplicantID    string            `json:"applicant"`
	RecruiterID    string            `json:"recruiter"`
	Status         ApplicationStatus `json:"status"`
	CoverLetter    string            `json:"coverLetter"`
	ResumeURL      string            `json:"resumeUrl,omitempty"`
	ExpectedSalary *int64            `json:"expectedSalary,omitempty"`
	Availability   Availability      `json:"availability"`
	Notes          string            `json:"notes,omitempty"`
	RecruiterNotes string            `json:"recruiterNotes,omitempty"`
	InterviewDate  *time.Time        `json:"interviewDate,omitempty"`
	AppliedAt      time.Time         `json:"appliedAt"`
	ReviewedAt     *time.Time        `json:"reviewedAt,omitempty"`
	WithdrawnAt    *time.Time        `json:"withdrawnAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// AccessibleBy is the shared three-way access check: an application is
// visible to its applicant, the recruiter it was filed against, and admins.
func (a *Application) AccessibleBy(u *User) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || a.ApplicantID == u.ID || a.RecruiterID == u.ID
}

// CanWithdraw reports whether the given user may withdraw this application.
// Only the applicant may withdraw, and never after a hire.
func (a *Application) CanWithdraw(u *User) error {
	if u == nil || a.ApplicantID != u.ID {
		return fmt.Errorf("only the applicant may withdraw")
	}
	if a.Status == StatusHired {
		return fmt.Errorf("cannot withdraw a hired application")
	}
	return nil
}

// Withdraw marks the application withdrawn at the given time.
func (a *Application) Withdraw(now time.Time) {
	a.Status = StatusWithdrawn
	a.WithdrawnAt = &now
}

// SetStatus writes a new status and stamps ReviewedAt when the status moves
// to reviewed. No transition table restricts the move.
func (a *Application) SetStatus(s ApplicationStatus, now time.Time) {
	a.Status = s
	if s == StatusReviewed {
		a.ReviewedAt = &now
	}
}
