package entity

import (
	"fmt"
	"time"
)

// JobType is the closed set of employment types.
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeRemote     JobType = "remote"
)

func ParseJobType(s string) (JobType, error) {
	switch JobType(s) {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote:
		return JobType(s), nil
	}
	return "", fmt.Errorf("unknown job type %q", s)
}

// Salary is an advertised range. min <= max is expected from clients but not
// enforced here.
type Salary struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `json:"currency"`
}

// Job is a recruiter-authored posting. RecruiterID is set at creation and
// never transfers. A posting is publicly visible only while both IsActive and
// IsApproved are true.
type Job struct {
	ID               string          `json:"id"`
	RecruiterID      string          `json:"recruiter"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Requirements     string          `json:"requirements"`
	Responsibilities string          `json:"responsibilities"`
	Skills           []string        `json:"skills"`
	Experience       ExperienceLevel `json:"experience"`
	Salary           Salary          `json:"salary"`
	Location         string          `json:"location"`
	JobType          JobType         `json:"jobType"`
	Company          Company         `json:"company"`
	IsActive         bool            `json:"isActive"`
	IsApproved       bool            `json:"isApproved"`
	Deadline         *time.Time      `json:"applicationDeadline,omitempty"`
	Benefits         []string        `json:"benefits"`
	Tags             []string        `json:"tags"`
	Views            int64           `json:"views"`
	Applications     int64           `json:"applications"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// IsOpen reports whether the posting accepts applications.
func (j *Job) IsOpen() bool { return j.IsActive && j.IsApproved }

// OwnedBy reports whether the given user may mutate this posting: the
// recording recruiter, or any admin.
func (j *Job) OwnedBy(u *User) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || j.RecruiterID == u.ID
}
