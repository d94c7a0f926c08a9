package entity

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. Role checks compare against these
// constants only; an unknown string never passes ParseRole.
type Role string

const (
	RoleJobSeeker Role = "jobseeker"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleJobSeeker, RoleRecruiter, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string { return string(r) }

// ExperienceLevel applies to both job seeker profiles and job postings.
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceExpert ExperienceLevel = "expert"
)

func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	switch ExperienceLevel(s) {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExpert:
		return ExperienceLevel(s), nil
	}
	return "", fmt.Errorf("unknown experience level %q", s)
}

// Company holds the recruiter-side organization details embedded in a user
// profile and denormalized onto job postings.
type Company struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Location    string `json:"location,omitempty"`
}

// User is the aggregate root for accounts. Password holds the bcrypt hash and
// is never serialized outward.
type User struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Password   string          `json:"-"`
	Role       Role            `json:"role"`
	Bio        string          `json:"bio,omitempty"`
	Skills     []string        `json:"skills"`
	ResumeURL  string          `json:"resumeUrl,omitempty"`
	Experience ExperienceLevel `json:"experience"`
	Company    Company         `json:"company"`
	Phone      string          `json:"phone,omitempty"`
	Location   string          `json:"location,omitempty"`
	IsActive   bool            `json:"isActive"`
	IsVerified bool            `json:"isVerified"`
	AvatarURL  string          `json:"avatar,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role. Admin is implicitly
// a member of every role-gated capability.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// HasRole reports whether the user's role is in the allowed set. Admin always
// passes.
func (u *User) HasRole(roles ...Role) bool {
	if u.IsAdmin() {
		return true
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
