package entity_test

import (
	"testing"
	"time"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
)

// Withdrawn is only reachable through Withdraw, never through a status
// update.
func TestParseApplicationStatus_ExcludesWithdrawn(t *testing.T) {
	if _, err := entity.ParseApplicationStatus("withdrawn"); err == nil {
		t.Error("ParseApplicationStatus should reject withdrawn")
	}

	valid := []string{"pending", "reviewed", "shortlisted", "rejected", "hired"}
	for _, s := range valid {
		if _, err := entity.ParseApplicationStatus(s); err != nil {
			t.Errorf("ParseApplicationStatus(%q) unexpected error: %v", s, err)
		}
	}
}

func TestAccessibleBy(t *testing.T) {
	a := &entity.Application{ApplicantID: "seeker", RecruiterID: "recruiter"}

	cases := []struct {
		name string
		user *entity.User
		want bool
	}{
		{"applicant", &entity.User{ID: "seeker", Role: entity.RoleJobSeeker}, true},
		{"recruiter", &entity.User{ID: "recruiter", Role: entity.RoleRecruiter}, true},
		{"admin", &entity.User{ID: "someone-else", Role: entity.RoleAdmin}, true},
		{"other jobseeker", &entity.User{ID: "other", Role: entity.RoleJobSeeker}, false},
		{"other recruiter", &entity.User{ID: "other", Role: entity.RoleRecruiter}, false},
		{"nil user", nil, false},
	}
	for _, tc := range cases {
		if got := a.AccessibleBy(tc.user); got != tc.want {
			t.Errorf("%s: AccessibleBy = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanWithdraw(t *testing.T) {
	applicant := &entity.User{ID: "seeker", Role: entity.RoleJobSeeker}
	recruiter := &entity.User{ID: "recruiter", Role: entity.RoleRecruiter}

	pending := &entity.Application{ApplicantID: "seeker", Status: entity.StatusPending}
	if err := pending.CanWithdraw(applicant); err != nil {
		t.Errorf("applicant should withdraw a pending application: %v", err)
	}
	if err := pending.CanWithdraw(recruiter); err == nil {
		t.Error("recruiter must not withdraw someone else's application")
	}
	if err := pending.CanWithdraw(nil); err == nil {
		t.Error("nil user must not withdraw")
	}

	hired := &entity.Application{ApplicantID: "seeker", Status: entity.StatusHired}
	if err := hired.CanWithdraw(applicant); err == nil {
		t.Error("hired application must not be withdrawable")
	}
}

func TestWithdraw_SetsStatusAndTimestamp(t *testing.T) {
	a := &entity.Application{ApplicantID: "seeker", Status: entity.StatusPending}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	a.Withdraw(now)

	if a.Status != entity.StatusWithdrawn {
		t.Errorf("status = %q, want withdrawn", a.Status)
	}
	if a.WithdrawnAt == nil || !a.WithdrawnAt.Equal(now) {
		t.Errorf("WithdrawnAt = %v, want %v", a.WithdrawnAt, now)
	}
}

func TestSetStatus_ReviewedStampsTime(t *testing.T) {
	a := &entity.Application{Status: entity.StatusPending}
	now := time.Now().UTC()

	a.SetStatus(entity.StatusReviewed, now)
	if a.ReviewedAt == nil || !a.ReviewedAt.Equal(now) {
		t.Errorf("ReviewedAt = %v, want %v", a.ReviewedAt, now)
	}

	// Other statuses do not stamp.
	b := &entity.Application{Status: entity.StatusPending}
	b.SetStatus(entity.StatusShortlisted, now)
	if b.ReviewedAt != nil {
		t.Errorf("shortlisted should not stamp ReviewedAt, got %v", b.ReviewedAt)
	}
}
