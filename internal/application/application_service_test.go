package application_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/hirewire/hirewire-api/internal/application"
	"github.com/hirewire/hirewire-api/internal/domain/entity"
)

func newAppFixture(t *testing.T) (*app.ApplicationService, *memJobRepo, *memUserRepo, *memAppRepo) {
	t.Helper()
	users := newMemUserRepo()
	jobs := newMemJobRepo()
	apps := newMemAppRepo(jobs)
	svc := app.NewApplicationService(apps, jobs, users, nil, nil)
	return svc, jobs, users, apps
}

func seedJob(t *testing.T, jobs *memJobRepo, recruiterID string, approved bool) *entity.Job {
	t.Helper()
	j := &entity.Job{RecruiterID: recruiterID, Title: "Backend Engineer", IsApproved: approved}
	if err := jobs.Create(context.Background(), j); err != nil {
		t.Fatal(err)
	}
	j.IsApproved = approved
	return j
}

func TestApply_Succeeds(t *testing.T) {
	svc, jobs, _, _ := newAppFixture(t)
	j := seedJob(t, jobs, "rec-1", true)
	seeker := &entity.User{ID: "seek-1", Role: entity.RoleJobSeeker}

	a, err := svc.Apply(context.Background(), seeker, app.ApplyInput{
		JobID:        j.ID,
		CoverLetter:  "I have shipped several production services in this stack over five years.",
		Availability: entity.AvailabilityImmediate,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if a.Status != entity.StatusPending {
		t.Errorf("status = %q, want pending", a.Status)
	}
	if a.RecruiterID != "rec-1" {
		t.Errorf("recruiter snapshot = %q, want rec-1", a.RecruiterID)
	}
	if j.Applications != 1 {
		t.Errorf("job application counter = %d, want 1", j.Applications)
	}
}

func TestApply_JobMissing(t *testing.T) {
	svc, _, _, _ := newAppFixture(t)
	seeker := &entity.User{ID: "seek-1", Role: entity.RoleJobSeeker}

	_, err := svc.Apply(context.Background(), seeker, app.ApplyInput{JobID: "nope", CoverLetter: "x"})
	if !errors.Is(err, app.ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound", err)
	}
}

func TestApply_JobNotOpen(t *testing.T) {
	svc, jobs, _, _ := newAppFixture(t)
	unapproved := seedJob(t, jobs, "rec-1", false)
	seeker := &entity.User{ID: "seek-1", Role: entity.RoleJobSeeker}

	_, err := svc.Apply(context.Background(), seeker, app.ApplyInput{JobID: unapproved.ID, CoverLetter: "x"})
	if !errors.Is(err, app.ErrJobUnavailable) {
		t.Errorf("unapproved: err = %v, want ErrJobUnavailable", err)
	}

	inactive := seedJob(t, jobs, "rec-1", true)
	inactive.IsActive = false
	_, err = svc.Apply(context.Background(), seeker, app.ApplyInput{JobID: inactive.ID, CoverLetter: "x"})
	if !errors.Is(err, app.ErrJobUnavailable) {
		t.Errorf("inactive: err = %v, want ErrJobUnavailable", err)
	}
}

func TestApply_Duplicate(t *testing.T) {
	svc, jobs, _, _ := newAppFixture(t)
	j := seedJob(t, jobs, "rec-1", true)
	seeker := &entity.User{ID: "seek-1", Role: entity.RoleJobSeeker}

	in := app.ApplyInput{JobID: j.ID, CoverLetter: "covering letter long enough to be plausible for the validation rules"}
	if _, err := svc.Apply(context.Background(), seeker, in); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Apply(context.Background(), seeker, in)
	if !errors.Is(err, app.ErrAlreadyApplied) {
		t.Errorf("err = %v, want ErrAlreadyApplied", err)
	}
	if j.Applications != 1 {
		t.Errorf("counter = %d after duplicate, want 1", j.Applications)
	}
}

func TestGet_ThreeWayAccess(t *testing.T) {
	svc, jobs, _, _ := newAppFixture(t)
	j := seedJob(t, jobs, "rec-1", true)
	seeker := &entity.User{ID: "seek-1", Role: entity.RoleJobSeeker}
	a, err := svc.Apply(context.Background(), seeker, app.ApplyInput{JobID: j.ID, CoverLetter: "x"})
	if err != nil {
		t.Fatal(err)
	}

	allowed := []*entity.User{
		seeker,
		{ID: "rec-1", Role: entity.RoleRecruiter},
		{ID: "someone", Role: entity.RoleAdmin},
	}
	for _, u := range allowed {
		if _, err := svc.Get(context.Background(), u, a.ID); err != nil {
			t.Errorf("Get as %s/%s: %v", u.ID, u.Role, err)
		}
	}

	denied := []*entity.User{
		{ID: "other-seeker", Role: entity.RoleJobSeeker},
		{ID: "other-rec", Role: entity.RoleRecruiter},
	}
	for _, u := range denied {
		if _, err := svc.Get(context.Background(), u, a.ID); !errors.Is(err, app.ErrApplicationAccess) {
			t.Errorf("Get as %s: err = %v, want ErrApplicationAccess", u.ID, err)
		}
	}
}

func TestUpdateStatus_ReviewedStampsAndOwnershipEnforced(t *testing.T) {
	svc, jobs, users, _ := newAppFixture(t)
	j := seedJob(t, jobs, "rec-1", true)
	seeker := &entity.User{Name: "Sam", Email: "sam@example.com", Role: entity.RoleJobSeeker}
	if err := users.Create(context.Background(), seeker); err != nil {
		t.Fatal(err)
	}
	a, err := svc.Apply(context.Background(), seeker, app.ApplyInput{JobID: j.ID, CoverLetter: "x"})
	if err != nil {
		t.Fatal(err)
	}

	stranger := &entity.User{ID: "rec-2", Role: entity.RoleRecruiter}
	if _, err := svc.UpdateStatus(context.Background(), stranger, a.ID, app.UpdateStatusInput{Status: entity.StatusReviewed}); !errors.Is(err, app.ErrApplicationAccess) {
		t.Errorf("stranger update: err = %v, want ErrApplicationAccess", err)
	}

	owner := &entity.User{ID: "rec-1", Role: entity.RoleRecruiter}
	updated, err := svc.UpdateStatus(context.Background(), owner, a.ID, app.UpdateStatusInput{Status: entity.StatusReviewed})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != entity.StatusReviewed {
		t.Errorf("status = %q, want reviewed", updated.Status)
	}
	if updated.ReviewedAt == nil {
		t.Error("ReviewedAt not stamped")
	}
}

func TestWithdraw(t *testing.T) {
	svc, jobs, _, _ := newAppFixture(t)
	j := seedJob(t, jobs, "rec-1", true)
	seeker := &entity.User{ID: "seek-1", Role: entity.RoleJobSeeker}
	a, err := svc.Apply(context.Background(), seeker, app.ApplyInput{JobID: j.ID, CoverLetter: "x"})
	if err != nil {
		t.Fatal(err)
	}

	// Only the applicant may withdraw.
	recruiter := &entity.User{ID: "rec-1", Role: entity.RoleRecruiter}
	if _, err := svc.Withdraw(context.Background(), recruiter, a.ID); !errors.Is(err, app.ErrApplicationAccess) {
		t.Errorf("recruiter withdraw: err = %v, want ErrApplicationAccess", err)
	}

	got, err := svc.Withdraw(context.Background(), seeker, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != entity.StatusWithdrawn {
		t.Errorf("status = %q, want withdrawn", got.Status)
	}
	if got.WithdrawnAt == nil {
		t.Error("WithdrawnAt not set")
	}
}

func TestWithdraw_HiredIsBlocked(t *testing.T) {
	svc, jobs, _, apps := newAppFixture(t)
	j := seedJob(t, jobs, "rec-1", true)
	seeker := &entity.User{ID: "seek-1", Role: entity.RoleJobSeeker}
	a, err := svc.Apply(context.Background(), seeker, app.ApplyInput{JobID: j.ID, CoverLetter: "x"})
	if err != nil {
		t.Fatal(err)
	}
	apps.apps[a.ID].Status = entity.StatusHired

	if _, err := svc.Withdraw(context.Background(), seeker, a.ID); !errors.Is(err, app.ErrWithdrawForbidden) {
		t.Errorf("err = %v, want ErrWithdrawForbidden", err)
	}
}

func TestStats(t *testing.T) {
	svc, jobs, _, _ := newAppFixture(t)
	j := seedJob(t, jobs, "rec-1", true)

	for i, uid := range []string{"s1", "s2", "s3"} {
		u := &entity.User{ID: uid, Role: entity.RoleJobSeeker}
		if _, err := svc.Apply(context.Background(), u, app.ApplyInput{JobID: j.ID, CoverLetter: "x"}); err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
	}

	stats, err := svc.Stats(context.Background(), "rec-1")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if stats.LastWeek != 3 {
		t.Errorf("LastWeek = %d, want 3", stats.LastWeek)
	}
	if stats.ByStatus["pending"] != 3 {
		t.Errorf("ByStatus[pending] = %d, want 3", stats.ByStatus["pending"])
	}
}
