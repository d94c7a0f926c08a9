package application_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/hirewire/hirewire-api/internal/application"
	"github.com/hirewire/hirewire-api/internal/domain/entity"
)

func newJobFixture(t *testing.T) (*app.JobService, *memJobRepo) {
	t.Helper()
	jobs := newMemJobRepo()
	return app.NewJobService(jobs, nil, nil, ""), jobs
}

func TestCreateJob_ApprovalDependsOnCreator(t *testing.T) {
	svc, _ := newJobFixture(t)

	recruiter := &entity.User{ID: "rec-1", Role: entity.RoleRecruiter}
	j, err := svc.Create(context.Background(), recruiter, app.CreateJobInput{Title: "Backend Engineer"})
	if err != nil {
		t.Fatal(err)
	}
	if j.IsApproved {
		t.Error("recruiter-created job should await approval")
	}
	if !j.IsActive {
		t.Error("new job should be active")
	}
	if j.RecruiterID != "rec-1" {
		t.Errorf("RecruiterID = %q", j.RecruiterID)
	}

	admin := &entity.User{ID: "adm-1", Role: entity.RoleAdmin}
	aj, err := svc.Create(context.Background(), admin, app.CreateJobInput{Title: "Platform Engineer"})
	if err != nil {
		t.Fatal(err)
	}
	if !aj.IsApproved {
		t.Error("admin-created job should be auto-approved")
	}
}

func TestCreateJob_DefaultsCurrency(t *testing.T) {
	svc, _ := newJobFixture(t)
	u := &entity.User{ID: "rec-1", Role: entity.RoleRecruiter}

	j, err := svc.Create(context.Background(), u, app.CreateJobInput{
		Title:  "Data Engineer",
		Salary: entity.Salary{Min: 50000, Max: 80000},
	})
	if err != nil {
		t.Fatal(err)
	}
	if j.Salary.Currency != "USD" {
		t.Errorf("currency = %q, want USD", j.Salary.Currency)
	}
}

func TestGetPublic(t *testing.T) {
	svc, jobs := newJobFixture(t)
	recruiter := &entity.User{ID: "rec-1", Role: entity.RoleRecruiter}
	j, err := svc.Create(context.Background(), recruiter, app.CreateJobInput{Title: "Backend Engineer"})
	if err != nil {
		t.Fatal(err)
	}

	// Unapproved postings are invisible publicly.
	if _, err := svc.GetPublic(context.Background(), j.ID); !errors.Is(err, app.ErrJobNotFound) {
		t.Errorf("unapproved: err = %v, want ErrJobNotFound", err)
	}

	jobs.jobs[j.ID].IsApproved = true
	got, err := svc.GetPublic(context.Background(), j.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Views != 1 {
		t.Errorf("views after first public fetch = %d, want 1", got.Views)
	}

	if _, err := svc.GetPublic(context.Background(), "missing"); !errors.Is(err, app.ErrJobNotFound) {
		t.Errorf("missing: err = %v, want ErrJobNotFound", err)
	}
}

func TestToggleStatus(t *testing.T) {
	svc, _ := newJobFixture(t)
	u := &entity.User{ID: "rec-1", Role: entity.RoleRecruiter}
	j, err := svc.Create(context.Background(), u, app.CreateJobInput{Title: "Backend Engineer"})
	if err != nil {
		t.Fatal(err)
	}

	toggled, err := svc.ToggleStatus(context.Background(), j.ID)
	if err != nil {
		t.Fatal(err)
	}
	if toggled.IsActive {
		t.Error("toggle should deactivate an active job")
	}

	toggled, err = svc.ToggleStatus(context.Background(), j.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !toggled.IsActive {
		t.Error("second toggle should reactivate")
	}
}

func TestListForRecruiter_StatusFacet(t *testing.T) {
	svc, jobs := newJobFixture(t)
	u := &entity.User{ID: "rec-1", Role: entity.RoleRecruiter}

	active, _ := svc.Create(context.Background(), u, app.CreateJobInput{Title: "Active"})
	jobs.jobs[active.ID].IsApproved = true

	pending, _ := svc.Create(context.Background(), u, app.CreateJobInput{Title: "Pending"})
	_ = pending

	inactive, _ := svc.Create(context.Background(), u, app.CreateJobInput{Title: "Inactive"})
	jobs.jobs[inactive.ID].IsApproved = true
	jobs.jobs[inactive.ID].IsActive = false

	cases := []struct {
		facet string
		want  int
	}{
		{"active", 1},
		{"pending", 1},
		{"inactive", 1},
		{"", 3},
	}
	for _, tc := range cases {
		got, total, err := svc.ListForRecruiter(context.Background(), "rec-1", tc.facet, 1, 10)
		if err != nil {
			t.Fatalf("facet %q: %v", tc.facet, err)
		}
		if len(got) != tc.want || total != int64(tc.want) {
			t.Errorf("facet %q: got %d jobs (total %d), want %d", tc.facet, len(got), total, tc.want)
		}
	}
}

// Without an Elasticsearch client the service answers from SQL.
func TestSuggestions_FallbackAndMinLength(t *testing.T) {
	svc, jobs := newJobFixture(t)
	u := &entity.User{ID: "rec-1", Role: entity.RoleRecruiter}
	j, _ := svc.Create(context.Background(), u, app.CreateJobInput{Title: "Backend Engineer"})
	jobs.jobs[j.ID].IsApproved = true

	got, err := svc.Suggestions(context.Background(), "Back")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "Backend Engineer" {
		t.Errorf("suggestions = %v", got)
	}

	short, err := svc.Suggestions(context.Background(), "B")
	if err != nil {
		t.Fatal(err)
	}
	if len(short) != 0 {
		t.Errorf("short query should return nothing, got %v", short)
	}
}
