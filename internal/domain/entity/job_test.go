package entity_test

import (
	"testing"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
)

func TestJobIsOpen(t *testing.T) {
	cases := []struct {
		active, approved, want bool
	}{
		{true, true, true},
		{true, false, false},
		{false, true, false},
		{false, false, false},
	}
	for _, tc := range cases {
		j := &entity.Job{IsActive: tc.active, IsApproved: tc.approved}
		if got := j.IsOpen(); got != tc.want {
			t.Errorf("IsOpen with active=%v approved=%v = %v, want %v", tc.active, tc.approved, got, tc.want)
		}
	}
}

func TestJobOwnedBy(t *testing.T) {
	j := &entity.Job{RecruiterID: "r1"}

	owner := &entity.User{ID: "r1", Role: entity.RoleRecruiter}
	other := &entity.User{ID: "r2", Role: entity.RoleRecruiter}
	admin := &entity.User{ID: "a1", Role: entity.RoleAdmin}

	if !j.OwnedBy(owner) {
		t.Error("owner should own the job")
	}
	if j.OwnedBy(other) {
		t.Error("another recruiter should not own the job")
	}
	if !j.OwnedBy(admin) {
		t.Error("admin should pass the ownership check")
	}
	if j.OwnedBy(nil) {
		t.Error("nil user should not own the job")
	}
}
