package entity_test

import (
	"testing"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
)

func TestParseRole(t *testing.T) {
	valid := []string{"jobseeker", "recruiter", "admin"}
	for _, s := range valid {
		r, err := entity.ParseRole(s)
		if err != nil {
			t.Errorf("ParseRole(%q) unexpected error: %v", s, err)
		}
		if string(r) != s {
			t.Errorf("ParseRole(%q) = %q", s, r)
		}
	}

	invalid := []string{"", "Admin", "ADMIN", "superuser", " admin"}
	for _, s := range invalid {
		if _, err := entity.ParseRole(s); err == nil {
			t.Errorf("ParseRole(%q) should fail", s)
		}
	}
}

func TestHasRole_AdminAlwaysPasses(t *testing.T) {
	admin := &entity.User{ID: "a1", Role: entity.RoleAdmin}
	if !admin.HasRole(entity.RoleRecruiter) {
		t.Error("admin should pass a recruiter gate")
	}
	if !admin.HasRole(entity.RoleJobSeeker) {
		t.Error("admin should pass a jobseeker gate")
	}
	if !admin.HasRole() {
		t.Error("admin should pass an empty gate")
	}
}

func TestHasRole_Matrix(t *testing.T) {
	cases := []struct {
		role    entity.Role
		allowed []entity.Role
		want    bool
	}{
		{entity.RoleRecruiter, []entity.Role{entity.RoleRecruiter}, true},
		{entity.RoleRecruiter, []entity.Role{entity.RoleJobSeeker}, false},
		{entity.RoleJobSeeker, []entity.Role{entity.RoleJobSeeker, entity.RoleRecruiter}, true},
		{entity.RoleJobSeeker, []entity.Role{entity.RoleAdmin}, false},
		{entity.RoleRecruiter, nil, false},
	}
	for _, tc := range cases {
		u := &entity.User{Role: tc.role}
		if got := u.HasRole(tc.allowed...); got != tc.want {
			t.Errorf("HasRole(%v) with role %q = %v, want %v", tc.allowed, tc.role, got, tc.want)
		}
	}
}
