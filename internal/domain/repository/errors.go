package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the given id or filter.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint (duplicate email, duplicate (job, applicant) pair).
	ErrDuplicate = errors.New("duplicate record")
)
