package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
	repo "github.com/hirewire/hirewire-api/internal/domain/repository"
	"github.com/hirewire/hirewire-api/pkg/helpers"
)

var ErrUserNotFound = errors.New("user not found")

// UserService covers profile self-service, public profile browsing, and
// avatar/resume uploads to GCS.
type UserService struct {
	Users     repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewUserService(users repo.UserRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfileInput carries the self-service mutable fields. Email,
// password, role, and the active/verified flags are never mass-assignable
// through profile updates.
type UpdateProfileInput struct {
	Name       string
	Bio        *string
	Skills     []string
	ResumeURL  *string
	Experience entity.ExperienceLevel
	Company    *entity.Company
	Phone      *string
	Location   *string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Skills != nil {
		u.Skills = in.Skills
	}
	if in.ResumeURL != nil {
		u.ResumeURL = *in.ResumeURL
	}
	if in.Experience != "" {
		u.Experience = in.Experience
	}
	if in.Company != nil {
		u.Company = *in.Company
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Location != nil {
		u.Location = *in.Location
	}

	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteAccount removes the caller's own account.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	err := s.Users.Delete(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// GetPublicProfile returns a user without requiring authentication.
func (s *UserService) GetPublicProfile(ctx context.Context, id string) (*entity.User, error) {
	return s.GetProfile(ctx, id)
}

// BrowseByRole lists active accounts of one role with search/skills filters.
func (s *UserService) BrowseByRole(ctx context.Context, role entity.Role, search string, skills []string, page, limit int) ([]*entity.User, int64, error) {
	active := true
	return s.Users.List(ctx, repo.UserFilter{
		Role:     role,
		Search:   search,
		Skills:   skills,
		IsActive: &active,
		Page:     page,
		Limit:    limit,
	})
}

// UploadFunc is the shape shared by UploadAvatar and UploadResume, so HTTP
// handlers can treat the two uploads uniformly.
type UploadFunc func(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error)

// UploadAvatar stores the image in GCS and records its public URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	return s.uploadAndRecord(ctx, userID, r, filename, contentType, "avatars", func(u *entity.User, url string) {
		u.AvatarURL = url
	})
}

// UploadResume stores the document in GCS and records its public URL.
func (s *UserService) UploadResume(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	return s.uploadAndRecord(ctx, userID, r, filename, contentType, "resumes", func(u *entity.User, url string) {
		u.ResumeURL = url
	})
}

func (s *UserService) uploadAndRecord(ctx context.Context, userID string, r io.Reader, filename, contentType, prefix string, set func(*entity.User, string)) (string, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}

	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join(prefix, userID, id+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	set(u, url)
	if err := s.Users.Update(ctx, u); err != nil {
		return "", err
	}
	return url, nil
}
