package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
	repo "github.com/hirewire/hirewire-api/internal/domain/repository"
	"github.com/hirewire/hirewire-api/pkg/helpers"
	"github.com/hirewire/hirewire-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
)

// AuthService handles registration, login, token refresh, and the
// password-reset flow. Reset tokens live in Redis with a TTL; emails go out
// through the RabbitMQ queue consumed by the email worker.
type AuthService struct {
	Users         repo.UserRepository
	JWT           *helpers.JWTManager
	Redis         *redis.Client
	Logger        *logrus.Logger
	Pub           *helpers.RabbitPublisher
	ResetURL      string
	ResetTokenTTL time.Duration
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, resetURL string, resetTTL time.Duration) *AuthService {
	return &AuthService{
		Users:         users,
		JWT:           jwt,
		Redis:         rdb,
		Logger:        logger,
		Pub:           pub,
		ResetURL:      resetURL,
		ResetTokenTTL: resetTTL,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
	Phone    string
	Location string
	Company  entity.Company
}

// Register creates an account with a bcrypt-hashed password. Only jobseeker
// and recruiter are self-assignable; admins are seeded out of band.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, TokenPair, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, TokenPair{}, err
	}

	u := &entity.User{
		Name:       in.Name,
		Email:      in.Email,
		Password:   hash,
		Role:       in.Role,
		Phone:      in.Phone,
		Location:   in.Location,
		Company:    in.Company,
		Skills:     []string{},
		Experience: entity.ExperienceEntry,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, TokenPair{}, ErrEmailTaken
		}
		return nil, TokenPair{}, err
	}

	pair, err := s.IssueTokens(u)
	if err != nil {
		return nil, TokenPair{}, err
	}

	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data:     map[string]any{"Name": u.Name, "Role": u.Role.String()},
	})

	return u, pair, nil
}

// Login validates email/password and rejects deactivated accounts before
// issuing tokens.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, TokenPair{}, ErrAccountDeactivated
	}

	pair, err := s.IssueTokens(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// IssueTokens generates an access/refresh pair for the user.
func (s *AuthService) IssueTokens(u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh validates a refresh token and rotates the pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return TokenPair{}, ErrAccountDeactivated
	}
	return s.IssueTokens(u)
}

// ForgotPassword stores a one-shot reset token in Redis and mails a reset
// link. Unknown emails are a silent no-op so the endpoint does not leak
// which addresses are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := genToken(32)
	if err != nil {
		return err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetString(ctx, s.Redis, helpers.KeyResetToken(token), u.ID, s.ResetTokenTTL); err != nil {
			return err
		}
	}

	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: "reset_password",
		Data: map[string]any{
			"Name":     u.Name,
			"ResetURL": s.ResetURL + "?token=" + token,
		},
	})
	return nil
}

// ResetPassword consumes a reset token and writes the new password hash.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if s.Redis == nil {
		return ErrResetTokenInvalid
	}
	uid, found, err := helpers.RedisGetString(ctx, s.Redis, helpers.KeyResetToken(token))
	if err != nil {
		return err
	}
	if !found {
		return ErrResetTokenInvalid
	}

	u, err := s.Users.GetByID(ctx, uid)
	if err != nil {
		return ErrResetTokenInvalid
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hash
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}
	_ = helpers.RedisDel(ctx, s.Redis, helpers.KeyResetToken(token))
	return nil
}

func (s *AuthService) enqueueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Pub == nil {
		return
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("enqueue email failed")
	}
}

func genToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
