package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mediscribe/mediscribe-api/internal/domain/entity"
	repo "github.com/mediscribe/mediscribe-api/internal/domain/repository"
	"github.com/mediscribe/mediscribe-api/pkg/helpers"
	"github.com/mediscribe/mediscribe-api/pkg/mailer"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot tell registered addresses apart from unregistered ones.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService composes the hasher, token codec and user directory into the
// signup and login use cases.
type AuthService struct {
	Repo   repo.UserRepository
	Hasher *helpers.Hasher
	Codec  *helpers.TokenCodec
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher // optional; welcome mail queue
}

func NewAuthService(r repo.UserRepository, hasher *helpers.Hasher, codec *helpers.TokenCodec, logger *logrus.Logger, pub *helpers.RabbitPublisher) *AuthService {
	return &AuthService{Repo: r, Hasher: hasher, Codec: codec, Logger: logger, Pub: pub}
}

// UserView is the public projection of a user: every field is safe to
// serialize. The password hash has no representation here at all.
type UserView struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewUserView projects a user entity into its outward-facing shape.
func NewUserView(u *entity.User) *UserView {
	return &UserView{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// Signup creates an account if the email is not taken. Input shape
// (non-empty fields, email format, password length) is enforced at the HTTP
// boundary; this method assumes it already passed.
func (s *AuthService) Signup(ctx context.Context, fullName, email, password string) (*UserView, error) {
	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleDoctor,
		IsVerified:   false,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// Lost the race against a concurrent signup for the same email.
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.Pub != nil {
		if err := s.Pub.PublishJSON(ctx, mailer.WelcomeJob(u.Email, u.FullName)); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome mail enqueue failed")
		}
	}

	return NewUserView(u), nil
}

// Login verifies the credentials and issues a session token. Unknown email
// and wrong password produce the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*UserView, string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.Codec.Issue(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue session token failed")
		}
		return nil, "", time.Time{}, err
	}
	return NewUserView(u), token, exp, nil
}

// GetProfile returns the public view of an existing user.
func (s *AuthService) GetProfile(ctx context.Context, id string) (*UserView, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return NewUserView(u), nil
}
