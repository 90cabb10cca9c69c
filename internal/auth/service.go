package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quizhub/internal/models"
	"quizhub/internal/token"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoFields           = errors.New("no fields to update")
)

type Service struct {
	repo   *Repository
	tokens *token.Service
}

func NewService(repo *Repository, tokens *token.Service) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a user with a fresh uuid and a bcrypt hash, then
// issues a token for it. Role defaults to user when empty.
func (s *Service) Register(ctx context.Context, username, email, password string, role models.Role) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, "", ErrMissingFields
	}
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, "", ErrInvalidRole
	}

	taken, err := s.repo.UsernameOrEmailTaken(ctx, username, email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// Login checks credentials by email. An unknown email and a wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// Profile returns the caller's own row. A missing row means the token
// outlived the user.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ProfileUpdate is the typed partial update for profile fields. Nil
// means not supplied.
type ProfileUpdate struct {
	Username *string
	Email    *string
}

// UpdateProfile applies the supplied fields only, after checking they
// are not held by a different user.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*models.User, error) {
	fields := map[string]interface{}{}
	username, email := "", ""
	if update.Username != nil {
		if username = strings.TrimSpace(*update.Username); username != "" {
			fields["username"] = username
		}
	}
	if update.Email != nil {
		if email = strings.TrimSpace(*update.Email); email != "" {
			fields["email"] = email
		}
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	taken, err := s.repo.TakenByOther(ctx, id, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserExists
	}

	if err := s.repo.UpdateUser(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.Profile(ctx, id)
}
