package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/pakdocs/pakdocs/backend/go-services/internal/models"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// RegisterInput is the payload of a registration request.
type RegisterInput struct {
	Username string  `json:"username" validate:"required,max=64"`
	Password string  `json:"password" validate:"required,max=72"`
	Name     *string `json:"name" validate:"omitempty,max=120"`
}

// LoginInput is the payload of a login request.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Service encapsulates user-related business logic
type Service struct {
	repo UserRepository
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r}
}

// Register creates a user with a hashed password. It returns ErrUsernameTaken
// when the username is already registered.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	existing, err := s.repo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{Username: in.Username, Password: hash, Name: in.Name}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user matching the credentials. Unknown usernames and
// wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil || !CheckPasswordHash(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID returns (nil, nil) when the user does not exist.
func (s *Service) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}
