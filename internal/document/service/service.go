package service

import (
	"context"
	"errors"

	"github.com/pakdocs/pakdocs/backend/go-services/internal/document"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/document/repository"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrForbidden = errors.New("document belongs to another user")
)

// Service defines the owner-scoped document operations used by the handler layer.
type Service interface {
	List(ctx context.Context, userID uint) ([]*document.Document, error)
	Get(ctx context.Context, userID, id uint) (*document.Document, error)
	Create(ctx context.Context, userID uint, in document.CreateInput) (*document.Document, error)
	Delete(ctx context.Context, userID, id uint) error
}

// New returns a Service over the given repository.
func New(repo repository.Repository) Service {
	return &ownerService{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// NewGormService returns a Service backed by the relational documents table.
func NewGormService(db *gorm.DB) Service {
	return New(repository.NewGormRepo(db))
}

type ownerService struct {
	repo repository.Repository
}

func (s *ownerService) List(ctx context.Context, userID uint) ([]*document.Document, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// Get returns ErrNotFound when the document is absent and ErrForbidden when it
// belongs to someone else.
func (s *ownerService) Get(ctx context.Context, userID, id uint) (*document.Document, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if d.UserID != userID {
		return nil, ErrForbidden
	}
	return d, nil
}

func (s *ownerService) Create(ctx context.Context, userID uint, in document.CreateInput) (*document.Document, error) {
	d := &document.Document{
		UserID:     userID,
		Title:      in.Title,
		Type:       in.Type,
		Content:    in.Content,
		Language:   in.Language,
		Department: in.Department,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *ownerService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
