package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/pakdocs/pakdocs/backend/go-services/internal/document"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Repository is the persistence boundary for documents. Ownership rules live in
// the service layer; repositories only store and fetch rows.
type Repository interface {
	Create(ctx context.Context, doc *document.Document) error
	Get(ctx context.Context, id uint) (*document.Document, error)
	ListByOwner(ctx context.Context, userID uint) ([]*document.Document, error)
	Delete(ctx context.Context, id uint) error
}

// MemoryRepo is a simple in-memory repository used for unit tests and local runs.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID uint
	store  map[uint]*document.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[uint]*document.Document)}
}

func (m *MemoryRepo) Create(ctx context.Context, doc *document.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	doc.ID = m.nextID
	doc.CreatedAt = time.Now().UTC()
	cp := *doc
	m.store[doc.ID] = &cp
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id uint) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, ErrNotFound
}

// ListByOwner returns the owner's documents in insertion order.
func (m *MemoryRepo) ListByOwner(ctx context.Context, userID uint) ([]*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*document.Document, 0)
	for _, d := range m.store {
		if d.UserID == userID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
