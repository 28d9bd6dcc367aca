package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pakdocs/pakdocs/backend/go-services/internal/config"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/database"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/document"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "docs.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestRepositoriesCRUD(t *testing.T) {
	db := openDB(t)
	owner := &models.User{Username: "ali", Password: "hash"}
	other := &models.User{Username: "sara", Password: "hash"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(other).Error)

	repos := map[string]Repository{
		"memory": NewMemoryRepo(),
		"gorm":   NewGormRepo(db),
	}
	for name, r := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first := &document.Document{UserID: owner.ID, Title: "RTI", Type: "RTI Request", Content: "hello", Language: document.LanguageEnglish}
			require.NoError(t, r.Create(ctx, first))
			require.NotZero(t, first.ID)
			require.False(t, first.CreatedAt.IsZero())

			second := &document.Document{UserID: owner.ID, Title: "Notice", Type: "Legal Notice", Content: "salam", Language: document.LanguageUrdu}
			require.NoError(t, r.Create(ctx, second))
			foreign := &document.Document{UserID: other.ID, Title: "Other", Type: "Affidavit", Content: "x", Language: document.LanguageEnglish}
			require.NoError(t, r.Create(ctx, foreign))

			got, err := r.Get(ctx, first.ID)
			require.NoError(t, err)
			require.Equal(t, "hello", got.Content)
			require.Nil(t, got.Department)

			list, err := r.ListByOwner(ctx, owner.ID)
			require.NoError(t, err)
			require.Len(t, list, 2)
			require.Equal(t, first.ID, list[0].ID)
			require.Equal(t, second.ID, list[1].ID)

			require.NoError(t, r.Delete(ctx, first.ID))
			_, err = r.Get(ctx, first.ID)
			require.ErrorIs(t, err, ErrNotFound)
			require.ErrorIs(t, r.Delete(ctx, first.ID), ErrNotFound)
		})
	}
}

func TestGormRepo_RejectsUnknownOwner(t *testing.T) {
	r := NewGormRepo(openDB(t))
	err := r.Create(context.Background(), &document.Document{UserID: 999, Title: "t", Type: "x", Content: "c", Language: document.LanguageEnglish})
	require.Error(t, err)
}
