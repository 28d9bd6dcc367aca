package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pakdocs/pakdocs/backend/go-services/internal/config"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/database"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/models"
	"github.com/stretchr/testify/require"
)

func repositories(t *testing.T) map[string]UserRepository {
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "users.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return map[string]UserRepository{
		"gorm":   NewGormUserRepository(db),
		"memory": NewMemoryUserRepository(),
	}
}

func TestUserRepositories(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			u := &models.User{Username: "ali", Password: "hash"}
			require.NoError(t, repo.Create(ctx, u))
			require.NotZero(t, u.ID)

			got, err := repo.GetByUsername(ctx, "ali")
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Equal(t, u.ID, got.ID)
			require.Nil(t, got.Name)

			byID, err := repo.GetByID(ctx, u.ID)
			require.NoError(t, err)
			require.Equal(t, "ali", byID.Username)

			missing, err := repo.GetByUsername(ctx, "nobody")
			require.NoError(t, err)
			require.Nil(t, missing)

			err = repo.Create(ctx, &models.User{Username: "ali", Password: "other"})
			require.ErrorIs(t, err, ErrDuplicateUsername)
		})
	}
}
