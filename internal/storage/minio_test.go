package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/config"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/export"
	"github.com/stretchr/testify/require"
)

func TestNewMinIOStorage_RequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), config.MinIOConfig{Bucket: "pakdocs"})
	require.Error(t, err)
}

func TestNewMinIOStorage_RequiresBucket(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), config.MinIOConfig{Endpoint: "localhost:9000"})
	require.Error(t, err)
}

func TestMinIOStorage_PresignedURL(t *testing.T) {
	mc, err := minio.New("localhost:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Region: "us-east-1",
	})
	require.NoError(t, err)
	s := &MinIOStorage{client: mc, bucket: "pakdocs"}

	var _ export.Presigner = s

	raw, err := s.PresignedURL(context.Background(), "exports/1/2.pdf", 15*time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "localhost:9000", u.Host)
	require.Equal(t, "/pakdocs/exports/1/2.pdf", u.Path)
	require.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	require.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}
