package export

import (
	"context"
	"time"

	"github.com/pakdocs/pakdocs/backend/go-services/pkg/logger"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/metrics"
)

const (
	contentTypePDF = "application/pdf"
	// URLTTL is how long a presigned archive link stays valid.
	URLTTL = 15 * time.Minute
)

// Archiver stores rendered exports. Implemented by storage.MinIOStorage.
type Archiver interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Presigner hands out temporary download links for archived exports.
type Presigner interface {
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Archive stores pdf under ArchiveKey(userID, documentID). A nil archiver skips
// archiving. Failures are logged and reported as false.
func Archive(ctx context.Context, a Archiver, userID, documentID uint, pdf []byte) bool {
	if a == nil {
		metrics.PDFExports.WithLabelValues("skipped").Inc()
		return false
	}
	key := ArchiveKey(userID, documentID)
	if err := a.Put(ctx, key, pdf, contentTypePDF); err != nil {
		logger.Warnf("archive export %s: %v", key, err)
		metrics.PDFExports.WithLabelValues("failed").Inc()
		return false
	}
	metrics.PDFExports.WithLabelValues("archived").Inc()
	return true
}

// ArchiveURL returns a presigned link to the archived export, or "" when a
// does not support presigning or the link cannot be made.
func ArchiveURL(ctx context.Context, a Archiver, userID, documentID uint) string {
	p, ok := a.(Presigner)
	if !ok {
		return ""
	}
	key := ArchiveKey(userID, documentID)
	u, err := p.PresignedURL(ctx, key, URLTTL)
	if err != nil {
		logger.Warnf("presign export %s: %v", key, err)
		return ""
	}
	return u
}
