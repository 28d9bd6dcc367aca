package drafting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pakdocs/pakdocs/backend/go-services/internal/audit"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/logger"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/metrics"
)

// EmptyCompletionText replaces an empty provider answer.
const EmptyCompletionText = "Failed to generate document."

const (
	defaultMaxTokens = 1500
	auditTimeout     = 5 * time.Second
)

// ErrGenerationFailed wraps every provider or transport failure.
var ErrGenerationFailed = errors.New("failed to generate document")

// Service relays drafting requests to a Provider. No retries, no caching.
type Service struct {
	provider  Provider
	maxTokens int
	recorder  audit.Recorder
}

// NewService returns a Service. A nil recorder disables the audit log.
func NewService(p Provider, maxTokens int, rec audit.Recorder) *Service {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	if rec == nil {
		rec = audit.Noop{}
	}
	return &Service{provider: p, maxTokens: maxTokens, recorder: rec}
}

// Generate returns the provider text unmodified. The caller must validate req.
func (s *Service) Generate(ctx context.Context, userID uint, req Request) (string, error) {
	start := time.Now()
	content, err := s.provider.Complete(ctx, SystemPrompt, BuildPrompt(req), s.maxTokens)
	elapsed := time.Since(start)

	entry := &audit.Entry{
		UserID:      userID,
		Type:        req.Type,
		Language:    req.Language,
		IssueLength: len([]rune(req.Issue)),
		DurationMs:  elapsed.Milliseconds(),
		CreatedAt:   start.UTC(),
	}
	if req.Department != nil {
		entry.Department = *req.Department
	}

	if err != nil {
		logger.Errorf("generate %q for user %d failed after %s: %v", req.Type, userID, elapsed.Round(time.Millisecond), err)
		metrics.ObserveGeneration(audit.StatusFailure, elapsed)
		entry.Status = audit.StatusFailure
		entry.Error = err.Error()
		s.record(ctx, entry)
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	if content == "" {
		content = EmptyCompletionText
	}
	metrics.ObserveGeneration(audit.StatusSuccess, elapsed)
	entry.Status = audit.StatusSuccess
	entry.ContentLength = len([]rune(content))
	s.record(ctx, entry)
	return content, nil
}

// record writes the audit entry even when the request context is already done.
func (s *Service) record(ctx context.Context, e *audit.Entry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()
	if err := s.recorder.Record(ctx, e); err != nil {
		logger.Warnf("audit: %v", err)
	}
}
