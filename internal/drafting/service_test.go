package drafting

import (
	"context"
	"errors"
	"testing"

	"github.com/pakdocs/pakdocs/backend/go-services/internal/audit"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	text      string
	err       error
	calls     int
	system    string
	prompt    string
	maxTokens int
}

func (f *fakeProvider) Complete(_ context.Context, system, prompt string, maxTokens int) (string, error) {
	f.calls++
	f.system, f.prompt, f.maxTokens = system, prompt, maxTokens
	return f.text, f.err
}

func TestGenerate_ReturnsProviderTextUnmodified(t *testing.T) {
	p := &fakeProvider{text: "  To,\nThe Public Information Officer\n"}
	rec := &audit.MemoryRecorder{}
	svc := NewService(p, 0, rec)

	got, err := svc.Generate(context.Background(), 7, Request{Type: "RTI Request", Language: "English", Issue: "water supply cut"})
	require.NoError(t, err)
	assert.Equal(t, p.text, got)
	assert.Equal(t, SystemPrompt, p.system)
	assert.Equal(t, 1500, p.maxTokens)
	assert.Contains(t, p.prompt, "water supply cut")

	entries := rec.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, uint(7), entries[0].UserID)
	assert.Equal(t, audit.StatusSuccess, entries[0].Status)
	assert.Equal(t, len("water supply cut"), entries[0].IssueLength)
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	svc := NewService(&fakeProvider{text: ""}, 1500, nil)
	got, err := svc.Generate(context.Background(), 1, Request{Type: "Affidavit", Language: "Urdu", Issue: "x"})
	require.NoError(t, err)
	assert.Equal(t, EmptyCompletionText, got)
}

func TestGenerate_ProviderFailure(t *testing.T) {
	upstream := errors.New("connection refused")
	rec := &audit.MemoryRecorder{}
	svc := NewService(&fakeProvider{err: upstream}, 1500, rec)

	_, err := svc.Generate(context.Background(), 1, Request{Type: "Legal Notice", Language: "English", Issue: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.True(t, errors.Is(err, upstream))

	entries := rec.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, audit.StatusFailure, entries[0].Status)
	assert.Equal(t, "connection refused", entries[0].Error)
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, *audit.Entry) error { return errors.New("mongo down") }

func TestGenerate_AuditFailureDoesNotAffectResult(t *testing.T) {
	svc := NewService(&fakeProvider{text: "draft"}, 1500, failingRecorder{})
	got, err := svc.Generate(context.Background(), 1, Request{Type: "Affidavit", Language: "English", Issue: "x"})
	require.NoError(t, err)
	assert.Equal(t, "draft", got)
}

func TestRequestValidation(t *testing.T) {
	cases := []struct {
		name  string
		req   Request
		field string
	}{
		{"missing type", Request{Language: "English", Issue: "x"}, "type"},
		{"bad language", Request{Type: "Affidavit", Language: "French", Issue: "x"}, "language"},
		{"missing issue", Request{Type: "Affidavit", Language: "Urdu"}, "issue"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.Struct(tc.req)
			var fe *validation.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.field, fe.Field)
		})
	}
	require.NoError(t, validation.Struct(Request{Type: "Affidavit", Language: "Urdu", Issue: "x"}))
}
