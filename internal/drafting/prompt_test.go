package drafting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(Request{
		Type:       "RTI Request",
		Language:   "English",
		Department: strPtr("Water and Sanitation Agency"),
		Issue:      "water supply cut",
	})

	assert.True(t, strings.HasPrefix(p, "You are a legal drafting assistant for Pakistan. Draft a RTI Request in English."))
	assert.Contains(t, p, "Address it to Water and Sanitation Agency.")
	assert.Contains(t, p, "User issue: water supply cut.")
	for _, ph := range []string{"[NAME]", "[CNIC]", "[ADDRESS]", "[DATE]"} {
		assert.Contains(t, p, ph)
	}
	assert.True(t, strings.HasSuffix(p, "just the document content."))
}

func TestBuildPrompt_DefaultDepartment(t *testing.T) {
	for _, dept := range []*string{nil, strPtr(""), strPtr("   ")} {
		p := BuildPrompt(Request{Type: "Affidavit", Language: "Urdu", Department: dept, Issue: "x"})
		assert.Contains(t, p, "Address it to the concerned authority.")
		assert.Contains(t, p, "Draft a Affidavit in Urdu.")
	}
}
