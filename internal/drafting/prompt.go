package drafting

import (
	"fmt"
	"strings"
)

const (
	// SystemPrompt frames every completion request.
	SystemPrompt = "You are a professional legal assistant for Pakistan."

	defaultDepartment = "the concerned authority"
)

// Request is the input of a generation. Department is optional.
type Request struct {
	Type       string  `json:"type" validate:"required,max=100"`
	Language   string  `json:"language" validate:"required,oneof=Urdu English"`
	Department *string `json:"department" validate:"omitempty,max=200"`
	Issue      string  `json:"issue" validate:"required,max=5000"`
}

func (r Request) department() string {
	if r.Department == nil || strings.TrimSpace(*r.Department) == "" {
		return defaultDepartment
	}
	return *r.Department
}

// BuildPrompt composes the drafting instruction sent as the user message.
func BuildPrompt(r Request) string {
	return fmt.Sprintf(
		"You are a legal drafting assistant for Pakistan. Draft a %s in %s. "+
			"Address it to %s. User issue: %s. "+
			"Use formal Pakistani legal language and official formatting. "+
			"Include placeholders like [NAME], [CNIC], [ADDRESS], [DATE] where appropriate. "+
			"Do not include any conversational text, just the document content.",
		r.Type, r.Language, r.department(), r.Issue,
	)
}
