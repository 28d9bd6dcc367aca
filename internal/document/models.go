package document

import (
	"time"

	"github.com/pakdocs/pakdocs/backend/go-services/internal/models"
)

const (
	LanguageEnglish = "English"
	LanguageUrdu    = "Urdu"
)

// Types lists the document types offered by the drafting form. The API accepts
// any non-empty type; this list is informational.
var Types = []string{
	"RTI Request",
	"Police Complaint",
	"Tenancy Notice",
	"General Application",
	"Affidavit",
	"Legal Notice",
}

// Document is a saved draft owned by a single user.
type Document struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     uint      `json:"userId" gorm:"not null;index"`
	Title      string    `json:"title" gorm:"not null"`
	Type       string    `json:"type" gorm:"not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	Language   string    `json:"language" gorm:"not null"`
	Department *string   `json:"department"`
	CreatedAt  time.Time `json:"createdAt" gorm:"not null;autoCreateTime"`

	Owner *models.User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// CreateInput carries the client-supplied fields of a new document. The owner
// always comes from the session.
type CreateInput struct {
	Title      string  `json:"title" validate:"required,max=200"`
	Type       string  `json:"type" validate:"required,max=100"`
	Content    string  `json:"content" validate:"required"`
	Language   string  `json:"language" validate:"required,oneof=Urdu English"`
	Department *string `json:"department" validate:"omitempty,max=200"`
}
