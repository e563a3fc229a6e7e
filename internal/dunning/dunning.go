// Package dunning holds the reminder (relance) templates and
// escalation rules that drive outbound payment reminders.
package dunning

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/communication"
)

// Template is a reusable reminder message with {{name}} placeholders.
type Template struct {
	ID        uuid.UUID
	Name      string
	Type      communication.Type
	Subject   string
	Content   string
	Variables []string
	IsActive  bool
	CreatedBy *uuid.UUID
	CreatedAt time.Time
}

// Render substitutes {{name}} placeholders in the subject and content.
// Placeholders without a value are left verbatim so a half-filled
// draft is visibly incomplete rather than silently blank.
func (t *Template) Render(vars map[string]string) (subject, content string) {
	subject = t.Subject
	content = t.Content

	for name, value := range vars {
		placeholder := "{{" + name + "}}"
		subject = strings.ReplaceAll(subject, placeholder, value)
		content = strings.ReplaceAll(content, placeholder, value)
	}

	return subject, content
}

// Rule links an overdue threshold to a reminder action. A rule fires
// once a file is at least TriggerDays overdue.
type Rule struct {
	ID          uuid.UUID
	Name        string
	TriggerDays int
	Action      communication.Type
	TemplateID  *uuid.UUID
	IsActive    bool
	CreatedAt   time.Time
}
