package dunning

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/communication"
	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/invoice"
)

var ErrNotFound = errors.New("dunning record not found")

type Repository interface {
	CreateTemplate(ctx context.Context, t *Template) error
	GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error)
	ListTemplates(ctx context.Context, activeOnly bool) ([]*Template, error)
	CreateRule(ctx context.Context, r *Rule) error
	ListRules(ctx context.Context, activeOnly bool) ([]*Rule, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateTemplate(ctx context.Context, t *Template) error {
	return s.repo.CreateTemplate(ctx, t)
}

func (s *Service) GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error) {
	return s.repo.GetTemplate(ctx, id)
}

func (s *Service) ListTemplates(ctx context.Context, activeOnly bool) ([]*Template, error) {
	return s.repo.ListTemplates(ctx, activeOnly)
}

func (s *Service) CreateRule(ctx context.Context, r *Rule) error {
	return s.repo.CreateRule(ctx, r)
}

func (s *Service) ListRules(ctx context.Context, activeOnly bool) ([]*Rule, error) {
	return s.repo.ListRules(ctx, activeOnly)
}

// Applicable returns the active rule with the highest trigger not
// exceeding the file's days overdue, or nil when no rule fires yet.
// On equal triggers the earliest rule wins.
func Applicable(rules []*Rule, d *debtor.Debtor) *Rule {
	var best *Rule

	for _, r := range rules {
		if !r.IsActive || r.TriggerDays > d.DaysOverdue {
			continue
		}

		if best == nil || r.TriggerDays > best.TriggerDays {
			best = r
		}
	}

	return best
}

// Draft renders the reminder for the rule firing on the given file
// into communication create params, ready for review and sending. The
// invoice is optional; without one the invoice placeholders stay
// unfilled.
func (s *Service) Draft(ctx context.Context, d *debtor.Debtor, inv *invoice.Invoice) (*communication.CreateParams, error) {
	rules, err := s.repo.ListRules(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}

	rule := Applicable(rules, d)
	if rule == nil || rule.TemplateID == nil {
		return nil, ErrNotFound
	}

	tmpl, err := s.repo.GetTemplate(ctx, *rule.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}

	vars := map[string]string{
		"client_name":  d.Name,
		"days_overdue": strconv.Itoa(d.DaysOverdue),
		"amount":       fmt.Sprintf("%.2f€", d.TotalAmount),
	}

	if inv != nil {
		vars["invoice_number"] = inv.InvoiceNumber
		vars["amount"] = fmt.Sprintf("%.2f€", inv.Amount)
	}

	subject, content := tmpl.Render(vars)

	return &communication.CreateParams{
		ClientID: d.ClientID,
		DebtorID: d.ID,
		Type:     rule.Action,
		Subject:  subject,
		Content:  content,
	}, nil
}
