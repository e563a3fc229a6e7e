package dunning_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mewicrm/mewi/internal/communication"
	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/dunning"
	"github.com/mewicrm/mewi/internal/invoice"
)

func TestTemplate_Render(t *testing.T) {
	tmpl := &dunning.Template{
		Subject: "Rappel de paiement - Facture {{invoice_number}}",
		Content: "Bonjour {{client_name}},\n\nVotre facture {{invoice_number}} de {{amount}} est échue depuis {{days_overdue}} jours.",
	}

	subject, content := tmpl.Render(map[string]string{
		"client_name":    "Pierre Dubois",
		"invoice_number": "FAC-2024-001",
		"amount":         "8750.50€",
		"days_overdue":   "30",
	})

	assert.Equal(t, "Rappel de paiement - Facture FAC-2024-001", subject)
	assert.Contains(t, content, "Bonjour Pierre Dubois,")
	assert.Contains(t, content, "FAC-2024-001 de 8750.50€ est échue depuis 30 jours")
}

func TestTemplate_Render_MissingVarsKeptVerbatim(t *testing.T) {
	tmpl := &dunning.Template{Content: "Facture {{invoice_number}} pour {{client_name}}"}

	_, content := tmpl.Render(map[string]string{"client_name": "Jean"})

	assert.Equal(t, "Facture {{invoice_number}} pour Jean", content)
}

func TestApplicable(t *testing.T) {
	first := &dunning.Rule{Name: "Première relance", TriggerDays: 7, IsActive: true}
	second := &dunning.Rule{Name: "Deuxième relance", TriggerDays: 21, IsActive: true}
	inactive := &dunning.Rule{Name: "Ancienne règle", TriggerDays: 30, IsActive: false}

	rules := []*dunning.Rule{first, second, inactive}

	type testCase struct {
		name        string
		daysOverdue int
		want        *dunning.Rule
	}

	tests := []testCase{
		{name: "NotOverdueEnough", daysOverdue: 3, want: nil},
		{name: "FirstTier", daysOverdue: 10, want: first},
		{name: "HighestFiringWins", daysOverdue: 25, want: second},
		{name: "InactiveIgnored", daysOverdue: 45, want: second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dunning.Applicable(rules, &debtor.Debtor{DaysOverdue: tt.daysOverdue})
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakeRepo struct {
	dunning.Repository

	templates map[uuid.UUID]*dunning.Template
	rules     []*dunning.Rule
}

func (f *fakeRepo) GetTemplate(_ context.Context, id uuid.UUID) (*dunning.Template, error) {
	t, ok := f.templates[id]
	if !ok {
		return nil, dunning.ErrNotFound
	}

	return t, nil
}

func (f *fakeRepo) ListRules(_ context.Context, _ bool) ([]*dunning.Rule, error) {
	return f.rules, nil
}

func TestService_Draft(t *testing.T) {
	tmpl := &dunning.Template{
		ID:      uuid.New(),
		Type:    communication.TypeEmail,
		Subject: "Rappel - {{invoice_number}}",
		Content: "Bonjour {{client_name}}, {{amount}} dus depuis {{days_overdue}} jours.",
	}

	repo := &fakeRepo{
		templates: map[uuid.UUID]*dunning.Template{tmpl.ID: tmpl},
		rules: []*dunning.Rule{
			{TriggerDays: 7, Action: communication.TypeEmail, TemplateID: &tmpl.ID, IsActive: true},
		},
	}

	svc := dunning.NewService(repo)

	d := &debtor.Debtor{
		ID:          uuid.New(),
		ClientID:    uuid.New(),
		Name:        "Pierre Dubois",
		DaysOverdue: 30,
		TotalAmount: 12300,
	}

	inv := &invoice.Invoice{InvoiceNumber: "FAC-2024-001", Amount: 8750.50}

	params, err := svc.Draft(context.Background(), d, inv)
	require.NoError(t, err)

	assert.Equal(t, d.ClientID, params.ClientID)
	assert.Equal(t, d.ID, params.DebtorID)
	assert.Equal(t, communication.TypeEmail, params.Type)
	assert.Equal(t, "Rappel - FAC-2024-001", params.Subject)
	assert.Equal(t, "Bonjour Pierre Dubois, 8750.50€ dus depuis 30 jours.", params.Content)
}

func TestService_Draft_NoRuleFires(t *testing.T) {
	svc := dunning.NewService(&fakeRepo{})

	_, err := svc.Draft(context.Background(), &debtor.Debtor{DaysOverdue: 2}, nil)
	assert.ErrorIs(t, err, dunning.ErrNotFound)
}
