// Command seed creates the schema and loads a small demo dataset: one
// agency manager, one creditor client with a portal login, one debtor
// file with invoices, a payment, a communication and a reminder rule.
// Meant for an empty database; it does not upsert.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mewicrm/mewi/internal/auth"
	"github.com/mewicrm/mewi/internal/client"
	clientStore "github.com/mewicrm/mewi/internal/client/store"
	"github.com/mewicrm/mewi/internal/communication"
	commStore "github.com/mewicrm/mewi/internal/communication/store"
	"github.com/mewicrm/mewi/internal/config"
	"github.com/mewicrm/mewi/internal/database"
	"github.com/mewicrm/mewi/internal/debtor"
	debtorStore "github.com/mewicrm/mewi/internal/debtor/store"
	"github.com/mewicrm/mewi/internal/dunning"
	dunningStore "github.com/mewicrm/mewi/internal/dunning/store"
	"github.com/mewicrm/mewi/internal/invoice"
	invoiceStore "github.com/mewicrm/mewi/internal/invoice/store"
	"github.com/mewicrm/mewi/internal/payment"
	paymentStore "github.com/mewicrm/mewi/internal/payment/store"
	"github.com/mewicrm/mewi/internal/user"
	userStore "github.com/mewicrm/mewi/internal/user/store"
)

const demoPassword = "123456"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if err := database.Setup(ctx, db); err != nil {
		slog.Error("failed to create schema", "error", err)
		os.Exit(1)
	}

	if err := seed(ctx, db); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	slog.Info("seed complete")
}

func seed(ctx context.Context, db *sql.DB) error {
	var (
		users    = user.NewService(userStore.New(db))
		clients  = client.NewService(clientStore.New(db))
		debtors  = debtor.NewService(debtorStore.New(db))
		invoices = invoice.NewService(invoiceStore.New(db))
		payments = payment.NewService(paymentStore.New(db))
		comms    = communication.NewService(commStore.New(db))
		dunnings = dunning.NewService(dunningStore.New(db))
	)

	admin, err := users.Create(ctx, user.CreateParams{
		Email:    "admin@mewi.fr",
		Password: demoPassword,
		FullName: "Administrateur Mewi",
		Role:     auth.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	manager, err := users.Create(ctx, user.CreateParams{
		Email:    "marie.dubois@mewi.fr",
		Password: demoPassword,
		FullName: "Marie Dubois",
		Role:     auth.RoleManager,
	})
	if err != nil {
		return fmt.Errorf("creating manager: %w", err)
	}

	clientUser, err := users.Create(ctx, user.CreateParams{
		Email:    "jean.martin@martinsarl.fr",
		Password: demoPassword,
		FullName: "Jean Martin",
		Role:     auth.RoleClient,
	})
	if err != nil {
		return fmt.Errorf("creating client user: %w", err)
	}

	debtorUser, err := users.Create(ctx, user.CreateParams{
		Email:    "pierre.dubois@exemple.fr",
		Password: demoPassword,
		FullName: "Pierre Dubois",
		Role:     auth.RoleDebiteur,
	})
	if err != nil {
		return fmt.Errorf("creating debtor user: %w", err)
	}

	martinSarl, err := clients.Create(ctx, client.CreateParams{
		UserID:    &clientUser.ID,
		ManagerID: &manager.ID,
		Name:      "Jean Martin",
		Email:     clientUser.Email,
		Phone:     "+33 1 42 68 53 00",
		Address:   "12 rue de la République, 75011 Paris",
		Company:   "Martin SARL",
	})
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	pierre, err := debtors.Create(ctx, debtor.CreateParams{
		ClientID:       martinSarl.ID,
		ManagerID:      &manager.ID,
		Name:           "Pierre Dubois",
		Email:          debtorUser.Email,
		Phone:          "+33 6 12 34 56 78",
		Address:        "8 avenue des Lilas, 69003 Lyon",
		Company:        "Dubois Construction",
		Type:           debtor.TypeCompany,
		Status:         debtor.StatusInProgress,
		RecoveryStatus: debtor.RecoveryOrange,
		Priority:       debtor.PriorityHigh,
		RiskLevel:      debtor.RiskMedium,
		OriginalAmount: 15000,
		PaidAmount:     2700,
		DaysOverdue:    45,
	})
	if err != nil {
		return fmt.Errorf("creating debtor: %w", err)
	}

	pierre.UserID = &debtorUser.ID
	pierre.InvoiceCount = 2

	if err := debtors.Update(ctx, pierre); err != nil {
		return fmt.Errorf("linking debtor login: %w", err)
	}

	now := time.Now()

	_, err = invoices.Create(ctx, invoice.CreateParams{
		ClientID:       martinSarl.ID,
		DebtorID:       pierre.ID,
		InvoiceNumber:  "FAC-2024-001",
		OriginalAmount: 8750.50,
		DueDate:        now.AddDate(0, 0, -45),
		IssueDate:      now.AddDate(0, 0, -75),
		Status:         invoice.StatusOverdue,
		Description:    "Travaux de rénovation, lot maçonnerie",
		Category:       "travaux",
	})
	if err != nil {
		return fmt.Errorf("creating first invoice: %w", err)
	}

	fac2, err := invoices.Create(ctx, invoice.CreateParams{
		ClientID:       martinSarl.ID,
		DebtorID:       pierre.ID,
		InvoiceNumber:  "FAC-2024-002",
		OriginalAmount: 7000,
		PaidAmount:     2500,
		DueDate:        now.AddDate(0, 0, -20),
		IssueDate:      now.AddDate(0, 0, -50),
		Status:         invoice.StatusPartial,
		Description:    "Travaux de rénovation, lot second oeuvre",
		Category:       "travaux",
	})
	if err != nil {
		return fmt.Errorf("creating second invoice: %w", err)
	}

	_, err = payments.Create(ctx, payment.CreateParams{
		ClientID:    martinSarl.ID,
		DebtorID:    pierre.ID,
		InvoiceID:   &fac2.ID,
		Amount:      2500,
		PaymentDate: now.AddDate(0, 0, -10),
		Method:      "Virement bancaire",
		Reference:   "VIR-20241210-001",
		Status:      payment.StatusCompleted,
	})
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	sentAt := now.AddDate(0, 0, -5)

	reminder, err := comms.Create(ctx, communication.CreateParams{
		ClientID: martinSarl.ID,
		DebtorID: pierre.ID,
		UserID:   &manager.ID,
		Type:     communication.TypeEmail,
		Subject:  "Rappel de paiement urgent",
		Content:  "Bonjour, malgré nos précédentes relances, la facture FAC-2024-001 reste impayée. Merci de régulariser sous 8 jours.",
		SentAt:   &sentAt,
	})
	if err != nil {
		return fmt.Errorf("creating communication: %w", err)
	}

	if err := comms.UpdateStatus(ctx, reminder.ID, communication.StatusDelivered); err != nil {
		return fmt.Errorf("marking communication delivered: %w", err)
	}

	tmpl := &dunning.Template{
		Name:      "Email de relance standard",
		Type:      communication.TypeEmail,
		Subject:   "Rappel - {{invoice_number}}",
		Content:   "Bonjour {{client_name}}, votre facture {{invoice_number}} de {{amount}} est en retard de {{days_overdue}} jours. Merci de procéder au règlement.",
		Variables: []string{"client_name", "invoice_number", "amount", "days_overdue"},
		IsActive:  true,
		CreatedBy: &admin.ID,
	}

	if err := dunnings.CreateTemplate(ctx, tmpl); err != nil {
		return fmt.Errorf("creating template: %w", err)
	}

	rule := &dunning.Rule{
		Name:        "Première relance automatique",
		TriggerDays: 7,
		Action:      communication.TypeEmail,
		TemplateID:  &tmpl.ID,
		IsActive:    true,
	}

	if err := dunnings.CreateRule(ctx, rule); err != nil {
		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}
