package debtor

import (
	"time"

	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/finance"
	"github.com/mewicrm/mewi/internal/status"
)

type debtorResponse struct {
	ID                  uuid.UUID             `json:"id"`
	UserID              *uuid.UUID            `json:"user_id,omitempty"`
	ClientID            uuid.UUID             `json:"client_id"`
	ManagerID           *uuid.UUID            `json:"manager_id,omitempty"`
	Name                string                `json:"name"`
	Email               string                `json:"email"`
	Phone               string                `json:"phone,omitempty"`
	Address             string                `json:"address,omitempty"`
	Company             string                `json:"company,omitempty"`
	Type                debtor.Type           `json:"type"`
	Status              debtor.Status         `json:"status"`
	StatusLabel         string                `json:"status_label"`
	RecoveryStatus      debtor.RecoveryStatus `json:"recovery_status"`
	RecoveryStatusLabel string                `json:"recovery_status_label"`
	RecoveryTier        int                   `json:"recovery_tier"`
	Priority            debtor.Priority       `json:"priority"`
	PriorityLabel       string                `json:"priority_label"`
	RiskLevel           debtor.RiskLevel      `json:"risk_level"`
	RiskLabel           string                `json:"risk_label"`
	TotalAmount         float64               `json:"total_amount"`
	OriginalAmount      float64               `json:"original_amount"`
	PaidAmount          float64               `json:"paid_amount"`
	RecoveryRate        float64               `json:"recovery_rate"`
	DaysOverdue         int                   `json:"days_overdue"`
	InvoiceCount        int                   `json:"invoice_count"`
	NextAction          *debtor.NextAction    `json:"next_action,omitempty"`
	Notes               []string              `json:"notes,omitempty"`
	Tags                []string              `json:"tags,omitempty"`
	LastContact         *time.Time            `json:"last_contact,omitempty"`
	LastPayment         *time.Time            `json:"last_payment,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

func toResponse(d *debtor.Debtor) (debtorResponse, error) {
	lifecycle, err := status.Lifecycle(d.Status)
	if err != nil {
		return debtorResponse{}, err
	}

	risk, err := status.Risk(d.RiskLevel)
	if err != nil {
		return debtorResponse{}, err
	}

	recovery := status.Recovery(d.RecoveryStatus)
	priority := status.Priority(d.Priority)

	return debtorResponse{
		ID:                  d.ID,
		UserID:              d.UserID,
		ClientID:            d.ClientID,
		ManagerID:           d.ManagerID,
		Name:                d.Name,
		Email:               d.Email,
		Phone:               d.Phone,
		Address:             d.Address,
		Company:             d.Company,
		Type:                d.Type,
		Status:              d.Status,
		StatusLabel:         lifecycle.Label,
		RecoveryStatus:      d.RecoveryStatus,
		RecoveryStatusLabel: recovery.Label,
		RecoveryTier:        int(recovery.Tier),
		Priority:            d.Priority,
		PriorityLabel:       priority.Label,
		RiskLevel:           d.RiskLevel,
		RiskLabel:           risk.Label,
		TotalAmount:         d.TotalAmount,
		OriginalAmount:      d.OriginalAmount,
		PaidAmount:          d.PaidAmount,
		RecoveryRate:        finance.RecoveryRate(d.PaidAmount, d.OriginalAmount),
		DaysOverdue:         d.DaysOverdue,
		InvoiceCount:        d.InvoiceCount,
		NextAction:          d.NextAction,
		Notes:               d.Notes,
		Tags:                d.Tags,
		LastContact:         d.LastContact,
		LastPayment:         d.LastPayment,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}, nil
}

func toResponseList(debtors []*debtor.Debtor) ([]debtorResponse, error) {
	resp := make([]debtorResponse, len(debtors))

	for i, d := range debtors {
		r, err := toResponse(d)
		if err != nil {
			return nil, err
		}

		resp[i] = r
	}

	return resp, nil
}

type metricsResponse struct {
	RecoveryRatePct     float64 `json:"recovery_rate_pct"`
	TotalOwed           float64 `json:"total_owed"`
	TotalPaid           float64 `json:"total_paid"`
	TotalOriginal       float64 `json:"total_original"`
	OverdueInvoiceCount int     `json:"overdue_invoice_count"`
}

type debtorDetailResponse struct {
	debtorResponse
	Metrics metricsResponse `json:"metrics"`
}

func toMetricsResponse(m finance.Metrics) metricsResponse {
	return metricsResponse{
		RecoveryRatePct:     m.RecoveryRatePct,
		TotalOwed:           m.TotalOwed,
		TotalPaid:           m.TotalPaid,
		TotalOriginal:       m.TotalOriginal,
		OverdueInvoiceCount: m.OverdueInvoiceCount,
	}
}
