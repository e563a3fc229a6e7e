// Package status maps raw debtor codes (lifecycle status, recovery
// status, priority, risk level) to display labels and severity tiers.
//
// Two policies coexist, matching how the portal renders them:
// lifecycle and risk codes are strict and yield UnknownStatusCodeError
// for codes outside their tables, while recovery-status and priority
// codes are lenient and echo the raw code as its own label. The policy
// is fixed per code family, never chosen per call site.
package status

import (
	"fmt"

	"github.com/mewicrm/mewi/internal/debtor"
)

// Kind is a family of codes with its own mapping table.
type Kind string

const (
	KindLifecycle Kind = "lifecycleStatus"
	KindRecovery  Kind = "recoveryStatus"
	KindPriority  Kind = "priority"
	KindRisk      Kind = "riskLevel"
)

// Tier is a visual severity bucket, ordered from calm to critical.
type Tier int

const (
	TierUnknown Tier = iota - 1
	TierBlue
	TierYellow
	TierOrange
	TierCritical
)

// Config is the display configuration for a classified code.
type Config struct {
	Label string
	Tier  Tier
}

// UnknownStatusCodeError reports a code outside the mapping table of a
// strict code family. Callers should surface it as a data-integrity
// signal rather than substitute a default label.
type UnknownStatusCodeError struct {
	Kind Kind
	Code string
}

func (e *UnknownStatusCodeError) Error() string {
	return fmt.Sprintf("unknown %s code %q", e.Kind, e.Code)
}

var lifecycleConfigs = map[debtor.Status]Config{
	debtor.StatusNew:           {Label: "Nouveau", Tier: TierBlue},
	debtor.StatusInProgress:    {Label: "En cours", Tier: TierYellow},
	debtor.StatusPaymentPlan:   {Label: "Plan de paiement", Tier: TierBlue},
	debtor.StatusDisputed:      {Label: "Contesté", Tier: TierOrange},
	debtor.StatusLitigation:    {Label: "Contentieux", Tier: TierCritical},
	debtor.StatusRecovered:     {Label: "Recouvré", Tier: TierBlue},
	debtor.StatusUncollectible: {Label: "Irrécouvrable", Tier: TierCritical},
}

var recoveryConfigs = map[debtor.RecoveryStatus]Config{
	debtor.RecoveryBlue:     {Label: "Dossier Initial", Tier: TierBlue},
	debtor.RecoveryYellow:   {Label: "Relance 1", Tier: TierYellow},
	debtor.RecoveryOrange:   {Label: "Relance 2", Tier: TierOrange},
	debtor.RecoveryCritical: {Label: "Relance 3 Critique", Tier: TierCritical},
}

var priorityConfigs = map[debtor.Priority]Config{
	debtor.PriorityLow:    {Label: "Priorité basse", Tier: TierBlue},
	debtor.PriorityMedium: {Label: "Priorité moyenne", Tier: TierYellow},
	debtor.PriorityHigh:   {Label: "Priorité haute", Tier: TierOrange},
	debtor.PriorityUrgent: {Label: "Priorité urgente", Tier: TierCritical},
}

var riskConfigs = map[debtor.RiskLevel]Config{
	debtor.RiskLow:    {Label: "Risque faible", Tier: TierBlue},
	debtor.RiskMedium: {Label: "Risque modéré", Tier: TierYellow},
	debtor.RiskHigh:   {Label: "Risque élevé", Tier: TierCritical},
}

// Classify resolves a raw code of the given kind to its display
// configuration.
func Classify(kind Kind, code string) (Config, error) {
	switch kind {
	case KindLifecycle:
		if cfg, ok := lifecycleConfigs[debtor.Status(code)]; ok {
			return cfg, nil
		}

		return Config{}, &UnknownStatusCodeError{Kind: kind, Code: code}
	case KindRecovery:
		return Recovery(debtor.RecoveryStatus(code)), nil
	case KindPriority:
		return Priority(debtor.Priority(code)), nil
	case KindRisk:
		if cfg, ok := riskConfigs[debtor.RiskLevel(code)]; ok {
			return cfg, nil
		}

		return Config{}, &UnknownStatusCodeError{Kind: kind, Code: code}
	}

	return Config{}, &UnknownStatusCodeError{Kind: kind, Code: code}
}

// Lifecycle classifies a lifecycle status code. Strict.
func Lifecycle(code debtor.Status) (Config, error) {
	if cfg, ok := lifecycleConfigs[code]; ok {
		return cfg, nil
	}

	return Config{}, &UnknownStatusCodeError{Kind: KindLifecycle, Code: string(code)}
}

// Recovery classifies a recovery status code. Lenient: unmapped codes
// are echoed verbatim as their own label.
func Recovery(code debtor.RecoveryStatus) Config {
	if cfg, ok := recoveryConfigs[code]; ok {
		return cfg
	}

	return Config{Label: string(code), Tier: TierUnknown}
}

// Priority classifies a priority code. Lenient, like Recovery.
func Priority(code debtor.Priority) Config {
	if cfg, ok := priorityConfigs[code]; ok {
		return cfg
	}

	return Config{Label: string(code), Tier: TierUnknown}
}

// Risk classifies a risk level code. Strict.
func Risk(code debtor.RiskLevel) (Config, error) {
	if cfg, ok := riskConfigs[code]; ok {
		return cfg, nil
	}

	return Config{}, &UnknownStatusCodeError{Kind: KindRisk, Code: string(code)}
}

// RecoveryRank total-orders recovery statuses: blue < yellow < orange
// < critical. Unknown codes rank below blue so bad data stays visible
// at the edge of sorted lists instead of blending in.
func RecoveryRank(code debtor.RecoveryStatus) int {
	return int(Recovery(code).Tier)
}

// PriorityRank total-orders priorities: low < medium < high < urgent.
// Unknown codes rank below low.
func PriorityRank(code debtor.Priority) int {
	return int(Priority(code).Tier)
}
