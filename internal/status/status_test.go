package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/status"
)

func TestClassify(t *testing.T) {
	type testCase struct {
		name      string
		kind      status.Kind
		code      string
		wantLabel string
		wantTier  status.Tier
		wantErr   bool
	}

	tests := []testCase{
		{
			name:      "LifecycleKnown",
			kind:      status.KindLifecycle,
			code:      "inProgress",
			wantLabel: "En cours",
			wantTier:  status.TierYellow,
		},
		{
			name:    "LifecycleUnknownIsStrict",
			kind:    status.KindLifecycle,
			code:    "bogus",
			wantErr: true,
		},
		{
			name:      "RecoveryKnown",
			kind:      status.KindRecovery,
			code:      "critical",
			wantLabel: "Relance 3 Critique",
			wantTier:  status.TierCritical,
		},
		{
			name:      "RecoveryUnknownEchoesCode",
			kind:      status.KindRecovery,
			code:      "purple",
			wantLabel: "purple",
			wantTier:  status.TierUnknown,
		},
		{
			name:      "PriorityKnown",
			kind:      status.KindPriority,
			code:      "urgent",
			wantLabel: "Priorité urgente",
			wantTier:  status.TierCritical,
		},
		{
			name:      "PriorityUnknownEchoesCode",
			kind:      status.KindPriority,
			code:      "extreme",
			wantLabel: "extreme",
			wantTier:  status.TierUnknown,
		},
		{
			name:      "RiskKnown",
			kind:      status.KindRisk,
			code:      "high",
			wantLabel: "Risque élevé",
			wantTier:  status.TierCritical,
		},
		{
			name:    "RiskUnknownIsStrict",
			kind:    status.KindRisk,
			code:    "医",
			wantErr: true,
		},
		{
			name:    "UnknownKind",
			kind:    status.Kind("color"),
			code:    "blue",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := status.Classify(tt.kind, tt.code)

			if tt.wantErr {
				require.Error(t, err)

				var unknownErr *status.UnknownStatusCodeError
				require.ErrorAs(t, err, &unknownErr)
				assert.Equal(t, tt.kind, unknownErr.Kind)
				assert.Equal(t, tt.code, unknownErr.Code)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, cfg.Label)
			assert.Equal(t, tt.wantTier, cfg.Tier)
		})
	}
}

func TestRecoveryRank_Order(t *testing.T) {
	assert.Less(t, status.RecoveryRank(debtor.RecoveryBlue), status.RecoveryRank(debtor.RecoveryYellow))
	assert.Less(t, status.RecoveryRank(debtor.RecoveryYellow), status.RecoveryRank(debtor.RecoveryOrange))
	assert.Less(t, status.RecoveryRank(debtor.RecoveryOrange), status.RecoveryRank(debtor.RecoveryCritical))

	// Unmapped codes sort below every real tier.
	assert.Less(t, status.RecoveryRank("purple"), status.RecoveryRank(debtor.RecoveryBlue))
}

func TestPriorityRank_Order(t *testing.T) {
	assert.Less(t, status.PriorityRank(debtor.PriorityLow), status.PriorityRank(debtor.PriorityMedium))
	assert.Less(t, status.PriorityRank(debtor.PriorityMedium), status.PriorityRank(debtor.PriorityHigh))
	assert.Less(t, status.PriorityRank(debtor.PriorityHigh), status.PriorityRank(debtor.PriorityUrgent))
}
