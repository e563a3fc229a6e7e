package debtor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mewicrm/mewi/internal/debtor"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params debtor.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *debtor.MockRepository)
		check     func(t *testing.T, d *debtor.Debtor)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: debtor.CreateParams{
					ClientID:       uuid.New(),
					Name:           "Pierre Dubois",
					Email:          "pierre.dubois@exemple.fr",
					Company:        "Dubois & Fils",
					Type:           debtor.TypeCompany,
					Status:         debtor.StatusInProgress,
					RecoveryStatus: debtor.RecoveryOrange,
					Priority:       debtor.PriorityHigh,
					RiskLevel:      debtor.RiskHigh,
					OriginalAmount: 15000,
					PaidAmount:     2700,
				},
			},
			setupMock: func(m *debtor.MockRepository) {
				m.EXPECT().
					CreateDebtor(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, d *debtor.Debtor) error {
						d.ID = uuid.New()
						return nil
					})
			},
			check: func(t *testing.T, d *debtor.Debtor) {
				// Remaining due is derived from original minus paid.
				assert.InDelta(t, 12300, d.TotalAmount, 1e-9)
			},
		},
		{
			name: "DefaultsApplied",
			args: args{
				params: debtor.CreateParams{
					ClientID: uuid.New(),
					Name:     "Jean Martin",
					Email:    "jean@martin.fr",
				},
			},
			setupMock: func(m *debtor.MockRepository) {
				m.EXPECT().
					CreateDebtor(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, d *debtor.Debtor) {
				assert.Equal(t, debtor.TypeIndividual, d.Type)
				assert.Equal(t, debtor.StatusNew, d.Status)
				assert.Equal(t, debtor.RecoveryBlue, d.RecoveryStatus)
				assert.Equal(t, debtor.PriorityMedium, d.Priority)
				assert.Equal(t, debtor.RiskMedium, d.RiskLevel)
			},
		},
		{
			name: "RepoError",
			args: args{
				params: debtor.CreateParams{Name: "X"},
			},
			setupMock: func(m *debtor.MockRepository) {
				m.EXPECT().
					CreateDebtor(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := debtor.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := debtor.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_Update_RecomputesTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := debtor.NewMockRepository(ctrl)
	repo.EXPECT().
		UpdateDebtor(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d *debtor.Debtor) error {
			assert.InDelta(t, 4500, d.TotalAmount, 1e-9)
			return nil
		})

	svc := debtor.NewService(repo)

	d := &debtor.Debtor{
		ID:             uuid.New(),
		OriginalAmount: 7000,
		PaidAmount:     2500,
		TotalAmount:    9999, // stale value supplied by the caller
	}

	require.NoError(t, svc.Update(context.Background(), d))
}

func TestService_Escalate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := debtor.NewMockRepository(ctrl)
	repo.EXPECT().
		UpdateRecoveryStatus(gomock.Any(), id, debtor.RecoveryCritical).
		Return(nil)

	svc := debtor.NewService(repo)
	assert.NoError(t, svc.Escalate(context.Background(), id, debtor.RecoveryCritical))
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientID := uuid.New()
	filter := debtor.ListFilter{ClientID: &clientID}

	repo := debtor.NewMockRepository(ctrl)
	repo.EXPECT().
		ListDebtors(gomock.Any(), filter).
		Return([]*debtor.Debtor{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	svc := debtor.NewService(repo)

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
