package metering

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adsight/adsight-api/infrastructure/repository/mocks"
	"github.com/adsight/adsight-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var referenceTime = time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)

func newMeterService(ctrl *gomock.Controller) (*Service, *mocks.MockUsageLogRepository, *mocks.MockQuotaRepository) {
	usageRepo := mocks.NewMockUsageLogRepository(ctrl)
	quotaRepo := mocks.NewMockQuotaRepository(ctrl)

	service := &Service{
		usageRepo: usageRepo,
		quotaRepo: quotaRepo,
		now:       func() time.Time { return referenceTime },
	}

	return service, usageRepo, quotaRepo
}

func TestService_IsWithinQuota(t *testing.T) {
	scope := domain.TenantScope("org-1")

	tests := []struct {
		name     string
		setup    func(usageRepo *mocks.MockUsageLogRepository, quotaRepo *mocks.MockQuotaRepository)
		expected bool
		hasError bool
	}{
		{
			name: "Uso abaixo do teto deve permitir",
			setup: func(usageRepo *mocks.MockUsageLogRepository, quotaRepo *mocks.MockQuotaRepository) {
				quotaRepo.EXPECT().
					GetByOrganization(gomock.Any(), scope, "org-1").
					Return(&domain.Quota{Limits: map[domain.ResourceType]int64{domain.ResourceSync: 10}}, nil)
				usageRepo.EXPECT().
					CurrentDailyUsage(gomock.Any(), scope, domain.ResourceSync, referenceTime).
					Return(int64(9), nil)
			},
			expected: true,
		},
		{
			name: "Uso igual ao teto deve negar",
			setup: func(usageRepo *mocks.MockUsageLogRepository, quotaRepo *mocks.MockQuotaRepository) {
				quotaRepo.EXPECT().
					GetByOrganization(gomock.Any(), scope, "org-1").
					Return(&domain.Quota{Limits: map[domain.ResourceType]int64{domain.ResourceSync: 10}}, nil)
				usageRepo.EXPECT().
					CurrentDailyUsage(gomock.Any(), scope, domain.ResourceSync, referenceTime).
					Return(int64(10), nil)
			},
			expected: false,
		},
		{
			name: "Teto de 1 com uso zero deve permitir exatamente uma unidade",
			setup: func(usageRepo *mocks.MockUsageLogRepository, quotaRepo *mocks.MockQuotaRepository) {
				quotaRepo.EXPECT().
					GetByOrganization(gomock.Any(), scope, "org-1").
					Return(&domain.Quota{Limits: map[domain.ResourceType]int64{domain.ResourceSync: 1}}, nil)
				usageRepo.EXPECT().
					CurrentDailyUsage(gomock.Any(), scope, domain.ResourceSync, referenceTime).
					Return(int64(0), nil)
			},
			expected: true,
		},
		{
			name: "Recurso sem teto configurado é ilimitado e não consulta o uso",
			setup: func(usageRepo *mocks.MockUsageLogRepository, quotaRepo *mocks.MockQuotaRepository) {
				quotaRepo.EXPECT().
					GetByOrganization(gomock.Any(), scope, "org-1").
					Return(&domain.Quota{Limits: map[domain.ResourceType]int64{domain.ResourceAPICall: 1000}}, nil)
			},
			expected: true,
		},
		{
			name: "Organização sem quota cadastrada é ilimitada",
			setup: func(usageRepo *mocks.MockUsageLogRepository, quotaRepo *mocks.MockQuotaRepository) {
				quotaRepo.EXPECT().
					GetByOrganization(gomock.Any(), scope, "org-1").
					Return(nil, nil)
			},
			expected: true,
		},
		{
			name: "Erro ao consultar quota deve propagar",
			setup: func(usageRepo *mocks.MockUsageLogRepository, quotaRepo *mocks.MockQuotaRepository) {
				quotaRepo.EXPECT().
					GetByOrganization(gomock.Any(), scope, "org-1").
					Return(nil, errors.New("connection refused"))
			},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, usageRepo, quotaRepo := newMeterService(ctrl)
			tt.setup(usageRepo, quotaRepo)

			allowed, err := service.IsWithinQuota(context.Background(), scope, domain.ResourceSync)

			if tt.hasError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, allowed)
		})
	}
}

func TestService_RecordUsage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, usageRepo, _ := newMeterService(ctrl)
	scope := domain.TenantScope("org-1")

	usageRepo.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *domain.UsageLog) error {
			assert.NotEmpty(t, entry.ID)
			assert.Equal(t, "org-1", entry.OrganizationID)
			assert.Equal(t, domain.ResourceSync, entry.Resource)
			assert.Equal(t, int64(1), entry.Count)
			assert.Equal(t, referenceTime, entry.Date)
			assert.Equal(t, "meta_ads", entry.Metadata["platform"])
			return nil
		})

	err := service.RecordUsage(context.Background(), scope, domain.ResourceSync, 1, map[string]string{"platform": "meta_ads"})
	assert.NoError(t, err)
}

func TestService_DailyUsage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, usageRepo, quotaRepo := newMeterService(ctrl)
	scope := domain.TenantScope("org-1")

	usageRepo.EXPECT().
		DailyBreakdown(gomock.Any(), scope, referenceTime).
		Return(map[domain.ResourceType]int64{
			domain.ResourceSync:    3,
			domain.ResourceAPICall: 120,
		}, nil)

	quotaRepo.EXPECT().
		GetByOrganization(gomock.Any(), scope, "org-1").
		Return(&domain.Quota{
			OrganizationID: "org-1",
			PlanTier:       "pro",
			Limits:         map[domain.ResourceType]int64{domain.ResourceSync: 10},
		}, nil)

	summary, err := service.DailyUsage(context.Background(), scope)

	assert.NoError(t, err)
	assert.Equal(t, referenceTime, summary.Date)
	assert.Equal(t, int64(3), summary.Usage[domain.ResourceSync])
	assert.Equal(t, int64(120), summary.Usage[domain.ResourceAPICall])
	assert.Equal(t, int64(10), summary.Limits[domain.ResourceSync])
	assert.Equal(t, "pro", summary.PlanTier)
}

func TestService_DailyUsage_SemQuotaCadastrada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, usageRepo, quotaRepo := newMeterService(ctrl)
	scope := domain.TenantScope("org-1")

	usageRepo.EXPECT().
		DailyBreakdown(gomock.Any(), scope, referenceTime).
		Return(map[domain.ResourceType]int64{}, nil)

	quotaRepo.EXPECT().
		GetByOrganization(gomock.Any(), scope, "org-1").
		Return(nil, nil)

	summary, err := service.DailyUsage(context.Background(), scope)

	assert.NoError(t, err)
	assert.Empty(t, summary.Limits)
	assert.Empty(t, summary.PlanTier)
}
