package syncing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adsight/adsight-api/infrastructure/integrator"
	integratormocks "github.com/adsight/adsight-api/infrastructure/integrator/mocks"
	"github.com/adsight/adsight-api/infrastructure/repository/mocks"
	"github.com/adsight/adsight-api/internal/config"
	"github.com/adsight/adsight-api/internal/domain"
	meteringmocks "github.com/adsight/adsight-api/internal/usecases/metering/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var referenceTime = time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

type syncServiceMocks struct {
	credentialRepo *mocks.MockCredentialRepository
	channelRepo    *mocks.MockChannelRepository
	metricRepo     *mocks.MockDailyMetricRepository
	syncJobRepo    *mocks.MockSyncJobRepository
	connector      *integratormocks.MockConnector
	meter          *meteringmocks.MockMeter
}

func newSyncService(ctrl *gomock.Controller) (*Service, *syncServiceMocks) {
	m := &syncServiceMocks{
		credentialRepo: mocks.NewMockCredentialRepository(ctrl),
		channelRepo:    mocks.NewMockChannelRepository(ctrl),
		metricRepo:     mocks.NewMockDailyMetricRepository(ctrl),
		syncJobRepo:    mocks.NewMockSyncJobRepository(ctrl),
		connector:      integratormocks.NewMockConnector(ctrl),
		meter:          meteringmocks.NewMockMeter(ctrl),
	}

	m.connector.EXPECT().Platform().Return(domain.PlatformMetaAds).AnyTimes()

	service := &Service{
		credentialRepo: m.credentialRepo,
		channelRepo:    m.channelRepo,
		metricRepo:     m.metricRepo,
		syncJobRepo:    m.syncJobRepo,
		connectors:     integrator.NewRegistry(m.connector),
		meter:          m.meter,
		cfg:            &config.Config{Sync: config.Sync{LookbackDays: 30}},
		now:            func() time.Time { return referenceTime },
	}

	return service, m
}

func validCredential() *domain.Credential {
	return &domain.Credential{
		ID:             "cred-1",
		OrganizationID: "org-1",
		Platform:       domain.PlatformMetaAds,
		Payload: domain.CredentialPayload{
			AccessToken: "token",
			Accounts:    []domain.CredentialAccount{{ID: "act_123"}},
		},
		Active: true,
	}
}

func rawRecord(day int) domain.RawInsight {
	return domain.RawInsight{
		ExternalAccountID: "act_123",
		Date:              time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC),
		Spend:             100.0,
		Impressions:       1000,
		Clicks:            50,
		ActionValues:      []domain.RawAction{{Type: "purchase", Value: 250.0}},
		Actions:           []domain.RawAction{{Type: "purchase", Value: 5}},
	}
}

func TestService_SyncPlatform_PreCondicoes(t *testing.T) {
	scope := domain.TenantScope("org-1")

	tests := []struct {
		name     string
		platform domain.Platform
		setup    func(m *syncServiceMocks)
		expected error
	}{
		{
			name:     "Plataforma desconhecida deve falhar sem consultar nada",
			platform: domain.Platform("orkut_ads"),
			setup:    func(m *syncServiceMocks) {},
			expected: ErrUnsupportedPlatform,
		},
		{
			name:     "Plataforma sem conector registrado deve falhar",
			platform: domain.PlatformGoogleAds,
			setup:    func(m *syncServiceMocks) {},
			expected: ErrUnsupportedPlatform,
		},
		{
			name:     "Quota excedida deve falhar antes de tocar credencial ou upstream",
			platform: domain.PlatformMetaAds,
			setup: func(m *syncServiceMocks) {
				m.meter.EXPECT().
					IsWithinQuota(gomock.Any(), scope, domain.ResourceSync).
					Return(false, nil)
			},
			expected: ErrQuotaExceeded,
		},
		{
			name:     "Credencial ausente deve falhar sem criar job",
			platform: domain.PlatformMetaAds,
			setup: func(m *syncServiceMocks) {
				m.meter.EXPECT().
					IsWithinQuota(gomock.Any(), scope, domain.ResourceSync).
					Return(true, nil)
				m.credentialRepo.EXPECT().
					GetActive(gomock.Any(), scope, domain.PlatformMetaAds).
					Return(nil, nil)
			},
			expected: ErrCredentialMissing,
		},
		{
			name:     "Credencial sem token deve falhar sem criar job",
			platform: domain.PlatformMetaAds,
			setup: func(m *syncServiceMocks) {
				m.meter.EXPECT().
					IsWithinQuota(gomock.Any(), scope, domain.ResourceSync).
					Return(true, nil)
				m.credentialRepo.EXPECT().
					GetActive(gomock.Any(), scope, domain.PlatformMetaAds).
					Return(&domain.Credential{Payload: domain.CredentialPayload{}}, nil)
			},
			expected: ErrCredentialInvalid,
		},
		{
			name:     "Sincronização já em andamento deve falhar sem criar job",
			platform: domain.PlatformMetaAds,
			setup: func(m *syncServiceMocks) {
				m.meter.EXPECT().
					IsWithinQuota(gomock.Any(), scope, domain.ResourceSync).
					Return(true, nil)
				m.credentialRepo.EXPECT().
					GetActive(gomock.Any(), scope, domain.PlatformMetaAds).
					Return(validCredential(), nil)
				m.syncJobRepo.EXPECT().
					HasActiveJob(gomock.Any(), scope, domain.PlatformMetaAds).
					Return(true, nil)
			},
			expected: ErrSyncAlreadyRunning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newSyncService(ctrl)
			tt.setup(m)

			result, err := service.SyncPlatform(context.Background(), scope, tt.platform)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestService_SyncPlatform_FalhaDeUpstreamMarcaJobComoFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	scope := domain.TenantScope("org-1")

	upstreamErr := integrator.ClassifyStatus(domain.PlatformMetaAds, 503, "service unavailable")

	m.meter.EXPECT().IsWithinQuota(gomock.Any(), scope, domain.ResourceSync).Return(true, nil)
	m.credentialRepo.EXPECT().GetActive(gomock.Any(), scope, domain.PlatformMetaAds).Return(validCredential(), nil)
	m.syncJobRepo.EXPECT().HasActiveJob(gomock.Any(), scope, domain.PlatformMetaAds).Return(false, nil)

	var jobID string
	m.syncJobRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *domain.SyncJob) error {
			jobID = job.ID
			assert.Equal(t, "org-1", job.OrganizationID)
			assert.Equal(t, domain.PlatformMetaAds, job.Platform)
			assert.Equal(t, referenceTime, job.StartedAt)
			return nil
		})
	m.syncJobRepo.EXPECT().MarkRunning(gomock.Any(), gomock.Any()).Return(nil)

	m.connector.EXPECT().
		FetchInsights(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, upstreamErr)

	m.syncJobRepo.EXPECT().
		MarkFailed(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, failedID, message string) error {
			assert.Equal(t, jobID, failedID)
			assert.Contains(t, message, "503")
			return nil
		})

	result, err := service.SyncPlatform(context.Background(), scope, domain.PlatformMetaAds)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, integrator.ErrUpstreamUnavailable)
}

func TestService_SyncPlatform_JanelaRetroativa(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	scope := domain.TenantScope("org-1")

	m.meter.EXPECT().IsWithinQuota(gomock.Any(), scope, domain.ResourceSync).Return(true, nil)
	m.credentialRepo.EXPECT().GetActive(gomock.Any(), scope, domain.PlatformMetaAds).Return(validCredential(), nil)
	m.syncJobRepo.EXPECT().HasActiveJob(gomock.Any(), scope, domain.PlatformMetaAds).Return(false, nil)
	m.syncJobRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.syncJobRepo.EXPECT().MarkRunning(gomock.Any(), gomock.Any()).Return(nil)

	m.connector.EXPECT().
		FetchInsights(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.Credential, window domain.DateRange) ([]domain.RawInsight, error) {
			// Janela de 30 dias terminando ontem (referência: 16 de junho).
			assert.Equal(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), window.Until)
			assert.Equal(t, time.Date(2025, 5, 17, 12, 0, 0, 0, time.UTC), window.Since)
			return nil, nil
		})

	m.syncJobRepo.EXPECT().MarkCompleted(gomock.Any(), gomock.Any(), 0).Return(nil)
	m.credentialRepo.EXPECT().TouchLastSynced(gomock.Any(), scope, domain.PlatformMetaAds, referenceTime).Return(nil)
	m.meter.EXPECT().RecordUsage(gomock.Any(), scope, domain.ResourceSync, int64(1), gomock.Any()).Return(nil)

	result, err := service.SyncPlatform(context.Background(), scope, domain.PlatformMetaAds)

	// Busca vazia não é erro: o job fecha como completed com zero registros.
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.RecordsSynced)
	assert.Equal(t, 0, result.RecordsSkipped)
}

func TestService_SyncPlatform_PersistenciaParcial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	scope := domain.TenantScope("org-1")

	invalid := rawRecord(10)
	invalid.Date = time.Time{} // descartado na normalização

	rawRecords := []domain.RawInsight{rawRecord(10), rawRecord(11), invalid}

	m.meter.EXPECT().IsWithinQuota(gomock.Any(), scope, domain.ResourceSync).Return(true, nil)
	m.credentialRepo.EXPECT().GetActive(gomock.Any(), scope, domain.PlatformMetaAds).Return(validCredential(), nil)
	m.syncJobRepo.EXPECT().HasActiveJob(gomock.Any(), scope, domain.PlatformMetaAds).Return(false, nil)
	m.syncJobRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.syncJobRepo.EXPECT().MarkRunning(gomock.Any(), gomock.Any()).Return(nil)

	m.connector.EXPECT().
		FetchInsights(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(rawRecords, nil)

	// O canal é resolvido uma única vez para os registros da mesma conta.
	m.channelRepo.EXPECT().
		GetOrCreate(gomock.Any(), scope, domain.PlatformMetaAds, "act_123").
		Return(&domain.Channel{ID: "ch-1", ExternalAccountID: "act_123"}, nil).
		Times(1)

	m.metricRepo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, metric *domain.DailyMetric) error {
			assert.Equal(t, "ch-1", metric.ChannelID)
			assert.Equal(t, 250.0, metric.Revenue)
			assert.Equal(t, int64(5), metric.Conversions)
			return nil
		}).
		Times(2)

	m.syncJobRepo.EXPECT().MarkCompleted(gomock.Any(), gomock.Any(), 2).Return(nil)
	m.credentialRepo.EXPECT().TouchLastSynced(gomock.Any(), scope, domain.PlatformMetaAds, referenceTime).Return(nil)

	m.meter.EXPECT().
		RecordUsage(gomock.Any(), scope, domain.ResourceSync, int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Scope, _ domain.ResourceType, _ int64, metadata map[string]string) error {
			assert.Equal(t, "meta_ads", metadata["platform"])
			assert.NotEmpty(t, metadata["job_id"])
			return nil
		}).
		Times(1)

	result, err := service.SyncPlatform(context.Background(), scope, domain.PlatformMetaAds)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.RecordsSynced)
	assert.Equal(t, 1, result.RecordsSkipped)
	assert.NotEmpty(t, result.JobID)
}

func TestService_SyncPlatform_CenarioCompleto(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	scope := domain.TenantScope("org-1")

	// Três dias com gasto [100, 0, 50] e receita [400, 0, 100].
	rawRecords := []domain.RawInsight{
		{
			ExternalAccountID: "act_123",
			Date:              time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			Spend:             100.0,
			Impressions:       1000,
			Clicks:            50,
			ActionValues:      []domain.RawAction{{Type: "purchase", Value: 400.0}},
		},
		{
			ExternalAccountID: "act_123",
			Date:              time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
			Spend:             0,
			Impressions:       0,
			Clicks:            0,
		},
		{
			ExternalAccountID: "act_123",
			Date:              time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
			Spend:             50.0,
			Impressions:       800,
			Clicks:            40,
			ActionValues:      []domain.RawAction{{Type: "purchase", Value: 100.0}},
		},
	}

	m.meter.EXPECT().IsWithinQuota(gomock.Any(), scope, domain.ResourceSync).Return(true, nil)
	m.credentialRepo.EXPECT().GetActive(gomock.Any(), scope, domain.PlatformMetaAds).Return(validCredential(), nil)
	m.syncJobRepo.EXPECT().HasActiveJob(gomock.Any(), scope, domain.PlatformMetaAds).Return(false, nil)
	m.syncJobRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.syncJobRepo.EXPECT().MarkRunning(gomock.Any(), gomock.Any()).Return(nil)

	m.connector.EXPECT().
		FetchInsights(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(rawRecords, nil)

	m.channelRepo.EXPECT().
		GetOrCreate(gomock.Any(), scope, domain.PlatformMetaAds, "act_123").
		Return(&domain.Channel{ID: "ch-1"}, nil)

	var roas []float64
	m.metricRepo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, metric *domain.DailyMetric) error {
			roas = append(roas, metric.ROAS)
			return nil
		}).
		Times(3)

	m.syncJobRepo.EXPECT().MarkCompleted(gomock.Any(), gomock.Any(), 3).Return(nil)
	m.credentialRepo.EXPECT().TouchLastSynced(gomock.Any(), scope, domain.PlatformMetaAds, referenceTime).Return(nil)
	m.meter.EXPECT().RecordUsage(gomock.Any(), scope, domain.ResourceSync, int64(1), gomock.Any()).Return(nil)

	result, err := service.SyncPlatform(context.Background(), scope, domain.PlatformMetaAds)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.RecordsSynced)
	assert.Equal(t, 0, result.RecordsSkipped)
	assert.Equal(t, []float64{4.0, 0, 2.0}, roas)
}

func TestService_SyncPlatform_NenhumRegistroNormalizavel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	scope := domain.TenantScope("org-1")

	first := rawRecord(10)
	first.Date = time.Time{}
	second := rawRecord(11)
	second.Spend = -10.0

	m.meter.EXPECT().IsWithinQuota(gomock.Any(), scope, domain.ResourceSync).Return(true, nil)
	m.credentialRepo.EXPECT().GetActive(gomock.Any(), scope, domain.PlatformMetaAds).Return(validCredential(), nil)
	m.syncJobRepo.EXPECT().HasActiveJob(gomock.Any(), scope, domain.PlatformMetaAds).Return(false, nil)
	m.syncJobRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.syncJobRepo.EXPECT().MarkRunning(gomock.Any(), gomock.Any()).Return(nil)

	m.connector.EXPECT().
		FetchInsights(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.RawInsight{first, second}, nil)

	m.syncJobRepo.EXPECT().
		MarkFailed(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, message string) error {
			assert.Contains(t, message, "2")
			return nil
		})

	result, err := service.SyncPlatform(context.Background(), scope, domain.PlatformMetaAds)

	// Lote inteiro descartado indica problema sistêmico, não registros ruins
	// isolados: o job falha em vez de completar com zero.
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestService_SyncPlatform_FalhaDeUpsertNaoAbortaLote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	scope := domain.TenantScope("org-1")

	m.meter.EXPECT().IsWithinQuota(gomock.Any(), scope, domain.ResourceSync).Return(true, nil)
	m.credentialRepo.EXPECT().GetActive(gomock.Any(), scope, domain.PlatformMetaAds).Return(validCredential(), nil)
	m.syncJobRepo.EXPECT().HasActiveJob(gomock.Any(), scope, domain.PlatformMetaAds).Return(false, nil)
	m.syncJobRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.syncJobRepo.EXPECT().MarkRunning(gomock.Any(), gomock.Any()).Return(nil)

	m.connector.EXPECT().
		FetchInsights(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.RawInsight{rawRecord(10), rawRecord(11)}, nil)

	m.channelRepo.EXPECT().
		GetOrCreate(gomock.Any(), scope, domain.PlatformMetaAds, "act_123").
		Return(&domain.Channel{ID: "ch-1"}, nil)

	gomock.InOrder(
		m.metricRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected")),
		m.metricRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil),
	)

	m.syncJobRepo.EXPECT().MarkCompleted(gomock.Any(), gomock.Any(), 1).Return(nil)
	m.credentialRepo.EXPECT().TouchLastSynced(gomock.Any(), scope, domain.PlatformMetaAds, referenceTime).Return(nil)
	m.meter.EXPECT().RecordUsage(gomock.Any(), scope, domain.ResourceSync, int64(1), gomock.Any()).Return(nil)

	result, err := service.SyncPlatform(context.Background(), scope, domain.PlatformMetaAds)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.RecordsSynced)
	assert.Equal(t, 1, result.RecordsSkipped)
}

func TestService_SyncPlatform_CancelamentoMarcaJobComoFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)
	scope := domain.TenantScope("org-1")

	ctx, cancel := context.WithCancel(context.Background())

	m.meter.EXPECT().IsWithinQuota(gomock.Any(), scope, domain.ResourceSync).Return(true, nil)
	m.credentialRepo.EXPECT().GetActive(gomock.Any(), scope, domain.PlatformMetaAds).Return(validCredential(), nil)
	m.syncJobRepo.EXPECT().HasActiveJob(gomock.Any(), scope, domain.PlatformMetaAds).Return(false, nil)
	m.syncJobRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.syncJobRepo.EXPECT().MarkRunning(gomock.Any(), gomock.Any()).Return(nil)

	m.connector.EXPECT().
		FetchInsights(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.Credential, _ domain.DateRange) ([]domain.RawInsight, error) {
			cancel() // o chamador desiste no meio da busca
			return []domain.RawInsight{rawRecord(10)}, nil
		})

	// MarkFailed recebe um contexto novo porque o do chamador já morreu.
	m.syncJobRepo.EXPECT().
		MarkFailed(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(failCtx context.Context, _, _ string) error {
			assert.NoError(t, failCtx.Err())
			return nil
		})

	result, err := service.SyncPlatform(ctx, scope, domain.PlatformMetaAds)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}
