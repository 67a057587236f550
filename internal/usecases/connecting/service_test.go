package connecting

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

var referenceTime = time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

type connectServiceMocks struct {
	credentialRepo *mocks.MockCredentialRepository
	channelRepo    *mocks.MockChannelRepository
	metricRepo     *mocks.MockDailyMetricRepository
}

func newConnectService(ctrl *gomock.Controller) (*Service, *connectServiceMocks) {
	m := &connectServiceMocks{
		credentialRepo: mocks.NewMockCredentialRepository(ctrl),
		channelRepo:    mocks.NewMockChannelRepository(ctrl),
		metricRepo:     mocks.NewMockDailyMetricRepository(ctrl),
	}

	service := &Service{
		credentialRepo: m.credentialRepo,
		channelRepo:    m.channelRepo,
		metricRepo:     m.metricRepo,
		now:            func() time.Time { return referenceTime },
	}

	return service, m
}

func validPayload() domain.CredentialPayload {
	return domain.CredentialPayload{
		AccessToken: "token",
		Accounts: []domain.CredentialAccount{
			{ID: "act_123", Name: "Loja A"},
			{ID: "act_456", Name: "Loja B"},
		},
	}
}

func TestService_SaveCredential(t *testing.T) {
	scope := domain.TenantScope("org-1")

	tests := []struct {
		name     string
		platform domain.Platform
		payload  domain.CredentialPayload
		setup    func(m *connectServiceMocks)
		expected error
	}{
		{
			name:     "Plataforma desconhecida deve ser rejeitada",
			platform: domain.Platform("orkut_ads"),
			payload:  validPayload(),
			setup:    func(m *connectServiceMocks) {},
			expected: ErrUnsupportedPlatform,
		},
		{
			name:     "Payload sem token deve ser rejeitado",
			platform: domain.PlatformMetaAds,
			payload:  domain.CredentialPayload{Accounts: []domain.CredentialAccount{{ID: "act_123"}}},
			setup:    func(m *connectServiceMocks) {},
			expected: ErrInvalidPayload,
		},
		{
			name:     "Payload sem contas deve ser rejeitado",
			platform: domain.PlatformMetaAds,
			payload:  domain.CredentialPayload{AccessToken: "token"},
			setup:    func(m *connectServiceMocks) {},
			expected: ErrInvalidPayload,
		},
		{
			name:     "Credencial válida deve materializar um canal por conta",
			platform: domain.PlatformMetaAds,
			payload:  validPayload(),
			setup: func(m *connectServiceMocks) {
				m.credentialRepo.EXPECT().
					SaveOrUpdate(gomock.Any(), scope, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ domain.Scope, credential *domain.Credential) error {
						// O id é a chave primária da tabela: tem que chegar
						// preenchido ao INSERT.
						assert.NotEmpty(t, credential.ID)
						assert.Equal(t, "org-1", credential.OrganizationID)
						assert.True(t, credential.Active)
						assert.Equal(t, referenceTime, credential.CreatedAt)
						return nil
					})
				m.channelRepo.EXPECT().
					GetOrCreate(gomock.Any(), scope, domain.PlatformMetaAds, "act_123").
					Return(&domain.Channel{ID: "ch-1"}, nil)
				m.channelRepo.EXPECT().
					GetOrCreate(gomock.Any(), scope, domain.PlatformMetaAds, "act_456").
					Return(&domain.Channel{ID: "ch-2"}, nil)
			},
		},
		{
			name:     "Falha ao materializar um canal não falha a conexão",
			platform: domain.PlatformMetaAds,
			payload:  validPayload(),
			setup: func(m *connectServiceMocks) {
				m.credentialRepo.EXPECT().
					SaveOrUpdate(gomock.Any(), scope, gomock.Any()).
					Return(nil)
				m.channelRepo.EXPECT().
					GetOrCreate(gomock.Any(), scope, domain.PlatformMetaAds, "act_123").
					Return(nil, errors.New("deadlock detected"))
				m.channelRepo.EXPECT().
					GetOrCreate(gomock.Any(), scope, domain.PlatformMetaAds, "act_456").
					Return(&domain.Channel{ID: "ch-2"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newConnectService(ctrl)
			tt.setup(m)

			credential, err := service.SaveCredential(context.Background(), scope, tt.platform, tt.payload)

			if tt.expected != nil {
				assert.Nil(t, credential)
				assert.ErrorIs(t, err, tt.expected)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, credential)
			assert.NotEmpty(t, credential.ID)
		})
	}
}

func TestService_Disconnect(t *testing.T) {
	scope := domain.TenantScope("org-1")

	tests := []struct {
		name     string
		setup    func(m *connectServiceMocks)
		expected error
	}{
		{
			name: "Sem credencial ativa deve retornar não encontrada",
			setup: func(m *connectServiceMocks) {
				m.credentialRepo.EXPECT().
					GetActive(gomock.Any(), scope, domain.PlatformMetaAds).
					Return(nil, nil)
			},
			expected: ErrCredentialNotFound,
		},
		{
			name: "Desconectar deve desativar credencial e canais da plataforma",
			setup: func(m *connectServiceMocks) {
				m.credentialRepo.EXPECT().
					GetActive(gomock.Any(), scope, domain.PlatformMetaAds).
					Return(&domain.Credential{ID: "cred-1", Active: true}, nil)
				m.credentialRepo.EXPECT().
					Deactivate(gomock.Any(), scope, domain.PlatformMetaAds).
					Return(nil)
				m.channelRepo.EXPECT().
					DeactivateByPlatform(gomock.Any(), scope, domain.PlatformMetaAds).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newConnectService(ctrl)
			tt.setup(m)

			err := service.Disconnect(context.Background(), scope, domain.PlatformMetaAds)

			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_GetChannelMetrics(t *testing.T) {
	scope := domain.TenantScope("org-1")

	t.Run("Canal inexistente deve retornar não encontrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newConnectService(ctrl)

		m.channelRepo.EXPECT().
			GetByID(gomock.Any(), scope, "ch-404").
			Return(nil, nil)

		metrics, err := service.GetChannelMetrics(context.Background(), scope, "ch-404", domain.MetricFilters{})

		assert.Nil(t, metrics)
		assert.ErrorIs(t, err, ErrChannelNotFound)
	})

	t.Run("Sem filtro de datas deve aplicar a janela padrão de 30 dias", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newConnectService(ctrl)

		m.channelRepo.EXPECT().
			GetByID(gomock.Any(), scope, "ch-1").
			Return(&domain.Channel{ID: "ch-1"}, nil)

		m.metricRepo.EXPECT().
			GetByChannelAndRange(gomock.Any(), scope, "ch-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Scope, _ string, filters domain.MetricFilters) ([]*domain.DailyMetric, error) {
				window := domain.TrailingWindow(30, referenceTime)
				assert.Equal(t, window.Since, *filters.StartDate)
				assert.Equal(t, window.Until, *filters.EndDate)
				return []*domain.DailyMetric{{ChannelID: "ch-1"}}, nil
			})

		metrics, err := service.GetChannelMetrics(context.Background(), scope, "ch-1", domain.MetricFilters{})

		assert.NoError(t, err)
		assert.Len(t, metrics, 1)
	})

	t.Run("Filtro explícito de datas deve ser preservado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newConnectService(ctrl)

		startDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		endDate := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
		filters := domain.MetricFilters{StartDate: &startDate, EndDate: &endDate}

		m.channelRepo.EXPECT().
			GetByID(gomock.Any(), scope, "ch-1").
			Return(&domain.Channel{ID: "ch-1"}, nil)

		m.metricRepo.EXPECT().
			GetByChannelAndRange(gomock.Any(), scope, "ch-1", filters).
			Return([]*domain.DailyMetric{}, nil)

		_, err := service.GetChannelMetrics(context.Background(), scope, "ch-1", filters)

		assert.NoError(t, err)
	})
}
