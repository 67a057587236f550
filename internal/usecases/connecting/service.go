package connecting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adsight/adsight-api/infrastructure/repository"
	"github.com/adsight/adsight-api/internal/domain"
	"github.com/adsight/adsight-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnsupportedPlatform = errors.New("plataforma não suportada")
	ErrInvalidPayload      = errors.New("payload de credencial inválido: token de acesso e ao menos uma conta são obrigatórios")
	ErrCredentialNotFound  = errors.New("nenhuma credencial ativa encontrada para a plataforma")
	ErrChannelNotFound     = errors.New("canal não encontrado")
)

type Connector interface {
	SaveCredential(ctx context.Context, scope domain.Scope, platform domain.Platform, payload domain.CredentialPayload) (*domain.Credential, error)
	Disconnect(ctx context.Context, scope domain.Scope, platform domain.Platform) error
	ListChannels(ctx context.Context, scope domain.Scope) ([]*domain.Channel, error)
	GetChannelMetrics(ctx context.Context, scope domain.Scope, channelID string, filters domain.MetricFilters) ([]*domain.DailyMetric, error)
}

// Service gerencia o vínculo entre organizações e plataformas: credenciais e
// os canais derivados das contas externas que elas dão acesso.
type Service struct {
	credentialRepo repository.CredentialRepository
	channelRepo    repository.ChannelRepository
	metricRepo     repository.DailyMetricRepository
	now            func() time.Time
}

func NewService(
	credentialRepo repository.CredentialRepository,
	channelRepo repository.ChannelRepository,
	metricRepo repository.DailyMetricRepository,
) *Service {
	return &Service{
		credentialRepo: credentialRepo,
		channelRepo:    channelRepo,
		metricRepo:     metricRepo,
		now:            time.Now,
	}
}

// SaveCredential grava ou substitui a credencial ativa da plataforma e
// materializa um canal para cada conta externa declarada no payload.
func (s *Service) SaveCredential(ctx context.Context, scope domain.Scope, platform domain.Platform, payload domain.CredentialPayload) (*domain.Credential, error) {
	if !platform.IsValid() {
		return nil, ErrUnsupportedPlatform
	}
	if !payload.Valid() {
		return nil, ErrInvalidPayload
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id de credencial: %w", err)
	}

	credential := &domain.Credential{
		ID:             id,
		OrganizationID: scope.OrganizationID,
		Platform:       platform,
		Payload:        payload,
		Active:         true,
		CreatedAt:      s.now(),
	}

	if err := s.credentialRepo.SaveOrUpdate(ctx, scope, credential); err != nil {
		return nil, fmt.Errorf("erro ao salvar credencial: %w", err)
	}

	for _, account := range payload.Accounts {
		if _, err := s.channelRepo.GetOrCreate(ctx, scope, platform, account.ID); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"organization_id":     scope.OrganizationID,
				"platform":            platform,
				"external_account_id": account.ID,
			}).Error("Erro ao materializar canal da conta conectada")
		}
	}

	return credential, nil
}

// Disconnect desativa a credencial e os canais da plataforma. Métricas já
// ingeridas permanecem consultáveis.
func (s *Service) Disconnect(ctx context.Context, scope domain.Scope, platform domain.Platform) error {
	if !platform.IsValid() {
		return ErrUnsupportedPlatform
	}

	credential, err := s.credentialRepo.GetActive(ctx, scope, platform)
	if err != nil {
		return fmt.Errorf("erro ao buscar credencial: %w", err)
	}
	if credential == nil {
		return ErrCredentialNotFound
	}

	if err := s.credentialRepo.Deactivate(ctx, scope, platform); err != nil {
		return fmt.Errorf("erro ao desativar credencial: %w", err)
	}

	if err := s.channelRepo.DeactivateByPlatform(ctx, scope, platform); err != nil {
		return fmt.Errorf("erro ao desativar canais da plataforma: %w", err)
	}

	return nil
}

func (s *Service) ListChannels(ctx context.Context, scope domain.Scope) ([]*domain.Channel, error) {
	channels, err := s.channelRepo.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar canais: %w", err)
	}
	return channels, nil
}

// GetChannelMetrics retorna a série diária do canal. O intervalo padrão é a
// janela dos últimos 30 dias quando o filtro não define datas.
func (s *Service) GetChannelMetrics(ctx context.Context, scope domain.Scope, channelID string, filters domain.MetricFilters) ([]*domain.DailyMetric, error) {
	channel, err := s.channelRepo.GetByID(ctx, scope, channelID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar canal: %w", err)
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}

	if filters.StartDate == nil && filters.EndDate == nil {
		window := domain.TrailingWindow(30, s.now())
		filters.StartDate = &window.Since
		filters.EndDate = &window.Until
	}

	metrics, err := s.metricRepo.GetByChannelAndRange(ctx, scope, channelID, filters)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar métricas do canal: %w", err)
	}
	return metrics, nil
}
