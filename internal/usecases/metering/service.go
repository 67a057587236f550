package metering

import (
	"context"
	"time"

	"github.com/adsight/adsight-api/infrastructure/repository"
	"github.com/adsight/adsight-api/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Meter mede e limita o consumo diário de recursos por tenant.
//
// A verificação e o registro são duas chamadas separadas, não uma reserva
// atômica: sob rajadas concorrentes o uso pode ultrapassar ligeiramente o
// teto antes da próxima verificação observá-lo. Esse over-count é benigno e
// aceito; quem chama deve verificar IsWithinQuota ANTES da ação medida e
// registrar o uso apenas em caso de sucesso.
type Meter interface {
	IsWithinQuota(ctx context.Context, scope domain.Scope, resource domain.ResourceType) (bool, error)
	RecordUsage(ctx context.Context, scope domain.Scope, resource domain.ResourceType, count int64, metadata map[string]string) error
	DailyUsage(ctx context.Context, scope domain.Scope) (*UsageSummary, error)
}

// UsageSummary é o consumo do dia com os tetos configurados do plano.
type UsageSummary struct {
	Date     time.Time                     `json:"date"`
	Usage    map[domain.ResourceType]int64 `json:"usage"`
	Limits   map[domain.ResourceType]int64 `json:"limits,omitempty"`
	PlanTier string                        `json:"plan_tier,omitempty"`
}

type Service struct {
	usageRepo repository.UsageLogRepository
	quotaRepo repository.QuotaRepository
	now       func() time.Time
}

func NewService(usageRepo repository.UsageLogRepository, quotaRepo repository.QuotaRepository) *Service {
	return &Service{
		usageRepo: usageRepo,
		quotaRepo: quotaRepo,
		now:       time.Now,
	}
}

// IsWithinQuota retorna true enquanto o uso do dia é estritamente menor que
// o teto. Recursos sem teto configurado são ilimitados.
func (s *Service) IsWithinQuota(ctx context.Context, scope domain.Scope, resource domain.ResourceType) (bool, error) {
	quota, err := s.quotaRepo.GetByOrganization(ctx, scope, scope.OrganizationID)
	if err != nil {
		return false, err
	}

	limit, configured := quota.LimitFor(resource)
	if !configured {
		return true, nil
	}

	usage, err := s.usageRepo.CurrentDailyUsage(ctx, scope, resource, s.now())
	if err != nil {
		return false, err
	}

	return usage < limit, nil
}

// RecordUsage anexa uma unidade de consumo. Não reforça o teto.
func (s *Service) RecordUsage(ctx context.Context, scope domain.Scope, resource domain.ResourceType, count int64, metadata map[string]string) error {
	entry := &domain.UsageLog{
		ID:             uuid.New().String(),
		OrganizationID: scope.OrganizationID,
		Resource:       resource,
		Count:          count,
		Date:           s.now(),
		Metadata:       metadata,
	}

	if err := s.usageRepo.Append(ctx, entry); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"organization_id": scope.OrganizationID,
			"resource_type":   resource,
		}).Error("Erro ao registrar consumo")
		return err
	}

	return nil
}

func (s *Service) DailyUsage(ctx context.Context, scope domain.Scope) (*UsageSummary, error) {
	today := s.now()

	usage, err := s.usageRepo.DailyBreakdown(ctx, scope, today)
	if err != nil {
		return nil, err
	}

	summary := &UsageSummary{Date: today, Usage: usage}

	quota, err := s.quotaRepo.GetByOrganization(ctx, scope, scope.OrganizationID)
	if err != nil {
		return nil, err
	}
	if quota != nil {
		summary.Limits = quota.Limits
		summary.PlanTier = quota.PlanTier
	}

	return summary, nil
}
