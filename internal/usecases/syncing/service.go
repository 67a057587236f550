package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/adsight/adsight-api/infrastructure/integrator"
	"github.com/adsight/adsight-api/infrastructure/repository"
	"github.com/adsight/adsight-api/internal/config"
	"github.com/adsight/adsight-api/internal/domain"
	"github.com/adsight/adsight-api/internal/usecases/metering"
	"github.com/adsight/adsight-api/internal/usecases/normalizing"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Result resume uma sincronização bem-sucedida.
type Result struct {
	Success        bool   `json:"success"`
	JobID          string `json:"syncJobId"`
	RecordsSynced  int    `json:"recordsSynced"`
	RecordsSkipped int    `json:"recordsSkipped,omitempty"`
}

type Syncer interface {
	SyncPlatform(ctx context.Context, scope domain.Scope, platform domain.Platform) (*Result, error)
}

// Service orquestra o pipeline de ingestão: credencial -> conector ->
// normalização -> upsert -> fechamento do job. Falhas de upstream e de
// armazenamento são capturadas aqui, marcam o job como failed e retornam
// tipadas ao chamador; nunca são engolidas.
type Service struct {
	credentialRepo repository.CredentialRepository
	channelRepo    repository.ChannelRepository
	metricRepo     repository.DailyMetricRepository
	syncJobRepo    repository.SyncJobRepository
	connectors     *integrator.Registry
	meter          metering.Meter
	cfg            *config.Config
	now            func() time.Time
}

func NewService(
	credentialRepo repository.CredentialRepository,
	channelRepo repository.ChannelRepository,
	metricRepo repository.DailyMetricRepository,
	syncJobRepo repository.SyncJobRepository,
	connectors *integrator.Registry,
	meter metering.Meter,
	cfg *config.Config,
) *Service {
	return &Service{
		credentialRepo: credentialRepo,
		channelRepo:    channelRepo,
		metricRepo:     metricRepo,
		syncJobRepo:    syncJobRepo,
		connectors:     connectors,
		meter:          meter,
		cfg:            cfg,
		now:            time.Now,
	}
}

func (s *Service) SyncPlatform(ctx context.Context, scope domain.Scope, platform domain.Platform) (*Result, error) {
	logger := logrus.WithFields(logrus.Fields{
		"organization_id": scope.OrganizationID,
		"platform":        platform,
	})

	if !platform.IsValid() {
		return nil, ErrUnsupportedPlatform
	}

	connector, ok := s.connectors.Lookup(platform)
	if !ok {
		return nil, ErrUnsupportedPlatform
	}

	// A quota é verificada antes de qualquer chamada externa para não
	// gastar rate limit do upstream com trabalho que será rejeitado.
	withinQuota, err := s.meter.IsWithinQuota(ctx, scope, domain.ResourceSync)
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar quota: %w", err)
	}
	if !withinQuota {
		return nil, ErrQuotaExceeded
	}

	credential, err := s.credentialRepo.GetActive(ctx, scope, platform)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar credencial: %w", err)
	}
	if credential == nil {
		return nil, ErrCredentialMissing
	}
	if !credential.Payload.Valid() {
		return nil, ErrCredentialInvalid
	}

	// Serializa sincronizações do mesmo par (organização, plataforma). O
	// upsert por (channel, date) já é atômico; isto evita apenas trabalho
	// duplicado.
	hasActive, err := s.syncJobRepo.HasActiveJob(ctx, scope, platform)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar jobs ativos: %w", err)
	}
	if hasActive {
		return nil, ErrSyncAlreadyRunning
	}

	job := &domain.SyncJob{
		ID:             uuid.New().String(),
		OrganizationID: scope.OrganizationID,
		Platform:       platform,
		StartedAt:      s.now(),
	}
	if err := s.syncJobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("erro ao criar sync job: %w", err)
	}
	if err := s.syncJobRepo.MarkRunning(ctx, job.ID); err != nil {
		return nil, fmt.Errorf("erro ao iniciar sync job: %w", err)
	}

	window := domain.TrailingWindow(s.cfg.Sync.LookbackDays, s.now())
	logger.WithFields(logrus.Fields{
		"job_id":     job.ID,
		"start_date": window.Since.Format(time.DateOnly),
		"end_date":   window.Until.Format(time.DateOnly),
	}).Info("Iniciando sincronização de insights")

	rawRecords, err := connector.FetchInsights(ctx, credential, window)
	if err != nil {
		s.failJob(ctx, job.ID, err.Error())
		return nil, err
	}

	persisted, skipped := s.persistRecords(ctx, scope, platform, rawRecords)

	if ctx.Err() != nil {
		s.failJob(ctx, job.ID, "sincronização cancelada pelo chamador")
		return nil, ctx.Err()
	}

	if persisted == 0 && len(rawRecords) > 0 {
		message := fmt.Sprintf("nenhum dos %d registros pôde ser normalizado", len(rawRecords))
		s.failJob(ctx, job.ID, message)
		return nil, fmt.Errorf("sync %s: %s", platform, message)
	}

	if err := s.syncJobRepo.MarkCompleted(ctx, job.ID, persisted); err != nil {
		logger.WithError(err).WithField("job_id", job.ID).Error("Erro ao concluir sync job")
	}

	if err := s.credentialRepo.TouchLastSynced(ctx, scope, platform, s.now()); err != nil {
		logger.WithError(err).Warn("Erro ao atualizar last_synced_at da credencial")
	}

	metadata := map[string]string{"platform": platform.String(), "job_id": job.ID}
	if err := s.meter.RecordUsage(ctx, scope, domain.ResourceSync, 1, metadata); err != nil {
		logger.WithError(err).Warn("Erro ao registrar unidade de consumo da sincronização")
	}

	logger.WithFields(logrus.Fields{
		"job_id":          job.ID,
		"records_synced":  persisted,
		"records_skipped": skipped,
	}).Info("Sincronização concluída")

	return &Result{Success: true, JobID: job.ID, RecordsSynced: persisted, RecordsSkipped: skipped}, nil
}

// persistRecords normaliza e grava o lote. Falhas por registro (normalização
// ou upsert) não abortam o lote: o registro é pulado e contado.
func (s *Service) persistRecords(ctx context.Context, scope domain.Scope, platform domain.Platform, rawRecords []domain.RawInsight) (persisted, skipped int) {
	channelCache := make(map[string]*domain.Channel)

	for _, raw := range rawRecords {
		if ctx.Err() != nil {
			return persisted, skipped
		}

		metric, err := normalizing.Normalize(raw)
		if err != nil {
			skipped++
			logrus.WithError(err).WithFields(logrus.Fields{
				"platform":            platform,
				"external_account_id": raw.ExternalAccountID,
			}).Warn("Registro bruto descartado na normalização")
			continue
		}

		channel, ok := channelCache[raw.ExternalAccountID]
		if !ok {
			channel, err = s.channelRepo.GetOrCreate(ctx, scope, platform, raw.ExternalAccountID)
			if err != nil {
				skipped++
				logrus.WithError(err).WithField("external_account_id", raw.ExternalAccountID).
					Error("Erro ao resolver canal, registro descartado")
				continue
			}
			channelCache[raw.ExternalAccountID] = channel
		}

		metric.ChannelID = channel.ID
		if err := s.metricRepo.Upsert(ctx, &metric); err != nil {
			skipped++
			logrus.WithError(err).WithFields(logrus.Fields{
				"channel_id": channel.ID,
				"date":       metric.Date.Format(time.DateOnly),
			}).Error("Erro ao gravar métrica diária, registro descartado")
			continue
		}

		persisted++
	}

	return persisted, skipped
}

// failJob marca o job como failed preservando o contexto original mesmo que
// o próprio cancelamento tenha derrubado o ctx do chamador.
func (s *Service) failJob(ctx context.Context, jobID, message string) {
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}

	if err := s.syncJobRepo.MarkFailed(ctx, jobID, message); err != nil {
		logrus.WithError(err).WithField("job_id", jobID).Error("Erro ao marcar sync job como failed")
	}
}
