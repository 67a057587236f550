package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/adsight/adsight-api/infrastructure/repository"
	"github.com/adsight/adsight-api/internal/config"
	"github.com/adsight/adsight-api/internal/domain"
	"github.com/adsight/adsight-api/internal/usecases/auditing"
	"github.com/adsight/adsight-api/internal/usecases/syncing"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// InsightSyncConfig representa a configuração do agendador de sincronização
type InsightSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// InsightSyncService agenda e executa a sincronização de insights de todas
// as organizações com credenciais ativas, em todas as plataformas.
type InsightSyncService struct {
	scheduler           *gocron.Scheduler
	config              InsightSyncConfig
	appConfig           *config.Config
	orgRepo             repository.OrganizationRepository
	auditor             auditing.Auditor
	syncService         syncing.Syncer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewInsightSyncService(
	orgRepo repository.OrganizationRepository,
	auditor auditing.Auditor,
	syncService syncing.Syncer,
	appConfig *config.Config,
) *InsightSyncService {
	syncConfig := InsightSyncConfig{
		CronSchedule:        appConfig.Sync.CronSchedule,
		LookbackDays:        appConfig.Sync.LookbackDays,
		RequestDelaySeconds: appConfig.Sync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.Sync.MaxConcurrentJobs,
		SyncEnabled:         appConfig.Sync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_days":         syncConfig.LookbackDays,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de insights carregada")

	return &InsightSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		appConfig:   appConfig,
		orgRepo:     orgRepo,
		auditor:     auditor,
		syncService: syncService,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *InsightSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada de insights desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de insights")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllOrganizations()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de insights: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de insights")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllOrganizations percorre todas as organizações e dispara a
// sincronização de cada plataforma suportada.
func (s *InsightSyncService) syncAllOrganizations() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de insights já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de insights para todas as organizações")

	organizations, err := s.listOrganizations()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar organizações para sincronização de insights")
		return
	}

	if len(organizations) == 0 {
		logrus.Info("Nenhuma organização encontrada para sincronização de insights")
		return
	}

	s.processOrganizations(organizations)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":      duration.String(),
		"organizations": len(organizations),
	}).Info("Sincronização de insights concluída")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// listOrganizations enumera os tenants via escopo elevado auditado; a
// sincronização em si roda com o escopo restrito de cada organização.
func (s *InsightSyncService) listOrganizations() ([]*domain.Organization, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	elevated, err := s.auditor.Elevate(ctx, "scheduler", "organization.list", "sync_all")
	if err != nil {
		return nil, err
	}

	return s.orgRepo.List(ctx, elevated)
}

// processOrganizations processa as organizações com workers limitados pelo
// semáforo; cada worker percorre as plataformas em sequência.
func (s *InsightSyncService) processOrganizations(organizations []*domain.Organization) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, organization := range organizations {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(org *domain.Organization) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			s.syncOrganization(org)
		}(organization)
	}

	wg.Wait()
}

// syncOrganization sincroniza todas as plataformas de uma organização.
// Ausência de credencial é esperada (nem todo tenant conecta todas as
// plataformas) e não conta como erro.
func (s *InsightSyncService) syncOrganization(org *domain.Organization) {
	scope := domain.TenantScope(org.ID)

	for _, platform := range domain.Platforms {
		ctx, cancel := context.WithTimeout(context.Background(), s.appConfig.Sync.RequestTimeout())

		result, err := s.syncService.SyncPlatform(ctx, scope, platform)
		cancel()

		if err != nil {
			switch {
			case errors.Is(err, syncing.ErrCredentialMissing):
				logrus.WithFields(logrus.Fields{
					"organization_id": org.ID,
					"platform":        platform,
				}).Debug("Organização sem credencial para a plataforma, pulando")
			case errors.Is(err, syncing.ErrSyncAlreadyRunning):
				logrus.WithFields(logrus.Fields{
					"organization_id": org.ID,
					"platform":        platform,
				}).Info("Sincronização já em andamento para a plataforma, pulando")
			case errors.Is(err, syncing.ErrQuotaExceeded):
				logrus.WithFields(logrus.Fields{
					"organization_id": org.ID,
					"platform":        platform,
				}).Warn("Quota diária atingida, sincronização da organização interrompida")
				return
			default:
				logrus.WithError(err).WithFields(logrus.Fields{
					"organization_id": org.ID,
					"platform":        platform,
				}).Error("Erro ao sincronizar plataforma da organização")
			}
		} else {
			logrus.WithFields(logrus.Fields{
				"organization_id": org.ID,
				"platform":        platform,
				"job_id":          result.JobID,
				"records_synced":  result.RecordsSynced,
			}).Info("Plataforma sincronizada com sucesso")
		}

		// Aguardar antes da próxima plataforma para evitar sobrecarga nas APIs
		time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
	}
}

// TriggerManualSync inicia manualmente uma sincronização completa
func (s *InsightSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de insights já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de insights")
	go s.syncAllOrganizations()
}

// GetStatus retorna o status atual do agendador. Os timestamps são
// escritos pela goroutine de sincronização, então a leitura também
// precisa do mutex.
func (s *InsightSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	lastStarted := s.lastSyncStartedAt
	lastCompleted := s.lastSyncCompletedAt
	s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   lastStarted,
		"last_sync_completed_at": lastCompleted,
	}
}
