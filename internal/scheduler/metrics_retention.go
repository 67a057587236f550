package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/adsight/adsight-api/infrastructure/repository"
	"github.com/adsight/adsight-api/internal/config"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// MetricsRetentionService poda métricas diárias mais antigas que a janela de
// retenção configurada. Jobs, logs de uso e auditoria nunca são podados.
type MetricsRetentionService struct {
	scheduler        *gocron.Scheduler
	config           config.Retention
	metricRepo       repository.DailyMetricRepository
	pruneRunning     bool
	pruneMutex       sync.Mutex
	lastRunAt        time.Time
	lastDeletedCount int64
}

func NewMetricsRetentionService(metricRepo repository.DailyMetricRepository, appConfig *config.Config) *MetricsRetentionService {
	return &MetricsRetentionService{
		scheduler:  gocron.NewScheduler(time.Local),
		config:     appConfig.Retention,
		metricRepo: metricRepo,
	}
}

// Start inicia o agendador
func (s *MetricsRetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Poda de métricas antigas desabilitada por configuração")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"cron":           s.config.CronSchedule,
		"retention_days": s.config.Days,
	}).Info("Iniciando agendador de poda de métricas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.pruneOldMetrics()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar poda de métricas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de poda de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *MetricsRetentionService) pruneOldMetrics() {
	s.pruneMutex.Lock()
	if s.pruneRunning {
		s.pruneMutex.Unlock()
		logrus.Info("Poda de métricas já em andamento, ignorando")
		return
	}
	s.pruneRunning = true
	s.pruneMutex.Unlock()

	defer func() {
		s.pruneMutex.Lock()
		s.pruneRunning = false
		s.pruneMutex.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	deleted, err := s.metricRepo.DeleteOlderThan(ctx, s.config.Days)
	if err != nil {
		logrus.WithError(err).Error("Erro ao podar métricas antigas")
		return
	}

	s.pruneMutex.Lock()
	s.lastRunAt = time.Now()
	s.lastDeletedCount = deleted
	s.pruneMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"deleted_rows":   deleted,
		"retention_days": s.config.Days,
	}).Info("Poda de métricas concluída")
}

// TriggerManualSync executa a poda manualmente
func (s *MetricsRetentionService) TriggerManualSync() {
	s.pruneMutex.Lock()
	if s.pruneRunning {
		s.pruneMutex.Unlock()
		logrus.Info("Poda de métricas já em andamento, ignorando solicitação manual")
		return
	}
	s.pruneMutex.Unlock()

	logrus.Info("Iniciando poda manual de métricas")
	go s.pruneOldMetrics()
}

// GetStatus retorna o status atual do agendador
func (s *MetricsRetentionService) GetStatus() map[string]any {
	s.pruneMutex.Lock()
	lastRun := s.lastRunAt
	lastDeleted := s.lastDeletedCount
	s.pruneMutex.Unlock()

	return map[string]any{
		"retention_enabled": s.config.Enabled,
		"retention_cron":    s.config.CronSchedule,
		"retention_days":    s.config.Days,
		"last_run_at":       lastRun,
		"last_deleted_rows": lastDeleted,
	}
}
