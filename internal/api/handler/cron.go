package handler

import (
	"encoding/json"
	"net/http"

	"github.com/adsight/adsight-api/internal/scheduler"
	"github.com/adsight/adsight-api/pkg/apiErrors"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeSync      = "sync"
	CronJobTypeRetention = "retention"
	CronJobTypeAll       = "all"
)

// CronJobServices contém os serviços de cron necessários para execução manual
type CronJobServices struct {
	InsightSyncService      *scheduler.InsightSyncService
	MetricsRetentionService *scheduler.MetricsRetentionService
}

// RunCronJob executa manualmente uma cron job específica. A rota é restrita
// a usuários vendor pelo middleware.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeSync:
			if services.InsightSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização não disponível", nil)
				return
			}
			services.InsightSyncService.TriggerManualSync()

		case CronJobTypeRetention:
			if services.MetricsRetentionService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de retenção não disponível", nil)
				return
			}
			services.MetricsRetentionService.TriggerManualSync()

		case CronJobTypeAll:
			if services.InsightSyncService != nil {
				services.InsightSyncService.TriggerManualSync()
			}
			if services.MetricsRetentionService != nil {
				services.MetricsRetentionService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: sync, retention, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"sync":      services.InsightSyncService.GetStatus(),
			"retention": services.MetricsRetentionService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
