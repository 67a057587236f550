package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/adsight/adsight-api/infrastructure/integrator"
	"github.com/adsight/adsight-api/infrastructure/repository"
	"github.com/adsight/adsight-api/internal/domain"
	"github.com/adsight/adsight-api/internal/usecases/syncing"
	"github.com/adsight/adsight-api/pkg/apiErrors"
	"github.com/adsight/adsight-api/pkg/log"
	"github.com/adsight/adsight-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
)

// RunSync dispara a sincronização da plataforma para a organização do
// usuário autenticado. A resposta só volta quando o job termina.
func RunSync(service syncing.Syncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		scope, ok := middleware.ScopeFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		platform := domain.Platform(httprouter.ParamsFromContext(r.Context()).ByName("platform"))
		logger.WithFields(log.Fields{
			"organization_id": scope.OrganizationID,
			"platform":        platform,
		}).Info("sync: starting platform sync")

		result, err := service.SyncPlatform(r.Context(), scope, platform)
		if err != nil {
			handleSyncError(w, logger, platform, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("sync: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func handleSyncError(w http.ResponseWriter, logger log.Logger, platform domain.Platform, err error) {
	logger.WithFields(log.Fields{
		"platform": platform,
		"error":    err.Error(),
	}).Warn("sync: platform sync failed")

	var upstreamErr *integrator.UpstreamError
	if errors.As(err, &upstreamErr) {
		switch upstreamErr.Kind {
		case integrator.ErrUpstreamRateLimited:
			apiErrors.WriteError(w, apiErrors.ErrUpstreamRateLimited, upstreamErr.Message, nil)
		case integrator.ErrUpstreamRejected:
			apiErrors.WriteError(w, apiErrors.ErrUpstreamRejected, upstreamErr.Message, nil)
		default:
			apiErrors.WriteError(w, apiErrors.ErrUpstreamUnavailable, upstreamErr.Message, nil)
		}
		return
	}

	switch {
	case errors.Is(err, syncing.ErrUnsupportedPlatform):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, syncing.ErrQuotaExceeded):
		apiErrors.WriteError(w, apiErrors.ErrQuotaExceeded, err.Error(), nil)
	case errors.Is(err, syncing.ErrCredentialMissing):
		apiErrors.WriteError(w, apiErrors.ErrCredentialMissing, err.Error(), nil)
	case errors.Is(err, syncing.ErrCredentialInvalid):
		apiErrors.WriteError(w, apiErrors.ErrCredentialInvalid, err.Error(), nil)
	case errors.Is(err, syncing.ErrSyncAlreadyRunning):
		apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, err.Error(), nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Sincronização cancelada por tempo limite", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao sincronizar plataforma", nil)
	}
}

// GetSyncJob consulta um job pelo ID dentro do escopo da organização.
func GetSyncJob(repo repository.SyncJobRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, ok := middleware.ScopeFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		jobID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		job, err := repo.GetByID(r.Context(), scope, jobID)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar sync job", nil)
			return
		}
		if job == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Sync job não encontrado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(job)
	})
}

// ListSyncJobs lista os jobs mais recentes da organização.
func ListSyncJobs(repo repository.SyncJobRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, ok := middleware.ScopeFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		limit := uint64(50)
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || parsed == 0 || parsed > 200 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		jobs, err := repo.List(r.Context(), scope, limit)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar sync jobs", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(jobs)
	})
}
