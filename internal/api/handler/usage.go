package handler

import (
	"encoding/json"
	"net/http"

	"github.com/adsight/adsight-api/internal/usecases/metering"
	"github.com/adsight/adsight-api/pkg/apiErrors"
	"github.com/adsight/adsight-api/pkg/log"
	"github.com/adsight/adsight-api/pkg/middleware"
)

// GetUsage retorna o consumo do dia da organização com os tetos do plano.
func GetUsage(service metering.Meter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		scope, ok := middleware.ScopeFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		summary, err := service.DailyUsage(r.Context(), scope)
		if err != nil {
			logger.WithError(err).Error("usage: failed to get daily usage")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar consumo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	})
}
