package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adsight/adsight-api/internal/domain"
	"github.com/adsight/adsight-api/internal/usecases/connecting"
	"github.com/adsight/adsight-api/pkg/apiErrors"
	"github.com/adsight/adsight-api/pkg/log"
	"github.com/adsight/adsight-api/pkg/middleware"
	"github.com/adsight/adsight-api/pkg/utils"
	"github.com/julienschmidt/httprouter"
)

func ListChannels(service connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		scope, ok := middleware.ScopeFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		channels, err := service.ListChannels(r.Context(), scope)
		if err != nil {
			logger.WithError(err).Error("channels: failed to list channels")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar canais", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(channels)
	})
}

func GetChannelMetrics(service connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		scope, ok := middleware.ScopeFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		channelID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"channel_id": channelID,
				"start_date": r.URL.Query().Get("start_date"),
				"error":      err.Error(),
			}).Warn("channels: invalid start_date parameter")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro start_date inválido", nil)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"channel_id": channelID,
				"end_date":   r.URL.Query().Get("end_date"),
				"error":      err.Error(),
			}).Warn("channels: invalid end_date parameter")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro end_date inválido", nil)
			return
		}

		filters := domain.MetricFilters{}
		if !startDate.IsZero() {
			filters.StartDate = startDate
		}
		if !endDate.IsZero() {
			filters.EndDate = endDate
		}

		metrics, err := service.GetChannelMetrics(r.Context(), scope, channelID, filters)
		if err != nil {
			if errors.Is(err, connecting.ErrChannelNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Canal não encontrado", nil)
				return
			}

			logger.WithError(err).WithField("channel_id", channelID).
				Error("channels: failed to get channel metrics")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar métricas do canal", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(metrics)
	})
}
