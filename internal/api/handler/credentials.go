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
	"github.com/julienschmidt/httprouter"
)

// CredentialResponse omite o payload: o material de acesso nunca volta
// em respostas da API.
type CredentialResponse struct {
	Platform     domain.Platform `json:"platform"`
	Active       bool            `json:"active"`
	AccountCount int             `json:"accountCount"`
}

// SaveCredential grava ou substitui a credencial ativa da plataforma.
func SaveCredential(service connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		scope, ok := middleware.ScopeFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		platform := domain.Platform(httprouter.ParamsFromContext(r.Context()).ByName("platform"))

		var payload domain.CredentialPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		credential, err := service.SaveCredential(r.Context(), scope, platform, payload)
		if err != nil {
			switch {
			case errors.Is(err, connecting.ErrUnsupportedPlatform):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			case errors.Is(err, connecting.ErrInvalidPayload):
				apiErrors.WriteError(w, apiErrors.ErrCredentialInvalid, err.Error(), nil)
			default:
				logger.WithError(err).Error("credentials: failed to save credential")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar credencial", nil)
			}
			return
		}

		logger.WithFields(log.Fields{
			"organization_id": scope.OrganizationID,
			"platform":        platform,
		}).Info("credentials: credential saved")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CredentialResponse{
			Platform:     credential.Platform,
			Active:       credential.Active,
			AccountCount: len(credential.Payload.Accounts),
		})
	})
}

// DisconnectPlatform desativa a credencial e os canais da plataforma.
func DisconnectPlatform(service connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		scope, ok := middleware.ScopeFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		platform := domain.Platform(httprouter.ParamsFromContext(r.Context()).ByName("platform"))

		if err := service.Disconnect(r.Context(), scope, platform); err != nil {
			switch {
			case errors.Is(err, connecting.ErrUnsupportedPlatform):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			case errors.Is(err, connecting.ErrCredentialNotFound):
				apiErrors.WriteError(w, apiErrors.ErrCredentialMissing, err.Error(), nil)
			default:
				logger.WithError(err).Error("credentials: failed to disconnect platform")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao desconectar plataforma", nil)
			}
			return
		}

		logger.WithFields(log.Fields{
			"organization_id": scope.OrganizationID,
			"platform":        platform,
		}).Info("credentials: platform disconnected")

		w.WriteHeader(http.StatusNoContent)
	})
}
