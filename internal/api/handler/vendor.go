package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/adsight/adsight-api/infrastructure/repository"
	"github.com/adsight/adsight-api/internal/domain"
	"github.com/adsight/adsight-api/internal/usecases/auditing"
	"github.com/adsight/adsight-api/internal/usecases/metering"
	"github.com/adsight/adsight-api/pkg/apiErrors"
	"github.com/adsight/adsight-api/pkg/log"
	"github.com/adsight/adsight-api/pkg/middleware"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

type CreateOrganizationRequest struct {
	Name string `json:"name"`
}

// CreateOrganization cria uma nova organização. Rota de vendor: o acesso
// passa pela elevação auditada de escopo, nunca pelo escopo do tenant.
func CreateOrganization(auditor auditing.Auditor, orgRepo repository.OrganizationRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req CreateOrganizationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome da organização é obrigatório", nil)
			return
		}

		org := &domain.Organization{
			ID:        uuid.New().String(),
			Name:      req.Name,
			CreatedAt: time.Now(),
		}

		if _, err := auditor.Elevate(r.Context(), claims.Email, "organization.create", org.ID); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao registrar auditoria", nil)
			return
		}

		if err := orgRepo.Create(r.Context(), org); err != nil {
			logger.WithError(err).Error("vendor: failed to create organization")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar organização", nil)
			return
		}

		logger.WithFields(log.Fields{
			"organization_id": org.ID,
			"actor":           claims.Email,
		}).Info("vendor: organization created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(org)
	})
}

// GetOrganizationUsage consulta o consumo de qualquer organização com escopo
// elevado. A elevação grava a trilha de auditoria antes de qualquer leitura.
func GetOrganizationUsage(auditor auditing.Auditor, meter metering.Meter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		organizationID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		target := fmt.Sprintf("organization:%s", organizationID)
		elevated, err := auditor.Elevate(r.Context(), claims.Email, "usage.read", target)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao registrar auditoria", nil)
			return
		}

		// O escopo elevado não carrega organização; fixa a organização alvo
		// para a agregação sem reativar o filtro de tenant.
		elevated.OrganizationID = organizationID

		summary, err := meter.DailyUsage(r.Context(), elevated)
		if err != nil {
			logger.WithError(err).WithField("organization_id", organizationID).
				Error("vendor: failed to get organization usage")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar consumo da organização", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	})
}

// ListAuditLog expõe as entradas de auditoria mais recentes para inspeção.
func ListAuditLog(auditor auditing.Auditor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		entries, err := auditor.ListRecent(r.Context(), 100)
		if err != nil {
			logger.WithError(err).Error("vendor: failed to list audit log")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar auditoria", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	})
}
