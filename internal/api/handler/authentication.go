package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adsight/adsight-api/internal/usecases/authenticating"
	"github.com/adsight/adsight-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"token": token,
		})
	}
}

// handleLoginError traduz erros de autenticação para a resposta padronizada
// sem vazar qual etapa da verificação falhou.
func handleLoginError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		if authErr.UserID != 0 {
			logrus.WithField("user_id", authErr.UserID).Warn("Falha de login")
		}

		message := "Email ou senha inválidos"
		if !authenticating.IsCredentialsError(authErr.Err) {
			message = "Erro ao realizar login"
		}

		apiErrors.WriteError(w, authErr.Code, message, nil)
		return
	}

	logrus.WithError(err).Error("Erro inesperado no login")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao realizar login", nil)
}
