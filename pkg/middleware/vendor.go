package middleware

import (
	"net/http"

	"github.com/adsight/adsight-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// VendorOnly restringe a rota a usuários do operador da plataforma. Mesmo
// após passar aqui, o acesso a dados de outras organizações ainda exige
// elevação auditada de escopo.
func VendorOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !claims.Vendor {
				logrus.Warningf("Acesso negado a rota de vendor para usuário ID=%d", claims.UserID)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
