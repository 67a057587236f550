package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/adsight/adsight-api/internal/domain"
	"github.com/adsight/adsight-api/internal/usecases/metering"
	"github.com/sirupsen/logrus"
)

// UsageMetering contabiliza cada requisição autenticada como consumo de
// api_call. O registro é assíncrono e nunca bloqueia nem falha a requisição.
func UsageMetering(meter metering.Meter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if scope, ok := ScopeFromContext(r.Context()); ok {
				metadata := map[string]string{
					"method": r.Method,
					"path":   r.URL.Path,
				}

				go func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()

					if err := meter.RecordUsage(ctx, scope, domain.ResourceAPICall, 1, metadata); err != nil {
						logrus.WithError(err).Debug("Erro ao contabilizar api_call")
					}
				}()
			}

			next.ServeHTTP(w, r)
		})
	}
}
