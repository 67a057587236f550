package handler

import (
	"net/http"

	"github.com/adsight/adsight-api/infrastructure/repository"
	"github.com/adsight/adsight-api/internal/api/handler/router"
	"github.com/adsight/adsight-api/internal/usecases/auditing"
	"github.com/adsight/adsight-api/internal/usecases/authenticating"
	"github.com/adsight/adsight-api/internal/usecases/connecting"
	"github.com/adsight/adsight-api/internal/usecases/metering"
	"github.com/adsight/adsight-api/internal/usecases/syncing"
	"github.com/adsight/adsight-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Sync(service syncing.Syncer, jobRepo repository.SyncJobRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync/:platform",
			Method:  http.MethodPost,
			Handler: RunSync(service),
		},
		{
			Path:    "/v1/sync/jobs",
			Method:  http.MethodGet,
			Handler: ListSyncJobs(jobRepo),
		},
		{
			Path:    "/v1/sync/jobs/:id",
			Method:  http.MethodGet,
			Handler: GetSyncJob(jobRepo),
		},
	}
}

func Credentials(service connecting.Connector) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/credentials/:platform",
			Method:  http.MethodPost,
			Handler: SaveCredential(service),
		},
		{
			Path:    "/v1/credentials/:platform",
			Method:  http.MethodDelete,
			Handler: DisconnectPlatform(service),
		},
	}
}

func Channels(service connecting.Connector) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/channels",
			Method:  http.MethodGet,
			Handler: ListChannels(service),
		},
		{
			Path:    "/v1/channels/:id/metrics",
			Method:  http.MethodGet,
			Handler: GetChannelMetrics(service),
		},
	}
}

func Usage(service metering.Meter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/usage",
			Method:  http.MethodGet,
			Handler: GetUsage(service),
		},
	}
}

// Vendor expõe as rotas do operador da plataforma. Todas exigem a flag de
// vendor no token e toda leitura entre tenants passa pela elevação auditada.
func Vendor(auditor auditing.Auditor, orgRepo repository.OrganizationRepository, meter metering.Meter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/vendor/organizations",
			Method:      http.MethodPost,
			Handler:     CreateOrganization(auditor, orgRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.VendorOnly()},
		},
		{
			Path:        "/v1/vendor/organizations/:id/usage",
			Method:      http.MethodGet,
			Handler:     GetOrganizationUsage(auditor, meter),
			Middlewares: []func(http.Handler) http.Handler{middleware.VendorOnly()},
		},
		{
			Path:        "/v1/vendor/audit-log",
			Method:      http.MethodGet,
			Handler:     ListAuditLog(auditor),
			Middlewares: []func(http.Handler) http.Handler{middleware.VendorOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.VendorOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.VendorOnly()},
		},
	}
}
