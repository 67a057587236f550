package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adsight/adsight-api/infrastructure/repository"
	"github.com/adsight/adsight-api/internal/api/handler"
	"github.com/adsight/adsight-api/internal/api/handler/router"
	"github.com/adsight/adsight-api/internal/config"
	"github.com/adsight/adsight-api/internal/scheduler"
	"github.com/adsight/adsight-api/internal/usecases/auditing"
	"github.com/adsight/adsight-api/internal/usecases/authenticating"
	"github.com/adsight/adsight-api/internal/usecases/connecting"
	"github.com/adsight/adsight-api/internal/usecases/metering"
	"github.com/adsight/adsight-api/internal/usecases/syncing"
	"github.com/adsight/adsight-api/pkg/middleware"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

// Dependencies agrupa os serviços expostos pela API.
type Dependencies struct {
	Authenticator    authenticating.Authenticator
	SyncService      syncing.Syncer
	ConnectService   connecting.Connector
	Meter            metering.Meter
	Auditor          auditing.Auditor
	SyncJobRepo      repository.SyncJobRepository
	OrganizationRepo repository.OrganizationRepository
	InsightSync      *scheduler.InsightSyncService
	MetricsRetention *scheduler.MetricsRetentionService
}

func New(config *config.Config, deps Dependencies) (*Server, error) {
	cronServices := handler.CronJobServices{
		InsightSyncService:      deps.InsightSync,
		MetricsRetentionService: deps.MetricsRetention,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(deps.Authenticator)...),
		router.WithRoutes(handler.Sync(deps.SyncService, deps.SyncJobRepo)...),
		router.WithRoutes(handler.Credentials(deps.ConnectService)...),
		router.WithRoutes(handler.Channels(deps.ConnectService)...),
		router.WithRoutes(handler.Usage(deps.Meter)...),
		router.WithRoutes(handler.Vendor(deps.Auditor, deps.OrganizationRepo, deps.Meter)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(deps.Authenticator),
		middleware.UsageMetering(deps.Meter),
	}

	chained := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chained,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
