package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/adsight/adsight-api/infrastructure/database/postgres"
	"github.com/adsight/adsight-api/infrastructure/integrator"
	"github.com/adsight/adsight-api/infrastructure/integrator/google"
	"github.com/adsight/adsight-api/infrastructure/integrator/meta"
	"github.com/adsight/adsight-api/infrastructure/integrator/shopify"
	"github.com/adsight/adsight-api/infrastructure/integrator/tiktok"
	"github.com/adsight/adsight-api/infrastructure/repository"
	"github.com/adsight/adsight-api/internal/api"
	"github.com/adsight/adsight-api/internal/config"
	"github.com/adsight/adsight-api/internal/scheduler"
	"github.com/adsight/adsight-api/internal/usecases/auditing"
	"github.com/adsight/adsight-api/internal/usecases/authenticating"
	"github.com/adsight/adsight-api/internal/usecases/connecting"
	"github.com/adsight/adsight-api/internal/usecases/metering"
	"github.com/adsight/adsight-api/internal/usecases/syncing"
	"github.com/sirupsen/logrus"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	organizationRepo := repository.NewOrganizationRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	credentialRepo := repository.NewCredentialRepository(pgConn)
	channelRepo := repository.NewChannelRepository(pgConn)
	metricRepo := repository.NewDailyMetricRepository(pgConn)
	syncJobRepo := repository.NewSyncJobRepository(pgConn)
	usageLogRepo := repository.NewUsageLogRepository(pgConn)
	quotaRepo := repository.NewQuotaRepository(pgConn)
	auditLogRepo := repository.NewAuditLogRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	auditor := auditing.NewService(auditLogRepo)
	meter := metering.NewService(usageLogRepo, quotaRepo)

	connectors := integrator.NewRegistry(
		meta.New(cfg),
		google.New(cfg),
		tiktok.New(cfg),
		shopify.New(cfg),
	)

	syncService := syncing.NewService(
		credentialRepo,
		channelRepo,
		metricRepo,
		syncJobRepo,
		connectors,
		meter,
		cfg,
	)

	connectService := connecting.NewService(credentialRepo, channelRepo, metricRepo)

	insightSyncService := scheduler.NewInsightSyncService(organizationRepo, auditor, syncService, cfg)
	metricsRetentionService := scheduler.NewMetricsRetentionService(metricRepo, cfg)

	if err := insightSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de insights")
	} else {
		logrus.Info("Agendador de sincronização de insights iniciado com sucesso")
	}

	if err := metricsRetentionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de poda de métricas")
	} else {
		logrus.Info("Agendador de poda de métricas iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Authenticator:    authenticator,
		SyncService:      syncService,
		ConnectService:   connectService,
		Meter:            meter,
		Auditor:          auditor,
		SyncJobRepo:      syncJobRepo,
		OrganizationRepo: organizationRepo,
		InsightSync:      insightSyncService,
		MetricsRetention: metricsRetentionService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
