package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
	Meta      Meta      `mapstructure:",squash"`
	Google    Google    `mapstructure:",squash"`
	TikTok    TikTok    `mapstructure:",squash"`
	Shopify   Shopify   `mapstructure:",squash"`
	Sync      Sync      `mapstructure:",squash"`
	Retention Retention `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
}

type Auth struct {
	Secret        string `mapstructure:"auth_secret"`
	TokenTTLHours int    `mapstructure:"auth_token_ttl_hours"`
}

type Meta struct {
	BaseURL string `mapstructure:"meta_base_url"`
	Version string `mapstructure:"meta_version"`
	URL     string `mapstructure:"-"`
}

type Google struct {
	BaseURL string `mapstructure:"google_base_url"`
	Version string `mapstructure:"google_version"`
	URL     string `mapstructure:"-"`
}

type TikTok struct {
	BaseURL string `mapstructure:"tiktok_base_url"`
}

type Shopify struct {
	BaseURL    string `mapstructure:"shopify_base_url"`
	APIVersion string `mapstructure:"shopify_api_version"`
}

// Sync configura o pipeline de ingestão: janela retroativa, timeout das
// chamadas externas e o agendador de sincronização da frota.
type Sync struct {
	LookbackDays          int    `mapstructure:"sync_lookback_days"`
	RequestTimeoutSeconds int    `mapstructure:"sync_request_timeout_seconds"`
	CronSchedule          string `mapstructure:"sync_cron"`
	Enabled               bool   `mapstructure:"sync_enabled"`
	MaxConcurrentJobs     int    `mapstructure:"sync_max_concurrent_jobs"`
	RequestDelaySeconds   int    `mapstructure:"sync_request_delay_seconds"`
}

// RequestTimeout retorna o timeout das chamadas às plataformas.
func (s Sync) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// Retention configura a poda de métricas diárias antigas.
type Retention struct {
	Enabled      bool   `mapstructure:"retention_enabled"`
	CronSchedule string `mapstructure:"retention_cron"`
	Days         int    `mapstructure:"retention_days"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adsight")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")

	viper.SetDefault("GOOGLE_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_VERSION", "v17")

	viper.SetDefault("TIKTOK_BASE_URL", "https://business-api.tiktok.com")

	// SHOPIFY_BASE_URL vazio resolve por loja ({shop}.myshopify.com)
	viper.SetDefault("SHOPIFY_BASE_URL", "")
	viper.SetDefault("SHOPIFY_API_VERSION", "2024-07")

	viper.SetDefault("SYNC_LOOKBACK_DAYS", 30)           // Janela retroativa padrão da ingestão
	viper.SetDefault("SYNC_REQUEST_TIMEOUT_SECONDS", 30) // Timeout por chamada externa
	viper.SetDefault("SYNC_CRON", "0 3 * * *")           // Todos os dias às 3h da manhã
	viper.SetDefault("SYNC_ENABLED", false)
	viper.SetDefault("SYNC_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("SYNC_REQUEST_DELAY_SECONDS", 2)

	viper.SetDefault("RETENTION_ENABLED", false)
	viper.SetDefault("RETENTION_CRON", "0 5 * * 0") // Domingos às 5h da manhã
	viper.SetDefault("RETENTION_DAYS", 730)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)
	config.Google.URL = fmt.Sprintf("%s/%s", config.Google.BaseURL, config.Google.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}
}
