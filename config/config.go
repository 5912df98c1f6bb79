package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends understood by the flow service.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

const (
	EventsModeNone  = "none"
	EventsModeKafka = "kafka"
)

const (
	MerchantModePlatform = "platform"
	MerchantModeSandbox  = "sandbox"
)

type Config struct {
	Port     int    `env:"PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Storage backend: "memory", "file", "redis" or "postgres"
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	StorageKey     string `env:"STORAGE_KEY" envDefault:"sdk-example-app-storage"`
	StorageFileDir string `env:"STORAGE_FILE_DIR" envDefault:"./.flowstate"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	// Zero keeps records until they are cleared
	RedisTTL time.Duration `env:"REDIS_TTL" envDefault:"0s"`

	PgURL     string `env:"PG_URL"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`

	UseMockAPI                 bool          `env:"USE_MOCK_API" envDefault:"true"`
	MockAPIURL                 string        `env:"MOCK_API_URL" envDefault:"http://localhost:5777"`
	HTTPMockAPIClientTimeout   time.Duration `env:"HTTP_MOCK_API_CLIENT_TIMEOUT" envDefault:"20s"`
	HTTPClientAPIClientTimeout time.Duration `env:"HTTP_CLIENT_API_TIMEOUT" envDefault:"20s"`

	FlowCookieName string `env:"FLOW_COOKIE_NAME" envDefault:"payflow_id"`

	// Flow events mode: "none" or "kafka"
	EventsMode string `env:"EVENTS_MODE" envDefault:"none"`

	KafkaBrokers         []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaFlowEventsTopic string   `env:"KAFKA_FLOW_EVENTS_TOPIC" envDefault:"flow.events"`
}

type MockAPIConfig struct {
	BindHost string `env:"API_URL" envDefault:"localhost"`
	Port     int    `env:"API_PORT" envDefault:"5777"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Merchant gateway: "platform" talks to the real server API, "sandbox" answers in-process
	MerchantMode              string        `env:"MERCHANT_MODE" envDefault:"sandbox"`
	MerchantHost              string        `env:"HOST" envDefault:"payment.preprod.direct.worldline-solutions.com"`
	MerchantID                string        `env:"MERCHANT_ID"`
	MerchantAPIKey            string        `env:"MERCHANT_API_KEY"`
	MerchantAPISecret         string        `env:"MERCHANT_API_SECRET"`
	HTTPMerchantClientTimeout time.Duration `env:"HTTP_MERCHANT_CLIENT_TIMEOUT" envDefault:"20s"`

	SandboxClientAPIURL string `env:"SANDBOX_CLIENT_API_URL" envDefault:"http://localhost:5777/client"`
	SandboxAssetURL     string `env:"SANDBOX_ASSET_URL" envDefault:"http://localhost:5777/assets/"`

	// Served over plain HTTP when either file is empty
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	// Overridden by the command line arguments of cmd/mockapi
	DelayMs int  `env:"MOCK_API_DELAY_MS" envDefault:"0"`
	With400 bool `env:"MOCK_API_WITH_400" envDefault:"false"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

func NewMockAPI() (MockAPIConfig, error) {
	c, err := env.ParseAs[MockAPIConfig]()
	if err != nil {
		return MockAPIConfig{}, err
	}

	return c, nil
}
