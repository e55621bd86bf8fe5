package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Razorpay     RazorpayConfig
	WhatsApp     WhatsAppConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CAMRENTAL_APP_ENV" required:"true"`
	Port         string `envconfig:"CAMRENTAL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CAMRENTAL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAMRENTAL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CAMRENTAL_DB_DSN"`
	Driver string `envconfig:"CAMRENTAL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CAMRENTAL_DB_HOST"`
	LegacyPort     int    `envconfig:"CAMRENTAL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CAMRENTAL_DB_USER"`
	LegacyPassword string `envconfig:"CAMRENTAL_DB_PASSWORD"`
	LegacyName     string `envconfig:"CAMRENTAL_DB_NAME"`
	LegacySSLMode  string `envconfig:"CAMRENTAL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CAMRENTAL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CAMRENTAL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CAMRENTAL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CAMRENTAL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CAMRENTAL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CAMRENTAL_REDIS_ADDR"`
	Password     string        `envconfig:"CAMRENTAL_REDIS_PASSWORD"`
	DB           int           `envconfig:"CAMRENTAL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CAMRENTAL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CAMRENTAL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CAMRENTAL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CAMRENTAL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CAMRENTAL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"CAMRENTAL_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"CAMRENTAL_JWT_ISSUER" required:"true"`
}

type RazorpayConfig struct {
	KeyID      string        `envconfig:"CAMRENTAL_RAZORPAY_KEY_ID"`
	KeySecret  string        `envconfig:"CAMRENTAL_RAZORPAY_KEY_SECRET"`
	BaseURL    string        `envconfig:"CAMRENTAL_RAZORPAY_BASE_URL" default:"https://api.razorpay.com"`
	Timeout    time.Duration `envconfig:"CAMRENTAL_RAZORPAY_TIMEOUT" default:"10s"`
	WebhookTTL time.Duration `envconfig:"CAMRENTAL_RAZORPAY_WEBHOOK_TTL" default:"168h"`
}

type WhatsAppConfig struct {
	PhoneNumberID string        `envconfig:"CAMRENTAL_WHATSAPP_PHONE_NUMBER_ID"`
	APIToken      string        `envconfig:"CAMRENTAL_WHATSAPP_API_TOKEN"`
	BaseURL       string        `envconfig:"CAMRENTAL_WHATSAPP_BASE_URL" default:"https://graph.facebook.com/v17.0"`
	Timeout       time.Duration `envconfig:"CAMRENTAL_WHATSAPP_TIMEOUT" default:"10s"`
}

// Enabled reports whether the dispatcher has enough config to send messages.
func (w WhatsAppConfig) Enabled() bool {
	return strings.TrimSpace(w.PhoneNumberID) != "" && strings.TrimSpace(w.APIToken) != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CAMRENTAL_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CAMRENTAL_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
