package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Vendor        VendorConfig
	Resend        ResendConfig
	Zipcloud      ZipcloudConfig
	Pdf           PdfConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	// The built-in core font has no Japanese glyphs, so a contract rendered
	// without a configured font is unreadable. Only dev may fall back.
	if cfg.App.IsProd() && cfg.Pdf.FontPath == "" {
		return nil, fmt.Errorf("%s is required in production", EnvPdfFontPath)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AQUATUTOR_APP_ENV" required:"true"`
	Port         string `envconfig:"AQUATUTOR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AQUATUTOR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AQUATUTOR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"AQUATUTOR_DB_DSN"`
	Driver string `envconfig:"AQUATUTOR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"AQUATUTOR_DB_HOST"`
	LegacyPort     int    `envconfig:"AQUATUTOR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"AQUATUTOR_DB_USER"`
	LegacyPassword string `envconfig:"AQUATUTOR_DB_PASSWORD"`
	LegacyName     string `envconfig:"AQUATUTOR_DB_NAME"`
	LegacySSLMode  string `envconfig:"AQUATUTOR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AQUATUTOR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AQUATUTOR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AQUATUTOR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AQUATUTOR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the dev sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"AQUATUTOR_REDIS_URL" required:"true"`
	Address      string        `envconfig:"AQUATUTOR_REDIS_ADDR"`
	Password     string        `envconfig:"AQUATUTOR_REDIS_PASSWORD"`
	DB           int           `envconfig:"AQUATUTOR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AQUATUTOR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AQUATUTOR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AQUATUTOR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AQUATUTOR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AQUATUTOR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"AQUATUTOR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"AQUATUTOR_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"AQUATUTOR_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"AQUATUTOR_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AQUATUTOR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AQUATUTOR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AQUATUTOR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AQUATUTOR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AQUATUTOR_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"AQUATUTOR_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"AQUATUTOR_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"AQUATUTOR_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"AQUATUTOR_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"AQUATUTOR_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"AQUATUTOR_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AQUATUTOR_AUTO_MIGRATE" default:"false"`
}

// VendorConfig carries the vendor identity printed on contracts and mail, so
// the document and notification logic stays free of hardcoded literals.
type VendorConfig struct {
	ServiceName    string `envconfig:"AQUATUTOR_VENDOR_SERVICE_NAME" default:"AquaTutorAI"`
	LegalName      string `envconfig:"AQUATUTOR_VENDOR_LEGAL_NAME" default:"アクア・プラン株式会社"`
	AddressLine1   string `envconfig:"AQUATUTOR_VENDOR_ADDRESS_LINE1" default:"大阪府大阪市淀川区西中島3丁目8番2号"`
	AddressLine2   string `envconfig:"AQUATUTOR_VENDOR_ADDRESS_LINE2" default:"新大阪KGビル3階"`
	Representative string `envconfig:"AQUATUTOR_VENDOR_REPRESENTATIVE" default:"代表取締役　北山 喜一"`
	OperatorEmail  string `envconfig:"AQUATUTOR_VENDOR_OPERATOR_EMAIL" required:"true"`
	PublicBaseURL  string `envconfig:"AQUATUTOR_PUBLIC_BASE_URL" required:"true"`
}

// SignatureURL builds the public link a customer follows to sign.
func (v VendorConfig) SignatureURL(applicationID string) string {
	return fmt.Sprintf("%s/sign/%s", strings.TrimRight(v.PublicBaseURL, "/"), applicationID)
}

type ResendConfig struct {
	APIKey  string `envconfig:"AQUATUTOR_RESEND_API_KEY"`
	BaseURL string `envconfig:"AQUATUTOR_RESEND_BASE_URL"`
	From    string `envconfig:"AQUATUTOR_RESEND_FROM" default:"AquaTutorAI <info@aquatutorai.jp>"`
}

type ZipcloudConfig struct {
	BaseURL string `envconfig:"AQUATUTOR_ZIPCLOUD_BASE_URL"`
}

type PdfConfig struct {
	// FontPath points at a TTF with Japanese glyph coverage. Production
	// refuses to start without it; only dev falls back to the core font.
	FontPath string `envconfig:"AQUATUTOR_PDF_FONT_PATH"`
	FontName string `envconfig:"AQUATUTOR_PDF_FONT_NAME" default:"NotoSansJP"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
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
