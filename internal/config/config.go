package config

import (
	"fmt"
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string `env:"PORT" yaml:"port" default:"8080" usage:"サーバーポート"`

	GoEnv    string `env:"GO_ENV" yaml:"go_env" default:"dev" usage:"dev/prod"`
	LogLevel string `env:"LOG_LEVEL" yaml:"log_level" default:"info"`

	// DATABASE_URLがあれば最優先
	DatabaseURL      string `env:"DATABASE_URL" yaml:"database_url"`
	PostgresHost     string `env:"POSTGRES_HOST" yaml:"postgres_host" default:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" yaml:"postgres_port" default:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" yaml:"postgres_user" default:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" yaml:"postgres_password" default:"postgres"`
	PostgresDB       string `env:"POSTGRES_DB" yaml:"postgres_db" default:"storefront"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" yaml:"postgres_sslmode" default:"disable"`

	JWTSecret    string `env:"JWT_SECRET" yaml:"jwt_secret" required:"true" usage:"JWT署名シークレット"`
	CustomerRole string `env:"CUSTOMER_ROLE" yaml:"customer_role" default:"customer" usage:"カート・注文に必要なrole claim"`

	CookieSecure    bool          `env:"COOKIE_SECURE" yaml:"cookie_secure" default:"true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout" default:"15s"`
	AutoMigrate     bool          `env:"AUTO_MIGRATE" yaml:"auto_migrate" default:"true"`
}

// DSN は接続文字列を返す。
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// Addr はecho.Startに渡す形（":8080"）。
func (c Config) Addr() string {
	if c.Port != "" && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) IsDev() bool {
	return c.GoEnv == "dev"
}

// Loadは .env → 環境変数 → config.yaml の順に読む。
// .env / config.yaml は無くてもよい。
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrap(err, "load .env")
	}
	return load([]string{"config.yaml"})
}

func load(files []string) (Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags:          true,
		AllowUnknownFields: true,
		AllowUnknownEnvs:   true,
		Files:              files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, errors.New("PORT is required")
	}
	if cfg.CustomerRole == "" {
		return Config{}, errors.New("CUSTOMER_ROLE is required")
	}
	return cfg, nil
}
