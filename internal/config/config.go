package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string         `mapstructure:"app_env"`
	Database DatabaseConfig `mapstructure:"database"`
	Data     DataConfig     `mapstructure:"data"`
	Export   ExportConfig   `mapstructure:"export"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Name     string `mapstructure:"name"`
	Password string `mapstructure:"password"`
}

type DataConfig struct {
	SeedFile string `mapstructure:"seed_file"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DSN builds the postgres connection string from the database section.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.Name)
}

// Load reads configuration from an optional toml file, a .env file and the
// environment. An explicit configFile must exist; the default lookup of
// shiplog.toml in . and config/ may find nothing.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	// .env is optional
	_ = godotenv.Load()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		name := "shiplog"
		if os.Getenv("CONFIG_NAME") != "" {
			name = os.Getenv("CONFIG_NAME")
		}
		v.SetConfigName(name)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("SHIPLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("app_env", "APP_ENV", "SHIPLOG_APP_ENV")
	_ = v.BindEnv("database.host", "PG_HOST", "SHIPLOG_DATABASE_HOST")
	_ = v.BindEnv("database.port", "PG_PORT", "SHIPLOG_DATABASE_PORT")
	_ = v.BindEnv("database.user", "PG_USER", "SHIPLOG_DATABASE_USER")
	_ = v.BindEnv("database.name", "PG_DB", "SHIPLOG_DATABASE_NAME")
	_ = v.BindEnv("database.password", "PG_PASSWORD", "SHIPLOG_DATABASE_PASSWORD")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "shipments.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("data.seed_file", "shipments.json")
	v.SetDefault("export.dir", ".")
	v.SetDefault("metrics.textfile", "")
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database.path is required for sqlite")
		}
	case DriverPostgres:
		if c.Database.Name == "" {
			return errors.New("database.name is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}
