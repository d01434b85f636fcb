package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Scheduler       SchedulerConfig      `mapstructure:"scheduler"`
	Logging         LoggingConfig        `mapstructure:"logging"`
	Indicators      IndicatorsConfig     `mapstructure:"indicators"`
	AWS             AWSConfig            `mapstructure:"aws"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type           ServiceType `mapstructure:"type"`
	Port           string      `mapstructure:"port"`
	AllowedOrigins []string    `mapstructure:"allowedOrigins"`
	CacheTTL       string      `mapstructure:"cacheTTL"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
	// SecretName, when set, is looked up in AWS Secrets Manager and used as
	// the connection string.
	SecretName string `mapstructure:"secretName"`
	MaxConns   int32  `mapstructure:"maxConns"`
}

// DSN returns the connection string, building one from the discrete fields
// when none is configured.
func (c SQLConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host,
		c.Username,
		c.Password,
		c.Database,
		c.Port)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	TLS      bool   `mapstructure:"tls"`
}

type ExternalClientConfig struct {
	BCB   ClientConfig `mapstructure:"bcb"`
	SIDRA ClientConfig `mapstructure:"sidra"`
}

type ClientConfig struct {
	BaseURL  string `mapstructure:"baseUrl"`
	Timeout  string `mapstructure:"timeout"`
	Attempts int    `mapstructure:"attempts"`
	Backoff  string `mapstructure:"backoff"`
}

// Durations parses Timeout and Backoff. An empty value yields zero, which the
// HTTP client treats as its default.
func (c ClientConfig) Durations() (timeout, backoff time.Duration, err error) {
	if timeout, err = parseDuration("timeout", c.Timeout); err != nil {
		return 0, 0, err
	}
	if backoff, err = parseDuration("backoff", c.Backoff); err != nil {
		return 0, 0, err
	}
	return timeout, backoff, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid client %s %q: %w", field, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid client %s %q: must not be negative", field, value)
	}
	return d, nil
}

type SchedulerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// PopulateOnStart fills empty indicator tables before serving.
	PopulateOnStart bool `mapstructure:"populateOnStart"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	ToFile   bool   `mapstructure:"toFile"`
	FilePath string `mapstructure:"filePath"`
}

type IndicatorsConfig struct {
	// Codes overrides the upstream series code by indicator key.
	Codes map[string]string `mapstructure:"codes"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(API))
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.allowedOrigins", []string{"*"})
	v.SetDefault("service.cacheTTL", "1h")
	v.SetDefault("databases.sql.driver", "postgres")
	v.SetDefault("databases.sql.maxConns", 10)
	v.SetDefault("externalClients.bcb.baseUrl", "https://api.bcb.gov.br")
	v.SetDefault("externalClients.bcb.timeout", "10s")
	v.SetDefault("externalClients.bcb.attempts", 3)
	v.SetDefault("externalClients.bcb.backoff", "2s")
	v.SetDefault("externalClients.sidra.baseUrl", "https://apisidra.ibge.gov.br")
	v.SetDefault("externalClients.sidra.timeout", "30s")
	v.SetDefault("externalClients.sidra.attempts", 3)
	v.SetDefault("externalClients.sidra.backoff", "2s")
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.populateOnStart", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("aws.region", "us-east-1")
}

// LoadConfig reads appsettings.yaml from path and, when env is set, merges
// appsettings.<env>.yaml on top. Environment variables prefixed with PAINEL_
// override both (PAINEL_DATABASES_SQL_HOST for databases.sql.host).
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("painel")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}
	if env != "" {
		v.SetConfigName("appsettings." + strings.ToLower(env))
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}
	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
