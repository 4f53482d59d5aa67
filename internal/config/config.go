package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Dictionary     DictionaryConfig     `mapstructure:"dictionary"`
	Interpretation InterpretationConfig `mapstructure:"interpretation"`
	Translation    TranslationConfig    `mapstructure:"translation"`
	Resolver       ResolverConfig       `mapstructure:"resolver"`
	Reports        ReportsConfig        `mapstructure:"reports"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	CORS            CORSConfig    `mapstructure:"cors"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=sqlite mysql"`
	// Path is the SQLite database file.
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type DictionaryConfig struct {
	// Path overrides the embedded dictionary.
	Path string `mapstructure:"path" validate:"omitempty,file"`
}

type InterpretationConfig struct {
	RapidAPI RapidAPIConfig `mapstructure:"rapidapi"`
}

type RapidAPIConfig struct {
	Host              string        `mapstructure:"host"`
	Key               string        `mapstructure:"key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	TLSVerify         bool          `mapstructure:"tls_verify"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int           `mapstructure:"burst" validate:"gte=0"`
}

// Enabled reports whether a credential is configured.
func (c RapidAPIConfig) Enabled() bool {
	return c.Key != ""
}

type TranslationConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	BaseURL          string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRetryAttempts uint          `mapstructure:"max_retry_attempts"`
	CacheSize        int           `mapstructure:"cache_size" validate:"gte=0"`
}

type ResolverConfig struct {
	// BaseLanguage defaults to the dictionary language.
	BaseLanguage       string   `mapstructure:"base_language" validate:"omitempty,language"`
	SupportedLanguages []string `mapstructure:"supported_languages" validate:"omitempty,unique,dive,language"`
	CacheSize          int      `mapstructure:"cache_size" validate:"gte=0"`
	FuzzyEnabled       bool     `mapstructure:"fuzzy_enabled"`
	FuzzyThreshold     int      `mapstructure:"fuzzy_threshold" validate:"gte=0,lte=100"`
	TierOrder          []string `mapstructure:"tier_order" validate:"omitempty,unique,dive,oneof=remote exact substring fuzzy token"`
}

type ReportsConfig struct {
	// Template overrides the embedded markdown template.
	Template        string `mapstructure:"template" validate:"omitempty,file"`
	OutputDirectory string `mapstructure:"output_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
	envFile    string
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/dreamer")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
		envFile:    ".env",
	}, nil
}

// WithEnvFile changes the dotenv file read before the environment is bound.
// An empty path skips it.
func (loader *ConfigLoader) WithEnvFile(path string) *ConfigLoader {
	loader.envFile = path
	return loader
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	if loader.envFile != "" {
		// Variables already set in the environment win over the file.
		if err := godotenv.Load(loader.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("godotenv.Load(%s) > %w", loader.envFile, err)
		}
	}

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "dreams.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "dreamer")
	v.SetDefault("database.username", "user")
	v.SetDefault("dictionary.path", "")
	v.SetDefault("interpretation.rapidapi.timeout", 8*time.Second)
	v.SetDefault("interpretation.rapidapi.tls_verify", true)
	v.SetDefault("interpretation.rapidapi.requests_per_second", 0)
	v.SetDefault("interpretation.rapidapi.burst", 1)
	v.SetDefault("translation.enabled", false)
	v.SetDefault("translation.base_url", "https://translate.googleapis.com")
	v.SetDefault("translation.timeout", 5*time.Second)
	v.SetDefault("translation.max_retry_attempts", 2)
	v.SetDefault("translation.cache_size", 500)
	v.SetDefault("resolver.base_language", "")
	v.SetDefault("resolver.supported_languages", []string{"pt", "en", "es", "fr", "de", "it", "ja", "zh"})
	v.SetDefault("resolver.cache_size", 200)
	v.SetDefault("resolver.fuzzy_enabled", true)
	v.SetDefault("resolver.fuzzy_threshold", 65)
	v.SetDefault("resolver.tier_order", []string{"remote", "exact", "substring", "fuzzy", "token"})
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("reports.template", "")
	v.SetDefault("reports.output_directory", "reports")

	// Credentials and deployment settings come from environment variables only
	envBindings := []struct {
		key string
		env string
	}{
		{key: "interpretation.rapidapi.key", env: "RAPIDAPI_KEY"},
		{key: "interpretation.rapidapi.host", env: "RAPIDAPI_HOST"},
		{key: "interpretation.rapidapi.tls_verify", env: "SSL_VERIFY"},
		{key: "database.path", env: "DATABASE"},
		{key: "database.password", env: "DB_PASSWORD"},
	}
	for _, binding := range envBindings {
		if err := v.BindEnv(binding.key, binding.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", binding.env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validator.Struct > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// Load reads the configuration from configFile, or from config.yml in the
// working directory or $HOME/.config/dreamer when configFile is empty.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}
