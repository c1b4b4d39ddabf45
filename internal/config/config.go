package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "SubFinder/1.0 (+https://github.com/KennethWKZ/subfinder)"

type Config struct {
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ShooterAPIURL         string `mapstructure:"shooter_api_url"`
	ZimukuDomain          string `mapstructure:"zimuku_domain"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	ClientRetries         int    `mapstructure:"client_retries"` // Maximum retries per HTTP request
	UserAgent             string `mapstructure:"user_agent"`
	SentryDSN             string `mapstructure:"sentry_dsn"`
	LogLevel              string `mapstructure:"log_level"`
	Cache                 struct {
		Backend       string `mapstructure:"backend"` // "memory" or "redis"
		Size          int    `mapstructure:"size"`    // Maximum number of entries in the LRU cache
		TTL           string `mapstructure:"ttl"`     // Go duration string like "1h", "24h", etc.
		RedisAddress  string `mapstructure:"redis_address"`
		RedisPassword string `mapstructure:"redis_password"`
		RedisDB       int    `mapstructure:"redis_db"`
	} `mapstructure:"cache"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output.
	// Stderr keeps structured logs separate from the descriptor JSON on stdout.
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	// Parse and set log level from config
	level := zerolog.InfoLevel // default
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	// Set the global log level
	zerolog.SetGlobalLevel(level)

	// Update logger with the configured level
	logger = logger.Level(level)

	globalConfig = config
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Add specific environment variable for log level
	_ = viper.BindEnv("log_level", "LOG_LEVEL")

	// Set defaults
	viper.SetDefault("shooter_api_url", "https://www.shooter.cn/api/subapi.php")
	viper.SetDefault("zimuku_domain", "https://zimuku.org")
	viper.SetDefault("client_timeout", "30s")
	viper.SetDefault("client_retries", 2)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.size", 256)
	viper.SetDefault("cache.ttl", "1h")
	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.port", 9090)

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
