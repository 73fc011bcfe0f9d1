package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Session   SessionConfig
	Cache     CacheConfig
	Limits    LimitsConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    int
	WriteTimeout   int
	BodyLimit      int
	AllowedOrigins []string
	Development    bool
}

// BackendConfig points at the classification service this app fronts.
// CSRFPrimePath is the page fetched once to obtain the anti-forgery cookie.
type BackendConfig struct {
	BaseURL       string
	TimeoutSec    int
	CSRFCookie    string
	CSRFHeader    string
	CSRFPrimePath string
}

type SessionConfig struct {
	CookieName   string
	TTLMinutes   int
	CookieSecure bool
}

type CacheConfig struct {
	Backend         string
	CatalogTTLSec   int
	DashboardTTLSec int
	Redis           RedisConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LimitsConfig struct {
	MinChars          int
	MaxChars          int
	CounterDebounceMS int
}

type RateLimitConfig struct {
	MaxRequestsPerMinute int
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/deepmindcheck")

	viper.SetEnvPrefix("DEEPMINDCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readTimeout", 30)
	viper.SetDefault("server.writeTimeout", 30)
	viper.SetDefault("server.bodyLimit", 1048576)
	viper.SetDefault("server.allowedOrigins", []string{})
	viper.SetDefault("server.development", false)

	viper.SetDefault("backend.baseURL", "http://localhost:8000")
	viper.SetDefault("backend.timeoutSec", 30)
	viper.SetDefault("backend.csrfCookie", "csrftoken")
	viper.SetDefault("backend.csrfHeader", "X-CSRFToken")
	viper.SetDefault("backend.csrfPrimePath", "/analyze/")

	viper.SetDefault("session.cookieName", "dmc_session")
	viper.SetDefault("session.ttlMinutes", 60)
	viper.SetDefault("session.cookieSecure", false)

	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.catalogTTLSec", 300)
	viper.SetDefault("cache.dashboardTTLSec", 30)
	viper.SetDefault("cache.redis.host", "localhost")
	viper.SetDefault("cache.redis.port", 6379)
	viper.SetDefault("cache.redis.db", 0)

	viper.SetDefault("limits.minChars", 10)
	viper.SetDefault("limits.maxChars", 2000)
	viper.SetDefault("limits.counterDebounceMS", 500)

	viper.SetDefault("ratelimit.maxRequestsPerMinute", 60)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")
}
