package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Platform PlatformConfig
	Notify   NotifyConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	URL            string
	MaxConnections int
	MaxIdleConns   int
}

type RedisConfig struct {
	URL          string
	SiteCacheTTL time.Duration
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	RefreshTTL time.Duration
}

type PlatformConfig struct {
	// ApexDomain is the platform's own registrable domain (marketing site).
	ApexDomain string
	// LegacyApexDomains are grandfathered single-tenant domains the platform
	// serves as its own surface, predating multi-tenancy.
	LegacyApexDomains []string
	// ReservedSubdomains overrides the built-in reserved label set when set.
	ReservedSubdomains []string
	// VerificationTarget is the hostname custom domains must point at.
	VerificationTarget string
	// RSVPRateLimit / RSVPRateBurst throttle the public RSVP endpoints per IP.
	RSVPRateLimit float64
	RSVPRateBurst int
}

type NotifyConfig struct {
	WorkerCount int
	PopTimeout  time.Duration
	HTTPTimeout time.Duration
	MaxRetries  int
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvPrefix("KNOTWORTHY")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.maxconnections", 25)
	viper.SetDefault("database.maxidleconns", 5)
	viper.SetDefault("redis.sitecachettl", "5m")
	viper.SetDefault("auth.tokenttl", "1h")
	viper.SetDefault("auth.refreshttl", "720h")
	viper.SetDefault("platform.apexdomain", "knotworthy.com")
	viper.SetDefault("platform.verificationtarget", "sites.knotworthy.com")
	viper.SetDefault("platform.rsvpratelimit", 5.0)
	viper.SetDefault("platform.rsvprateburst", 10)
	viper.SetDefault("notify.workercount", 4)
	viper.SetDefault("notify.poptimeout", "5s")
	viper.SetDefault("notify.httptimeout", "10s")
	viper.SetDefault("notify.maxretries", 3)

	var cfg Config
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Override with environment variables
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		cfg.Redis.URL = url
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if apex := os.Getenv("APEX_DOMAIN"); apex != "" {
		cfg.Platform.ApexDomain = apex
	}

	return &cfg, nil
}
