package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string `mapstructure:"url"                       validate:"required"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"            validate:"gte=1"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_seconds" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// RateLimitConfig controls the per-client request rate limiter.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained refill rate per client IP.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	// Burst is the bucket capacity, i.e. the largest short burst allowed.
	Burst float64 `mapstructure:"burst" validate:"required,gte=1"`
}
