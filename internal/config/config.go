package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	OAuth     OAuthConfig     `mapstructure:"oauth"     validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// AppURL is the externally visible base URL used for resource links,
	// Location headers and the OAuth redirect URI.
	AppURL                 string `mapstructure:"app_url"                  validate:"required,url"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                       validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=1"`
}

// AuthConfig configures validation of bearer tokens issued by the
// authorization server. Exactly one verification key is needed: a shared
// HMAC secret or a PEM encoded RSA public key.
type AuthConfig struct {
	TokenSecret string `mapstructure:"token_secret" validate:"required_without=PublicKey,omitempty,min=32"`
	PublicKey   string `mapstructure:"public_key"   validate:"required_without=TokenSecret"`
	Issuer      string `mapstructure:"issuer"`
	Audience    string `mapstructure:"audience"`
}

// OAuthConfig describes the client registration at the external
// authorization server.
type OAuthConfig struct {
	ServerURL    string   `mapstructure:"server_url"    validate:"required,url"`
	ClientID     string   `mapstructure:"client_id"     validate:"required"`
	ClientSecret string   `mapstructure:"client_secret" validate:"required"`
	Scopes       []string `mapstructure:"scopes"`
}

// RateLimitConfig controls per-client request throttling on the API.
type RateLimitConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	RPS      float64 `mapstructure:"rps"       validate:"gt=0"`
	Burst    int     `mapstructure:"burst"     validate:"gt=0"`
	Backend  string  `mapstructure:"backend"   validate:"oneof=memory redis"`
	RedisURL string  `mapstructure:"redis_url" validate:"required_if=Backend redis,omitempty,url"`
}

// CORSConfig lists the browser origins allowed to call the API.
// An empty list disables the CORS middleware.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
