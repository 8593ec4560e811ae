package config

import "time"

type HTTP struct {
	BaseURL         string        `env:"BASE_URL,expand" envDefault:"/"`
	Address         string        `env:"ADDRESS,expand" envDefault:":8000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,expand" envDefault:"10s"`
	Auth            Auth          `envPrefix:"AUTH_"`
	Session         Session       `envPrefix:"SESSION_"`
	CORS            CORS          `envPrefix:"CORS_"`
	RateLimit       RateLimit     `envPrefix:"RATE_LIMIT_"`
}

type Auth struct {
	Admin User `envPrefix:"ADMIN_"`
}

type User struct {
	Username string `env:"USERNAME,expand"`
	Password string `env:"PASSWORD,expand"`
}

type Session struct {
	// Keys are the authentication and encryption key pairs of the session
	// cookies, the first pair being used to sign new cookies
	Keys   []string      `env:"KEYS,expand" envSeparator:","`
	Cookie SessionCookie `envPrefix:"COOKIE_"`
}

type SessionCookie struct {
	Name     string        `env:"NAME,expand" envDefault:"saskatoon_admin"`
	Path     string        `env:"PATH,expand" envDefault:"/admin/"`
	MaxAge   time.Duration `env:"MAX_AGE,expand" envDefault:"1h"`
	Secure   bool          `env:"SECURE,expand" envDefault:"false"`
	HTTPOnly bool          `env:"HTTP_ONLY,expand" envDefault:"true"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,expand" envSeparator:"," envDefault:"*"`
}

// RateLimit applies to the public JSON routes
type RateLimit struct {
	Enabled      bool          `env:"ENABLED,expand" envDefault:"true"`
	TrustHeaders bool          `env:"TRUST_HEADERS,expand" envDefault:"false"`
	Interval     time.Duration `env:"INTERVAL,expand" envDefault:"100ms"`
	Burst        int           `env:"BURST,expand" envDefault:"20"`
	CacheSize    int           `env:"CACHE_SIZE,expand" envDefault:"1000"`
	CacheTTL     time.Duration `env:"CACHE_TTL,expand" envDefault:"10m"`
}
