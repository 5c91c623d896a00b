package http

import "time"

// Http holds the HTTP server configuration.
type Http struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ContextPath     string `mapstructure:"contextPath"`
	PProf           bool   `mapstructure:"pprof"`
	ExposeMetrics   bool   `mapstructure:"exposeMetrics"`
	AccessLog       bool   `mapstructure:"accessLog"`
	ReadTimeout     int    `mapstructure:"readTimeout"`
	WriteTimeout    int    `mapstructure:"writeTimeout"`
	IdleTimeout     int    `mapstructure:"idleTimeout"`
	ShutdownTimeout int    `mapstructure:"shutdownTimeout"`
	Auth            Auth   `mapstructure:"auth"`
}

// Auth holds the token signing configuration.
type Auth struct {
	SecretKey      string        `mapstructure:"secretKey"`
	AccessExpire   time.Duration `mapstructure:"accessExpire"` // hours; 720 (30 days) when zero
	RedisKeyPrefix string        `mapstructure:"redisKeyPrefix"`
}

const defaultAccessExpire = 720 * time.Hour // 30 days

// Expire returns the configured token lifetime.
func (a Auth) Expire() time.Duration {
	if a.AccessExpire <= 0 {
		return defaultAccessExpire
	}
	return a.AccessExpire * time.Hour
}
