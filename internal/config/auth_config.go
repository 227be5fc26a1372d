package config

import "time"

type AuthConfig interface {
	GetTokenSecret() []byte
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetCookiePath() string
}

type Auth struct{}

var _ AuthConfig = Auth{}

// GetTokenSecret returns the shared signing secret. Loaded once per
// call site at process start; the codec receives it as injected
// configuration.
func (Auth) GetTokenSecret() []byte {
	return []byte(GetEnv("ACCESS_KEY", "dev-only-signing-secret"))
}

func (Auth) GetAccessTokenExpiry() time.Duration {
	return 1 * time.Hour
}

func (Auth) GetRefreshTokenExpiry() time.Duration {
	return 7 * 24 * time.Hour
}

// GetCookiePath is the path prefix both session cookies are scoped to.
func (Auth) GetCookiePath() string {
	return "/api"
}
