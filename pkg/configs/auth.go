package configs

import "github.com/spf13/viper"

// AuthConfig controls requester identification. Authentication itself is an
// external collaborator (reverse proxy / SSO); the portal trusts the user
// header it injects and resolves the department from the profile table.
type AuthConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	UserHeader    string   `mapstructure:"user_header"`     // header carrying the authenticated username
	SkipPaths     []string `mapstructure:"skip_paths"`      // path prefixes exempt from auth (public URLs, health, metrics)
	DevAllowQuery bool     `mapstructure:"dev_allow_query"` // allow ?user= fallback for local development
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.user_header", "X-Auth-Request-User")
	v.SetDefault("auth.dev_allow_query", true)
	v.SetDefault("auth.skip_paths", []string{
		"/metrics",
		"/debug/pprof",
		"/api/v1/health",
		"/public",
	})
}
