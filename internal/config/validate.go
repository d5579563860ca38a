package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimRight(strings.TrimSpace(x), "/")
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.App.Host = strings.TrimSpace(out.App.Host)
	out.App.AllowedOrigins = trimList(out.App.AllowedOrigins)
	out.Store.Path = strings.TrimSpace(out.Store.Path)
	out.Auth.JWTSecret = strings.TrimSpace(out.Auth.JWTSecret)

	// ---- app ----
	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.App.Host != "127.0.0.1" && out.App.Host != "localhost" && out.App.Host != "::1" {
		res.addWarn("app.host is %q; the API will be reachable beyond this machine.", out.App.Host)
	}
	for _, o := range out.App.AllowedOrigins {
		if o == "*" {
			res.addWarn("app.allowed_origins contains \"*\"; any site can call the API with a user's token.")
		}
	}

	// ---- store ----
	if out.Store.Path == "" {
		res.addErr("store.path is required")
	}
	if out.Store.BusyTimeoutMS < 0 {
		res.addErr("store.busy_timeout_ms must be >= 0")
	}
	if out.Store.CheckpointMinutes < 0 {
		res.addErr("store.checkpoint_minutes must be >= 0")
	}

	// ---- auth ----
	if out.Auth.TokenTTLHours <= 0 {
		res.addErr("auth.token_ttl_hours must be > 0")
	} else if out.Auth.TokenTTLHours > 24*30 {
		res.addWarn("auth.token_ttl_hours is very high (%d); tokens cannot be revoked.", out.Auth.TokenTTLHours)
	}
	if out.Auth.JWTSecret != "" && len(out.Auth.JWTSecret) < 16 {
		res.addErr("auth.jwt_secret must be at least 16 characters")
	}
	if out.Auth.JWTSecret == "" && strings.TrimSpace(out.Auth.KeyringAccount) == "" {
		res.addErr("auth.keyring_account is required when auth.jwt_secret is empty")
	}

	// ---- listing ----
	if out.Listing.DefaultPageSize <= 0 {
		res.addErr("listing.default_page_size must be > 0")
	}
	if out.Listing.MaxPageSize <= 0 {
		res.addErr("listing.max_page_size must be > 0")
	} else if out.Listing.DefaultPageSize > out.Listing.MaxPageSize {
		res.addErr("listing.default_page_size (%d) exceeds listing.max_page_size (%d)",
			out.Listing.DefaultPageSize, out.Listing.MaxPageSize)
	}
	if out.Listing.MaxPageSize > 500 {
		res.addWarn("listing.max_page_size is %d; large pages are expensive to render.", out.Listing.MaxPageSize)
	}
	if out.Listing.ExcerptLength < 0 {
		res.addErr("listing.excerpt_length must be >= 0")
	}

	// ---- rate_limit ----
	if out.RateLimit.RequestsPerSecond < 0 {
		res.addErr("rate_limit.requests_per_second must be >= 0")
	} else if out.RateLimit.RequestsPerSecond == 0 {
		res.addWarn("rate_limit.requests_per_second is 0; rate limiting is disabled.")
	}
	if out.RateLimit.RequestsPerSecond > 0 && out.RateLimit.Burst <= 0 {
		res.addErr("rate_limit.burst must be > 0 when rate limiting is enabled")
	}

	// ---- analytics ----
	if out.Analytics.RecentLimit <= 0 || out.Analytics.RecentLimit > 50 {
		res.addErr("analytics.recent_limit must be 1..50")
	}

	return out, res
}
