package helpers

import (
	"time"

	"github.com/rs/zerolog"
)

// ConfigDuration reads a duration setting such as jwt.access_token_expiration.
// Empty, malformed and non-positive values fall back to def, and the logger
// names the offending key so a bad config line is easy to find.
func ConfigDuration(key, value string, def time.Duration, lgr zerolog.Logger) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	switch {
	case err != nil:
		lgr.Warn().Err(err).Str("key", key).Str("value", value).Dur("fallback", def).Msg("Invalid duration in config, using fallback")
		return def
	case d <= 0:
		lgr.Warn().Str("key", key).Str("value", value).Dur("fallback", def).Msg("Duration in config must be positive, using fallback")
		return def
	}
	return d
}
