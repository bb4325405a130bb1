package instance

import "os"

// EnvInstanceID overrides the detected instance identifier.
const EnvInstanceID = "SHOPNEX_INSTANCE_ID"

// GetID identifies this process in logs: the explicit override, then the
// Heroku dyno name, then the hostname.
func GetID() string {
	if id := os.Getenv(EnvInstanceID); id != "" {
		return id
	}
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
