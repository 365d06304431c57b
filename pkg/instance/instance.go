package instance

import "os"

// EnvInstanceID overrides the detected instance identifier.
const EnvInstanceID = "DPAPI_INSTANCE_ID"

// ID identifies the running process in logs. It prefers DPAPI_INSTANCE_ID,
// then the host name, then "local".
func ID() string {
	if id := os.Getenv(EnvInstanceID); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
