package instance

import (
	"os"
	"strings"
)

// GetID returns an identifier for this process, used to tell replicas apart in logs.
func GetID() string {
	for _, key := range []string{"WEATHERAPP_INSTANCE_ID", "DYNO", "HOSTNAME"} {
		if id := strings.TrimSpace(os.Getenv(key)); id != "" {
			return id
		}
	}
	return "local"
}
