// validate.go - validation of the loaded settings before the worker starts
package conf

import (
	"fmt"
	"strings"
)

// ValidateSettings checks that the loaded settings are usable. Required
// values must be present before the worker connects to anything, so a broken
// deployment fails at startup instead of on the first message.
func ValidateSettings(settings *Settings) error {
	var problems []string

	if settings.Model.Path == "" {
		problems = append(problems, "model.path is required")
	}
	if settings.Model.Threads < 0 {
		problems = append(problems, "model.threads must be 0 or greater")
	}

	if settings.Queue.URL == "" {
		problems = append(problems, "queue.url is required")
	}
	if settings.Queue.Queue == "" {
		problems = append(problems, "queue.queue is required")
	}

	switch settings.Storage.Provider {
	case "http":
		if settings.Storage.Endpoint == "" {
			problems = append(problems, "storage.endpoint is required for the http provider")
		}
	case "local":
		if settings.Storage.Root == "" {
			problems = append(problems, "storage.root is required for the local provider")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown storage.provider %q", settings.Storage.Provider))
	}

	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		problems = append(problems, "either output.sqlite or output.mysql must be enabled")
	}
	if settings.Output.SQLite.Enabled && settings.Output.MySQL.Enabled {
		problems = append(problems, "only one of output.sqlite and output.mysql may be enabled")
	}

	if settings.Notify.Enabled && len(settings.Notify.URLs) == 0 {
		problems = append(problems, "notify.urls is required when notify is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
