package app

import (
	"strings"

	"github.com/charlesng35/companydesk/pkg/logger"
)

// ConfigureLogging initialises the global logger with the provided level, defaulting to info.
// format selects the encoder ("json" or "console").
func ConfigureLogging(level, format string) error {
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}
	return logger.InitWithOptions(logger.Options{Level: level, Format: format})
}
