package commands

import (
	"strings"

	"github.com/goliatone/go-better-i18n/internal/logging"
	"github.com/goliatone/go-better-i18n/pkg/interfaces"
)

// CommandLogger names command loggers "i18n.commands.<group>", e.g.
// "i18n.commands.markdown", and tags every entry with the group.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.ToLower(strings.TrimSpace(group))
	if group == "" {
		group = "core"
	}
	return logging.WithFields(
		logging.ModuleLogger(provider, "i18n.commands."+group),
		map[string]any{"command_group": group},
	)
}
