package logging

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

// New returns a console logger filtered at level ("debug", "info", "warn", "error")
func New(level string) arbor.ILogger {
	logger := arbor.NewLogger().WithConsoleWriter(models.WriterConfiguration{
		Type:             models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		TextOutput:       true,
		DisableTimestamp: false,
	})
	return logger.WithLevelFromString(level)
}

// Discard returns a logger for tests that only surfaces errors
func Discard() arbor.ILogger {
	return arbor.NewLogger().WithLevelFromString("error")
}
