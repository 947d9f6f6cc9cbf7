// Package logging provides structured logging setup for rentdesk.
package logging

import (
	"io"
	"log/slog"
)

// Setup initializes the default slog logger writing to w.
// Dev mode uses human-readable text; prod uses JSON.
func Setup(w io.Writer, devMode bool) {
	var handler slog.Handler
	if devMode {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	slog.SetDefault(slog.New(handler))
}
