package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"k8s.io/klog/v2"
)

// New creates the process logger, sets it as the slog default and routes
// client-go's klog output through the same handler.
func New(logFormat, logLevel string) *slog.Logger {
	logger := slog.New(NewHandler(os.Stdout, logFormat, logLevel))

	slog.SetDefault(logger)
	klog.SetLogger(logr.FromSlogHandler(logger.Handler().WithAttrs([]slog.Attr{
		slog.String("component", "client-go"),
	})))

	return logger
}

// NewHandler creates a json or text handler. Unknown formats fall back to json.
func NewHandler(w io.Writer, logFormat, logLevel string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(logLevel),
	}

	if strings.ToLower(logFormat) == "text" {
		return slog.NewTextHandler(w, opts)
	}

	return slog.NewJSONHandler(w, opts)
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
