package cmd

import (
	"fmt"
	"log/slog"
	"os"
)

// openLogger returns a JSON logger writing to path. The prompt owns the
// terminal, so without a path logs are discarded.
func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return logger, func() { f.Close() }, nil
}
