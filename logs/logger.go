package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/graeme-hill/ami-go/config"
	slogmulti "github.com/samber/slog-multi"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps a configured level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level '%s'", name)
}

// New builds a logger writing text or JSON to w. When cfg.File is set every
// record is also appended to that file as JSON. The returned closer releases
// the file.
func New(cfg config.LogConfig, w io.Writer) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	level := new(slog.LevelVar)
	level.Set(lvl)
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handlers []slog.Handler

	// local
	switch cfg.Format {
	case "json":
		handlers = append(handlers, slog.NewJSONHandler(w, opts))
	case "text", "":
		handlers = append(handlers, slog.NewTextHandler(w, opts))
	default:
		return nil, nil, fmt.Errorf("unknown log format '%s'", cfg.Format)
	}

	// file
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
		closer = f
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closer, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}
