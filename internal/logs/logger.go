// Package logs builds the process logger: text to a writer, plus the systemd
// journal when running as a service.
package logs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Options configures New.
type Options struct {
	Writer  io.Writer // text output; nil discards
	Level   string    // debug, info, warn or error; empty means info
	Session string    // attached to every record when set
}

// underSystemd is replaced in tests.
var underSystemd = isSystemdService

// New returns a logger fanning out to every available handler. An
// unparsable level is an error.
func New(opts Options) (*slog.Logger, error) {
	level := new(slog.LevelVar)
	if opts.Level != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level.Set(l)
	}

	w := opts.Writer
	if w == nil {
		w = io.Discard
	}

	var handlers []slog.Handler

	// local
	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	service := underSystemd()
	if !service {
		handlers = append(handlers, textHandler)
	}

	// systemd journal
	if service {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", err)
			_ = textHandler.Handle(context.Background(), record)
			handlers = append(handlers, textHandler)
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	logger := slog.New(slogmulti.Fanout(handlers...))
	if opts.Session != "" {
		logger = logger.With("session", opts.Session)
	}
	return logger, nil
}

// OpenFile opens path for appending, creating it if needed. The TUI logs
// here because the alternate screen owns the terminal.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}

func isSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	parts := strings.Split(strings.TrimSpace(string(content)), ":")
	if len(parts) < 3 {
		return false
	}
	return strings.HasSuffix(path.Dir(parts[2]), ".service")
}
