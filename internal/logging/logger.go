package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"pmvhaven/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Stderr receives the diagnostic stream; defaults to os.Stderr.
	Stderr io.Writer
	// FilePath is the shared side log. Empty disables it.
	FilePath  string
	SessionID string
	// NoColor disables ANSI colours even when Stderr is a terminal.
	NoColor bool
}

// New constructs a slog logger using the provided options. A side log that
// cannot be opened is reported on stderr and skipped rather than failing.
func New(opts Options) (*slog.Logger, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(opts.Level))
	addSource := levelVar.Level() <= slog.LevelDebug

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var handlers []slog.Handler
	switch format {
	case "json":
		handlers = append(handlers, newJSONHandler(stderr, levelVar, addSource))
	case "console":
		handlers = append(handlers, newPrettyHandler(stderr, levelVar, addSource, !opts.NoColor && shouldColorize(stderr)))
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	var fileErr error
	if path := strings.TrimSpace(opts.FilePath); path != "" {
		writer, err := newLockedFileWriter(path)
		if err != nil {
			fileErr = err
		} else if format == "json" {
			handlers = append(handlers, newJSONHandler(writer, levelVar, addSource))
		} else {
			handlers = append(handlers, newPrettyHandler(writer, levelVar, addSource, false))
		}
	}

	logger := slog.New(newSessionIDHandler(newFanoutHandler(handlers...), opts.SessionID))
	if fileErr != nil {
		WarnWithContext(logger, "side log unavailable", "log_file_unavailable",
			Error(fileErr),
			String(FieldErrorHint, "check logging.dir permissions or set STASH_LOG_DIR"),
			String(FieldImpact, "diagnostics are written to stderr only"))
	}
	return logger, nil
}

// NewFromConfig creates a logger using application config values and a fresh
// session identifier. A nil stderr means os.Stderr.
func NewFromConfig(cfg *config.Config, stderr io.Writer) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console", Stderr: stderr, SessionID: NewSessionID()})
	}
	return New(Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Stderr:    stderr,
		FilePath:  cfg.LogFilePath(),
		SessionID: NewSessionID(),
		NoColor:   os.Getenv("NO_COLOR") != "",
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
