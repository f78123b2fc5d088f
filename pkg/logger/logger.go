// Package logger provides structured logging for the routing engine and
// its CLI driver, built on log/slog with optional file rotation.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the package-level logger used by engine code that has no logger
// of its own threaded through. Callers that care about structured
// request/run correlation should prefer Log.With(...) over the free
// functions below.
var Log *slog.Logger

func init() {
	Init("info")
}

// Config controls where and how logs are written.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, stderr, file
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// Init configures Log with sane defaults for the given level.
func Init(level string) {
	InitWithConfig(Config{Level: level, Format: "json", Output: "stdout"})
}

// InitWithConfig configures Log from a full Config.
func InitWithConfig(cfg Config) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var writer io.Writer
	switch cfg.Output {
	case "stderr":
		writer = os.Stderr
	case "file":
		writer = fileWriter(cfg)
	default:
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: level == slog.LevelDebug}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}

	Log = slog.New(handler)
}

func fileWriter(cfg Config) io.Writer {
	path := cfg.FilePath
	if path == "" {
		path = "logs/streetsweep.log"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return os.Stdout
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}

// WithRun returns a logger annotated with a run ID, for correlating the
// whole lifetime of one Solve invocation across stages.
func WithRun(runID string) *slog.Logger {
	return Log.With("run_id", runID)
}

// WithStage returns a logger annotated with the current pipeline stage.
func WithStage(stage string) *slog.Logger {
	return Log.With("stage", stage)
}

func Debug(msg string, args ...any) { Log.Debug(msg, args...) }
func Info(msg string, args ...any)  { Log.Info(msg, args...) }
func Warn(msg string, args ...any)  { Log.Warn(msg, args...) }
func Error(msg string, args ...any) { Log.Error(msg, args...) }
