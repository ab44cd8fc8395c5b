package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logFile *os.File
	logPath string

	sinkOnce sync.Once
	sink     io.Writer = os.Stdout

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   = &slog.LevelVar{}

	internalLoggerOnce sync.Once
	internalLogger     *slog.Logger
	internalLevelVar   = &slog.LevelVar{}
)

// SetLogPath sets the full path for the log file, including filename.
// Parent directories are created on first use. It has no effect once a
// logger has been built.
func SetLogPath(path string) {
	logPath = path
}

func openSink() {
	sinkOnce.Do(func() {
		if logPath == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			// Console only.
			return
		}
		logFile = f
		sink = io.MultiWriter(os.Stdout, logFile)
	})
}

func newJSONLogger(level *slog.LevelVar, attrs ...any) *slog.Logger {
	openSink()
	handler := slog.NewJSONHandler(sink, &slog.HandlerOptions{
		Level:     level,
		AddSource: false,
	})
	return slog.New(handler).With(attrs...)
}

// GetLogger returns the application logger.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		logger = newJSONLogger(levelVar)
	})
	return logger
}

// GetInternalLogger returns the logger scanline's own packages write to. It
// has its own level so library noise can be silenced independently.
func GetInternalLogger() *slog.Logger {
	internalLoggerOnce.Do(func() {
		internalLogger = newJSONLogger(internalLevelVar, "component", "scanline")
	})
	return internalLogger
}

func SetLogLevel(level slog.Level) {
	levelVar.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	internalLevelVar.Set(level)
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to Info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetRawLogLevel(rawLevel string) {
	SetLogLevel(ParseLevel(rawLevel))
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
