package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/crewlab/baton/internal/config"
	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/logging"
)

// logFileWriter holds the log file writer for cleanup purposes.
var logFileWriter io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup

// zerologConfigOnce ensures zerolog global settings are configured exactly once.
var zerologConfigOnce sync.Once //nolint:gochecknoglobals // One-time configuration

// zerologGlobalMu protects concurrent writes to the zerolog global logger.
var zerologGlobalMu sync.Mutex //nolint:gochecknoglobals // Protects zerolog global

// configureZerologGlobals sets zerolog global field names once.
func configureZerologGlobals() {
	zerologConfigOnce.Do(func() {
		zerolog.TimestampFieldName = "ts"
		zerolog.MessageFieldName = "event"
	})
}

// InitLogger creates and configures a zerolog.Logger.
//
// Log levels: verbose selects debug, quiet selects warn, otherwise the
// configured level applies. Console output uses zerolog's console writer on
// a TTY without NO_COLOR, JSON to stderr otherwise. The logger also writes
// to <home>/logs/baton.log through a rotating, token-redacting writer; if
// the log file cannot be created the logger continues console-only.
func InitLogger(verbose, quiet bool, home string, cfg config.LoggingConfig) zerolog.Logger {
	configureZerologGlobals()

	level := selectLevel(verbose, quiet, cfg.Level)
	console := selectOutput()

	var writer io.Writer = console
	if fileWriter, err := createLogFileWriter(home, cfg); err == nil {
		logFileWriter = fileWriter
		writer = zerolog.MultiLevelWriter(console, fileWriter)
	}

	logger := zerolog.New(writer).
		Level(level).
		Hook(logging.NewSensitiveDataHook()).
		With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// InitLoggerWithWriter creates a logger with a custom writer, for tests.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	configureZerologGlobals()

	logger := zerolog.New(w).
		Level(selectLevel(verbose, quiet, "")).
		Hook(logging.NewSensitiveDataHook()).
		With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// setGlobalLogger aligns the zerolog package-level logger with the CLI
// logger so stray log.Info() calls share formatting and filtering.
func setGlobalLogger(cliLogger zerolog.Logger) {
	zerologGlobalMu.Lock()
	defer zerologGlobalMu.Unlock()
	log.Logger = cliLogger
}

// CloseLogFile closes the global log file writer if it was opened.
func CloseLogFile() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// selectLevel determines the log level from flags and config.
func selectLevel(verbose, quiet bool, configured string) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	}
	if lvl, err := zerolog.ParseLevel(configured); err == nil && configured != "" {
		return lvl
	}
	return zerolog.InfoLevel
}

// selectOutput picks console or JSON output based on terminal capabilities.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// filteringWriteCloser wraps a WriteCloser with sensitive data filtering.
type filteringWriteCloser struct {
	filter *logging.FilteringWriter
	closer io.Closer
}

// Write implements io.Writer by delegating to the filtering writer.
func (fwc *filteringWriteCloser) Write(p []byte) (n int, err error) {
	return fwc.filter.Write(p)
}

// Close implements io.Closer by delegating to the underlying closer.
func (fwc *filteringWriteCloser) Close() error {
	return fwc.closer.Close()
}

// createLogFileWriter creates the rotating, redacting file writer for the
// global CLI log.
func createLogFileWriter(home string, cfg config.LoggingConfig) (io.WriteCloser, error) {
	batonHome, err := resolveBatonHome(home)
	if err != nil {
		return nil, err
	}

	logDir := filepath.Join(batonHome, constants.LogsDir)
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.CLILogFileName),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	return &filteringWriteCloser{
		filter: logging.NewFilteringWriter(lj),
		closer: lj,
	}, nil
}

// resolveBatonHome returns the baton home directory: the explicit override,
// the BATON_HOME environment variable, or ~/.baton.
func resolveBatonHome(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if batonHome := os.Getenv("BATON_HOME"); batonHome != "" {
		return batonHome, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, constants.BatonHome), nil
}

// LogFilePath returns the path to the global CLI log file.
func LogFilePath(home string) (string, error) {
	batonHome, err := resolveBatonHome(home)
	if err != nil {
		return "", err
	}
	return filepath.Join(batonHome, constants.LogsDir, constants.CLILogFileName), nil
}
