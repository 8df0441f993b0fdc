package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bngproject/go-bng/network"
	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// log is a logger that is initialized with no output filters. This means the
// package will not perform any logging by default until the caller requests
// it.
var log btclog.Logger

// The default amount of logging is none.
func init() {
	DisableLog()
}

// DisableLog disables all library log output. Logging output is disabled by
// default until UseLogger is called.
func DisableLog() {
	log = btclog.Disabled
}

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger btclog.Logger) {
	log = logger
}

const (
	// LogFilename is the name of the log file written below
	// Config.LogDir.
	LogFilename = "bng.log"

	subsystemNetwork   = "NETW"
	subsystemBootstrap = "BOOT"
)

// logWriter implements an io.Writer that outputs to both standard output
// and the log rotator, when one is configured.
type logWriter struct {
	stdout  io.Writer
	rotator *rotator.Rotator
}

func (w *logWriter) Write(b []byte) (int, error) {
	if w.stdout != nil {
		w.stdout.Write(b)
	}
	if w.rotator != nil {
		w.rotator.Write(b)
	}
	return len(b), nil
}

// LogSetup owns the logging backend of a process and the subsystem loggers
// created from it. A single backend is created and all subsystem loggers
// write to it.
type LogSetup struct {
	writer  *logWriter
	backend *btclog.Backend

	subsystemLoggers map[string]btclog.Logger
}

// NewLogSetup creates the logging backend described by cfg and hands the
// NETW and BOOT loggers to their packages. Output goes to stdout and, when
// cfg.LogDir is set, to a rotated file in that directory.
func NewLogSetup(cfg *Config, stdout io.Writer) (*LogSetup, error) {
	w := &logWriter{stdout: stdout}

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create log "+
				"directory: %w", err)
		}

		logFile := filepath.Join(cfg.LogDir, LogFilename)
		r, err := rotator.New(
			logFile, int64(cfg.MaxLogFileSize*1024), false,
			cfg.MaxLogFiles,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create file "+
				"rotator: %w", err)
		}
		w.rotator = r
	}

	backend := btclog.NewBackend(w)
	l := &LogSetup{
		writer:  w,
		backend: backend,
		subsystemLoggers: map[string]btclog.Logger{
			subsystemNetwork:   backend.Logger(subsystemNetwork),
			subsystemBootstrap: backend.Logger(subsystemBootstrap),
		},
	}

	network.UseLogger(l.subsystemLoggers[subsystemNetwork])
	UseLogger(l.subsystemLoggers[subsystemBootstrap])

	l.SetLogLevels(cfg.DebugLevel)
	return l, nil
}

// SetLogLevel sets the logging level for provided subsystem. Invalid
// subsystems are ignored.
func (l *LogSetup) SetLogLevel(subsystemID string, logLevel string) {
	logger, ok := l.subsystemLoggers[subsystemID]
	if !ok {
		return
	}

	// Defaults to info if the log level is invalid.
	level, _ := btclog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets the log level for all subsystem loggers to the passed
// level.
func (l *LogSetup) SetLogLevels(logLevel string) {
	for subsystemID := range l.subsystemLoggers {
		l.SetLogLevel(subsystemID, logLevel)
	}
}

// SupportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func (l *LogSetup) SupportedSubsystems() []string {
	subsystems := make([]string, 0, len(l.subsystemLoggers))
	for subsysID := range l.subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

// Close detaches the package loggers and closes the log file, if any.
func (l *LogSetup) Close() error {
	network.DisableLog()
	DisableLog()

	if l.writer.rotator == nil {
		return nil
	}
	return l.writer.rotator.Close()
}

// logClosure is used to provide a closure over expensive logging operations so
// don't have to be performed when the logging level doesn't warrant it.
type logClosure func() string

// String invokes the underlying function and returns the result.
func (c logClosure) String() string {
	return c()
}

// newLogClosure returns a new closure over a function that returns a string
// which itself provides a Stringer interface so that it can be used with the
// logging system.
func newLogClosure(c func() string) logClosure {
	return logClosure(c)
}
