package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timestampFormat = "06-01-02 15:04:05"

var (
	// Logger process-wide logger, set by Init.
	Logger *logrus.Logger

	currentLogFile string
	fileWriter     *lumberjack.Logger
	logMu          sync.Mutex
)

// Config logging options.
type Config struct {
	Level      string    // debug, info, warn, error
	OutputFile string    // optional; console only when empty
	MaxSize    int       // MB per file before rotation
	MaxBackups int       // rotated files kept
	MaxAge     int       // days rotated files are kept
	Compress   bool      // gzip rotated files
	JSON       bool      // JSON lines instead of text
	Console    io.Writer // os.Stdout when nil
}

func formatter(cfg Config) logrus.Formatter {
	if cfg.JSON {
		return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		ForceColors:     cfg.Console == nil,
	}
}

// Init configures Logger and the global logrus logger. Both write to the
// console and, when OutputFile is set, to a rotating file.
func Init(cfg Config) error {
	logMu.Lock()
	defer logMu.Unlock()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	console := cfg.Console
	if console == nil {
		console = os.Stdout
	}
	writers := []io.Writer{console}

	if fileWriter != nil {
		_ = fileWriter.Close()
		fileWriter = nil
	}
	currentLogFile = ""
	if cfg.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0o755); err != nil {
			return err
		}
		fileWriter = &lumberjack.Logger{
			Filename:   cfg.OutputFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		writers = append(writers, fileWriter)
		currentLogFile = cfg.OutputFile
	}
	out := io.MultiWriter(writers...)

	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(formatter(cfg))
	l.SetOutput(out)

	// Packages that log through logrus.WithField end up in the same place.
	logrus.SetOutput(out)
	logrus.SetLevel(level)
	logrus.SetFormatter(formatter(cfg))

	Logger = l
	return nil
}

// InitDefault console logging at info level.
func InitDefault() error {
	return Init(Config{Level: "info"})
}

// Close flushes and closes the log file, if any.
func Close() error {
	logMu.Lock()
	defer logMu.Unlock()
	if fileWriter == nil {
		return nil
	}
	err := fileWriter.Close()
	fileWriter = nil
	return err
}

func Debugf(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Debugf(format, args...)
	}
}

func Infof(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Infof(format, args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Warnf(format, args...)
	}
}

func Errorf(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Errorf(format, args...)
	}
}

// WithField entry of Logger with one field.
func WithField(key string, value interface{}) *logrus.Entry {
	return Entry().WithField(key, value)
}

// WithFields entry of Logger with fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Entry().WithFields(fields)
}

// Entry base entry of Logger, the standard logrus logger before Init.
func Entry() *logrus.Entry {
	if Logger != nil {
		return logrus.NewEntry(Logger)
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// GetCurrentLogFile path of the active log file, "" when console only.
func GetCurrentLogFile() string {
	logMu.Lock()
	defer logMu.Unlock()
	return currentLogFile
}
