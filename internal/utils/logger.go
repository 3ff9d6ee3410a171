package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	Logger zerolog.Logger
)

// LogOptions controls where and how much the global Logger writes.
type LogOptions struct {
	Level   string // zerolog level name, e.g. "debug", "info"
	File    string // optional log file, appended to
	Console bool
	// Out overrides the console destination. Defaults to stdout.
	Out io.Writer
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	Logger = zerolog.New(newConsoleWriter(os.Stdout)).With().Timestamp().Caller().Logger()
	log.Logger = Logger
}

// SetupLogger rebuilds the global Logger. The returned closer releases the log
// file, if one was opened.
func SetupLogger(opts LogOptions) (io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	var writers []io.Writer
	if opts.Console {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		writers = append(writers, newConsoleWriter(out))
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		logFile, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, logFile)
		closer = logFile
	}

	var w io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	Logger = zerolog.New(w).Level(level).With().Timestamp().Caller().Logger()
	// Also replace global log, so log.Info().Msg() etc works everywhere
	log.Logger = Logger
	return closer, nil
}

func newConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	consoleWriter := zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05",
		FormatCaller: func(i interface{}) string {
			s, _ := i.(string)
			return filepath.Base(s)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("|%s|", i)
		},
	}

	consoleWriter.FormatLevel = func(i interface{}) string {
		s, _ := i.(string)
		level := strings.ToUpper(s)
		switch level {
		case "DEBUG":
			return "\033[36m[" + level + "]\033[0m"
		case "INFO":
			return "\033[32m[" + level + "]\033[0m"
		case "WARN":
			return "\033[33m[" + level + "]\033[0m"
		case "ERROR":
			return "\033[31m[" + level + "]\033[0m"
		default:
			return level
		}
	}
	return consoleWriter
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
