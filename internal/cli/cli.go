// Package cli holds the bootstrap helpers shared by the rap-* commands.
package cli

import (
	"fmt"
	"io"
	stdlog "log"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/log"
)

// DefaultProfile is used when neither a file nor a profile is given.
const DefaultProfile = "example"

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s (use: debug, info, warn, error)", s)
	}
}

// SetupLogging configures the standard logger's flags and installs a text
// slog handler writing to w as the default logger.
func SetupLogging(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	stdlog.SetOutput(w)
	stdlog.SetFlags(stdlog.Ltime | stdlog.Lmicroseconds)
	if lvl == slog.LevelDebug {
		stdlog.SetFlags(stdlog.Ltime | stdlog.Lmicroseconds | stdlog.Lshortfile)
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger, nil
}

// LoadConfiguration reads path when set, otherwise the named built-in
// profile, otherwise DefaultProfile.
func LoadConfiguration(path, profile string) (*config.Configuration, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if profile == "" {
		profile = DefaultProfile
	}
	return config.Profile(profile)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenProtocolLog opens a CBOR protocol log at path. maxSizeMB > 0 rotates
// the file at that size. An empty path yields a no-op logger.
func OpenProtocolLog(path string, maxSizeMB int) (log.Logger, io.Closer, error) {
	if path == "" {
		return log.NoopLogger{}, nopCloser{}, nil
	}
	if maxSizeMB > 0 {
		l := log.NewRotatingFileLogger(path, log.RotateOptions{MaxSizeMB: maxSizeMB, MaxBackups: 5})
		return l, l, nil
	}
	l, err := log.NewFileLogger(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open protocol log: %w", err)
	}
	return l, l, nil
}

// EchoProtocol tees protocol events to console at debug level when echo is
// set. The file logger l is kept either way.
func EchoProtocol(l log.Logger, console *slog.Logger, echo bool) log.Logger {
	if !echo {
		return l
	}
	return log.NewMultiLogger(l, log.NewSlogAdapter(console))
}

// ParseUint parses decimal, 0x hex, 0o octal or 0b binary values.
func ParseUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// ParseRange parses an inclusive address range "lo-hi" or a single address.
func ParseRange(s string) (lo, hi uint64, err error) {
	loStr, hiStr, found := strings.Cut(s, "-")
	if lo, err = ParseUint(strings.TrimSpace(loStr)); err != nil {
		return 0, 0, err
	}
	if !found {
		return lo, lo, nil
	}
	if hi, err = ParseUint(strings.TrimSpace(hiStr)); err != nil {
		return 0, 0, err
	}
	if hi < lo {
		return 0, 0, fmt.Errorf("invalid range %q: end before start", s)
	}
	return lo, hi, nil
}

// ParseValues parses a comma or space separated list of numbers.
func ParseValues(s string) ([]uint64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]uint64, 0, len(fields))
	for _, f := range fields {
		v, err := ParseUint(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
