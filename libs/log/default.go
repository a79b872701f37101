package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var _ Logger = (*zeroLogger)(nil)

// missingValue is logged in place of the value of a trailing key.
const missingValue = "(MISSING)"

type zeroLogger struct {
	zl zerolog.Logger
}

// NewDefaultLogger returns a zerolog backed Logger writing to stderr.
//
// Values implementing fmt.Stringer, such as identifiers and heights, are
// logged through their String method so that JSON output carries
// "07-tendermint-0" or "1-42" rather than the underlying struct.
func NewDefaultLogger(format, level string) (Logger, error) {
	return NewLogger(os.Stderr, format, level)
}

// MustNewDefaultLogger is NewDefaultLogger but panics on error.
func MustNewDefaultLogger(format, level string) Logger {
	logger, err := NewDefaultLogger(format, level)
	if err != nil {
		panic(err)
	}
	return logger
}

// NewLogger is like NewDefaultLogger but writes to w.
func NewLogger(w io.Writer, format, level string) (Logger, error) {
	var out io.Writer
	switch strings.ToLower(format) {
	case LogFormatPlain, LogFormatText:
		out = zerolog.ConsoleWriter{
			Out:         w,
			NoColor:     true,
			TimeFormat:  time.RFC3339,
			FormatLevel: formatLevel,
		}
	case LogFormatJSON:
		out = w
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level (%s): %w", level, err)
	}

	return &zeroLogger{
		zl: zerolog.New(NewSyncWriter(out)).Level(lvl).With().Timestamp().Logger(),
	}, nil
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return &zeroLogger{zl: zerolog.Nop()}
}

func (l *zeroLogger) Debug(msg string, keyVals ...interface{}) {
	l.zl.Debug().Fields(fields(keyVals)).Msg(msg)
}

func (l *zeroLogger) Info(msg string, keyVals ...interface{}) {
	l.zl.Info().Fields(fields(keyVals)).Msg(msg)
}

func (l *zeroLogger) Error(msg string, keyVals ...interface{}) {
	l.zl.Error().Fields(fields(keyVals)).Msg(msg)
}

func (l *zeroLogger) With(keyVals ...interface{}) Logger {
	return &zeroLogger{zl: l.zl.With().Fields(fields(keyVals)).Logger()}
}

func formatLevel(i interface{}) string {
	if lvl, ok := i.(string); ok {
		return strings.ToUpper(lvl)
	}
	return "????"
}

func fields(keyVals []interface{}) map[string]interface{} {
	if len(keyVals) == 0 {
		return nil
	}
	if len(keyVals)%2 != 0 {
		padded := make([]interface{}, len(keyVals), len(keyVals)+1)
		copy(padded, keyVals)
		keyVals = append(padded, missingValue)
	}

	out := make(map[string]interface{}, len(keyVals)/2)
	for i := 0; i < len(keyVals); i += 2 {
		key := fmt.Sprint(keyVals[i])
		switch v := keyVals[i+1].(type) {
		case error:
			out[key] = v.Error()
		case fmt.Stringer:
			out[key] = v.String()
		default:
			out[key] = v
		}
	}
	return out
}
