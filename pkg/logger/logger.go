// Package logger wraps zerolog behind a small printf-style API.
package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"PayFlow/pkg/correlation"

	"github.com/rs/zerolog"
)

type Interface interface {
	Debug(message interface{}, args ...interface{})
	Info(message string, args ...interface{})
	Warn(message string, args ...interface{})
	Error(message interface{}, args ...interface{})
	Fatal(message interface{}, args ...interface{})
}

type Logger struct {
	logger *zerolog.Logger
}

var _ Interface = (*Logger)(nil)

func New(level string) *Logger {
	zerolog.SetGlobalLevel(parseLevel(level))

	skipFrameCount := 3
	logger := zerolog.New(os.Stdout).With().Timestamp().CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + skipFrameCount).Logger()

	return &Logger{
		logger: &logger,
	}
}

// Nop returns a logger that drops everything. Used by tests.
func Nop() *Logger {
	logger := zerolog.Nop()
	return &Logger{logger: &logger}
}

// WithContext returns a logger that tags every record with the correlation
// and flow ids found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	corrID := correlation.FromContext(ctx)
	flowID := correlation.FlowFromContext(ctx)
	if corrID == "" && flowID == "" {
		return l
	}

	lc := l.logger.With()
	if corrID != "" {
		lc = lc.Str("correlation_id", corrID)
	}
	if flowID != "" {
		lc = lc.Str("flow_id", flowID)
	}
	logger := lc.Logger()
	return &Logger{logger: &logger}
}

func (l *Logger) Debug(message interface{}, args ...interface{}) {
	l.msg("debug", message, args...)
}

func (l *Logger) Info(message string, args ...interface{}) {
	l.log(message, args...)
}

func (l *Logger) Warn(message string, args ...interface{}) {
	l.logger.Warn().Msgf(message, args...)
}

func (l *Logger) Error(message interface{}, args ...interface{}) {
	if l.logger.GetLevel() == zerolog.DebugLevel {
		l.Debug(message, args...)
	}

	l.msg("error", message, args...)
}

func (l *Logger) Fatal(message interface{}, args ...interface{}) {
	l.msg("fatal", message, args...)

	os.Exit(1)
}

func (l *Logger) log(message string, args ...interface{}) {
	if len(args) == 0 {
		l.logger.Info().Msg(message)
	} else {
		l.logger.Info().Msgf(message, args...)
	}
}

func (l *Logger) msg(level string, message interface{}, args ...interface{}) {
	var event *zerolog.Event
	switch level {
	case "debug":
		event = l.logger.Debug()
	case "fatal":
		event = l.logger.Fatal()
	default:
		event = l.logger.Error()
	}

	switch msg := message.(type) {
	case error:
		event.Msg(msg.Error())
	case string:
		if len(args) == 0 {
			event.Msg(msg)
		} else {
			event.Msgf(msg, args...)
		}
	default:
		event.Msg(fmt.Sprintf("%s message %v has unknown type %v", level, message, msg))
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
