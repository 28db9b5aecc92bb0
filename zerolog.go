// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog.Logger to the Logger interface, for
// applications that already carry a zerolog pipeline.
//
// Example:
//
//	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	client, _ := vco.NewClient("https://vco12.example.com",
//	    vco.Username("operator"),
//	    vco.Password("secret"),
//	    vco.WithLogger(vco.NewZerologLogger(zl)))
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger wrapping the given zerolog.Logger
func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// Debug logs a debug message with structured key-value pairs
func (z *ZerologLogger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	emit(z.logger.Debug().Ctx(ctx), msg, keysAndValues)
}

// Info logs an informational message with structured key-value pairs
func (z *ZerologLogger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	emit(z.logger.Info().Ctx(ctx), msg, keysAndValues)
}

// Warn logs a warning message with structured key-value pairs
func (z *ZerologLogger) Warn(ctx context.Context, msg string, keysAndValues ...any) {
	emit(z.logger.Warn().Ctx(ctx), msg, keysAndValues)
}

// Error logs an error message with structured key-value pairs
func (z *ZerologLogger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	emit(z.logger.Error().Ctx(ctx), msg, keysAndValues)
}

// emit attaches key-value pairs to a zerolog event and writes it. Keys that
// are not strings are stringified; an odd trailing key is marked explicitly,
// matching DefaultLogger behavior.
func emit(e *zerolog.Event, msg string, keysAndValues []any) {
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		if i+1 < len(keysAndValues) {
			e = e.Interface(key, keysAndValues[i+1])
		} else {
			e = e.Str(key, "<MISSING>")
		}
	}
	e.Msg(msg)
}
