// Package logging builds the service's zap loggers.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger for production and a colored console logger
// for everything else.
func New(environment string) (*zap.Logger, error) {
	if strings.EqualFold(environment, "production") {
		return zap.NewProduction()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}

// Op tags a log line with the handler or service method that produced it.
func Op(name string) zap.Field {
	return zap.String("op", name)
}
