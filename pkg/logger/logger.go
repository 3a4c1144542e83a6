package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig configures logger construction.
type LoggerConfig struct {
	// Debug lowers the level to debug and enables development formatting.
	Debug bool
}

// NewLogger creates a structured logger with the given config.
func NewLogger(cfg *LoggerConfig) (*zap.Logger, error) {
	c := zap.NewProductionConfig()
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg != nil && cfg.Debug {
		c.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		c.Development = true
	}
	return c.Build()
}
