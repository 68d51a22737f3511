package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZap builds the production JSON logger. An unknown level falls back to info.
func NewZap(levelStr string) *zap.Logger {
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.StacktraceKey = ""
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.InitialFields = map[string]interface{}{"app": "leaguebot"}

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return log
}
