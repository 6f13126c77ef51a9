package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"retail-sense/internal/config"
)

// New builds the application logger. Development uses a colored console
// encoder, everything else JSON.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.IsDevelopment() {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
	}

	if cfg.Logger.Encoding != "" {
		zc.Encoding = cfg.Logger.Encoding
	}

	level, err := zapcore.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
