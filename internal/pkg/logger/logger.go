package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.Logger

// Init builds the global logger. Production environments get JSON output at
// the configured level, everything else gets the colored development config.
func Init(appEnv, level string) {
	var cfg zap.Config

	if appEnv == "prod" || appEnv == "production" || appEnv == "release" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	var buildErr error
	global, buildErr = cfg.Build()
	if buildErr != nil {
		log.Fatalf("failed to initialize logger: %v", buildErr)
	}
}

// L returns the global logger, initializing a development one if Init was
// never called (useful in tests).
func L() *zap.Logger {
	if global == nil {
		Init("dev", "debug")
	}
	return global
}
