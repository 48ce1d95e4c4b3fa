package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Init builds the process-wide logger. APP_ENV=production switches to the
// JSON production encoder.
func Init() error {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		log, err = cfg.Build()
	} else {
		log, err = zap.NewDevelopment()
	}
	return err
}

// L returns the process-wide logger.
func L() *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return log
}
