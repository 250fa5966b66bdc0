package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BruksfildServices01/tutor-scheduler/internal/config"
)

func New(env string) *zap.Logger {
	var cfg zap.Config

	if env == config.EnvProduction {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg.OutputPaths = []string{"stdout"}

	log, err := cfg.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}

	return log.With(zap.String("service", "tutor-scheduler"))
}
