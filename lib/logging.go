package lib

import (
	"go.uber.org/zap"
)

/*
	Build the run logger. Format is "console" or "json"; an unknown level
	falls back to info.
*/
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	zapConfig := zap.NewDevelopmentConfig()
	if cfg.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level
	zapConfig.DisableStacktrace = true
	zapConfig.OutputPaths = []string{"stderr"}

	return zapConfig.Build()
}
