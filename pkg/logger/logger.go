package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds the process logger. Mode comes from GAMEHUB_LOG_MODE;
// anything but "prod"/"production" gets the development console encoder.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

// MustNew is New for main functions.
func MustNew(mode string) *zap.Logger {
	l, err := New(mode)
	if err != nil {
		panic(err)
	}
	return l
}
