package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a JSON logger for production environments and a console
// logger for everything else.
func New(env string, appName string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if appName != "" {
		l = l.With(zap.String("app", appName))
	}
	return l, nil
}
