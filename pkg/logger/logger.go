package logger

import (
	"go.uber.org/zap"
)

type Config struct {
	Development bool
}

// New builds the application logger. Development mode uses the human-readable
// console encoder; production emits JSON.
func New(cfg Config) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if cfg.Development {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// NewNop returns a logger that discards everything. Intended for tests.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
