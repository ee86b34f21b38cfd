// Package packerlog adapts go.uber.org/zap to the packer.Logger interface,
// the packer core's injectable, side-effect-free debug sink.
package packerlog

import (
	"go.uber.org/zap"

	"github.com/palletize/cargopack/internal/packer"
)

// zapLogger wraps a *zap.SugaredLogger so it satisfies packer.Logger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// New wraps base, namespaced under "packer", as a packer.Logger.
func New(base *zap.Logger) packer.Logger {
	return zapLogger{sugar: base.Named("packer").Sugar()}
}

func (l zapLogger) Debug(msg string, kv ...any) {
	l.sugar.Debugw(msg, kv...)
}

// NewProduction builds a production zap.Logger (JSON, info level and
// above by default) and wraps it. Debug calls are therefore dropped unless
// the caller lowers the level — matching the ambient default of quiet
// packing with an opt-in verbose mode.
func NewProduction() (packer.Logger, *zap.Logger, error) {
	base, err := zap.NewProduction()
	if err != nil {
		return nil, nil, err
	}
	return New(base), base, nil
}
