package logging

import (
	"go.uber.org/zap"

	"github.com/arloliu/zoner/types"
)

// ZapLogger implements types.Logger on a zap.SugaredLogger.
//
// The sugared logger's Debug/Info/... methods take variadic values rather than a
// message plus key-value pairs, so every call is routed to the matching *w method.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

var _ types.Logger = (*ZapLogger)(nil)

// NewZap wraps logger; a nil logger discards everything.
//
// Example:
//
//	zl, _ := zap.NewProduction()
//	alloc, err := zoner.NewAllocator(&cfg, world, zoner.PoliceForce,
//	    zoner.WithLogger(logging.NewZap(zl.Sugar())))
func NewZap(logger *zap.SugaredLogger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &ZapLogger{logger: logger}
}

func (l *ZapLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l *ZapLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Infow(msg, keysAndValues...)
}

func (l *ZapLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warnw(msg, keysAndValues...)
}

func (l *ZapLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, keysAndValues...)
}

func (l *ZapLogger) Fatal(msg string, keysAndValues ...any) {
	l.logger.Fatalw(msg, keysAndValues...)
}
