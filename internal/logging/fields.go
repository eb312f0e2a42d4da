package logging

import (
	"slices"

	"github.com/arloliu/zoner/types"
)

type fieldLogger struct {
	next   types.Logger
	fields []any
}

// WithFields returns a logger that prepends keysAndValues to the pairs of every call.
//
// The allocator uses it to tag all of its records with the agent category.
func WithFields(logger types.Logger, keysAndValues ...any) types.Logger {
	if len(keysAndValues) == 0 {
		return logger
	}
	if fl, ok := logger.(*fieldLogger); ok {
		return &fieldLogger{next: fl.next, fields: append(slices.Clone(fl.fields), keysAndValues...)}
	}

	return &fieldLogger{next: logger, fields: slices.Clone(keysAndValues)}
}

func (l *fieldLogger) with(keysAndValues []any) []any {
	return append(slices.Clone(l.fields), keysAndValues...)
}

func (l *fieldLogger) Debug(msg string, keysAndValues ...any) {
	l.next.Debug(msg, l.with(keysAndValues)...)
}

func (l *fieldLogger) Info(msg string, keysAndValues ...any) {
	l.next.Info(msg, l.with(keysAndValues)...)
}

func (l *fieldLogger) Warn(msg string, keysAndValues ...any) {
	l.next.Warn(msg, l.with(keysAndValues)...)
}

func (l *fieldLogger) Error(msg string, keysAndValues ...any) {
	l.next.Error(msg, l.with(keysAndValues)...)
}

func (l *fieldLogger) Fatal(msg string, keysAndValues ...any) {
	l.next.Fatal(msg, l.with(keysAndValues)...)
}
