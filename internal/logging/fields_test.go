package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	NopLogger
	records [][]any
}

func (r *recordingLogger) Info(_ string, keysAndValues ...any) {
	r.records = append(r.records, keysAndValues)
}

func TestWithFields(t *testing.T) {
	t.Run("prepends fields", func(t *testing.T) {
		rec := &recordingLogger{}
		logger := WithFields(rec, "category", "fire_brigade")

		logger.Info("allocation started", "phase", "prepare")
		logger.Info("allocation ready")

		require.Equal(t, [][]any{
			{"category", "fire_brigade", "phase", "prepare"},
			{"category", "fire_brigade"},
		}, rec.records)
	})

	t.Run("nests without aliasing", func(t *testing.T) {
		rec := &recordingLogger{}
		base := WithFields(rec, "category", "police_force")
		first := WithFields(base, "phase", "resume")
		second := WithFields(base, "phase", "precompute")

		first.Info("a")
		second.Info("b")

		require.Equal(t, [][]any{
			{"category", "police_force", "phase", "resume"},
			{"category", "police_force", "phase", "precompute"},
		}, rec.records)
	})

	t.Run("no fields returns the logger", func(t *testing.T) {
		rec := &recordingLogger{}

		require.Same(t, rec, WithFields(rec))
	})
}
