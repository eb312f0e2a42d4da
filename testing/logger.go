package testing

import (
	"testing"

	"github.com/arloliu/zoner/internal/logging"
	"github.com/arloliu/zoner/types"
)

// NewTestLogger creates a new logger instance that writes to the testing.T logger.
// This is useful for seeing allocator log output during test runs.
func NewTestLogger(t testing.TB) types.Logger {
	return logging.NewTest(t)
}
