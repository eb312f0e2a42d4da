package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateInit, "Init"},
		{StateComputing, "Computing"},
		{StateReady, "Ready"},
		{StateResumed, "Resumed"},
		{State(999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.state.String())
		})
	}
}

func TestStateHasResult(t *testing.T) {
	require.False(t, StateInit.HasResult())
	require.False(t, StateComputing.HasResult())
	require.True(t, StateReady.HasResult())
	require.True(t, StateResumed.HasResult())
}
