package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
}

func TestTUICmd_Short(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescribesControls(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "Turn pages")
	assert.Contains(t, tuiCmd.Long, "Zoom")
}

func TestTUICmd_Registered(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c == tuiCmd {
			found = true
		}
	}
	assert.True(t, found)
}
