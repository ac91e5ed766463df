package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/keyslice/internal/keyboard"
	"github.com/frudas24/keyslice/internal/layouts"
)

// TestActionsFor covers each message kind.
func TestActionsFor(t *testing.T) {
	on := true
	tests := []struct {
		name string
		msg  Message
		want []Action
	}{
		{"type", Message{T: "type", Text: "hi"}, []Action{{Type: ActType, Text: "hi"}}},
		{"empty type", Message{T: "type"}, nil},
		{"press", Message{T: "press", Key: "enter"}, []Action{{Type: ActPress, Key: keyboard.KeyReturn}}},
		{"hold", Message{T: "hold", Key: "shift"}, []Action{{Type: ActHold, Key: keyboard.KeyShift}}},
		{"release", Message{T: "release", Key: "SHIFT"}, []Action{{Type: ActRelease, Key: keyboard.KeyShift}}},
		{"release all", Message{T: "releaseAll"}, []Action{{Type: ActReleaseAll}}},
		{"caps", Message{T: "caps", Enabled: &on}, []Action{{Type: ActCapsLock, Enabled: true}}},
		{"layout preset", Message{T: "layout", Layout: "de"}, []Action{{Type: ActLayout, KLID: "00000407", Flags: keyboard.LayoutActivate}}},
		{"layout klid", Message{T: "layout", Layout: "00000409", Flags: keyboard.LayoutSetForProcess}, []Action{{Type: ActLayout, KLID: "00000409", Flags: keyboard.LayoutSetForProcess | keyboard.LayoutActivate}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ActionsFor(tt.msg, layouts.Defaults())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestActionsFor_Errors covers rejected messages.
func TestActionsFor_Errors(t *testing.T) {
	for _, msg := range []Message{
		{T: "press", Key: "hyper"},
		{T: "caps"},
		{T: "layout", Layout: "klingon"},
		{T: "dance"},
	} {
		_, err := ActionsFor(msg, layouts.Defaults())
		assert.Error(t, err, msg.T)
	}
}
