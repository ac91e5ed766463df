// Package control turns websocket messages into keyboard controller actions.
package control

import (
	"errors"
	"fmt"

	"github.com/frudas24/keyslice/internal/keyboard"
	"github.com/frudas24/keyslice/internal/layouts"
)

// ActionType identifies the kind of keyboard action to execute.
type ActionType string

const (
	// ActType types text.
	ActType ActionType = "type"
	// ActPress presses and releases a named key.
	ActPress ActionType = "press"
	// ActHold presses a named key and keeps it down.
	ActHold ActionType = "hold"
	// ActRelease releases a held key.
	ActRelease ActionType = "release"
	// ActReleaseAll releases every held key.
	ActReleaseAll ActionType = "release_all"
	// ActCapsLock sets the Caps Lock state.
	ActCapsLock ActionType = "caps_lock"
	// ActLayout loads and activates a keyboard layout.
	ActLayout ActionType = "layout"
)

// Action describes a normalized keyboard operation to apply.
type Action struct {
	Type    ActionType
	Key     keyboard.SpecialKey
	Text    string
	Enabled bool
	KLID    string
	Flags   uint32
}

var errMissingEnabled = errors.New("enabled is required")

// ActionsFor converts a message into the actions it requests.
func ActionsFor(msg Message, presets []layouts.Preset) ([]Action, error) {
	switch msg.T {
	case "type":
		if msg.Text == "" {
			return nil, nil
		}
		return []Action{{Type: ActType, Text: msg.Text}}, nil
	case "press", "hold", "release":
		key, err := keyboard.ParseSpecialKey(msg.Key)
		if err != nil {
			return nil, err
		}
		return []Action{{Type: ActionType(msg.T), Key: key}}, nil
	case "releaseAll":
		return []Action{{Type: ActReleaseAll}}, nil
	case "caps":
		if msg.Enabled == nil {
			return nil, errMissingEnabled
		}
		return []Action{{Type: ActCapsLock, Enabled: *msg.Enabled}}, nil
	case "layout":
		klid, err := layouts.Resolve(presets, msg.Layout)
		if err != nil {
			return nil, err
		}
		return []Action{{Type: ActLayout, KLID: klid, Flags: msg.Flags | keyboard.LayoutActivate}}, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", msg.T)
	}
}
