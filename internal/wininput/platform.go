// Package wininput is the boundary between keyboard logic and the Windows input APIs.
package wininput

import (
	"errors"
	"fmt"
)

// ErrUnsupported indicates WinAPI input injection is not available.
var ErrUnsupported = errors.New("wininput is only supported on Windows")

// ErrInjectFailed indicates the OS accepted fewer events than were sent.
var ErrInjectFailed = errors.New("wininput: input injection failed")

// KeyFlags mirrors the KEYBDINPUT dwFlags bits the keyboard layer emits.
type KeyFlags uint32

const (
	// FlagKeyDown is the zero value; a key-down carries no flag bit.
	FlagKeyDown KeyFlags = 0
	// FlagExtendedKey marks keys that share a code with a numpad key.
	FlagExtendedKey KeyFlags = 0x0001
	// FlagKeyUp marks a key release.
	FlagKeyUp KeyFlags = 0x0002

	knownFlags = FlagExtendedKey | FlagKeyUp
)

// IsKeyUp reports whether the flags describe a release.
func (f KeyFlags) IsKeyUp() bool {
	return f&FlagKeyUp != 0
}

// IsExtended reports whether the extended-key bit is set.
func (f KeyFlags) IsExtended() bool {
	return f&FlagExtendedKey != 0
}

// Validate rejects bits the keyboard layer never produces.
func (f KeyFlags) Validate() error {
	if extra := f &^ knownFlags; extra != 0 {
		return fmt.Errorf("wininput: unsupported key flags %#x", uint32(extra))
	}
	return nil
}

// String renders the flags for logs.
func (f KeyFlags) String() string {
	s := "down"
	if f.IsKeyUp() {
		s = "up"
	}
	if f.IsExtended() {
		s += "|extended"
	}
	return s
}

// KeyEvent is one keyboard record handed to SendInput.
type KeyEvent struct {
	VK        uint16
	Flags     KeyFlags
	ExtraInfo uintptr
}

// Layout is an input locale identifier (HKL) as returned by the OS.
type Layout uintptr

// String renders the layout handle in the form Windows tools print it.
func (l Layout) String() string {
	return fmt.Sprintf("%08X", uint64(l))
}

// Platform defines the OS calls the keyboard controller depends on.
type Platform interface {
	// SendKey injects a single keyboard event.
	SendKey(ev KeyEvent) error
	// MessageExtraInfo returns the tag attached to injected events.
	MessageExtraInfo() uintptr
	// ScanChar returns the packed virtual-key and shift-state value for r,
	// or -1 when the active layout cannot produce it.
	ScanChar(r rune) int16
	// KeyToggled reports the toggle state of a key such as Caps Lock.
	KeyToggled(vk uint16) bool
	// KeyboardLayout returns the active layout of a thread (0 = current).
	KeyboardLayout(threadID uint32) Layout
	// LoadKeyboardLayout loads a layout by its KLID string.
	LoadKeyboardLayout(klid string, flags uint32) (Layout, error)
	// ActivateKeyboardLayout activates a loaded layout and returns the previous one.
	ActivateKeyboardLayout(layout Layout, flags uint32) (Layout, error)
	// KeyboardLayoutList fills buf with installed layouts and returns the count.
	KeyboardLayoutList(buf []Layout) (int, error)
}
