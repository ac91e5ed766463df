// Package testutil provides fakes shared by package tests.
package testutil

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/frudas24/keyslice/internal/wininput"
)

// FakeExtraInfo is the tag FakePlatform stamps on events.
const FakeExtraInfo uintptr = 0xFEED

const (
	vkCapital = 0x14
	vkReturn  = 0x0D
)

// FakePlatform implements wininput.Platform and records injected events for tests.
type FakePlatform struct {
	Events []wininput.KeyEvent
	// Toggled holds toggle-key state; pressing a key in it flips it.
	Toggled map[uint16]bool
	// FailAfter makes SendKey fail once this many events were recorded (0 disables).
	FailAfter int

	Active    wininput.Layout
	Installed []wininput.Layout
	Loaded    map[string]wininput.Layout
}

// Ensure FakePlatform implements the interface.
var _ wininput.Platform = (*FakePlatform)(nil)

// NewFakePlatform returns a fake with a US layout active and Caps Lock off.
func NewFakePlatform() *FakePlatform {
	return &FakePlatform{
		Toggled:   map[uint16]bool{},
		Active:    0x04090409,
		Installed: []wininput.Layout{0x04090409, 0x04070407},
		Loaded: map[string]wininput.Layout{
			"00000409": 0x04090409,
			"00000407": 0x04070407,
		},
	}
}

// SendKey records a keyboard event.
func (f *FakePlatform) SendKey(ev wininput.KeyEvent) error {
	if err := ev.Flags.Validate(); err != nil {
		return err
	}
	if f.FailAfter > 0 && len(f.Events) >= f.FailAfter {
		return wininput.ErrInjectFailed
	}
	f.Events = append(f.Events, ev)
	if f.Toggled != nil && !ev.Flags.IsKeyUp() {
		if _, ok := f.Toggled[ev.VK]; ok || ev.VK == vkCapital {
			f.Toggled[ev.VK] = !f.Toggled[ev.VK]
		}
	}
	return nil
}

// MessageExtraInfo returns FakeExtraInfo.
func (f *FakePlatform) MessageExtraInfo() uintptr {
	return FakeExtraInfo
}

// ScanChar emulates VkKeyScanW for a US layout.
func (f *FakePlatform) ScanChar(r rune) int16 {
	return USScan(r)
}

// KeyToggled reports the recorded toggle state.
func (f *FakePlatform) KeyToggled(vk uint16) bool {
	return f.Toggled[vk]
}

// KeyboardLayout returns the active layout.
func (f *FakePlatform) KeyboardLayout(threadID uint32) wininput.Layout {
	_ = threadID
	return f.Active
}

// LoadKeyboardLayout returns a known layout, or zero for unknown KLIDs.
func (f *FakePlatform) LoadKeyboardLayout(klid string, flags uint32) (wininput.Layout, error) {
	l := f.Loaded[klid]
	if l != 0 && flags&0x1 != 0 {
		f.Active = l
	}
	return l, nil
}

// ActivateKeyboardLayout switches the active layout and returns the previous one.
func (f *FakePlatform) ActivateKeyboardLayout(layout wininput.Layout, flags uint32) (wininput.Layout, error) {
	_ = flags
	for _, l := range f.Installed {
		if l == layout {
			prev := f.Active
			f.Active = layout
			return prev, nil
		}
	}
	return 0, errors.New("layout not loaded")
}

// KeyboardLayoutList copies installed layouts into buf.
func (f *FakePlatform) KeyboardLayoutList(buf []wininput.Layout) (int, error) {
	if len(buf) == 0 {
		return len(f.Installed), nil
	}
	return copy(buf, f.Installed), nil
}

// Reset clears recorded events.
func (f *FakePlatform) Reset() {
	f.Events = nil
}

// VKs returns the recorded virtual-key codes, prefixed "-" for releases.
func (f *FakePlatform) VKs() []string {
	out := make([]string, 0, len(f.Events))
	for _, ev := range f.Events {
		prefix := "+"
		if ev.Flags.IsKeyUp() {
			prefix = "-"
		}
		out = append(out, prefix+vkName(ev.VK))
	}
	return out
}

var usShifted = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5', '^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
	'_': '-', '+': '=', '{': '[', '}': ']', '|': '\\', ':': ';', '"': '\'', '<': ',', '>': '.', '?': '/', '~': '`',
}

var usOEM = map[rune]int16{
	';': 0xBA, '=': 0xBB, ',': 0xBC, '-': 0xBD, '.': 0xBE, '/': 0xBF, '`': 0xC0,
	'[': 0xDB, '\\': 0xDC, ']': 0xDD, '\'': 0xDE,
}

// USScan returns the packed VkKeyScan value a US layout reports for r.
func USScan(r rune) int16 {
	const shift = 0x100
	switch {
	case r >= 'a' && r <= 'z':
		return int16(unicode.ToUpper(r))
	case r >= 'A' && r <= 'Z':
		return shift | int16(r)
	case r >= '0' && r <= '9':
		return int16(r)
	case r == ' ':
		return 0x20
	case r == '\t':
		return 0x09
	case r == '\r':
		return vkReturn
	case r == '\n':
		return 0x200 | vkReturn
	case r == '\b':
		return 0x08
	}
	if vk, ok := usOEM[r]; ok {
		return vk
	}
	if base, ok := usShifted[r]; ok {
		return shift | USScan(base)
	}
	return -1
}

var vkNames = map[uint16]string{
	0x08: "BACK", 0x09: "TAB", 0x0D: "RETURN", 0x10: "SHIFT", 0x11: "CONTROL", 0x12: "ALT",
	0x14: "CAPS", 0x1B: "ESCAPE", 0x20: "SPACE", 0x21: "PAGEUP", 0x22: "PAGEDOWN", 0x23: "END", 0x24: "HOME",
	0x25: "LEFT", 0x26: "UP", 0x27: "RIGHT", 0x28: "DOWN", 0x2D: "INSERT", 0x2E: "DELETE",
	0x5B: "LWIN", 0x5C: "RWIN", 0xA5: "RALT",
}

// vkName renders a code as a key name for readable assertions.
func vkName(vk uint16) string {
	if name, ok := vkNames[vk]; ok {
		return name
	}
	if (vk >= '0' && vk <= '9') || (vk >= 'A' && vk <= 'Z') {
		return string(rune(vk))
	}
	return fmt.Sprintf("0x%02X", vk)
}
