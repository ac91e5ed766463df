package keyboard

import (
	"fmt"
	"strings"
)

// SpecialKey is a named key with its Windows virtual-key code.
type SpecialKey uint16

// Virtual-key codes for named keys.
const (
	KeyBackspace SpecialKey = 0x08
	KeyTab       SpecialKey = 0x09
	KeyClear     SpecialKey = 0x0C
	KeyReturn    SpecialKey = 0x0D
	KeyShift     SpecialKey = 0x10
	KeyControl   SpecialKey = 0x11
	KeyAlt       SpecialKey = 0x12
	KeyPause     SpecialKey = 0x13
	KeyCapsLock  SpecialKey = 0x14
	KeyEscape    SpecialKey = 0x1B
	KeySpace     SpecialKey = 0x20
	KeyPageUp    SpecialKey = 0x21
	KeyPageDown  SpecialKey = 0x22
	KeyEnd       SpecialKey = 0x23
	KeyHome      SpecialKey = 0x24
	KeyLeft      SpecialKey = 0x25
	KeyUp        SpecialKey = 0x26
	KeyRight     SpecialKey = 0x27
	KeyDown      SpecialKey = 0x28
	KeySelect    SpecialKey = 0x29
	KeyPrint     SpecialKey = 0x2A
	KeyExecute   SpecialKey = 0x2B
	KeySnapshot  SpecialKey = 0x2C
	KeyInsert    SpecialKey = 0x2D
	KeyDelete    SpecialKey = 0x2E
	KeyHelp      SpecialKey = 0x2F

	Key0 SpecialKey = 0x30
	Key1 SpecialKey = 0x31
	Key2 SpecialKey = 0x32
	Key3 SpecialKey = 0x33
	Key4 SpecialKey = 0x34
	Key5 SpecialKey = 0x35
	Key6 SpecialKey = 0x36
	Key7 SpecialKey = 0x37
	Key8 SpecialKey = 0x38
	Key9 SpecialKey = 0x39

	KeyA SpecialKey = 0x41
	KeyB SpecialKey = 0x42
	KeyC SpecialKey = 0x43
	KeyD SpecialKey = 0x44
	KeyE SpecialKey = 0x45
	KeyF SpecialKey = 0x46
	KeyG SpecialKey = 0x47
	KeyH SpecialKey = 0x48
	KeyI SpecialKey = 0x49
	KeyJ SpecialKey = 0x4A
	KeyK SpecialKey = 0x4B
	KeyL SpecialKey = 0x4C
	KeyM SpecialKey = 0x4D
	KeyN SpecialKey = 0x4E
	KeyO SpecialKey = 0x4F
	KeyP SpecialKey = 0x50
	KeyQ SpecialKey = 0x51
	KeyR SpecialKey = 0x52
	KeyS SpecialKey = 0x53
	KeyT SpecialKey = 0x54
	KeyU SpecialKey = 0x55
	KeyV SpecialKey = 0x56
	KeyW SpecialKey = 0x57
	KeyX SpecialKey = 0x58
	KeyY SpecialKey = 0x59
	KeyZ SpecialKey = 0x5A

	KeyLeftWin  SpecialKey = 0x5B
	KeyRightWin SpecialKey = 0x5C
	KeyApps     SpecialKey = 0x5D
	KeySleep    SpecialKey = 0x5F

	KeyNumpad0   SpecialKey = 0x60
	KeyNumpad1   SpecialKey = 0x61
	KeyNumpad2   SpecialKey = 0x62
	KeyNumpad3   SpecialKey = 0x63
	KeyNumpad4   SpecialKey = 0x64
	KeyNumpad5   SpecialKey = 0x65
	KeyNumpad6   SpecialKey = 0x66
	KeyNumpad7   SpecialKey = 0x67
	KeyNumpad8   SpecialKey = 0x68
	KeyNumpad9   SpecialKey = 0x69
	KeyMultiply  SpecialKey = 0x6A
	KeyAdd       SpecialKey = 0x6B
	KeySeparator SpecialKey = 0x6C
	KeySubtract  SpecialKey = 0x6D
	KeyDecimal   SpecialKey = 0x6E
	KeyDivide    SpecialKey = 0x6F

	KeyF1  SpecialKey = 0x70
	KeyF2  SpecialKey = 0x71
	KeyF3  SpecialKey = 0x72
	KeyF4  SpecialKey = 0x73
	KeyF5  SpecialKey = 0x74
	KeyF6  SpecialKey = 0x75
	KeyF7  SpecialKey = 0x76
	KeyF8  SpecialKey = 0x77
	KeyF9  SpecialKey = 0x78
	KeyF10 SpecialKey = 0x79
	KeyF11 SpecialKey = 0x7A
	KeyF12 SpecialKey = 0x7B
	KeyF13 SpecialKey = 0x7C
	KeyF14 SpecialKey = 0x7D
	KeyF15 SpecialKey = 0x7E
	KeyF16 SpecialKey = 0x7F
	KeyF17 SpecialKey = 0x80
	KeyF18 SpecialKey = 0x81
	KeyF19 SpecialKey = 0x82
	KeyF20 SpecialKey = 0x83
	KeyF21 SpecialKey = 0x84
	KeyF22 SpecialKey = 0x85
	KeyF23 SpecialKey = 0x86
	KeyF24 SpecialKey = 0x87

	KeyNumLock    SpecialKey = 0x90
	KeyScrollLock SpecialKey = 0x91

	KeyLeftShift    SpecialKey = 0xA0
	KeyRightShift   SpecialKey = 0xA1
	KeyLeftControl  SpecialKey = 0xA2
	KeyRightControl SpecialKey = 0xA3
	KeyLeftAlt      SpecialKey = 0xA4
	KeyRightAlt     SpecialKey = 0xA5
)

// scanCodeDependent keys share a virtual-key code with a numpad or left-hand
// key and must be injected with the extended-key flag.
var scanCodeDependent = map[SpecialKey]struct{}{
	KeyRightAlt: {},
	KeyInsert:   {},
	KeyDelete:   {},
	KeyLeft:     {},
	KeyHome:     {},
	KeyEnd:      {},
	KeyUp:       {},
	KeyDown:     {},
	KeyPageUp:   {},
	KeyPageDown: {},
	KeyRight:    {},
	KeyLeftWin:  {},
	KeyRightWin: {},
}

// IsExtended reports whether the key needs the extended-key flag.
func (k SpecialKey) IsExtended() bool {
	_, ok := scanCodeDependent[k]
	return ok
}

var keyNames = map[SpecialKey]string{
	KeyBackspace: "BACKSPACE", KeyTab: "TAB", KeyClear: "CLEAR", KeyReturn: "RETURN",
	KeyShift: "SHIFT", KeyControl: "CONTROL", KeyAlt: "ALT", KeyPause: "PAUSE",
	KeyCapsLock: "CAPS", KeyEscape: "ESCAPE", KeySpace: "SPACE",
	KeyPageUp: "PAGEUP", KeyPageDown: "PAGEDOWN", KeyEnd: "END", KeyHome: "HOME",
	KeyLeft: "LEFT", KeyUp: "UP", KeyRight: "RIGHT", KeyDown: "DOWN",
	KeySelect: "SELECT", KeyPrint: "PRINT", KeyExecute: "EXECUTE", KeySnapshot: "PRINTSCREEN",
	KeyInsert: "INSERT", KeyDelete: "DELETE", KeyHelp: "HELP",
	KeyLeftWin: "LWIN", KeyRightWin: "RWIN", KeyApps: "APPS", KeySleep: "SLEEP",
	KeyMultiply: "MULTIPLY", KeyAdd: "ADD", KeySeparator: "SEPARATOR",
	KeySubtract: "SUBTRACT", KeyDecimal: "DECIMAL", KeyDivide: "DIVIDE",
	KeyNumLock: "NUMLOCK", KeyScrollLock: "SCROLL",
	KeyLeftShift: "LSHIFT", KeyRightShift: "RSHIFT",
	KeyLeftControl: "LCONTROL", KeyRightControl: "RCONTROL",
	KeyLeftAlt: "LALT", KeyRightAlt: "RALT",
}

var keyAliases = map[string]SpecialKey{
	"ENTER":      KeyReturn,
	"BACK":       KeyBackspace,
	"CTRL":       KeyControl,
	"MENU":       KeyAlt,
	"CAPSLOCK":   KeyCapsLock,
	"ESC":        KeyEscape,
	"PGUP":       KeyPageUp,
	"PGDN":       KeyPageDown,
	"INS":        KeyInsert,
	"DEL":        KeyDelete,
	"WIN":        KeyLeftWin,
	"LCTRL":      KeyLeftControl,
	"RCTRL":      KeyRightControl,
	"ALTGR":      KeyRightAlt,
	"SCROLLLOCK": KeyScrollLock,
}

var keysByName = buildKeysByName()

// buildKeysByName indexes canonical names, generated names and aliases.
func buildKeysByName() map[string]SpecialKey {
	out := make(map[string]SpecialKey, len(keyNames)+len(keyAliases)+80)
	for k, name := range keyNames {
		out[name] = k
	}
	for c := Key0; c <= Key9; c++ {
		out[string(rune(c))] = c
	}
	for c := KeyA; c <= KeyZ; c++ {
		out[string(rune(c))] = c
	}
	for i := 0; i <= 9; i++ {
		out[fmt.Sprintf("NUMPAD%d", i)] = KeyNumpad0 + SpecialKey(i)
	}
	for i := 1; i <= 24; i++ {
		out[fmt.Sprintf("F%d", i)] = KeyF1 + SpecialKey(i-1)
	}
	for alias, k := range keyAliases {
		out[alias] = k
	}
	return out
}

// String returns the canonical key name, or the hex code for unnamed keys.
func (k SpecialKey) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case (k >= Key0 && k <= Key9) || (k >= KeyA && k <= KeyZ):
		return string(rune(k))
	case k >= KeyNumpad0 && k <= KeyNumpad9:
		return fmt.Sprintf("NUMPAD%d", int(k-KeyNumpad0))
	case k >= KeyF1 && k <= KeyF24:
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	return fmt.Sprintf("VK_%02X", uint16(k))
}

// ParseSpecialKey resolves a key name (case-insensitive) or alias.
func ParseSpecialKey(name string) (SpecialKey, error) {
	k, ok := keysByName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return k, nil
}

// MarshalText encodes the key by name.
func (k SpecialKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a key name.
func (k *SpecialKey) UnmarshalText(text []byte) error {
	parsed, err := ParseSpecialKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
