//go:build !windows

// Package wininput is the boundary between keyboard logic and the Windows input APIs.
package wininput

// NoopPlatform is a placeholder platform for non-Windows builds.
type NoopPlatform struct{}

// NewPlatform returns a non-functional platform on non-Windows systems.
func NewPlatform() (Platform, error) {
	return &NoopPlatform{}, ErrUnsupported
}

// SendKey returns ErrUnsupported.
func (n *NoopPlatform) SendKey(ev KeyEvent) error {
	_ = ev
	return ErrUnsupported
}

// MessageExtraInfo returns zero.
func (n *NoopPlatform) MessageExtraInfo() uintptr {
	return 0
}

// ScanChar reports every character as unmapped.
func (n *NoopPlatform) ScanChar(r rune) int16 {
	_ = r
	return -1
}

// KeyToggled reports false.
func (n *NoopPlatform) KeyToggled(vk uint16) bool {
	_ = vk
	return false
}

// KeyboardLayout returns zero.
func (n *NoopPlatform) KeyboardLayout(threadID uint32) Layout {
	_ = threadID
	return 0
}

// LoadKeyboardLayout returns ErrUnsupported.
func (n *NoopPlatform) LoadKeyboardLayout(klid string, flags uint32) (Layout, error) {
	_ = klid
	_ = flags
	return 0, ErrUnsupported
}

// ActivateKeyboardLayout returns ErrUnsupported.
func (n *NoopPlatform) ActivateKeyboardLayout(layout Layout, flags uint32) (Layout, error) {
	_ = layout
	_ = flags
	return 0, ErrUnsupported
}

// KeyboardLayoutList returns ErrUnsupported.
func (n *NoopPlatform) KeyboardLayoutList(buf []Layout) (int, error) {
	_ = buf
	return 0, ErrUnsupported
}
