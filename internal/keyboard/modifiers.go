package keyboard

// Modifiers is the shift-state byte VkKeyScan packs above the virtual-key code.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
)

// splitScan unpacks a VkKeyScan result into its key code and modifiers.
func splitScan(packed int16) (uint16, Modifiers) {
	return uint16(packed) & 0xFF, Modifiers(uint16(packed)>>8) & (ModShift | ModControl | ModAlt)
}

// NeedsShift reports bit 8 of the packed value.
func (m Modifiers) NeedsShift() bool { return m&ModShift != 0 }

// NeedsControl reports bit 9 of the packed value.
func (m Modifiers) NeedsControl() bool { return m&ModControl != 0 }

// NeedsAlt reports bit 10 of the packed value.
func (m Modifiers) NeedsAlt() bool { return m&ModAlt != 0 }

// Keys returns the modifier keys in press order: shift, control, alt.
func (m Modifiers) Keys() []SpecialKey {
	var keys []SpecialKey
	if m.NeedsShift() {
		keys = append(keys, KeyShift)
	}
	if m.NeedsControl() {
		keys = append(keys, KeyControl)
	}
	if m.NeedsAlt() {
		keys = append(keys, KeyAlt)
	}
	return keys
}
