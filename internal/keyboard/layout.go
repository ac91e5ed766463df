package keyboard

import (
	"fmt"

	"github.com/frudas24/keyslice/internal/wininput"
)

// Flags accepted by LoadLayout and SetLayout (KLF_*).
const (
	LayoutActivate      uint32 = 0x00000001
	LayoutReorder       uint32 = 0x00000008
	LayoutSetForProcess uint32 = 0x00000100
)

// Pseudo-handles accepted by SetLayout.
const (
	LayoutPrevious wininput.Layout = 0
	LayoutNext     wininput.Layout = 1
)

// ActiveLayout returns the input locale of a thread; 0 means the calling thread.
func (c *Controller) ActiveLayout(threadID uint32) wininput.Layout {
	return c.platform.KeyboardLayout(threadID)
}

// LoadLayout loads a layout by KLID such as "00000409".
func (c *Controller) LoadLayout(klid string, flags uint32) (wininput.Layout, error) {
	if !ValidKLID(klid) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLayoutID, klid)
	}
	layout, err := c.platform.LoadKeyboardLayout(klid, flags)
	if err != nil {
		return 0, err
	}
	if layout == 0 {
		return 0, fmt.Errorf("%w: %s", ErrLayoutNotLoaded, klid)
	}
	return layout, nil
}

// SetLayout activates a loaded layout and returns the previously active one.
func (c *Controller) SetLayout(layout wininput.Layout, flags uint32) (wininput.Layout, error) {
	return c.platform.ActivateKeyboardLayout(layout, flags)
}

// ListLayouts fills buf with the installed layouts and returns how many were written.
// An empty buf returns the number installed.
func (c *Controller) ListLayouts(buf []wininput.Layout) (int, error) {
	return c.platform.KeyboardLayoutList(buf)
}

// Layouts returns every installed layout.
func (c *Controller) Layouts() ([]wininput.Layout, error) {
	n, err := c.ListLayouts(nil)
	if err != nil || n == 0 {
		return nil, err
	}
	buf := make([]wininput.Layout, n)
	n, err = c.ListLayouts(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// ValidKLID reports whether s is an eight digit hexadecimal KLID.
func ValidKLID(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
