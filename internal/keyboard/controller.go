// Package keyboard injects keyboard input and tracks which keys are held.
//
// A Controller owns the model of keys it has pressed. Every key-down it emits
// must be matched by a key-up; pressing a key twice or releasing a key it never
// pressed fails with an *InputDeviceError so the model cannot drift from the
// real keyboard. A Controller is not safe for concurrent use.
package keyboard

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/frudas24/keyslice/internal/wininput"
)

const (
	opKeyDown = "keydown"
	opKeyUp   = "keyup"
)

// Controller sends keyboard input through a wininput.Platform.
type Controller struct {
	platform      wininput.Platform
	logger        *slog.Logger
	listener      ActionListener
	normalizeCaps bool

	// down holds every virtual-key code currently pressed by this controller.
	down []uint16
	// held holds keys pressed through HoldKey, in press order.
	held []SpecialKey
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for per-event debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithListener sets the listener notified after each operation.
func WithListener(l ActionListener) Option {
	return func(c *Controller) {
		if l != nil {
			c.listener = l
		}
	}
}

// WithCapsLockNormalization controls whether TypeText switches Caps Lock off
// before typing. It is on by default.
func WithCapsLockNormalization(enabled bool) Option {
	return func(c *Controller) {
		c.normalizeCaps = enabled
	}
}

// New returns a controller with an empty held-key model.
func New(platform wininput.Platform, opts ...Option) *Controller {
	c := &Controller{
		platform:      platform,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		listener:      NullListener{},
		normalizeCaps: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TypeText types text character by character using the active layout.
// Carriage returns are skipped. While any key is held through HoldKey the text
// is lowercased, since the held modifier already decides the case.
func (c *Controller) TypeText(text string) error {
	if len(c.held) > 0 {
		text = strings.ToLower(text)
	}
	if c.normalizeCaps {
		if err := c.SetCapsLock(false); err != nil {
			return err
		}
	}
	for _, r := range text {
		if r == '\r' {
			continue
		}
		if err := c.typeRune(r); err != nil {
			return err
		}
	}
	c.notify()
	return nil
}

// typeRune wraps one key press in the modifiers the layout requires.
func (c *Controller) typeRune(r rune) error {
	packed := c.platform.ScanChar(r)
	if packed == -1 {
		return fmt.Errorf("%w: %q", ErrNoKeyMapping, r)
	}
	vk, mods := splitScan(packed)
	modKeys := mods.Keys()

	for i, m := range modKeys {
		if err := c.keyDown(uint16(m), false); err != nil {
			c.releaseQuietly(modKeys[:i])
			return err
		}
	}
	if err := c.press(vk, false); err != nil {
		c.releaseQuietly(modKeys)
		return err
	}
	for i := len(modKeys) - 1; i >= 0; i-- {
		if err := c.keyUp(uint16(modKeys[i]), false); err != nil {
			return err
		}
	}
	return nil
}

// releaseQuietly lifts modifiers in reverse order after a failed character.
func (c *Controller) releaseQuietly(keys []SpecialKey) {
	for i := len(keys) - 1; i >= 0; i-- {
		if err := c.keyUp(uint16(keys[i]), false); err != nil {
			c.logger.Warn("modifier release failed", "key", keys[i], "error", err)
		}
	}
}

// PressSpecialKey presses and releases a named key.
func (c *Controller) PressSpecialKey(key SpecialKey) error {
	if err := c.press(uint16(key), true); err != nil {
		return err
	}
	c.notify()
	return nil
}

// HoldKey presses a named key without releasing it. Pair it with ReleaseKey.
func (c *Controller) HoldKey(key SpecialKey) error {
	if err := c.keyDown(uint16(key), true); err != nil {
		return err
	}
	c.held = append(c.held, key)
	c.notify()
	return nil
}

// ReleaseKey releases a key pressed by HoldKey.
func (c *Controller) ReleaseKey(key SpecialKey) error {
	if err := c.keyUp(uint16(key), true); err != nil {
		return err
	}
	if i := slices.Index(c.held, key); i >= 0 {
		c.held = slices.Delete(c.held, i, i+1)
	}
	c.notify()
	return nil
}

// ReleaseAllHeldKeys releases every held key in the order they were pressed,
// then lifts any code left down by an operation whose key-up failed.
func (c *Controller) ReleaseAllHeldKeys() error {
	for _, key := range slices.Clone(c.held) {
		if err := c.ReleaseKey(key); err != nil {
			return err
		}
	}
	for i := len(c.down) - 1; i >= 0; i-- {
		vk := c.down[i]
		if err := c.keyUp(vk, true); err != nil {
			return err
		}
		c.logger.Warn("released stray key", "key", SpecialKey(vk))
	}
	return nil
}

// HeldKeys returns the keys pressed through HoldKey.
func (c *Controller) HeldKeys() []SpecialKey {
	return slices.Clone(c.held)
}

// PressedCodes returns every virtual-key code the controller has down.
func (c *Controller) PressedCodes() []uint16 {
	return slices.Clone(c.down)
}

// CapsLock reports whether Caps Lock is toggled on.
func (c *Controller) CapsLock() bool {
	return c.platform.KeyToggled(uint16(KeyCapsLock))
}

// SetCapsLock presses Caps Lock only when its state differs from on.
func (c *Controller) SetCapsLock(on bool) error {
	if c.CapsLock() == on {
		return nil
	}
	return c.press(uint16(KeyCapsLock), true)
}

// press sends a down/up pair.
func (c *Controller) press(vk uint16, special bool) error {
	if err := c.keyDown(vk, special); err != nil {
		return err
	}
	return c.keyUp(vk, special)
}

// keyDown records vk as pressed after the OS accepts the event.
func (c *Controller) keyDown(vk uint16, special bool) error {
	if slices.Contains(c.down, vk) {
		return &InputDeviceError{Op: opKeyDown, Key: vk}
	}
	if err := c.send(vk, wininput.FlagKeyDown, special); err != nil {
		return err
	}
	c.down = append(c.down, vk)
	return nil
}

// keyUp removes vk from the pressed set after the OS accepts the event.
func (c *Controller) keyUp(vk uint16, special bool) error {
	i := slices.Index(c.down, vk)
	if i < 0 {
		return &InputDeviceError{Op: opKeyUp, Key: vk}
	}
	if err := c.send(vk, wininput.FlagKeyUp, special); err != nil {
		return err
	}
	c.down = slices.Delete(c.down, i, i+1)
	return nil
}

// send injects one event, adding the extended flag for scan-code dependent special keys.
func (c *Controller) send(vk uint16, flags wininput.KeyFlags, special bool) error {
	if special && SpecialKey(vk).IsExtended() {
		flags |= wininput.FlagExtendedKey
	}
	ev := wininput.KeyEvent{VK: vk, Flags: flags, ExtraInfo: c.platform.MessageExtraInfo()}
	if err := c.platform.SendKey(ev); err != nil {
		return fmt.Errorf("send %s %s: %w", SpecialKey(vk), flags, err)
	}
	c.logger.Debug("key event", "key", SpecialKey(vk), "flags", flags)
	return nil
}

// notify signals the listener that an operation completed.
func (c *Controller) notify() {
	c.listener.ActionPerformed(ActionInputPerformed)
}
