package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/frudas24/keyslice/internal/keyboard"
	"github.com/frudas24/keyslice/internal/wininput"
)

// newController opens the native platform for a one-shot command.
func newController(logger *slog.Logger, normalizeCaps bool) (*keyboard.Controller, error) {
	platform, err := wininput.NewPlatform()
	if err != nil {
		return nil, err
	}
	return keyboard.New(platform,
		keyboard.WithLogger(logger),
		keyboard.WithCapsLockNormalization(normalizeCaps),
	), nil
}

type typeCmd struct {
	Text       []string `arg:"" help:"Text to type; arguments are joined with spaces."`
	KeepCaps   bool     `help:"Do not switch Caps Lock off before typing."`
	PressEnter bool     `help:"Press RETURN after the text." name:"enter"`
}

// Run types the text.
func (c *typeCmd) Run(logger *slog.Logger) error {
	kb, err := newController(logger, !c.KeepCaps)
	if err != nil {
		return err
	}
	if err := kb.TypeText(strings.Join(c.Text, " ")); err != nil {
		return err
	}
	if c.PressEnter {
		return kb.PressSpecialKey(keyboard.KeyReturn)
	}
	return nil
}

type pressCmd struct {
	Keys []string `arg:"" help:"Key names; all but the last are held while the last is pressed."`
}

// Run presses the chord and releases every key it held.
func (c *pressCmd) Run(logger *slog.Logger) error {
	keys := make([]keyboard.SpecialKey, 0, len(c.Keys))
	for _, name := range c.Keys {
		key, err := keyboard.ParseSpecialKey(name)
		if err != nil {
			return err
		}
		keys = append(keys, key)
	}
	kb, err := newController(logger, false)
	if err != nil {
		return err
	}
	return pressChord(kb, keys)
}

// pressChord holds every key but the last, presses the last, then releases the held ones.
func pressChord(kb *keyboard.Controller, keys []keyboard.SpecialKey) (err error) {
	if len(keys) == 0 {
		return nil
	}
	defer func() {
		if rerr := kb.ReleaseAllHeldKeys(); err == nil {
			err = rerr
		}
	}()
	for _, key := range keys[:len(keys)-1] {
		if err := kb.HoldKey(key); err != nil {
			return err
		}
	}
	return kb.PressSpecialKey(keys[len(keys)-1])
}

type capsCmd struct {
	State string `arg:"" optional:"" enum:"on,off,status" default:"status" help:"on, off or status."`
}

// Run reports or sets Caps Lock.
func (c *capsCmd) Run(logger *slog.Logger) error {
	kb, err := newController(logger, false)
	if err != nil {
		return err
	}
	switch c.State {
	case "on", "off":
		if err := kb.SetCapsLock(c.State == "on"); err != nil {
			return err
		}
	}
	fmt.Printf("caps lock: %s\n", onOff(kb.CapsLock()))
	return nil
}

// onOff renders a toggle state.
func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
