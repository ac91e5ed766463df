package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/frudas24/keyslice/internal/keyboard"
	"github.com/frudas24/keyslice/internal/layouts"
	"github.com/frudas24/keyslice/internal/wininput"
)

type layoutCmd struct {
	Active  layoutActiveCmd `cmd:"" help:"Print the active layout handle."`
	List    layoutListCmd   `cmd:"" help:"List installed layout handles."`
	Load    layoutLoadCmd   `cmd:"" help:"Load a layout by preset name or KLID and activate it."`
	Set     layoutSetCmd    `cmd:"" help:"Activate an installed layout handle."`
	Presets layoutPresetCmd `cmd:"" help:"Print the layout presets."`
}

// presetFile is shared by the subcommands that resolve preset names.
type presetFile struct {
	PresetFile string `help:"Layout preset file." default:"./data/layouts.yaml" type:"path" env:"PRESETS_PATH"`
}

type layoutActiveCmd struct {
	Thread uint32 `help:"Thread to query; 0 is the calling thread."`
}

// Run prints the active layout.
func (c *layoutActiveCmd) Run(logger *slog.Logger) error {
	kb, err := newController(logger, false)
	if err != nil {
		return err
	}
	fmt.Println(kb.ActiveLayout(c.Thread))
	return nil
}

type layoutListCmd struct{}

// Run prints every installed layout, marking the active one.
func (c *layoutListCmd) Run(logger *slog.Logger) error {
	kb, err := newController(logger, false)
	if err != nil {
		return err
	}
	list, err := kb.Layouts()
	if err != nil {
		return err
	}
	active := kb.ActiveLayout(0)
	for _, l := range list {
		mark := " "
		if l == active {
			mark = "*"
		}
		fmt.Printf("%s %s\n", mark, l)
	}
	return nil
}

type layoutLoadCmd struct {
	Store presetFile `embed:""`

	Layout     string `arg:"" help:"Preset name or 8-digit KLID."`
	NoActivate bool   `help:"Load without activating."`
	Process    bool   `help:"Apply to every thread of the process."`
}

// Run loads the layout and prints its handle.
func (c *layoutLoadCmd) Run(logger *slog.Logger) error {
	presets, err := layouts.Load(c.Store.PresetFile)
	if err != nil {
		return err
	}
	klid, err := layouts.Resolve(presets, c.Layout)
	if err != nil {
		return err
	}
	kb, err := newController(logger, false)
	if err != nil {
		return err
	}
	l, err := kb.LoadLayout(klid, c.flags())
	if err != nil {
		return err
	}
	fmt.Println(l)
	return nil
}

// flags builds the load flags from the command options.
func (c *layoutLoadCmd) flags() uint32 {
	var flags uint32
	if !c.NoActivate {
		flags |= keyboard.LayoutActivate
	}
	if c.Process {
		flags |= keyboard.LayoutSetForProcess
	}
	return flags
}

type layoutSetCmd struct {
	Handle string `arg:"" help:"Layout handle in hex, or 'next'/'prev'."`
}

// Run activates the layout and prints the previous handle.
func (c *layoutSetCmd) Run(logger *slog.Logger) error {
	target, err := parseHandle(c.Handle)
	if err != nil {
		return err
	}
	kb, err := newController(logger, false)
	if err != nil {
		return err
	}
	prev, err := kb.SetLayout(target, 0)
	if err != nil {
		return err
	}
	fmt.Printf("%s -> %s\n", prev, kb.ActiveLayout(0))
	return nil
}

// parseHandle reads a hex layout handle or a cycle keyword.
func parseHandle(s string) (wininput.Layout, error) {
	switch s {
	case "next":
		return keyboard.LayoutNext, nil
	case "prev":
		return keyboard.LayoutPrevious, nil
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("layout handle %q: %w", s, err)
	}
	return wininput.Layout(v), nil
}

type layoutPresetCmd struct {
	Store presetFile `embed:""`
	Write bool       `help:"Write the presets to the preset file, seeding it with the built-in set when missing."`
}

// Run prints the presets sorted by name, optionally persisting them first.
func (c *layoutPresetCmd) Run() error {
	presets, err := layouts.Load(c.Store.PresetFile)
	if err != nil {
		return err
	}
	if c.Write {
		if err := layouts.Save(c.Store.PresetFile, layouts.Sorted(presets)); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", c.Store.PresetFile)
	}
	for _, p := range layouts.Sorted(presets) {
		fmt.Printf("%-10s %s  %s\n", p.Name, p.KLID, p.Description)
	}
	return nil
}
