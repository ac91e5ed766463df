// Package main is the keyslice command line.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/frudas24/keyslice/internal/log"
)

// CLI is the root command tree.
type CLI struct {
	Config string `help:"Config file (json, yaml or toml)." type:"path" env:"KEYSLICE_CONFIG"`
	Log    struct {
		Level string `help:"Log level." default:"info" enum:"trace,debug,info,warn,error" env:"KEYSLICE_LOG_LEVEL"`
		File  string `help:"Also write logs to this file." type:"path" env:"KEYSLICE_LOG_FILE"`
	} `embed:"" prefix:"log."`

	Serve  serveCmd  `cmd:"" help:"Run the HTTP and websocket control server."`
	Type   typeCmd   `cmd:"" help:"Type text into the focused window."`
	Press  pressCmd  `cmd:"" help:"Press a key or a chord such as 'ctrl c'."`
	Caps   capsCmd   `cmd:"" help:"Show or set the Caps Lock state."`
	Layout layoutCmd `cmd:"" help:"Inspect and switch keyboard layouts."`
}

// main is the entrypoint for keyslice.
func main() {
	jsonPaths, yamlPaths, tomlPaths := configCandidatePaths(findUserConfig(os.Args[1:]))

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("keyslice"),
		kong.Description("Keyboard input injection for Windows desktops"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closers, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

// findUserConfig extracts --config before kong parses so the file can feed defaults.
func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("KEYSLICE_CONFIG")
}

// configCandidatePaths routes the user config to its loader by extension and
// adds keyslice.{json,yaml,yml,toml} from the working directory.
func configCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
		}
	}
	wd, _ := os.Getwd()
	jsonPaths = append(jsonPaths, filepath.Join(wd, "keyslice.json"))
	yamlPaths = append(yamlPaths, filepath.Join(wd, "keyslice.yaml"), filepath.Join(wd, "keyslice.yml"))
	tomlPaths = append(tomlPaths, filepath.Join(wd, "keyslice.toml"))
	return jsonPaths, yamlPaths, tomlPaths
}
