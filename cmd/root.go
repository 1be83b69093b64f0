// Package cmd is the invdash command line.
package cmd

import (
	"fmt"

	"github.com/alecthomas/kong"
)

// Globals are the flags shared by every command. Flags win over environment
// variables, which win over the config and profile files.
type Globals struct {
	Profile    string `short:"p" env:"INVDASH_PROFILE" help:"Profile to use (file name under the profiles directory)."`
	BaseURL    string `name:"base-url" env:"INVDASH_BASE_URL" help:"Inventory server URL. Overrides the profile."`
	Theme      string `env:"INVDASH_THEME" help:"Color theme slug. Overrides the config file."`
	LogLevel   string `name:"log-level" env:"INVDASH_LOG_LEVEL" help:"Log level (debug, info, warn, error)."`
	ConfigFile string `name:"config-file" type:"path" env:"INVDASH_CONFIG" help:"Config file to read instead of the default."`
}

// buildInfo is bound into commands that report the binary version.
type buildInfo struct {
	Version string
}

// CLI is the full command tree.
type CLI struct {
	Globals

	Run      runCmd      `cmd:"" default:"1" help:"Launch the dashboard (default)."`
	Snapshot snapshotCmd `cmd:"" help:"Run one refresh cycle and print the dashboard."`
	Export   exportCmd   `cmd:"" help:"Run one refresh cycle and write the charts as an HTML page."`
	Session  sessionCmd  `cmd:"" help:"Manage saved server sessions."`
	Profiles profileCmd  `cmd:"" name:"profile" help:"Manage server profiles."`
	Config   configCmd   `cmd:"" help:"Manage configuration."`
	Themes   themesCmd   `cmd:"" help:"List available themes."`
	Version  versionCmd  `cmd:"" help:"Show version."`
}

// Execute parses args and runs the selected command.
func Execute(args []string, version string) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("invdash"),
		kong.Description("Terminal dashboard for an equipment inventory server."),
		kong.UsageOnError(),
		kong.Bind(&cli.Globals, buildInfo{Version: version}),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run()
}

type versionCmd struct{}

func (versionCmd) Run(info buildInfo) error {
	fmt.Printf("invdash %s\n", info.Version)
	return nil
}
