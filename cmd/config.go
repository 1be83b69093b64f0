package cmd

import (
	"fmt"

	"github.com/tonhe/invdash/internal/config"
	"github.com/tonhe/invdash/tui/styles"
)

type configCmd struct {
	Path    configPathCmd    `cmd:"" help:"Show the config file path."`
	Theme   configThemeCmd   `cmd:"" help:"Set the default theme."`
	Default configDefaultCmd `cmd:"" help:"Set the default profile."`
}

type configPathCmd struct{}

func (configPathCmd) Run(g *Globals) error {
	path, err := g.configPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

type configThemeCmd struct {
	Name string `arg:"" help:"Theme slug (see 'invdash themes')."`
}

func (c *configThemeCmd) Run(g *Globals) error {
	if styles.GetThemeByName(c.Name) == nil {
		return fmt.Errorf("unknown theme %q; run 'invdash themes' to see available themes", c.Name)
	}
	if err := g.updateConfig(func(cfg *config.Config) { cfg.Theme = c.Name }); err != nil {
		return err
	}
	fmt.Printf("Default theme set to %q.\n", c.Name)
	return nil
}

type configDefaultCmd struct {
	Name string `arg:"" help:"Profile name."`
}

func (c *configDefaultCmd) Run(g *Globals) error {
	if err := g.updateConfig(func(cfg *config.Config) { cfg.DefaultProfile = c.Name }); err != nil {
		return err
	}
	fmt.Printf("Default profile set to %q.\n", c.Name)
	return nil
}

type themesCmd struct{}

func (themesCmd) Run() error {
	for _, slug := range styles.ListThemes() {
		fmt.Printf("%-18s %s\n", slug, styles.Themes[slug].Name)
	}
	return nil
}

func (g *Globals) configPath() (string, error) {
	if g.ConfigFile != "" {
		return g.ConfigFile, nil
	}
	return config.GetConfigPath()
}

// updateConfig loads the config file as stored, applies fn and writes it
// back. Flag overrides are not persisted.
func (g *Globals) updateConfig(fn func(*config.Config)) error {
	path, err := g.configPath()
	if err != nil {
		return err
	}
	if err := config.EnsureDirs(); err != nil {
		return fmt.Errorf("creating config directories: %w", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	fn(cfg)
	return config.SaveConfig(cfg, path)
}
