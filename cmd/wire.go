package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goodsign/monday"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tonhe/invdash/internal/activity"
	"github.com/tonhe/invdash/internal/config"
	"github.com/tonhe/invdash/internal/engine"
	"github.com/tonhe/invdash/internal/format"
	"github.com/tonhe/invdash/internal/inventory"
	"github.com/tonhe/invdash/internal/logging"
	"github.com/tonhe/invdash/internal/profile"
	"github.com/tonhe/invdash/internal/session"
)

// masterKeyEnv holds the session store password for unattended use.
const masterKeyEnv = "INVDASH_MASTER_KEY"

// adhocProfile names the profile built from --base-url alone.
const adhocProfile = "adhoc"

// loadConfig reads the config file, applying flag overrides.
func (g *Globals) loadConfig() (*config.Config, error) {
	path, err := g.configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if g.Theme != "" {
		cfg.Theme = g.Theme
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	return cfg, nil
}

// resolveProfile picks the server profile. --base-url overrides the profile's
// URL, and works without any profile file.
func (g *Globals) resolveProfile(cfg *config.Config) (*profile.Profile, error) {
	dir, err := config.GetProfilesDir()
	if err != nil {
		return nil, err
	}
	if g.BaseURL != "" && g.Profile == "" && cfg.DefaultProfile == "" {
		if names, _ := profile.List(dir); len(names) != 1 {
			return profile.New(adhocProfile, g.BaseURL)
		}
	}
	p, err := profile.Resolve(dir, g.Profile, cfg.DefaultProfile)
	if err != nil {
		return nil, err
	}
	if g.BaseURL != "" {
		p.BaseURL = g.BaseURL
	}
	return p, nil
}

// newLogger builds the zap logger. The TUI owns the terminal, so it logs to
// the log file; other commands log to stderr.
func newLogger(cfg *config.Config, toFile bool) (*zap.Logger, error) {
	opts := logging.Options{Level: cfg.LogLevel, Output: logging.Stderr}
	if toFile {
		opts.Output = cfg.LogFile
		if opts.Output == "" {
			p, err := config.GetLogPath()
			if err != nil {
				return nil, err
			}
			opts.Output = p
		}
	}
	return logging.New(opts)
}

// loadCredentials returns the saved session for p, or nil when there is no
// session store or no entry for the profile.
func loadCredentials(p *profile.Profile) (*inventory.Credentials, error) {
	path, err := config.GetSessionStorePath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	store, err := openSessions()
	if err != nil {
		return nil, err
	}
	sess, err := store.Get(p.SessionKey())
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sess.Credentials(), nil
}

// openSessions opens the session store. It tries the environment key, then
// an empty password, then prompts.
func openSessions() (*session.FileStore, error) {
	path, err := config.GetSessionStorePath()
	if err != nil {
		return nil, err
	}
	if err := config.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("creating config directories: %w", err)
	}

	if key := os.Getenv(masterKeyEnv); key != "" {
		return session.Open(path, []byte(key))
	}

	store, err := session.Open(path, []byte(""))
	if err == nil {
		return store, nil
	}
	if !errors.Is(err, session.ErrDecrypt) {
		return nil, err
	}

	password, err := promptSecret("Master password: ")
	if err != nil {
		return nil, err
	}
	return session.Open(path, password)
}

// promptSecret reads a line from the terminal without echo.
func promptSecret(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	return secret, nil
}

// stack is everything a refresh needs.
type stack struct {
	cfg     *config.Config
	profile *profile.Profile
	log     *zap.Logger
	client  *inventory.Client
}

// buildStack loads config, profile, credentials and the API client.
func (g *Globals) buildStack(logToFile bool) (*stack, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg, logToFile)
	if err != nil {
		return nil, err
	}
	prof, err := g.resolveProfile(cfg)
	if err != nil {
		return nil, err
	}
	creds, err := loadCredentials(prof)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	client, err := inventory.NewClient(inventory.ClientConfig{
		BaseURL:     prof.BaseURL,
		Timeout:     cfg.RequestTimeout,
		Credentials: creds,
		RequestRate: cfg.RequestRate,
	})
	if err != nil {
		return nil, err
	}
	log.Info("profile loaded",
		zap.String("profile", prof.Name),
		zap.String("base_url", client.BaseURL()),
		zap.Bool("session", creds != nil))
	return &stack{cfg: cfg, profile: prof, log: log, client: client}, nil
}

// controller wires a Controller to the stack's client.
func (s *stack) controller(render engine.Renderer, charts engine.ChartSink, notifier engine.Notifier) (*engine.Controller, error) {
	return engine.NewController(engine.Options{
		Source:     s.client,
		Renderer:   render,
		Charts:     charts,
		Activity:   activity.NewRenderer(format.New(monday.Locale(s.cfg.Locale), time.Local)),
		Notifier:   notifier,
		Logger:     s.log,
		MaxHistory: s.profile.MaxHistory,
	})
}
