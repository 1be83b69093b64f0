package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "invdash"

// baseDir resolves a per-user base directory. On Windows winEnv is used,
// falling back to %USERPROFILE%\winFallback. Elsewhere xdgEnv is used,
// falling back to ~/xdgFallback.
func baseDir(winEnv string, winFallback []string, xdgEnv string, xdgFallback []string) (string, error) {
	if runtime.GOOS == "windows" {
		if base := os.Getenv(winEnv); base != "" {
			return base, nil
		}
		return filepath.Join(append([]string{os.Getenv("USERPROFILE")}, winFallback...)...), nil
	}
	if base := os.Getenv(xdgEnv); base != "" {
		return base, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, xdgFallback...)...), nil
}

// GetConfigDir returns the platform-specific config directory.
// Unix: $XDG_CONFIG_HOME/invdash or ~/.config/invdash
// Windows: %APPDATA%\invdash
func GetConfigDir() (string, error) {
	base, err := baseDir("APPDATA", []string{"AppData", "Roaming"}, "XDG_CONFIG_HOME", []string{".config"})
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// GetDataDir returns the platform-specific data directory.
// Unix: $XDG_DATA_HOME/invdash or ~/.local/share/invdash
// Windows: %LOCALAPPDATA%\invdash
func GetDataDir() (string, error) {
	base, err := baseDir("LOCALAPPDATA", []string{"AppData", "Local"}, "XDG_DATA_HOME", []string{".local", "share"})
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

func inConfigDir(name string) (string, error) {
	cfgDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, name), nil
}

// GetConfigPath returns the path to config.toml.
func GetConfigPath() (string, error) {
	return inConfigDir("config.toml")
}

// GetProfilesDir returns the directory holding one TOML file per server.
func GetProfilesDir() (string, error) {
	return inConfigDir("profiles")
}

// GetSessionStorePath returns the path to the encrypted session store.
func GetSessionStorePath() (string, error) {
	return inConfigDir("sessions.enc")
}

// GetLogPath returns the default log file used while the TUI owns the
// terminal.
func GetLogPath() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "invdash.log"), nil
}

// EnsureDirs creates all required directories if they don't exist.
func EnsureDirs() error {
	dirs := []func() (string, error){GetConfigDir, GetDataDir, GetProfilesDir}
	for _, fn := range dirs {
		dir, err := fn()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return nil
}
