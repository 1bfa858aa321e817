package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	// AppDirName is the directory name used under every XDG base directory
	AppDirName = "quicken"

	// ConfigFileName is the user configuration file inside ConfigDir
	ConfigFileName = "config.toml"

	// ProjectConfigFileName is looked up in the working directory
	ProjectConfigFileName = ".quicken.toml"

	// LogFileName is the log file inside StateDir
	LogFileName = "quicken.log"

	// PluginsDirName is the scripted plugins directory inside DataDir
	PluginsDirName = "plugins"
)

// Environment variable overrides
const (
	EnvConfigDir = "QUICKEN_CONFIG_DIR"
	EnvDataDir   = "QUICKEN_DATA_DIR"
	EnvStateDir  = "QUICKEN_STATE_DIR"
)

// ConfigDir returns the directory holding the user configuration file
func ConfigDir() string {
	return dirFromEnv(EnvConfigDir, xdg.ConfigHome)
}

// DataDir returns the quicken data directory
func DataDir() string {
	return dirFromEnv(EnvDataDir, xdg.DataHome)
}

// StateDir returns the quicken state directory
func StateDir() string {
	return dirFromEnv(EnvStateDir, xdg.StateHome)
}

// ConfigFile returns the path of the user configuration file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LogFile returns the path of the log file
func LogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

// PluginsDir returns the default directory scripted plugins are discovered in
func PluginsDir() string {
	return filepath.Join(DataDir(), PluginsDirName)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func dirFromEnv(envVar, base string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(base, AppDirName)
}
