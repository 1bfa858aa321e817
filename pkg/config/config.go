package config

import (
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the effective quicken configuration
type Config struct {
	Recipe  RecipeConfig  `koanf:"recipe"`
	Plugins PluginsConfig `koanf:"plugins"`
	Project ProjectConfig `koanf:"project"`
	Logging LoggingConfig `koanf:"logging"`
}

type RecipeConfig struct {
	Output       string        `koanf:"output"`
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
}

type PluginsConfig struct {
	Dir string `koanf:"dir"`
}

type ProjectConfig struct {
	License string `koanf:"license"`
}

type LoggingConfig struct {
	File string `koanf:"file"`
}

// tomlView mirrors Config with durations kept in their textual form so the
// output can be fed back as a config file.
type tomlView struct {
	Recipe struct {
		Output       string `toml:"output"`
		FetchTimeout string `toml:"fetch_timeout"`
	} `toml:"recipe"`
	Plugins struct {
		Dir string `toml:"dir"`
	} `toml:"plugins"`
	Project struct {
		License string `toml:"license"`
	} `toml:"project"`
	Logging struct {
		File string `toml:"file"`
	} `toml:"logging"`
}

// TOML renders the configuration in the format it is read from
func (c *Config) TOML() (string, error) {
	var v tomlView
	v.Recipe.Output = c.Recipe.Output
	v.Recipe.FetchTimeout = c.Recipe.FetchTimeout.String()
	v.Plugins.Dir = c.Plugins.Dir
	v.Project.License = c.Project.License
	v.Logging.File = c.Logging.File

	out, err := toml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
