package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/paths"
)

// EnvPrefix marks environment variables read as configuration
const EnvPrefix = "QUICKEN_"

// LoadOptions selects the files layered over the embedded defaults
type LoadOptions struct {
	// UserFile defaults to paths.ConfigFile().
	UserFile string
	// ProjectDir is searched for .quicken.toml. Defaults to ".".
	ProjectDir string
	// File is an explicit config file and must exist when set.
	File string
	// Overrides are applied last, keyed by dotted path ("recipe.output").
	Overrides map[string]interface{}
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	known := make(map[string]bool)
	for _, key := range k.Keys() {
		known[key] = true
	}

	// 2. User and project files are optional
	userFile := opts.UserFile
	if userFile == "" {
		userFile = paths.ConfigFile()
	}
	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	for _, path := range []string{userFile, filepath.Join(projectDir, paths.ProjectConfigFileName)} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	}

	// 3. Explicit file
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", opts.File).
				WithDetail("path", opts.File)
		}
		if err := loadFile(k, opts.File); err != nil {
			return nil, err
		}
	}

	// 4. Environment, restricted to keys the defaults declare
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
		if !known[key] {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	postProcess(&cfg)
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

// postProcess fills the XDG based defaults and expands ~ in paths
func postProcess(cfg *Config) {
	if cfg.Plugins.Dir == "" {
		cfg.Plugins.Dir = paths.PluginsDir()
	}
	cfg.Plugins.Dir = paths.ExpandHome(cfg.Plugins.Dir)

	if cfg.Logging.File == "" {
		cfg.Logging.File = paths.LogFile()
	}
	cfg.Logging.File = paths.ExpandHome(cfg.Logging.File)

	cfg.Project.License = strings.ToLower(strings.TrimSpace(cfg.Project.License))
}
