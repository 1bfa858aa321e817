// Package paths provides centralized path handling for quicken.
//
// It follows the XDG Base Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/quicken (user configuration, config.toml)
//   - Data: $XDG_DATA_HOME/quicken (scripted plugins under plugins/)
//   - State: $XDG_STATE_HOME/quicken (log file)
//
// # Environment Variables
//
//   - QUICKEN_CONFIG_DIR: Override the config directory
//   - QUICKEN_DATA_DIR: Override the data directory
//   - QUICKEN_STATE_DIR: Override the state directory
package paths
