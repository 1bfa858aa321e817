// Package config loads quicken's configuration.
//
// Sources are layered, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/quicken/config.toml
//  3. ./.quicken.toml in the working directory
//  4. an explicit file given with --config
//  5. QUICKEN_<SECTION>_<KEY> environment variables
package config
