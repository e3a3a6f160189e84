// Package config loads dotman's settings and the mapping file.
//
// Settings are layered with koanf: embedded defaults, the user settings file
// ($XDG_CONFIG_HOME/dotman/config.toml), the environment (DOTFILES_DIR and
// DOTMAN_*) and finally explicitly set command-line flags.
//
// The mapping file lives in the dotfiles directory and lists which source
// file is linked to which destination:
//
//	mappings:
//	  bash/bashrc: ~/.bashrc
//	  nvim: ~/.config/nvim
//
// A list form and a TOML variant are accepted too; see LoadMappings.
package config
