// Package paths provides centralized path handling for dotman.
//
// It owns the two path concerns the link reconciler depends on:
//
//   - Home directory placeholder expansion ("~" and "~/..." prefixes)
//   - Resolution of a mapping into absolute source and destination paths
//
// and the XDG locations dotman itself uses for its log file and user
// settings.
//
// # Resolution rules
//
// A mapping source is joined with the dotfiles root and then expanded. An
// absolute source replaces the root, and a root that is still relative after
// expansion is made absolute against the working directory, so the created
// symlink target is always absolute.
//
// A mapping destination is expanded; a destination that is still relative is
// taken relative to the home directory.
//
// # Environment Variables
//
//   - HOME: the home directory used for "~" expansion
//   - XDG_STATE_HOME: base directory for the log file (default: ~/.local/state)
//   - XDG_CONFIG_HOME: base directory for settings (default: ~/.config)
package paths
