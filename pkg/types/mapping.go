package types

// Mapping declares one desired symlink: Source is relative to the dotfiles
// root, Destination is usually rooted at the home directory placeholder.
type Mapping struct {
	Source      string `json:"src" yaml:"src" toml:"src"`
	Destination string `json:"dest" yaml:"dest" toml:"dest"`
}

// ResolvedMapping is a Mapping with both sides expanded to absolute paths.
// It is recomputed on every run and never persisted.
type ResolvedMapping struct {
	Mapping     Mapping `json:"mapping"`
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
}
