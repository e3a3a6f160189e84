package filesystem

import (
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/spf13/afero"
)

// NewOS creates a filesystem backed by the real OS
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}
