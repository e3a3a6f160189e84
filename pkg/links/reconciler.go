package links

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/arthur-debert/dotman/pkg/filesystem"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Reconciler. Zero values select the OS filesystem,
// home directory expansion and a discarded output. A nil Confirmer declines
// every overwrite.
type Options struct {
	FS        types.FS
	Expander  types.Expander
	Confirmer types.Confirmer
	Out       io.Writer
}

// Reconciler applies mappings to the filesystem
type Reconciler struct {
	fs        types.FS
	expander  types.Expander
	confirmer types.Confirmer
	out       io.Writer
	logger    zerolog.Logger
}

// New creates a Reconciler from opts
func New(opts Options) *Reconciler {
	r := &Reconciler{
		fs:        opts.FS,
		expander:  opts.Expander,
		confirmer: opts.Confirmer,
		out:       opts.Out,
		logger:    logging.GetLogger("links"),
	}
	if r.fs == nil {
		r.fs = filesystem.NewOS()
	}
	if r.expander == nil {
		r.expander = paths.NewHomeExpander()
	}
	if r.out == nil {
		r.out = io.Discard
	}
	return r
}

// IsActualLink reports whether destination is a symlink whose target is
// exactly source. Any probe error counts as "no".
func (r *Reconciler) IsActualLink(source, destination string) bool {
	info, err := r.fs.Lstat(destination)
	if err != nil {
		r.logger.Trace().Err(err).Str("dest", destination).Msg("Destination not present")
		return false
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		r.logger.Trace().Str("dest", destination).Str("mode", info.Mode().String()).Msg("Destination is not a symlink")
		return false
	}

	target, err := r.fs.Readlink(destination)
	if err != nil {
		r.logger.Debug().Err(err).Str("dest", destination).Msg("Failed to read link target")
		return false
	}
	if target != source {
		r.logger.Trace().Str("dest", destination).Str("target", target).Str("source", source).Msg("Link points elsewhere")
		return false
	}
	return true
}

// resolve expands one mapping into absolute paths
func (r *Reconciler) resolve(dotfilesRoot string, m types.Mapping) (types.ResolvedMapping, error) {
	return paths.Resolve(r.expander, dotfilesRoot, m)
}

// exists reports whether any entry, including a dangling symlink, is at path
func (r *Reconciler) exists(path string) bool {
	_, err := r.fs.Lstat(path)
	return err == nil
}

// sourceExists follows symlinks, so a source that is itself a dangling link
// counts as missing
func (r *Reconciler) sourceExists(path string) bool {
	_, err := r.fs.Stat(path)
	if err != nil {
		r.logger.Debug().Err(err).Str("source", path).Msg("Source not available")
		return false
	}
	return true
}

// notice writes a single console line
func (r *Reconciler) notice(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

func result(rm types.ResolvedMapping, status types.LinkStatus) types.Result {
	return types.Result{
		Mapping:     rm.Mapping,
		Source:      rm.Source,
		Destination: rm.Destination,
		Status:      status,
	}
}
