package links

import (
	"path/filepath"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/types"
)

// Install links every mapping's destination to its resolved source.
//
// A missing source or a declined overwrite skips the mapping. With dryRun
// nothing is mutated and no prompt is shown, but the same "Link:" notices
// are printed. With force an existing destination is replaced without asking.
func (r *Reconciler) Install(mappings []types.Mapping, dotfilesRoot string, force, dryRun bool) (types.Results, error) {
	logger := r.logger.With().
		Str("operation", "install").
		Bool("force", force).
		Bool("dryRun", dryRun).
		Logger()
	defer logging.LogOperationStart(logger, "install")()

	results := make(types.Results, 0, len(mappings))
	for _, m := range mappings {
		res, err := r.installOne(m, dotfilesRoot, force, dryRun)
		if err != nil {
			logger.Error().Err(err).Str("src", m.Source).Str("dest", m.Destination).Msg("Install aborted")
			return results, err
		}
		logger.Debug().Str("source", res.Source).Str("dest", res.Destination).Str("status", string(res.Status)).Msg("Mapping processed")
		results = append(results, res)
	}

	logger.Info().
		Int("linked", results.Count(types.StatusLinked)+results.Count(types.StatusWouldLink)).
		Int("skipped", len(results)-results.Count(types.StatusLinked)-results.Count(types.StatusWouldLink)).
		Msg("Install finished")
	return results, nil
}

func (r *Reconciler) installOne(m types.Mapping, dotfilesRoot string, force, dryRun bool) (types.Result, error) {
	rm, err := r.resolve(dotfilesRoot, m)
	if err != nil {
		return types.Result{}, err
	}
	src, dest := rm.Source, rm.Destination

	if !r.sourceExists(src) {
		r.notice(MsgSourceMissing, src)
		return result(rm, types.StatusSkippedMissingSource), nil
	}

	if dryRun {
		r.notice(MsgLink, src, dest)
		return result(rm, types.StatusWouldLink), nil
	}

	if r.exists(dest) {
		if !force {
			ok, err := r.confirmOverwrite(dest)
			if err != nil {
				return types.Result{}, err
			}
			if !ok {
				r.notice(MsgSkipping, dest)
				return result(rm, types.StatusSkippedDeclined), nil
			}
		}
		if err := r.fs.Remove(dest); err != nil {
			return types.Result{}, errors.Wrapf(err, errors.ErrFileRemove, MsgErrRemoveExisting, dest).
				WithDetail("path", dest)
		}
	}

	parent := filepath.Dir(dest)
	if err := r.fs.MkdirAll(parent, 0755); err != nil {
		return types.Result{}, errors.Wrapf(err, errors.ErrDirCreate, MsgErrCreateParent, parent).
			WithDetail("path", parent)
	}

	if err := r.fs.Symlink(src, dest); err != nil {
		return types.Result{}, errors.Wrapf(err, errors.ErrSymlinkCreate, MsgErrCreateSymlink, dest, src).
			WithDetail("source", src).
			WithDetail("path", dest)
	}

	r.notice(MsgLink, src, dest)
	return result(rm, types.StatusLinked), nil
}

// confirmOverwrite asks before replacing dest. Without a Confirmer the
// answer is no.
func (r *Reconciler) confirmOverwrite(dest string) (bool, error) {
	if r.confirmer == nil {
		return false, nil
	}
	ok, err := r.confirmer.Confirm(formatPrompt(dest))
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrPrompt, MsgErrConfirm, dest).WithDetail("path", dest)
	}
	return ok, nil
}
