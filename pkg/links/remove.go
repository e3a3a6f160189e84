package links

import (
	"fmt"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/types"
)

// Remove deletes each destination that IsActualLink confirms is the symlink
// its mapping would have created. Anything else at a destination is left in
// place and reported as skipped.
func (r *Reconciler) Remove(mappings []types.Mapping, dotfilesRoot string) (types.Results, error) {
	logger := r.logger.With().Str("operation", "remove").Logger()
	defer logging.LogOperationStart(logger, "remove")()

	results := make(types.Results, 0, len(mappings))
	for _, m := range mappings {
		rm, err := r.resolve(dotfilesRoot, m)
		if err != nil {
			return results, err
		}

		if !r.IsActualLink(rm.Source, rm.Destination) {
			r.notice(MsgNotThisLink, rm.Destination, rm.Source)
			results = append(results, result(rm, types.StatusSkippedNotLinked))
			continue
		}

		if err := r.fs.Remove(rm.Destination); err != nil {
			return results, errors.Wrapf(err, errors.ErrFileRemove, MsgErrUnlink, rm.Destination).
				WithDetail("path", rm.Destination)
		}

		r.notice(MsgUnlink, rm.Destination)
		logger.Debug().Str("dest", rm.Destination).Msg("Symlink removed")
		results = append(results, result(rm, types.StatusUnlinked))
	}

	logger.Info().
		Int("unlinked", results.Count(types.StatusUnlinked)).
		Int("skipped", results.Count(types.StatusSkippedNotLinked)).
		Msg("Remove finished")
	return results, nil
}

// List prints every mapping whose destination is currently installed.
// Mappings that are not installed produce no output.
func (r *Reconciler) List(mappings []types.Mapping, dotfilesRoot string) (types.Results, error) {
	results := make(types.Results, 0, len(mappings))
	for _, m := range mappings {
		rm, err := r.resolve(dotfilesRoot, m)
		if err != nil {
			return results, err
		}

		if r.IsActualLink(rm.Source, rm.Destination) {
			r.notice(MsgLink, rm.Source, rm.Destination)
			results = append(results, result(rm, types.StatusInstalled))
			continue
		}
		results = append(results, result(rm, types.StatusNotInstalled))
	}
	return results, nil
}

func formatPrompt(dest string) string {
	return fmt.Sprintf(MsgOverwritePrompt, dest)
}
