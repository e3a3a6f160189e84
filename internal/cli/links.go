package cli

import (
	"os"

	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/filesystem"
	"github.com/arthur-debert/dotman/pkg/links"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/arthur-debert/dotman/pkg/ui"
	"github.com/arthur-debert/dotman/pkg/ui/confirmations"
	"github.com/spf13/cobra"
)

// linksEnv is everything a links subcommand needs once settings are resolved
type linksEnv struct {
	settings   *config.Settings
	mappings   []types.Mapping
	renderer   ui.Renderer
	reconciler *links.Reconciler
}

func newLinksCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "links",
		Short:   MsgLinksShort,
		Long:    MsgLinksLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newInstallCmd(opts))
	cmd.AddCommand(newRemoveCmd(opts))
	cmd.AddCommand(newListCmd(opts))

	return cmd
}

func newInstallCmd(opts *globalOptions) *cobra.Command {
	var force, dryRun bool

	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.links")
			env, err := prepareLinks(cmd, opts)
			if err != nil {
				return err
			}

			logger.Info().
				Str("dotfilesDir", env.settings.DotfilesDir).
				Int("mappings", len(env.mappings)).
				Bool("force", force).
				Bool("dryRun", dryRun).
				Msg("Installing links")

			results, err := env.reconciler.Install(env.mappings, env.settings.DotfilesDir, force, dryRun)
			if err != nil {
				return err
			}
			return env.renderer.RenderReport(types.Report{Command: "install", DryRun: dryRun, Results: results})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)

	return cmd
}

func newRemoveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: MsgRemoveShort,
		Long:  MsgRemoveLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := prepareLinks(cmd, opts)
			if err != nil {
				return err
			}

			results, err := env.reconciler.Remove(env.mappings, env.settings.DotfilesDir)
			if err != nil {
				return err
			}
			return env.renderer.RenderReport(types.Report{Command: "remove", Results: results})
		},
	}
}

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := prepareLinks(cmd, opts)
			if err != nil {
				return err
			}

			results, err := env.reconciler.List(env.mappings, env.settings.DotfilesDir)
			if err != nil {
				return err
			}
			return env.renderer.RenderReport(types.Report{Command: "list", Results: results})
		},
	}
}

// prepareLinks resolves settings, loads the mapping file and builds the
// renderer and reconciler for a links subcommand
func prepareLinks(cmd *cobra.Command, opts *globalOptions) (*linksEnv, error) {
	settings, err := config.LoadSettings(opts.settingsOverrides(cmd))
	if err != nil {
		return nil, err
	}

	expander := paths.NewHomeExpander()
	mappingFile, err := settings.ResolveMappingFile(expander)
	if err != nil {
		return nil, err
	}
	mappings, err := config.LoadMappings(mappingFile)
	if err != nil {
		return nil, err
	}

	format, err := opts.outputFormat(settings.Color, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	reconciler := links.New(links.Options{
		FS:        filesystem.NewOS(),
		Expander:  expander,
		Confirmer: newConfirmer(cmd),
		Out:       renderer.Notices(),
	})

	return &linksEnv{
		settings:   settings,
		mappings:   mappings,
		renderer:   renderer,
		reconciler: reconciler,
	}, nil
}

// newConfirmer prompts on the terminal when the command reads the real
// stdin, and line by line from the command's input otherwise. Prompts go to
// stderr so they never mix with stdout output.
func newConfirmer(cmd *cobra.Command) types.Confirmer {
	if cmd.InOrStdin() == os.Stdin {
		return confirmations.NewConsoleConfirmer()
	}
	return confirmations.NewLineConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
}
