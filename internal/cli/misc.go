package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dotman/internal/version"
	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// Shells supported by the completion command
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "update",
		Short:   MsgUpdateShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New(errors.ErrNotImplemented, MsgErrNotImplementedUpdate)
		},
	}
}

func newSelfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "self",
		Short:   MsgSelfShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "update",
		Short: MsgSelfUpdateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New(errors.ErrNotImplemented, MsgErrNotImplementedSelfUpdate)
		},
	})

	return cmd
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.outputFormat(opts.color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if !write {
				return renderer.RenderMessage(config.GenerateSettingsContent())
			}

			path := paths.SettingsFilePath()
			written, err := config.WriteSettingsFile(path)
			if err != nil {
				return err
			}
			if !written {
				return renderer.RenderMessage(fmt.Sprintf(MsgGenConfigExists, path))
			}
			return renderer.RenderMessage(fmt.Sprintf(MsgGenConfigWritten, path))
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)

	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

// GenCompletion writes the completion script for shell to w
func GenCompletion(rootCmd *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	}
	return errors.Newf(errors.ErrInvalidInput, MsgErrUnknownShell, shell)
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Long:    MsgManLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				return GenManPage(cmd.Root(), cmd.OutOrStdout())
			}
			return GenManTree(cmd.Root(), dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagManDir)
	_ = cmd.MarkFlagDirname("dir")

	return cmd
}

func manHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   MsgManTitle,
		Section: "1",
		Source:  "dotman " + version.Version,
		Manual:  MsgManManual,
	}
}

// GenManPage writes the root command's man page to w
func GenManPage(rootCmd *cobra.Command, w io.Writer) error {
	if err := doc.GenMan(rootCmd, manHeader(), w); err != nil {
		return errors.Wrap(err, errors.ErrInternal, MsgErrManGenerate)
	}
	return nil
}

// GenManTree writes one man page per command into dir
func GenManTree(rootCmd *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, MsgErrManDir, dir).WithDetail("path", dir)
	}
	if err := doc.GenManTree(rootCmd, manHeader(), dir); err != nil {
		return errors.Wrap(err, errors.ErrInternal, MsgErrManGenerate)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
		},
	}
}
