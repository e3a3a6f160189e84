package cli

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotman/internal/version"
	"github.com/arthur-debert/dotman/pkg/cobrax/topics"
	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/ui"
	"github.com/arthur-debert/dotman/pkg/ui/output/styles"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// Flag names shared between commands and settings overrides
const (
	flagDotfilesDir = "dotfiles-dir"
	flagMappingFile = "mapping-file"
	flagColor       = "color"
	flagFormat      = "format"
)

// globalOptions holds the persistent flags of the root command
type globalOptions struct {
	verbosity   int
	dotfilesDir string
	mappingFile string
	color       string
	format      string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dotman",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			loadUserStyles()
			log.Debug().Str("command", cmd.CommandPath()).Msg(MsgDebugCommandStarted)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVarP(&opts.dotfilesDir, flagDotfilesDir, "d", "", MsgFlagDotfilesDir)
	pf.StringVar(&opts.mappingFile, flagMappingFile, "", MsgFlagMappingFile)
	pf.StringVar(&opts.color, flagColor, ui.ColorAuto, MsgFlagColor)
	pf.StringVar(&opts.format, flagFormat, "auto", MsgFlagFormat)

	_ = rootCmd.MarkPersistentFlagDirname(flagDotfilesDir)
	_ = rootCmd.RegisterFlagCompletionFunc(flagColor, fixedCompletion(ui.ColorAuto, ui.ColorAlways, ui.ColorNever))
	_ = rootCmd.RegisterFlagCompletionFunc(flagFormat, fixedCompletion("auto", "term", "text", "json"))

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetVersionTemplate(fmt.Sprintf(MsgVersionFormat, "{{.Version}}"))

	rootCmd.AddCommand(newLinksCmd(opts))
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newSelfCmd())
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Topic help from the embedded markdown files
	if sub, err := fs.Sub(topicFiles, "topics"); err == nil {
		if _, err := topics.InitializeWithOptions(rootCmd, sub, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		}); err != nil {
			log.Debug().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

// settingsOverrides returns the settings given explicitly on the command line
func (o *globalOptions) settingsOverrides(cmd *cobra.Command) map[string]interface{} {
	overrides := make(map[string]interface{})
	if f := cmd.Flag(flagDotfilesDir); f != nil && f.Changed {
		overrides[config.KeyDotfilesDir] = o.dotfilesDir
	}
	if f := cmd.Flag(flagMappingFile); f != nil && f.Changed {
		overrides[config.KeyMappingFile] = o.mappingFile
	}
	if f := cmd.Flag(flagColor); f != nil && f.Changed {
		overrides[config.KeyColor] = o.color
	}
	return overrides
}

// outputFormat resolves the --format flag against the color setting
func (o *globalOptions) outputFormat(color string, out io.Writer) (ui.Format, error) {
	format, err := ui.ParseFormat(o.format)
	if err != nil {
		return ui.FormatAuto, err
	}
	return ui.ResolveFormat(format, color, out), nil
}

// loadUserStyles replaces the built-in styles with the user's styles file
// when one exists
func loadUserStyles() {
	path := filepath.Join(paths.ConfigDir(), styles.FileName)
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := styles.LoadStyles(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Ignoring invalid styles file")
		return
	}
	log.Debug().Str("path", path).Msg(MsgDebugUserStyles)
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// RenderError prints err to w in the format selected by the root command's
// flags. Without --color the color setting from the settings file or the
// environment applies, when those load.
func RenderError(rootCmd *cobra.Command, w io.Writer, err error) {
	flags := rootCmd.PersistentFlags()
	color, _ := flags.GetString(flagColor)
	if f := flags.Lookup(flagColor); f == nil || !f.Changed {
		if settings, loadErr := config.LoadSettings(nil); loadErr == nil {
			color = settings.Color
		}
	}
	formatName, _ := flags.GetString(flagFormat)

	format, parseErr := ui.ParseFormat(formatName)
	if parseErr != nil {
		format = ui.FormatAuto
	}

	renderer, rendErr := ui.NewRenderer(ui.ResolveFormat(format, color, w), w)
	if rendErr != nil {
		_, _ = fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	_ = renderer.RenderError(err)
}
