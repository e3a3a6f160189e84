package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Manage dotfile symlinks from a mapping file"
	MsgLinksShort      = "Install, remove and list dotfile links"
	MsgInstallShort    = "Link every mapping into place"
	MsgRemoveShort     = "Remove links created by install"
	MsgListShort       = "List installed links"
	MsgUpdateShort     = "Update the dotfiles repository"
	MsgSelfShort       = "Manage dotman itself"
	MsgSelfUpdateShort = "Update dotman to the latest release"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgManLong         = "Write the man page to stdout, or one page per command into --dir."
	MsgGenConfigShort  = "Print the default settings file"
	MsgGenConfigLong   = "Print the built-in settings with every value commented out, or save them as the user settings file with --write."

	// gen-config output
	MsgGenConfigWritten = "Wrote settings to %s"
	MsgGenConfigExists  = "Settings file %s already exists. Skipping."

	// Version output
	MsgVersionFormat = "dotman version %s\n"
	MsgCommitFormat  = "  commit: %s\n"
	MsgBuiltFormat   = "  built:  %s\n"

	// Man page header
	MsgManTitle  = "DOTMAN"
	MsgManManual = "dotman manual"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDotfilesDir = "Path to the dotfiles directory (default ~/dotfiles)"
	MsgFlagMappingFile = "Mapping file, relative to the dotfiles directory (default .dotman.yaml)"
	MsgFlagColor       = "Colorize output: auto, always or never"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagForce       = "Overwrite existing destinations without asking"
	MsgFlagDryRun      = "Print what would be linked without changing anything"
	MsgFlagManDir      = "Directory to write one man page per command into"
	MsgFlagWrite       = "Write the settings file instead of printing it"

	// Error messages
	MsgErrNotImplementedUpdate     = "updating the dotfiles repository is not implemented"
	MsgErrNotImplementedSelfUpdate = "self update is not implemented"
	MsgErrUnknownShell             = "unknown shell %q (supported: bash, zsh, fish, powershell)"
	MsgErrManDir                   = "failed to create man page directory %s"
	MsgErrManGenerate              = "failed to generate man pages"
	MsgErrNoCommand                = "no command specified"

	// Debug messages
	MsgDebugCommandStarted = "Command started"
	MsgDebugUserStyles     = "Loaded user styles"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/links-long.txt
	msgLinksLongRaw string
	MsgLinksLong    = strings.TrimSpace(msgLinksLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
