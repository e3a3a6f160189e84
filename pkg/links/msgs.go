package links

// Console notices, one line per event
const (
	MsgSourceMissing   = "Source file %s does not exist. Skipping."
	MsgLink            = "Link: %s -> %s"
	MsgSkipping        = "Skipping %s"
	MsgUnlink          = "Unlink: %s"
	MsgNotThisLink     = "%s does not symlink to %s. Skipping."
	MsgOverwritePrompt = "Destination file %s already exists. Do you want to overwrite it?"
)

// Error messages
const (
	MsgErrRemoveExisting = "failed to remove existing destination %s"
	MsgErrCreateParent   = "failed to create parent directory %s"
	MsgErrCreateSymlink  = "failed to create symlink %s -> %s"
	MsgErrConfirm        = "failed to confirm overwrite of %s"
	MsgErrUnlink         = "failed to remove symlink %s"
)
