package managed

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/agentkit/pkg/errors"
	"github.com/arthur-debert/agentkit/pkg/logging"
	"github.com/arthur-debert/agentkit/pkg/types"
)

// Marker is the ownership line carried by every generated file.
const Marker = "<!-- managed-by: shared-agent-kit -->"

// Outcome describes what Write did.
type Outcome int

const (
	OutcomeCreated   Outcome = iota // file was absent
	OutcomeUpdated                  // managed file rewritten
	OutcomeUnchanged                // managed file already had the content
	OutcomeForced                   // unmanaged file overwritten under force
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeForced:
		return "forced"
	}
	return "unknown"
}

// Action maps an outcome onto the artifact vocabulary
func (o Outcome) Action() types.ArtifactAction {
	switch o {
	case OutcomeCreated:
		return types.ActionCreated
	case OutcomeUpdated:
		return types.ActionUpdated
	case OutcomeUnchanged:
		return types.ActionUnchanged
	case OutcomeForced:
		return types.ActionForced
	}
	return types.ActionExists
}

// IsManaged reports whether content carries the marker anywhere.
func IsManaged(content []byte) bool {
	return bytes.Contains(content, []byte(Marker))
}

// Normalize makes content end with exactly one newline.
func Normalize(content string) string {
	return strings.TrimRight(content, "\n") + "\n"
}

// Write puts content at path under the marker policy:
//
//   - absent: parents are created and the file written
//   - present with the marker: overwritten (skipped when identical)
//   - present without the marker: UnmanagedFileConflict, unless force
//   - a symlink: UnmanagedFileConflict, unless force replaces the link
//     itself with a regular file
//   - a directory: UnmanagedFileConflict, even with force
//
// Existence is decided with Lstat, so nothing is ever written through a
// link. A conflict never modifies the path.
func Write(fsys types.FS, path, content string, force bool) (Outcome, error) {
	logger := logging.GetLogger("managed").With().Str("path", path).Logger()
	data := []byte(Normalize(content))

	outcome := OutcomeCreated
	info, err := fsys.Lstat(path)
	switch {
	case err == nil && info.IsDir():
		return outcome, conflict(path, "refusing to replace directory: %s")
	case err == nil && info.Mode()&fs.ModeSymlink != 0:
		if !force {
			return outcome, conflict(path, "refusing to write through symlink: %s (use --force)")
		}
		logger.Warn().Msg("Replacing symlink with a managed file (--force)")
		if err := fsys.Remove(path); err != nil {
			return outcome, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove symlink %s", path).
				WithDetail("path", path)
		}
		outcome = OutcomeForced
	case err == nil:
		existing, err := fsys.ReadFile(path)
		if err != nil {
			return outcome, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
				WithDetail("path", path)
		}
		switch {
		case IsManaged(existing) && bytes.Equal(existing, data):
			logger.Trace().Msg("Managed file already up to date")
			return OutcomeUnchanged, nil
		case IsManaged(existing):
			outcome = OutcomeUpdated
		case force:
			logger.Warn().Msg("Overwriting unmanaged file (--force)")
			outcome = OutcomeForced
		default:
			return outcome, conflict(path, "refusing to overwrite unmanaged file: %s (add the managed-by marker or use --force)")
		}
	case stderrors.Is(err, fs.ErrNotExist):
		// absent
	default:
		return outcome, errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", path).
			WithDetail("path", path)
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return outcome, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", filepath.Dir(path))
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return outcome, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}

	logger.Debug().Str("outcome", outcome.String()).Msg("Wrote managed file")
	return outcome, nil
}

func conflict(path, format string) error {
	return errors.Newf(errors.ErrUnmanagedFile, format, path).WithDetail("path", path)
}
