// Package ignorefile keeps a single line present in a .gitignore-style file.
package ignorefile

import (
	stderrors "errors"
	"io/fs"
	"strings"

	"github.com/arthur-debert/agentkit/pkg/errors"
	"github.com/arthur-debert/agentkit/pkg/logging"
	"github.com/arthur-debert/agentkit/pkg/types"
)

// EnsureEntry makes sure entry appears as a line of the file at path.
//
// A missing file is created holding just the entry. An existing file keeps
// its content; the entry is appended using the file's line ending (CRLF if
// the file already uses it), adding a line break first if the last line is
// unterminated. It returns whether the file was written.
func EnsureEntry(fsys types.FS, path, entry string) (bool, error) {
	logger := logging.GetLogger("ignorefile").With().Str("path", path).Str("entry", entry).Logger()

	data, err := fsys.ReadFile(path)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
		}
		if err := fsys.WriteFile(path, []byte(entry+"\n"), 0644); err != nil {
			return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", path)
		}
		logger.Debug().Msg("Created ignore file")
		return true, nil
	}

	content := string(data)
	if HasEntry(content, entry) {
		logger.Trace().Msg("Ignore entry already present")
		return false, nil
	}

	eol := "\n"
	if strings.Contains(content, "\r\n") {
		eol = "\r\n"
	}
	prefix := ""
	if content != "" && !strings.HasSuffix(content, "\n") {
		prefix = eol
	}

	updated := content + prefix + entry + eol
	if err := fsys.WriteFile(path, []byte(updated), 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to update %s", path)
	}
	logger.Debug().Msg("Appended ignore entry")
	return true, nil
}

// HasEntry reports whether content has a line equal to entry, ignoring
// carriage returns.
func HasEntry(content, entry string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSuffix(line, "\r") == entry {
			return true
		}
	}
	return false
}
