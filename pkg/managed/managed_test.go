package managed

import (
	"os"
	"testing"

	"github.com/arthur-debert/agentkit/pkg/errors"
	"github.com/arthur-debert/agentkit/pkg/testutil"
	"github.com/arthur-debert/agentkit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const target = "/repo/.cursor/rules/00-shared-agent.mdc"

var rendered = Marker + "\n# Shared Agent Rules\n"

func TestWrite(t *testing.T) {
	tests := []struct {
		name     string
		existing *string
		content  string
		force    bool
		outcome  Outcome
		expected string
		errCode  errors.ErrorCode
	}{
		{
			name:     "absent file is created with parents",
			content:  rendered,
			outcome:  OutcomeCreated,
			expected: rendered,
		},
		{
			name:     "managed file is updated",
			existing: ptr(Marker + "\nold\n"),
			content:  rendered,
			outcome:  OutcomeUpdated,
			expected: rendered,
		},
		{
			name:     "marker anywhere counts",
			existing: ptr("---\n" + Marker + "\n"),
			content:  rendered,
			outcome:  OutcomeUpdated,
			expected: rendered,
		},
		{
			name:     "identical managed file is left alone",
			existing: ptr(rendered),
			content:  rendered,
			outcome:  OutcomeUnchanged,
			expected: rendered,
		},
		{
			name:     "unmanaged file conflicts",
			existing: ptr("# my own rules\n"),
			content:  rendered,
			expected: "# my own rules\n",
			errCode:  errors.ErrUnmanagedFile,
		},
		{
			name:     "unmanaged identical-looking file still conflicts",
			existing: ptr("# Shared Agent Rules\n"),
			content:  "# Shared Agent Rules\n",
			expected: "# Shared Agent Rules\n",
			errCode:  errors.ErrUnmanagedFile,
		},
		{
			name:     "unmanaged file is overwritten under force",
			existing: ptr("# my own rules\n"),
			content:  rendered,
			force:    true,
			outcome:  OutcomeForced,
			expected: rendered,
		},
		{
			name:     "force on a managed file is a plain update",
			existing: ptr(Marker + "\nold\n"),
			content:  rendered,
			force:    true,
			outcome:  OutcomeUpdated,
			expected: rendered,
		},
		{
			name:     "trailing newlines are normalized",
			content:  Marker + "\nbody\n\n\n",
			outcome:  OutcomeCreated,
			expected: Marker + "\nbody\n",
		},
		{
			name:     "missing trailing newline is added",
			content:  Marker + "\nbody",
			outcome:  OutcomeCreated,
			expected: Marker + "\nbody\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := testutil.NewMemoryFS()
			if tt.existing != nil {
				require.NoError(t, fs.WriteFile(target, []byte(*tt.existing), 0644))
			}
			_, writesBefore := fs.Stats()

			outcome, err := Write(fs, target, tt.content, tt.force)

			if tt.errCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.errCode), "got %v", err)
				assert.Contains(t, errors.UserMessage(err), target)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.outcome, outcome)
			}

			data, err := fs.ReadFile(target)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))

			if tt.errCode != "" || tt.outcome == OutcomeUnchanged {
				_, writesAfter := fs.Stats()
				assert.Equal(t, writesBefore, writesAfter, "no write expected")
			}
		})
	}
}

func TestWrite_Errors(t *testing.T) {
	t.Run("unreadable existing file", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		fs.WithError(target, os.ErrPermission)

		_, err := Write(fs, target, rendered, true)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	})

	t.Run("parent blocked by a file", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		require.NoError(t, fs.WriteFile("/repo/.cursor", []byte("x"), 0644))

		_, err := Write(fs, target, rendered, false)
		require.Error(t, err)
	})

	t.Run("path is a directory", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		require.NoError(t, fs.MkdirAll(target, 0755))

		_, err := Write(fs, target, rendered, true)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnmanagedFile))
	})
}

func TestWrite_Symlinks(t *testing.T) {
	const outside = "/elsewhere/victim.md"

	setup := func(t *testing.T, victim *string) *testutil.MemoryFS {
		t.Helper()
		fs := testutil.NewMemoryFS()
		require.NoError(t, fs.MkdirAll("/repo/.cursor/rules", 0755))
		require.NoError(t, fs.MkdirAll("/elsewhere", 0755))
		if victim != nil {
			require.NoError(t, fs.WriteFile(outside, []byte(*victim), 0644))
		}
		require.NoError(t, fs.Symlink(outside, target))
		return fs
	}

	tests := []struct {
		name   string
		victim *string
	}{
		{"dangling link", nil},
		{"link to an unmanaged file", ptr("# notes\n")},
		{"link to a managed file", ptr(Marker + "\nold\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := setup(t, tt.victim)
			_, writesBefore := fs.Stats()

			_, err := Write(fs, target, rendered, false)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrUnmanagedFile), "got %v", err)
			assert.Contains(t, errors.UserMessage(err), "symlink")

			_, writesAfter := fs.Stats()
			assert.Equal(t, writesBefore, writesAfter, "no write expected")
			dest, err := fs.Readlink(target)
			require.NoError(t, err)
			assert.Equal(t, outside, dest)
		})

		t.Run(tt.name+" under force", func(t *testing.T) {
			fs := setup(t, tt.victim)

			outcome, err := Write(fs, target, rendered, true)
			require.NoError(t, err)
			assert.Equal(t, OutcomeForced, outcome)

			info, err := fs.Lstat(target)
			require.NoError(t, err)
			assert.Zero(t, info.Mode()&os.ModeSymlink)
			data, err := fs.ReadFile(target)
			require.NoError(t, err)
			assert.Equal(t, rendered, string(data))

			if tt.victim == nil {
				_, err := fs.Lstat(outside)
				assert.True(t, os.IsNotExist(err))
			} else {
				data, err := fs.ReadFile(outside)
				require.NoError(t, err)
				assert.Equal(t, *tt.victim, string(data))
			}
		})
	}
}

func TestIsManaged(t *testing.T) {
	assert.True(t, IsManaged([]byte(Marker)))
	assert.True(t, IsManaged([]byte("x\n"+Marker+"\ny")))
	assert.False(t, IsManaged([]byte("<!-- managed-by: something-else -->")))
	assert.False(t, IsManaged(nil))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "created", OutcomeCreated.String())
	assert.Equal(t, "forced", OutcomeForced.String())
	assert.Equal(t, types.ActionUpdated, OutcomeUpdated.Action())
	assert.Equal(t, types.ActionUnchanged, OutcomeUnchanged.Action())
}

func ptr(s string) *string { return &s }
