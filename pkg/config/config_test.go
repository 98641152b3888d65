package config

import (
	"os"
	"strings"
	"testing"

	"github.com/arthur-debert/agentkit/pkg/errors"
	"github.com/arthur-debert/agentkit/pkg/testutil"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const repoRoot = "/virtual/repo"

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  *string
		expected Config
		errCode  errors.ErrorCode
	}{
		{
			name:     "missing file yields empty config",
			expected: Config{},
		},
		{
			name:     "empty object",
			content:  ptr("{}"),
			expected: Config{},
		},
		{
			name:     "null is treated as empty",
			content:  ptr("null\n"),
			expected: Config{},
		},
		{
			name:    "full config",
			content: ptr(`{"source": "claude", "targets": ["claude", "codex"], "skills": ["./docs/skills/"]}`),
			expected: Config{
				Source:  "claude",
				Targets: []string{"claude", "codex"},
				Skills:  []string{"./docs/skills/"},
			},
		},
		{
			name:     "source only",
			content:  ptr(`{"source": "cursor"}`),
			expected: Config{Source: "cursor"},
		},
		{
			name:     "empty lists stay empty",
			content:  ptr(`{"targets": [], "skills": []}`),
			expected: Config{Targets: []string{}, Skills: []string{}},
		},
		{
			name:     "unknown keys are ignored",
			content:  ptr(`{"source": "codex", "version": 2}`),
			expected: Config{Source: "codex"},
		},
		{
			name:    "invalid JSON",
			content: ptr(`{"source": `),
			errCode: errors.ErrConfigParse,
		},
		{
			name:    "trailing garbage",
			content: ptr(`{} {}`),
			errCode: errors.ErrConfigParse,
		},
		{
			name:    "empty file",
			content: ptr(""),
			errCode: errors.ErrConfigParse,
		},
		{
			name:     "array root counts as empty",
			content:  ptr(`["codex"]`),
			expected: Config{},
		},
		{
			name:     "number root counts as empty",
			content:  ptr("42"),
			expected: Config{},
		},
		{
			name:     "non-list targets are ignored",
			content:  ptr(`{"source": "claude", "targets": "codex,claude"}`),
			expected: Config{Source: "claude"},
		},
		{
			name:     "null fields are absent",
			content:  ptr(`{"source": null, "targets": null, "skills": null}`),
			expected: Config{},
		},
		{
			name:     "scalar source is read as text",
			content:  ptr(`{"source": 5}`),
			expected: Config{Source: "5"},
		},
		{
			name:     "list items are read as text",
			content:  ptr(`{"targets": ["claude", 7, true, null]}`),
			expected: Config{Targets: []string{"claude", "7", "true", "null"}},
		},
		{
			name:     "object source is empty",
			content:  ptr(`{"source": {"name": "codex"}}`),
			expected: Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := testutil.NewMemoryFS()
			if tt.content != nil {
				require.NoError(t, fs.WriteFile(repoRoot+"/.shared-agent-kit/config.json", []byte(*tt.content), 0644))
			}

			cfg, err := Load(fs, repoRoot)
			if tt.errCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.errCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		path     string
		keyword  string
		expected int
	}{
		{"valid", `{"source": "codex", "targets": ["claude"], "skills": ["./a/"]}`, "", "", 0},
		{"root type", `42`, "", "type", 1},
		{"source type", `{"source": 5}`, "/source", "type", 1},
		{"item type", `{"skills": ["./a/", 7]}`, "/skills/1", "type", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := jsonschema.UnmarshalJSON(strings.NewReader(tt.doc))
			require.NoError(t, err)

			issues, err := validate(inst)
			require.NoError(t, err)
			require.Len(t, issues, tt.expected)
			if tt.expected > 0 {
				assert.Equal(t, tt.path, issues[0].Path)
				assert.Equal(t, tt.keyword, issues[0].Keyword)
				assert.NotEmpty(t, issues[0].Message)
			}
		})
	}
}

func TestLoad_ErrorMessages(t *testing.T) {
	file := repoRoot + "/.shared-agent-kit/config.json"

	t.Run("invalid JSON names the file", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		require.NoError(t, fs.WriteFile(file, []byte("not json"), 0644))

		_, err := Load(fs, repoRoot)
		require.Error(t, err)
		assert.Contains(t, errors.UserMessage(err), "invalid JSON config: "+file)
		assert.Equal(t, file, errors.GetErrorDetails(err)["path"])
	})

	t.Run("unreadable file", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		fs.WithError(file, os.ErrPermission)

		_, err := Load(fs, repoRoot)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	})
}

func TestSave(t *testing.T) {
	fs := testutil.NewMemoryFS()
	cfg := Config{
		Source:  "codex",
		Targets: []string{"codex", "claude", "cursor", "opencode"},
		Skills:  []string{"./.agent-kit/skills/"},
	}

	require.NoError(t, Save(fs, repoRoot, cfg))

	data, err := fs.ReadFile(repoRoot + "/.shared-agent-kit/config.json")
	require.NoError(t, err)

	expected := `{
  "source": "codex",
  "targets": [
    "codex",
    "claude",
    "cursor",
    "opencode"
  ],
  "skills": [
    "./.agent-kit/skills/"
  ]
}
`
	assert.Equal(t, expected, string(data))
}

func TestSave_RoundTrip(t *testing.T) {
	configs := []Config{
		{Source: "claude", Targets: []string{"claude", "codex"}, Skills: []string{"./.agent-kit/skills/", "../shared/skills/"}},
		{Source: "opencode", Targets: []string{"opencode"}, Skills: []string{"./skills/"}},
	}

	for _, cfg := range configs {
		fs := testutil.NewMemoryFS()
		require.NoError(t, Save(fs, repoRoot, cfg))

		loaded, err := Load(fs, repoRoot)
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
	}
}

func TestSave_Errors(t *testing.T) {
	t.Run("config dir blocked by a file", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		require.NoError(t, fs.WriteFile(repoRoot+"/.shared-agent-kit", []byte("oops"), 0644))

		err := Save(fs, repoRoot, Config{Source: "codex"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDirCreate))
	})

	t.Run("write failure", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		fs.WithError(repoRoot+"/.shared-agent-kit/config.json", os.ErrPermission)

		err := Save(fs, repoRoot, Config{Source: "codex"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
	})
}

func TestConfig_IsZero(t *testing.T) {
	assert.True(t, Config{}.IsZero())
	assert.True(t, Config{Targets: []string{}}.IsZero())
	assert.False(t, Config{Source: "codex"}.IsZero())
}

func TestDefaultValues(t *testing.T) {
	def := DefaultValues()
	assert.Equal(t, "codex", def.Source)
	assert.Equal(t, []string{"./.agent-kit/skills/"}, def.Skills)

	// callers get their own copy
	def.Skills[0] = "mutated"
	assert.Equal(t, []string{"./.agent-kit/skills/"}, DefaultValues().Skills)
}

func ptr(s string) *string { return &s }
