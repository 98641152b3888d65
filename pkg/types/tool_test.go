package types_test

import (
	"testing"

	"github.com/arthur-debert/agentkit/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestParseTool(t *testing.T) {
	tests := []struct {
		input  string
		want   types.Tool
		wantOK bool
	}{
		{"codex", types.Codex, true},
		{"Claude", types.Claude, true},
		{"  cursor ", types.Cursor, true},
		{"OPENCODE", types.OpenCode, true},
		{"CLAUDE.md", types.Claude, true},
		{"./AGENTS.md", types.Codex, true},
		{".opencode/AGENTS.md", types.OpenCode, true},
		{".cursor/rules/00-shared-agent.mdc", types.Cursor, true},
		{"agents.md", 0, false},
		{"vim", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := types.ParseTool(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTool_RoundTripsThroughString(t *testing.T) {
	for _, tool := range types.AllTools() {
		got, ok := types.ParseTool(tool.String())
		assert.True(t, ok, tool.String())
		assert.Equal(t, tool, got)
		assert.NotEmpty(t, tool.EntryPath())
	}
}

func TestTool_EntryPathsAreDistinct(t *testing.T) {
	seen := map[string]types.Tool{}
	for _, tool := range types.AllTools() {
		if other, dup := seen[tool.EntryPath()]; dup {
			t.Fatalf("%s and %s share entry path %s", tool, other, tool.EntryPath())
		}
		seen[tool.EntryPath()] = tool
	}
}

func TestToolNames(t *testing.T) {
	assert.Equal(t, []string{"codex", "claude", "cursor", "opencode"}, types.ToolNames(types.AllTools()))
	assert.Equal(t, []string{}, types.ToolNames(nil))
}
