package display

import (
	"testing"

	"github.com/arthur-debert/agentkit/pkg/types"
	"github.com/arthur-debert/agentkit/pkg/ui"
	"github.com/arthur-debert/agentkit/pkg/ui/styles"
	"github.com/stretchr/testify/assert"
)

func linkResult() *types.CommandResult {
	r := &types.CommandResult{
		Command:  "link",
		RepoRoot: "/work/repo",
		Source:   "codex",
		Targets:  []string{"codex", "claude", "cursor", "opencode"},
	}
	r.Add(types.KindConfig, "/work/repo/.shared-agent-kit/config.json", types.ActionCreated)
	r.Add(types.KindSymlink, "/work/repo/.agent-kit", types.ActionUnchanged)
	r.AddEntry(types.Claude, "/work/repo/CLAUDE.md", types.ActionForced)
	return r
}

func TestHeadline(t *testing.T) {
	result := linkResult()
	assert.Equal(t,
		"Linked shared agent kit to: /work/repo (source: codex, targets: codex, claude, cursor, opencode)",
		Headline(result))

	result.Command = "check"
	assert.Equal(t,
		"Shared agent kit is healthy: /work/repo (source: codex, targets: codex, claude, cursor, opencode)",
		Headline(result))
}

func TestPlainRenderer_RenderCommandResult(t *testing.T) {
	expected := "Linked shared agent kit to: /work/repo (source: codex, targets: codex, claude, cursor, opencode)\n" +
		"  created    config     .shared-agent-kit/config.json\n" +
		"  unchanged  symlink    .agent-kit\n" +
		"  forced     claude     CLAUDE.md\n"

	assert.Equal(t, expected, NewPlainRenderer().RenderCommandResult(linkResult()))
}

func TestPlainRenderer_PathsOutsideRepo(t *testing.T) {
	a := types.Artifact{Kind: types.KindSkills, Path: "/work/shared/skills", Action: types.ActionExists}
	assert.Equal(t, "  exists     skills     /work/shared/skills", NewPlainRenderer().RenderArtifact("/work/repo", a))
	assert.Equal(t, "  exists     skills     /work/shared/skills", NewPlainRenderer().RenderArtifact("", a))
}

func TestPlainRenderer_RenderError(t *testing.T) {
	assert.Equal(t, "Error: boom", NewPlainRenderer().RenderError("boom"))
}

func TestRichRenderer(t *testing.T) {
	was := styles.Enabled()
	t.Cleanup(func() { styles.SetEnabled(was) })

	r := NewRichRenderer()

	t.Run("unstyled output matches plain", func(t *testing.T) {
		styles.SetEnabled(false)
		assert.Equal(t, NewPlainRenderer().RenderCommandResult(linkResult()), r.RenderCommandResult(linkResult()))
		assert.Equal(t, "Error: boom", r.RenderError("boom"))
	})

	t.Run("styled output keeps the text", func(t *testing.T) {
		styles.SetEnabled(true)
		out := r.RenderCommandResult(linkResult())
		for _, s := range []string{"Linked shared agent kit to:", "created", "config", ".shared-agent-kit/config.json", "claude", "CLAUDE.md"} {
			assert.Contains(t, out, s)
		}
		assert.Contains(t, r.RenderError("boom"), "Error: boom")
	})
}

func TestActionStyle(t *testing.T) {
	assert.Equal(t, "ActionCreated", actionStyle(types.ActionCreated))
	assert.Equal(t, "ActionMissing", actionStyle(types.ActionMissing))
	assert.Equal(t, "Muted", actionStyle(""))
	assert.Equal(t, "Muted", actionStyle("bogus"))
}

func TestNewRenderer(t *testing.T) {
	assert.IsType(t, &RichRenderer{}, NewRenderer(ui.FormatTerminal))
	assert.IsType(t, &PlainRenderer{}, NewRenderer(ui.FormatText))
	assert.IsType(t, &PlainRenderer{}, NewRenderer(ui.FormatAuto))
}
