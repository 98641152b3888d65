// Package render produces the text of every file agent-kit generates.
// Templates are fixed strings keyed by tool; there is no template engine.
package render

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/agentkit/pkg/managed"
	"github.com/arthur-debert/agentkit/pkg/types"
)

// Entry renders the managed entry file for tool, pointing at sourcePath
// (repository-relative, e.g. "AGENTS.md") and the skills paths.
func Entry(tool types.Tool, sourcePath string, skills []string) string {
	switch tool {
	case types.Cursor:
		return cursorRule(sourcePath, skills)
	case types.OpenCode:
		// .opencode/AGENTS.md sits one directory below the root
		return entry(tool, "../"+sourcePath, parentRelative(skills))
	default:
		return entry(tool, "./"+sourcePath, skills)
	}
}

// Source renders the scaffold for a missing canonical source file. It is
// user-owned from then on and carries no marker.
func Source(tool types.Tool, skills []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s source\n\n", strings.ToUpper(tool.String()))
	b.WriteString("Define your primary agent system rules here.\n\n")
	b.WriteString("Skills paths:\n")
	b.WriteString(list(skills))
	return b.String()
}

func entry(tool types.Tool, sourceRef string, skills []string) string {
	var b strings.Builder
	b.WriteString(managed.Marker + "\n")
	fmt.Fprintf(&b, "# Shared Agent Entry (%s)\n\n", tool)
	b.WriteString("Read first:\n")
	fmt.Fprintf(&b, "- `%s`\n\n", sourceRef)
	b.WriteString("Skills paths:\n")
	b.WriteString(list(skills))
	return b.String()
}

func cursorRule(sourcePath string, skills []string) string {
	var b strings.Builder
	b.WriteString(managed.Marker + "\n")
	b.WriteString("---\n")
	b.WriteString("description: Shared agent rules\n")
	b.WriteString("globs:\n")
	b.WriteString("alwaysApply: true\n")
	b.WriteString("---\n\n")
	b.WriteString("# Shared Agent Rules\n\n")
	b.WriteString("Read first:\n")
	fmt.Fprintf(&b, "- `./%s`\n\n", sourcePath)
	b.WriteString("Skills paths:\n")
	b.WriteString(list(skills))
	return b.String()
}

func list(items []string) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "- `%s`\n", item)
	}
	return b.String()
}

// parentRelative rewrites root-relative paths for a file one level down:
// "./x" becomes "../x" and "../x" becomes "../../x".
func parentRelative(skills []string) []string {
	out := make([]string, len(skills))
	for i, s := range skills {
		out[i] = "../" + strings.TrimPrefix(s, "./")
	}
	return out
}
