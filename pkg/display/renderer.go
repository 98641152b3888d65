// Package display turns command results into the lines agent-kit prints.
package display

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/agentkit/pkg/types"
	"github.com/arthur-debert/agentkit/pkg/ui"
	"github.com/arthur-debert/agentkit/pkg/ui/styles"
)

const columnWidth = 10

// Renderer defines the interface for rendering command results
type Renderer interface {
	// RenderCommandResult renders the headline and every artifact
	RenderCommandResult(result *types.CommandResult) string

	// RenderArtifact renders a single artifact line
	RenderArtifact(repoRoot string, artifact types.Artifact) string

	// RenderError renders the one-line error message
	RenderError(message string) string
}

// NewRenderer returns the renderer for a concrete format. FormatAuto is
// treated as text; resolve it with ui.Resolve first.
func NewRenderer(format ui.Format) Renderer {
	if format == ui.FormatTerminal {
		return NewRichRenderer()
	}
	return NewPlainRenderer()
}

// Headline is the summary sentence for a successful command
func Headline(result *types.CommandResult) string {
	settings := fmt.Sprintf("(source: %s, targets: %s)", result.Source, strings.Join(result.Targets, ", "))
	switch result.Command {
	case "check":
		return fmt.Sprintf("Shared agent kit is healthy: %s %s", result.RepoRoot, settings)
	default:
		return fmt.Sprintf("Linked shared agent kit to: %s %s", result.RepoRoot, settings)
	}
}

// label is the second column: the tool for entries, the kind otherwise
func label(a types.Artifact) string {
	if a.Kind == types.KindEntry && a.Tool != "" {
		return a.Tool
	}
	return string(a.Kind)
}

// relative shows paths inside the repository relative to it
func relative(repoRoot, path string) string {
	if repoRoot == "" {
		return path
	}
	rel, err := filepath.Rel(repoRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// RichRenderer styles output for terminals
type RichRenderer struct{}

// NewRichRenderer creates a new rich terminal renderer
func NewRichRenderer() *RichRenderer {
	return &RichRenderer{}
}

// RenderCommandResult renders the complete command result
func (r *RichRenderer) RenderCommandResult(result *types.CommandResult) string {
	var output strings.Builder
	output.WriteString(styles.Render("Success", Headline(result)) + "\n")
	for _, a := range result.Artifacts {
		output.WriteString(r.RenderArtifact(result.RepoRoot, a) + "\n")
	}
	return output.String()
}

// RenderArtifact renders one artifact as action, kind and path columns
func (r *RichRenderer) RenderArtifact(repoRoot string, a types.Artifact) string {
	action := styles.Render(actionStyle(a.Action), padRight(string(a.Action), columnWidth))
	kind := styles.Render("Kind", padRight(label(a), columnWidth))
	path := styles.Render("Path", relative(repoRoot, a.Path))
	return "  " + action + " " + kind + " " + path
}

// RenderError renders message in the error style
func (r *RichRenderer) RenderError(message string) string {
	return styles.Render("Error", "Error: "+message)
}

// actionStyle maps an action to its style name in styles.yaml
func actionStyle(action types.ArtifactAction) string {
	if action == "" {
		return "Muted"
	}
	name := "Action" + strings.ToUpper(string(action[:1])) + string(action[1:])
	if !styles.Has(name) {
		return "Muted"
	}
	return name
}

// PlainRenderer implements Renderer with plain text output
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderCommandResult renders the command result as plain text
func (r *PlainRenderer) RenderCommandResult(result *types.CommandResult) string {
	var output strings.Builder
	output.WriteString(Headline(result) + "\n")
	for _, a := range result.Artifacts {
		output.WriteString(r.RenderArtifact(result.RepoRoot, a) + "\n")
	}
	return output.String()
}

// RenderArtifact renders an artifact as plain text
func (r *PlainRenderer) RenderArtifact(repoRoot string, a types.Artifact) string {
	return fmt.Sprintf("  %s %s %s",
		padRight(string(a.Action), columnWidth),
		padRight(label(a), columnWidth),
		relative(repoRoot, a.Path))
}

// RenderError renders the error line
func (r *PlainRenderer) RenderError(message string) string {
	return "Error: " + message
}

// padRight pads a string to the specified width
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
