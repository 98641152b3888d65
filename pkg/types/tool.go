package types

import (
	"strings"
)

// Tool identifies an AI coding assistant that receives an entry file.
type Tool int

const (
	Codex Tool = iota
	Claude
	Cursor
	OpenCode
)

// AllTools returns all supported tools in declaration order.
func AllTools() []Tool {
	return []Tool{Codex, Claude, Cursor, OpenCode}
}

// String returns the identity name used on the command line and in config.
func (t Tool) String() string {
	switch t {
	case Codex:
		return "codex"
	case Claude:
		return "claude"
	case Cursor:
		return "cursor"
	case OpenCode:
		return "opencode"
	}
	return "unknown"
}

// EntryPath returns the repo-relative path of the tool's entry file.
func (t Tool) EntryPath() string {
	switch t {
	case Codex:
		return "AGENTS.md"
	case Claude:
		return "CLAUDE.md"
	case Cursor:
		return ".cursor/rules/00-shared-agent.mdc"
	case OpenCode:
		return ".opencode/AGENTS.md"
	}
	return ""
}

// ParseTool converts an identity name (case-insensitive) or an exact entry
// path to a Tool, returning false if neither matches.
func ParseTool(s string) (Tool, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllTools() {
		if t.String() == name {
			return t, true
		}
	}
	path := strings.TrimPrefix(strings.TrimSpace(s), "./")
	for _, t := range AllTools() {
		if t.EntryPath() == path {
			return t, true
		}
	}
	return 0, false
}

// ToolNames returns the identity names of tools, preserving order.
func ToolNames(tools []Tool) []string {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.String()
	}
	return names
}
