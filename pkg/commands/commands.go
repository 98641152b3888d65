// Package commands provides high-level command implementations for agent-kit.
//
// This package contains the command orchestration layer that sits between
// the CLI interface and the filesystem work. Dispatch resolves settings
// (flags, persisted config, defaults) and hands them to a command.
//
// Each command is implemented in its own subdirectory:
//   - link/  - Link: persist settings and converge the repository
//   - check/ - Check: verify every linked artifact exists
//
// This file re-exports the command functions for callers that already hold
// resolved settings.
package commands

import (
	"github.com/arthur-debert/agentkit/pkg/commands/check"
	"github.com/arthur-debert/agentkit/pkg/commands/link"
	"github.com/arthur-debert/agentkit/pkg/types"
)

// LinkOptions configures Link.
type LinkOptions = link.Options

// Link persists the settings and brings the repository in line with them.
func Link(opts LinkOptions) (*types.CommandResult, error) {
	return link.Link(opts)
}

// CheckOptions configures Check.
type CheckOptions = check.Options

// Check verifies that every artifact Link produces exists.
func Check(opts CheckOptions) (*types.CommandResult, error) {
	return check.Check(opts)
}
