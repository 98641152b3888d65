// Package settings resolves the effective agent-kit settings for one
// invocation.
//
// Each field is taken from the first source that provides it:
//
//  1. Command-line flags (--source, --targets, --skills)
//  2. The persisted .shared-agent-kit/config.json (when non-empty)
//  3. Built-in defaults
//
// Resolve is a pure function; reading and writing the persisted config is
// left to pkg/config and the link command.
package settings
