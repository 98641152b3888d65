// Package testutil provides utilities for testing agent-kit components.
//
// Key components:
//   - TestEnvironment: a target repository and kit root, in memory or on disk
//   - MemoryFS: In-memory types.FS with symlinks and error injection
//   - FileTree: Declarative repository setup
//
// Usage guidelines:
//   - Reconciler and checker tests use EnvMemoryOnly for speed and isolation
//   - Use EnvIsolated where real symlink semantics matter
//   - All test data should be defined inline, not in external files
package testutil
