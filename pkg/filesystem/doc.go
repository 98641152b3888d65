// Package filesystem provides filesystem implementations for agent-kit.
//
// This package contains the afero-backed implementation of the types.FS
// interface. The in-memory implementation used by tests lives in testutil.
package filesystem
