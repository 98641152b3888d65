// Package types defines the core types and interfaces used throughout
// agent-kit: the Tool enumeration, the FS capability interface, and the
// artifact results reported by link and check.
package types
