// Package managed writes generated files that agent-kit owns.
//
// Ownership is recorded in the file itself: every generated file carries
// the line
//
//	<!-- managed-by: shared-agent-kit -->
//
// and only files carrying it are overwritten. Anything else is treated as
// hand-written and left byte-for-byte intact unless the caller forces the
// write.
package managed
