package testutil

// FileTree represents a nested file structure for declarative test setup.
// Values are file contents (string), subdirectories (FileTree) or
// symlinks (Link).
type FileTree map[string]interface{}

// Link is a symlink target inside a FileTree
type Link string
