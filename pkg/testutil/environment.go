package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agentkit/pkg/filesystem"
	"github.com/arthur-debert/agentkit/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a target repository plus a kit installation root,
// backed by either MemoryFS or the real filesystem.
type TestEnvironment struct {
	RepoRoot string
	KitRoot  string

	FS types.FS

	// Memory is set for EnvMemoryOnly environments
	Memory *MemoryFS

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment with an empty
// repository directory and an installation root next to it.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:    t,
		Type: envType,
	}

	switch envType {
	case EnvMemoryOnly:
		env.setupMemoryEnvironment()
	case EnvIsolated:
		env.setupIsolatedEnvironment()
	}

	if err := env.FS.MkdirAll(env.RepoRoot, 0755); err != nil {
		t.Fatalf("Failed to create repository %s: %v", env.RepoRoot, err)
	}
	if err := env.FS.MkdirAll(filepath.Join(env.KitRoot, "skills"), 0755); err != nil {
		t.Fatalf("Failed to create kit root %s: %v", env.KitRoot, err)
	}

	return env
}

// setupMemoryEnvironment configures a pure in-memory environment
func (env *TestEnvironment) setupMemoryEnvironment() {
	env.RepoRoot = "/virtual/repo"
	env.KitRoot = "/virtual/agent-kit"

	env.Memory = NewMemoryFS()
	env.FS = env.Memory
}

// setupIsolatedEnvironment configures a real filesystem in a temp directory
func (env *TestEnvironment) setupIsolatedEnvironment() {
	tempDir := env.t.TempDir()

	// macOS hands out /var paths that are symlinks to /private/var
	if resolved, err := filepath.EvalSymlinks(tempDir); err == nil {
		tempDir = resolved
	}

	env.RepoRoot = filepath.Join(tempDir, "repo")
	env.KitRoot = filepath.Join(tempDir, "agent-kit")
	env.FS = filesystem.NewOS()
}

// Path resolves a slash-separated repository-relative path
func (env *TestEnvironment) Path(rel string) string {
	return filepath.Join(env.RepoRoot, filepath.FromSlash(rel))
}

// WithFileTree creates a complete file tree structure inside the repository
func (env *TestEnvironment) WithFileTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.RepoRoot, tree)
	return env
}

// WriteFile writes a repository-relative file
func (env *TestEnvironment) WriteFile(rel, content string) {
	env.t.Helper()
	if err := env.FS.WriteFile(env.Path(rel), []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", rel, err)
	}
}

// ReadFile returns a repository-relative file's content
func (env *TestEnvironment) ReadFile(rel string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(env.Path(rel))
	if err != nil {
		env.t.Fatalf("Failed to read file %s: %v", rel, err)
	}
	return string(data)
}

// Exists reports whether a repository-relative path exists (lstat)
func (env *TestEnvironment) Exists(rel string) bool {
	_, err := env.FS.Lstat(env.Path(rel))
	return err == nil
}

// IsSymlink reports whether a repository-relative path is a symlink
func (env *TestEnvironment) IsSymlink(rel string) bool {
	info, err := env.FS.Lstat(env.Path(rel))
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// IsDir reports whether a repository-relative path is a real directory
func (env *TestEnvironment) IsDir(rel string) bool {
	info, err := env.FS.Lstat(env.Path(rel))
	return err == nil && info.IsDir()
}

// Readlink returns the target of a repository-relative symlink
func (env *TestEnvironment) Readlink(rel string) string {
	env.t.Helper()
	target, err := env.FS.Readlink(env.Path(rel))
	if err != nil {
		env.t.Fatalf("Failed to read symlink %s: %v", rel, err)
	}
	return target
}

// Snapshot captures the repository for before/after comparisons.
// Only available for EnvMemoryOnly.
func (env *TestEnvironment) Snapshot() map[string]string {
	env.t.Helper()
	if env.Memory == nil {
		env.t.Fatalf("Snapshot requires an EnvMemoryOnly environment")
	}
	return env.Memory.Snapshot(env.RepoRoot)
}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, filepath.FromSlash(name))

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", filepath.Dir(fullPath), err)
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		case Link:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", filepath.Dir(fullPath), err)
			}
			if err := fs.Symlink(string(v), fullPath); err != nil {
				t.Fatalf("Failed to create symlink %s: %v", fullPath, err)
			}
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
