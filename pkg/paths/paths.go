// Package paths provides centralized path handling for agent-kit.
// Every fixed name the tool writes into a repository is declared here.
package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/agentkit/pkg/errors"
	"github.com/arthur-debert/agentkit/pkg/types"
)

// Environment variable names
const (
	// EnvKitRoot overrides the installation root the .agent-kit symlink points at
	EnvKitRoot = "AGENT_KIT_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed repository layout.
// IMPORTANT: these names are part of the on-disk contract with existing
// repositories and are NOT user-configurable.
const (
	// ConfigDirName holds the persisted settings
	ConfigDirName = ".shared-agent-kit"

	// ConfigFileName is the persisted settings file inside ConfigDirName
	ConfigFileName = "config.json"

	// GitignoreEntry is the line ensured in the repository's .gitignore
	GitignoreEntry = ".shared-agent-kit/"

	// GitignoreFileName is the ignore-list file at the repository root
	GitignoreFileName = ".gitignore"

	// KitLinkName is the symlink pointing at the installation root
	KitLinkName = ".agent-kit"

	// SharedSkillsPrefix marks skills paths served through the kit symlink
	SharedSkillsPrefix = "./.agent-kit/"
)

// Paths resolves the fixed artifacts of a single target repository.
type Paths interface {
	RepoRoot() string
	ConfigDir() string
	ConfigFile() string
	Gitignore() string
	KitLink() string
	ToolFile(tool types.Tool) string
	Join(rel string) string
}

type paths struct {
	repoRoot string
}

// New creates a Paths rooted at repoRoot. An empty repoRoot means the
// current working directory. A leading ~ is expanded.
func New(repoRoot string) (Paths, error) {
	if repoRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		repoRoot = cwd
	}

	absRoot, err := filepath.Abs(expandHome(repoRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for repository %s", repoRoot)
	}

	return &paths{repoRoot: absRoot}, nil
}

// RepoRoot returns the absolute repository root
func (p *paths) RepoRoot() string {
	return p.repoRoot
}

// ConfigDir returns the directory holding the persisted settings
func (p *paths) ConfigDir() string {
	return filepath.Join(p.repoRoot, ConfigDirName)
}

// ConfigFile returns the persisted settings file
func (p *paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir(), ConfigFileName)
}

// Gitignore returns the repository's ignore-list file
func (p *paths) Gitignore() string {
	return filepath.Join(p.repoRoot, GitignoreFileName)
}

// KitLink returns the location of the .agent-kit symlink
func (p *paths) KitLink() string {
	return filepath.Join(p.repoRoot, KitLinkName)
}

// ToolFile returns the absolute entry file for a tool
func (p *paths) ToolFile(tool types.Tool) string {
	return p.Join(tool.EntryPath())
}

// Join resolves a slash-separated repository-relative path
func (p *paths) Join(rel string) string {
	return filepath.Join(p.repoRoot, filepath.FromSlash(rel))
}

// ConfigFilePath is a convenience for callers that only hold a root.
func ConfigFilePath(repoRoot string) string {
	return filepath.Join(repoRoot, ConfigDirName, ConfigFileName)
}

// FindKitRoot determines the installation root using the following priority:
// 1. AGENT_KIT_ROOT environment variable (if set)
// 2. The parent of the directory holding the running executable
//
// Symlinks to the executable are resolved first, so a binary linked into
// ~/bin still reports the real installation.
func FindKitRoot() (string, error) {
	if root := os.Getenv(EnvKitRoot); root != "" {
		abs, err := filepath.Abs(expandHome(root))
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", EnvKitRoot)
		}
		return abs, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to locate executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(filepath.Dir(exe)), nil
}

// RelativeLinkTarget returns the symlink target that reaches kitRoot from
// repoRoot. Identical roots yield ".".
func RelativeLinkTarget(repoRoot, kitRoot string) (string, error) {
	rel, err := filepath.Rel(repoRoot, kitRoot)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot relate %s to %s", kitRoot, repoRoot)
	}
	if rel == "" {
		return ".", nil
	}
	return rel, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
