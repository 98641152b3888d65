package link

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/arthur-debert/agentkit/pkg/config"
	"github.com/arthur-debert/agentkit/pkg/errors"
	"github.com/arthur-debert/agentkit/pkg/filesystem"
	"github.com/arthur-debert/agentkit/pkg/ignorefile"
	"github.com/arthur-debert/agentkit/pkg/logging"
	"github.com/arthur-debert/agentkit/pkg/managed"
	"github.com/arthur-debert/agentkit/pkg/paths"
	"github.com/arthur-debert/agentkit/pkg/render"
	"github.com/arthur-debert/agentkit/pkg/settings"
	"github.com/arthur-debert/agentkit/pkg/types"
	"github.com/rs/zerolog"
)

// Options defines the options for the Link command.
type Options struct {
	// FS performs every filesystem mutation.
	FS types.FS
	// RepoRoot is the absolute path of the target repository.
	RepoRoot string
	// KitRoot is the installation root the .agent-kit symlink points at.
	KitRoot string
	// Settings are the resolved settings to apply and persist.
	Settings *settings.Settings
	// Force overwrites unmanaged files and replaces non-symlink obstructions.
	Force bool
}

type linker struct {
	opts   Options
	paths  paths.Paths
	result *types.CommandResult
	logger zerolog.Logger
}

// Link brings the repository in line with the settings. Steps run in order
// and the first failure aborts the rest; completed steps are not rolled back
// since each one is idempotent on its own.
//
// The returned result lists every artifact touched so far, also on error.
func Link(opts Options) (*types.CommandResult, error) {
	logger := logging.GetLogger("commands.link")
	logger.Info().
		Str("repo", opts.RepoRoot).
		Str("kit", opts.KitRoot).
		Bool("force", opts.Force).
		Msg("Linking shared agent kit")

	// Initialize filesystem if not provided
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}

	p, err := paths.New(opts.RepoRoot)
	if err != nil {
		return nil, err
	}
	if opts.Settings == nil {
		return nil, errors.New(errors.ErrInternal, "link requires resolved settings")
	}

	l := &linker{
		opts:  opts,
		paths: p,
		result: &types.CommandResult{
			Command:  "link",
			RepoRoot: p.RepoRoot(),
			Source:   opts.Settings.Source.String(),
			Targets:  opts.Settings.TargetNames(),
		},
		logger: logger,
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"config", l.persistConfig},
		{"gitignore", l.ensureGitignore},
		{"source", l.ensureSource},
		{"symlink", l.refreshSymlink},
		{"skills", l.ensureSkillsDirs},
		{"entries", l.writeEntries},
	}

	for _, step := range steps {
		logger.Trace().Str("step", step.name).Msg("Running link step")
		if err := step.run(); err != nil {
			logLink(logger, l.result, err)
			return l.result, err
		}
	}

	logLink(logger, l.result, nil)
	return l.result, nil
}

// persistConfig writes the resolved settings to .shared-agent-kit/config.json
func (l *linker) persistConfig() error {
	fsys := l.opts.FS
	cfg := l.opts.Settings.Config()

	dirAction := types.ActionExists
	if _, err := fsys.Lstat(l.paths.ConfigDir()); err != nil {
		dirAction = types.ActionCreated
	}

	fileAction := types.ActionCreated
	if existing, err := fsys.ReadFile(l.paths.ConfigFile()); err == nil {
		fileAction = types.ActionUpdated
		if want, err := config.Marshal(cfg); err == nil && bytes.Equal(existing, want) {
			fileAction = types.ActionUnchanged
		}
	}

	if err := config.Save(fsys, l.paths.RepoRoot(), cfg); err != nil {
		return err
	}

	l.record(types.KindConfigDir, l.paths.ConfigDir(), dirAction)
	l.record(types.KindConfig, l.paths.ConfigFile(), fileAction)
	return nil
}

// ensureGitignore keeps the config directory out of version control
func (l *linker) ensureGitignore() error {
	path := l.paths.Gitignore()

	_, statErr := l.opts.FS.Lstat(path)
	changed, err := ignorefile.EnsureEntry(l.opts.FS, path, paths.GitignoreEntry)
	if err != nil {
		return err
	}

	action := types.ActionUnchanged
	switch {
	case statErr != nil:
		action = types.ActionCreated
	case changed:
		action = types.ActionUpdated
	}
	l.record(types.KindGitignore, path, action)
	return nil
}

// ensureSource scaffolds the canonical file when missing. An existing
// source is user-owned and never touched.
func (l *linker) ensureSource() error {
	s := l.opts.Settings
	path := l.paths.ToolFile(s.Source)

	if _, err := l.opts.FS.Lstat(path); err == nil {
		l.record(types.KindSource, path, types.ActionExists)
		return nil
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", path)
	}

	outcome, err := managed.Write(l.opts.FS, path, render.Source(s.Source, s.Skills), l.opts.Force)
	if err != nil {
		return err
	}
	l.record(types.KindSource, path, outcome.Action())
	return nil
}

// refreshSymlink recreates .agent-kit pointing at the installation root
func (l *linker) refreshSymlink() error {
	fsys := l.opts.FS
	link := l.paths.KitLink()

	target, err := paths.RelativeLinkTarget(l.paths.RepoRoot(), l.opts.KitRoot)
	if err != nil {
		return err
	}

	action := types.ActionCreated
	info, err := fsys.Lstat(link)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink != 0:
		action = types.ActionReplaced
		if current, err := fsys.Readlink(link); err == nil && current == target {
			action = types.ActionUnchanged
		}
		if err := fsys.Remove(link); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to remove existing symlink %s", link)
		}
	case err == nil:
		if !l.opts.Force {
			return errors.Newf(errors.ErrSymlinkObstruction,
				"refusing to replace non-symlink path: %s (use --force)", link).
				WithDetail("path", link)
		}
		l.logger.Warn().Str("path", link).Msg("Removing non-symlink obstruction (--force)")
		if err := fsys.RemoveAll(link); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to remove %s", link)
		}
		action = types.ActionForced
	case !stderrors.Is(err, fs.ErrNotExist):
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", link)
	}

	if err := fsys.Symlink(target, link); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create symlink %s -> %s", link, target).
			WithDetail("path", link).
			WithDetail("target", target)
	}

	l.record(types.KindSymlink, link, action)
	return nil
}

// ensureSkillsDirs creates repository-local skills directories. Paths under
// ./.agent-kit/ are served by the kit itself and skipped.
func (l *linker) ensureSkillsDirs() error {
	for _, skill := range l.opts.Settings.Skills {
		if settings.IsShared(skill) {
			continue
		}

		dir := l.paths.Join(skill)
		action := types.ActionExists
		if _, err := l.opts.FS.Stat(dir); err != nil {
			action = types.ActionCreated
		}
		if err := l.opts.FS.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create skills directory %s", dir)
		}
		l.record(types.KindSkills, dir, action)
	}
	return nil
}

// writeEntries renders one managed entry file per non-source target
func (l *linker) writeEntries() error {
	s := l.opts.Settings
	for _, tool := range s.EntryTargets() {
		path := l.paths.ToolFile(tool)
		outcome, err := managed.Write(l.opts.FS, path, render.Entry(tool, s.SourcePath, s.Skills), l.opts.Force)
		if err != nil {
			return err
		}
		l.result.AddEntry(tool, path, outcome.Action())
		l.logger.Debug().Str("tool", tool.String()).Str("path", path).Str("action", outcome.String()).Msg("Entry file")
	}
	return nil
}

func (l *linker) record(kind types.ArtifactKind, path string, action types.ArtifactAction) {
	l.result.Add(kind, path, action)
	l.logger.Debug().Str("kind", string(kind)).Str("path", path).Str("action", string(action)).Msg("Artifact")
}

// logLink logs the link command execution
func logLink(logger zerolog.Logger, result *types.CommandResult, err error) {
	event := logger.Info()
	if err != nil {
		event = logger.Error().Err(err)
	}

	event.
		Str("command", "link").
		Str("repo", result.RepoRoot).
		Str("source", result.Source).
		Strs("targets", result.Targets).
		Int("artifacts", len(result.Artifacts)).
		Bool("changed", result.Changed())

	if err != nil {
		event.Msg("Link command failed")
	} else {
		event.Msg("Link command completed")
	}
}
