// Package check provides the check command implementation for agent-kit.
//
// The check command answers a single question: does every artifact that
// link would produce exist? It only looks at existence (lstat); content and
// markers are not validated, and nothing is written.
package check

import (
	"strings"

	"github.com/arthur-debert/agentkit/pkg/errors"
	"github.com/arthur-debert/agentkit/pkg/filesystem"
	"github.com/arthur-debert/agentkit/pkg/logging"
	"github.com/arthur-debert/agentkit/pkg/paths"
	"github.com/arthur-debert/agentkit/pkg/settings"
	"github.com/arthur-debert/agentkit/pkg/types"
)

// Options contains options for the check command
type Options struct {
	// FS to use (defaults to OS filesystem)
	FS types.FS

	// RepoRoot is the absolute path of the target repository
	RepoRoot string

	// Settings are the resolved settings whose artifacts are expected
	Settings *settings.Settings
}

// Check verifies that every artifact link would produce exists. When any is
// missing it returns a MissingArtifacts error naming all of them, together
// with the full result.
func Check(opts Options) (*types.CommandResult, error) {
	logger := logging.GetLogger("commands.check")
	logger.Debug().Str("repo", opts.RepoRoot).Msg("Starting check command")

	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Settings == nil {
		return nil, errors.New(errors.ErrInternal, "check requires resolved settings")
	}

	p, err := paths.New(opts.RepoRoot)
	if err != nil {
		return nil, err
	}

	s := opts.Settings
	result := &types.CommandResult{
		Command:  "check",
		RepoRoot: p.RepoRoot(),
		Source:   s.Source.String(),
		Targets:  s.TargetNames(),
	}

	probe := func(kind types.ArtifactKind, tool *types.Tool, path string) {
		action := types.ActionExists
		if _, err := opts.FS.Lstat(path); err != nil {
			action = types.ActionMissing
		}
		if tool != nil {
			result.AddEntry(*tool, path, action)
		} else {
			result.Add(kind, path, action)
		}
		logger.Debug().Str("kind", string(kind)).Str("path", path).Str("state", string(action)).Msg("Checked artifact")
	}

	probe(types.KindConfigDir, nil, p.ConfigDir())
	probe(types.KindConfig, nil, p.ConfigFile())
	probe(types.KindSymlink, nil, p.KitLink())
	probe(types.KindSource, nil, p.ToolFile(s.Source))
	for _, tool := range s.EntryTargets() {
		tool := tool
		probe(types.KindEntry, &tool, p.ToolFile(tool))
	}
	for _, skill := range s.Skills {
		if !settings.IsShared(skill) {
			probe(types.KindSkills, nil, p.Join(skill))
		}
	}

	if missing := result.Missing(); len(missing) > 0 {
		logger.Info().Strs("missing", missing).Msg("Check found missing artifacts")
		return result, errors.Newf(errors.ErrMissingArtifacts, "missing artifacts: %s", strings.Join(missing, ", ")).
			WithDetail("missing", missing)
	}

	logger.Info().Int("artifacts", len(result.Artifacts)).Msg("Check passed")
	return result, nil
}
