package commands

import (
	"github.com/arthur-debert/agentkit/pkg/commands/check"
	"github.com/arthur-debert/agentkit/pkg/commands/link"
	"github.com/arthur-debert/agentkit/pkg/config"
	"github.com/arthur-debert/agentkit/pkg/errors"
	"github.com/arthur-debert/agentkit/pkg/filesystem"
	"github.com/arthur-debert/agentkit/pkg/logging"
	"github.com/arthur-debert/agentkit/pkg/paths"
	"github.com/arthur-debert/agentkit/pkg/settings"
	"github.com/arthur-debert/agentkit/pkg/types"
)

// CommandType represents the command being executed
type CommandType string

const (
	CommandLink  CommandType = "link"
	CommandCheck CommandType = "check"
)

// DispatchOptions contains all possible options for commands.
// Each command will use only the fields it needs.
type DispatchOptions struct {
	// Common fields
	RepoRoot   string
	Input      settings.Input
	FileSystem types.FS

	// For link command
	Force   bool
	KitRoot string // Defaults to paths.FindKitRoot()
}

// Dispatch resolves settings for the repository and runs the command.
//
// Settings come from the CLI input, then the persisted config, then the
// built-in defaults. The command's result is returned alongside any error so
// callers can show what was done before a failure.
func Dispatch(cmdType CommandType, opts DispatchOptions) (*types.CommandResult, error) {
	logger := logging.GetLogger("commands.dispatch")
	logger.Debug().
		Str("command", string(cmdType)).
		Str("repoRoot", opts.RepoRoot).
		Bool("force", opts.Force).
		Msg("Dispatching command")
	defer logging.LogOperationStart(logger, string(cmdType))()

	if opts.FileSystem == nil {
		opts.FileSystem = filesystem.NewOS()
	}

	p, err := paths.New(opts.RepoRoot)
	if err != nil {
		return nil, err
	}

	s, err := ResolveSettings(opts.FileSystem, p.RepoRoot(), opts.Input)
	if err != nil {
		return nil, err
	}

	var result *types.CommandResult

	switch cmdType {
	case CommandLink:
		kitRoot := opts.KitRoot
		if kitRoot == "" {
			if kitRoot, err = paths.FindKitRoot(); err != nil {
				return nil, err
			}
		}
		result, err = link.Link(link.Options{
			FS:       opts.FileSystem,
			RepoRoot: p.RepoRoot(),
			KitRoot:  kitRoot,
			Settings: s,
			Force:    opts.Force,
		})

	case CommandCheck:
		result, err = check.Check(check.Options{
			FS:       opts.FileSystem,
			RepoRoot: p.RepoRoot(),
			Settings: s,
		})

	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown command type: %s", cmdType)
	}

	if err != nil {
		logger.Error().
			Str("command", string(cmdType)).
			Err(err).
			Msg("Command execution failed")
		return result, err
	}

	logger.Info().
		Str("command", string(cmdType)).
		Int("artifactCount", len(result.Artifacts)).
		Msg("Command completed successfully")

	return result, nil
}

// ResolveSettings loads the persisted config of repoRoot and merges it with
// in and the built-in defaults.
func ResolveSettings(fsys types.FS, repoRoot string, in settings.Input) (*settings.Settings, error) {
	cfg, err := config.Load(fsys, repoRoot)
	if err != nil {
		return nil, err
	}
	return settings.Resolve(in, cfg, config.DefaultValues())
}
