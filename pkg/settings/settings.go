package settings

import (
	"strings"

	"github.com/arthur-debert/agentkit/pkg/config"
	"github.com/arthur-debert/agentkit/pkg/errors"
	"github.com/arthur-debert/agentkit/pkg/types"
)

// Input carries the values supplied on the command line. An empty Source
// means "not supplied". A nil list means "not supplied"; a non-nil empty
// list was supplied and is rejected.
type Input struct {
	Source  string
	Targets []string
	Skills  []string
}

// Settings is the fully resolved, validated record every command works
// from. It is re-derivable from (Input, persisted config, defaults).
type Settings struct {
	Source     types.Tool
	Targets    []types.Tool // deduplicated, non-empty, always contains Source
	SourcePath string       // Source.EntryPath()
	Skills     []string     // normalized, deduplicated, non-empty
}

// Resolve merges CLI input, the persisted config and the built-in defaults.
// Per field: CLI value if supplied, else persisted value if non-empty, else
// the default.
func Resolve(in Input, cfg config.Config, def config.Defaults) (*Settings, error) {
	source, err := resolveSource(in.Source, cfg.Source, def.Source)
	if err != nil {
		return nil, err
	}

	targets, err := resolveTargets(source, in.Targets, cfg.Targets)
	if err != nil {
		return nil, err
	}

	skills, err := resolveSkills(in.Skills, cfg.Skills, def.Skills)
	if err != nil {
		return nil, err
	}

	return &Settings{
		Source:     source,
		Targets:    targets,
		SourcePath: source.EntryPath(),
		Skills:     skills,
	}, nil
}

func resolveSource(cli, persisted, def string) (types.Tool, error) {
	value := def
	switch {
	case strings.TrimSpace(cli) != "":
		value = cli
	case strings.TrimSpace(persisted) != "":
		value = persisted
	}
	return parseTool(value)
}

func resolveTargets(source types.Tool, cli, persisted []string) ([]types.Tool, error) {
	if cli != nil {
		targets, err := parseTools(cli)
		if err != nil {
			return nil, err
		}
		if len(targets) == 0 {
			return nil, errors.New(errors.ErrValidation, "at least one target tool is required")
		}
		return withSource(source, targets), nil
	}

	targets, err := parseTools(persisted)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		targets = defaultTargets(source)
	}
	return withSource(source, targets), nil
}

func resolveSkills(cli, persisted, def []string) ([]string, error) {
	if cli != nil {
		skills, err := NormalizeSkills(cli)
		if err != nil {
			return nil, err
		}
		if len(skills) == 0 {
			return nil, errors.New(errors.ErrValidation, "at least one skills path is required")
		}
		return skills, nil
	}

	skills, err := NormalizeSkills(persisted)
	if err != nil {
		return nil, err
	}
	if len(skills) > 0 {
		return skills, nil
	}

	skills, err = NormalizeSkills(def)
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return nil, errors.New(errors.ErrValidation, "at least one skills path is required")
	}
	return skills, nil
}

// parseTool accepts an identity name or an entry path
func parseTool(value string) (types.Tool, error) {
	if tool, ok := types.ParseTool(value); ok {
		return tool, nil
	}
	name := strings.ToLower(strings.TrimSpace(value))
	supported := strings.Join(types.ToolNames(types.AllTools()), ", ")
	return 0, errors.Newf(errors.ErrValidation, "unsupported tool: %s. Use one of: %s", name, supported).
		WithDetail("value", name).
		WithDetail("supported", supported)
}

// parseTools validates and deduplicates, dropping blank entries
func parseTools(values []string) ([]types.Tool, error) {
	seen := make(map[types.Tool]bool)
	var tools []types.Tool
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		tool, err := parseTool(v)
		if err != nil {
			return nil, err
		}
		if !seen[tool] {
			seen[tool] = true
			tools = append(tools, tool)
		}
	}
	return tools, nil
}

func defaultTargets(source types.Tool) []types.Tool {
	var out []types.Tool
	for _, t := range types.AllTools() {
		if t != source {
			out = append(out, t)
		}
	}
	return out
}

// withSource prepends source when missing
func withSource(source types.Tool, targets []types.Tool) []types.Tool {
	for _, t := range targets {
		if t == source {
			return targets
		}
	}
	return append([]types.Tool{source}, targets...)
}

// EntryTargets returns the targets that receive a generated entry file,
// i.e. every target except the source.
func (s *Settings) EntryTargets() []types.Tool {
	var out []types.Tool
	for _, t := range s.Targets {
		if t != s.Source {
			out = append(out, t)
		}
	}
	return out
}

// TargetNames returns the target identity names in order
func (s *Settings) TargetNames() []string {
	return types.ToolNames(s.Targets)
}

// Config is the record persisted by link
func (s *Settings) Config() config.Config {
	return config.Config{
		Source:  s.Source.String(),
		Targets: s.TargetNames(),
		Skills:  append([]string(nil), s.Skills...),
	}
}
