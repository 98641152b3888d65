package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/agentkit/pkg/errors"
	"github.com/arthur-debert/agentkit/pkg/logging"
	"github.com/arthur-debert/agentkit/pkg/paths"
	"github.com/arthur-debert/agentkit/pkg/types"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Config is the persisted per-repository settings record.
// Absent fields are nil/empty; the settings resolver falls through to
// defaults for them.
type Config struct {
	Source  string   `json:"source,omitempty" koanf:"source"`
	Targets []string `json:"targets,omitempty" koanf:"targets"`
	Skills  []string `json:"skills,omitempty" koanf:"skills"`
}

// IsZero reports whether no field is set
func (c Config) IsZero() bool {
	return c.Source == "" && len(c.Targets) == 0 && len(c.Skills) == 0
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load reads <repoRoot>/.shared-agent-kit/config.json. A missing file yields
// an empty Config and no error.
func Load(fsys types.FS, repoRoot string) (Config, error) {
	logger := logging.GetLogger("config")
	file := paths.ConfigFilePath(repoRoot)

	data, err := fsys.ReadFile(file)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("path", file).Msg("No persisted config")
			return Config{}, nil
		}
		return Config{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to read config %s", file)
	}

	cfg, err := Parse(data, file)
	if err != nil {
		return Config{}, err
	}

	logger.Debug().
		Str("path", file).
		Str("source", cfg.Source).
		Strs("targets", cfg.Targets).
		Strs("skills", cfg.Skills).
		Msg("Loaded persisted config")
	return cfg, nil
}

// Parse decodes config bytes. file is only used in error messages.
//
// Only malformed JSON is an error. A document that is not an object counts
// as empty. Fields of the wrong shape are logged against the embedded schema
// and read leniently: a non-list targets or skills is ignored, a scalar
// source or list item is taken as its text (so {"source": 5} later fails
// tool validation as "5").
func Parse(data []byte, file string) (Config, error) {
	logger := logging.GetLogger("config").With().Str("path", file).Logger()

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return Config{}, errors.Wrapf(err, errors.ErrConfigParse, "invalid JSON config: %s", file).
			WithDetail("path", file)
	}

	issues, err := validate(inst)
	if err != nil {
		return Config{}, errors.Wrap(err, errors.ErrInternal, "failed to validate config")
	}
	for _, issue := range issues {
		logger.Warn().Str("location", issue.Path).Str("keyword", issue.Keyword).Msg(issue.Message)
	}

	if _, ok := inst.(map[string]any); !ok {
		logger.Debug().Msg("Config is not an object, treating as empty")
		return Config{}, nil
	}

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, kjson.Parser()); err != nil {
		return Config{}, errors.Wrapf(err, errors.ErrConfigParse, "invalid JSON config: %s", file).
			WithDetail("path", file)
	}

	return Config{
		Source:  scalarText(k.Get("source")),
		Targets: textList(k.Get("targets")),
		Skills:  textList(k.Get("skills")),
	}, nil
}

// scalarText renders a JSON scalar as text; null and containers are empty
func scalarText(v any) string {
	switch v := v.(type) {
	case nil, []any, map[string]any:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// textList returns nil unless v is a JSON array
func textList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			out = append(out, "null")
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// Save writes cfg as two-space indented JSON with a trailing newline,
// creating the config directory when needed.
func Save(fsys types.FS, repoRoot string, cfg Config) error {
	file := paths.ConfigFilePath(repoRoot)

	if err := fsys.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create config directory %s", filepath.Dir(file))
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := fsys.WriteFile(file, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write config %s", file)
	}

	logger := logging.GetLogger("config")
	logger.Debug().Str("path", file).Msg("Saved config")
	return nil
}

// Marshal renders cfg exactly as Save writes it.
func Marshal(cfg Config) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode config")
	}
	return append(data, '\n'), nil
}
