package settings

import (
	"path"
	"strings"

	"github.com/arthur-debert/agentkit/pkg/errors"
	"github.com/arthur-debert/agentkit/pkg/paths"
)

// NormalizeSkills turns user-supplied skills paths into the canonical
// "./x/" or "../x/" form. Blank entries are dropped, duplicates removed
// (first occurrence wins) and absolute paths rejected. Normalizing an
// already normalized list returns it unchanged.
func NormalizeSkills(values []string) ([]string, error) {
	seen := make(map[string]bool)
	out := []string{}
	for _, v := range values {
		p, err := normalizeSkill(v)
		if err != nil {
			return nil, err
		}
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}

func normalizeSkill(value string) (string, error) {
	p := strings.ReplaceAll(strings.TrimSpace(value), `\`, "/")
	if p == "" {
		return "", nil
	}

	if path.IsAbs(p) || hasDriveLetter(p) {
		return "", errors.Newf(errors.ErrValidation, "skills path must be relative to the repository: %s", value).
			WithDetail("value", value)
	}

	p = path.Clean(p)
	switch {
	case p == ".":
		return "./", nil
	case p == ".." || strings.HasPrefix(p, "../"):
		return p + "/", nil
	default:
		return "./" + p + "/", nil
	}
}

func hasDriveLetter(p string) bool {
	return len(p) >= 2 && p[1] == ':' &&
		((p[0] >= 'a' && p[0] <= 'z') || (p[0] >= 'A' && p[0] <= 'Z'))
}

// IsShared reports whether a normalized skills path is served through the
// .agent-kit symlink rather than living in the repository itself.
func IsShared(skill string) bool {
	return strings.HasPrefix(skill, paths.SharedSkillsPrefix)
}

// ParseList splits a comma-separated flag value, trimming entries and
// dropping blanks. The result is never nil, so an explicitly empty flag
// stays distinguishable from an absent one.
func ParseList(value string) []string {
	out := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
