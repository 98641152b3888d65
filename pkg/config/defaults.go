package config

import (
	_ "embed"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/defaults.toml
var defaultsTOML []byte

// Defaults are the built-in fallbacks used by the settings resolver.
type Defaults struct {
	Source string   `toml:"source"`
	Skills []string `toml:"skills"`
}

var (
	defaultsOnce sync.Once
	defaults     Defaults
)

// DefaultValues returns the built-in defaults decoded from the embedded
// TOML document. The returned slices are copies.
func DefaultValues() Defaults {
	defaultsOnce.Do(func() {
		if err := toml.Unmarshal(defaultsTOML, &defaults); err != nil {
			// The document is compiled into the binary
			panic("config: invalid embedded defaults: " + err.Error())
		}
	})

	return Defaults{
		Source: defaults.Source,
		Skills: append([]string(nil), defaults.Skills...),
	}
}

