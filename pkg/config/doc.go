// Package config handles configuration management for agent-kit.
// It loads and saves the per-repository settings file
// (.shared-agent-kit/config.json) and exposes the built-in defaults
// embedded as TOML.
package config
