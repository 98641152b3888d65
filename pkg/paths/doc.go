// Package paths provides centralized path handling for agent-kit.
//
// A target repository receives a small, fixed set of artifacts:
//
//   - .shared-agent-kit/config.json  persisted settings
//   - .gitignore                     gains a .shared-agent-kit/ line
//   - .agent-kit                     symlink to the installation root
//   - one entry file per tool        AGENTS.md, CLAUDE.md, ...
//
// # Environment Variables
//
//   - AGENT_KIT_ROOT: installation root the .agent-kit symlink points at
//     (default: parent of the directory holding the executable)
//
// # Usage
//
//	p, err := paths.New(repoFlag)
//	if err != nil {
//	    return err
//	}
//	cfgFile := p.ConfigFile()
//	claude := p.ToolFile(types.Claude)
package paths
