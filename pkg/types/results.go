package types

// ArtifactKind names the role a path plays in a linked repository.
type ArtifactKind string

const (
	KindConfigDir ArtifactKind = "config-dir"
	KindConfig    ArtifactKind = "config"
	KindGitignore ArtifactKind = "gitignore"
	KindSource    ArtifactKind = "source"
	KindSymlink   ArtifactKind = "symlink"
	KindSkills    ArtifactKind = "skills"
	KindEntry     ArtifactKind = "entry"
)

// ArtifactAction is what a command did with, or found at, an artifact.
type ArtifactAction string

const (
	ActionCreated   ArtifactAction = "created"
	ActionUpdated   ArtifactAction = "updated"
	ActionUnchanged ArtifactAction = "unchanged"
	ActionForced    ArtifactAction = "forced"
	ActionReplaced  ArtifactAction = "replaced"
	ActionExists    ArtifactAction = "exists"
	ActionMissing   ArtifactAction = "missing"
)

// Artifact is a single path produced by link or inspected by check.
type Artifact struct {
	Kind   ArtifactKind   `json:"kind"`
	Path   string         `json:"path"` // Absolute
	Tool   string         `json:"tool,omitempty"`
	Action ArtifactAction `json:"action"`
}

// Changed reports whether the artifact was written to disk.
func (a Artifact) Changed() bool {
	switch a.Action {
	case ActionCreated, ActionUpdated, ActionForced, ActionReplaced:
		return true
	}
	return false
}

// CommandResult is the common outcome of link and check, used for display.
type CommandResult struct {
	Command   string     `json:"command"` // "link", "check"
	RepoRoot  string     `json:"repoRoot"`
	Source    string     `json:"source"`
	Targets   []string   `json:"targets"`
	Artifacts []Artifact `json:"artifacts"`
}

// Add records an artifact
func (r *CommandResult) Add(kind ArtifactKind, path string, action ArtifactAction) {
	r.Artifacts = append(r.Artifacts, Artifact{Kind: kind, Path: path, Action: action})
}

// AddEntry records a tool's entry file
func (r *CommandResult) AddEntry(tool Tool, path string, action ArtifactAction) {
	r.Artifacts = append(r.Artifacts, Artifact{Kind: KindEntry, Path: path, Tool: tool.String(), Action: action})
}

// Changed reports whether any artifact was written.
func (r *CommandResult) Changed() bool {
	for _, a := range r.Artifacts {
		if a.Changed() {
			return true
		}
	}
	return false
}

// Missing returns the paths of artifacts found missing, in order.
func (r *CommandResult) Missing() []string {
	var out []string
	for _, a := range r.Artifacts {
		if a.Action == ActionMissing {
			out = append(out, a.Path)
		}
	}
	return out
}
