package topics

// Renderer defines the interface for rendering topic content
type Renderer interface {
	// Render takes raw content and returns formatted content for terminal display
	Render(content string, format string) string
}

// PlainRenderer returns content as-is, for pipes and files
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// RendererFor picks glamour for terminals and plain text otherwise
func RendererFor(terminal bool) Renderer {
	if terminal {
		return NewGlamourRenderer()
	}
	return &PlainRenderer{}
}
