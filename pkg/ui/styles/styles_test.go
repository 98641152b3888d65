package styles_test

import (
	"testing"

	"github.com/arthur-debert/agentkit/pkg/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStyles(t *testing.T) {
	expected := []string{
		"Header", "Success", "Error", "Warning", "Info", "Muted", "Bold", "Path", "Kind",
		"ActionCreated", "ActionUpdated", "ActionReplaced", "ActionForced",
		"ActionUnchanged", "ActionExists", "ActionMissing",
	}

	for _, name := range expected {
		t.Run(name, func(t *testing.T) {
			assert.True(t, styles.Has(name), "style %s should be registered", name)
		})
	}
	assert.GreaterOrEqual(t, len(styles.Names()), len(expected))
}

func TestEmbeddedStyles_Attributes(t *testing.T) {
	assert.True(t, styles.GetStyle("Error").GetBold())
	assert.True(t, styles.GetStyle("Path").GetItalic())
	assert.Equal(t, 10, styles.GetStyle("ActionCreated").GetWidth())
}

func TestGetStyle_Unknown(t *testing.T) {
	assert.False(t, styles.Has("NoSuchStyle"))
	style := styles.GetStyle("NoSuchStyle")
	assert.False(t, style.GetBold())
}

func TestRender_Disabled(t *testing.T) {
	was := styles.Enabled()
	t.Cleanup(func() { styles.SetEnabled(was) })

	styles.SetEnabled(false)
	assert.Equal(t, "plain", styles.Render("ActionCreated", "plain"))
	assert.Equal(t, "plain", styles.Render("NoSuchStyle", "plain"))
}

func TestRender_EnabledKeepsText(t *testing.T) {
	was := styles.Enabled()
	t.Cleanup(func() { styles.SetEnabled(was) })

	styles.SetEnabled(true)
	assert.Contains(t, styles.Render("Error", "boom"), "boom")
}

func TestLoadStylesFromData(t *testing.T) {
	t.Cleanup(func() {
		// restore the embedded set for other tests
		require.NoError(t, styles.Reset())
	})

	data := []byte(`
colors:
  red:
    light: "#ff0000"
    dark: "#ff0000"
styles:
  Alert:
    bold: true
    foreground: red
`)
	require.NoError(t, styles.LoadStylesFromData(data))
	assert.True(t, styles.Has("Alert"))
	assert.False(t, styles.Has("Header"))

	err := styles.LoadStylesFromData([]byte("styles: [unclosed"))
	assert.Error(t, err)
	assert.True(t, styles.Has("Alert"), "a failed load keeps the previous registry")
}
