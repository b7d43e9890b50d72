package textile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseURLAbsolute(t *testing.T) {
	t.Parallel()

	u := parseURL("https://example.com/path?q=1")
	assert.False(t, u.IsRelative())
	assert.Equal(t, "https", u.Scheme())
	assert.Equal(t, "https://example.com/path?q=1", u.String())
}

func TestParseURLRelative(t *testing.T) {
	t.Parallel()

	u := parseURL("/a/b/c")
	assert.True(t, u.IsRelative())
	assert.Equal(t, "", u.Scheme())
	assert.Equal(t, "/a/b/c", u.String())
}

func TestParseURLRelativePreservesFragment(t *testing.T) {
	t.Parallel()

	u := parseURL("/a/b#section")
	assert.Equal(t, "/a/b#section", u.String())
}

func TestURLStringRawVsNormalized(t *testing.T) {
	t.Parallel()

	raw := rawURLString("https://example.com/a b")
	assert.Contains(t, raw.String(), "%20")

	norm := normalizedURLString("https://example.com/a%20b")
	assert.Equal(t, "https://example.com/a%20b", norm.String())
}

func TestToHTMLStringEscapesAttributeChars(t *testing.T) {
	t.Parallel()

	u := rawURLString(`https://example.com/?a=1&b="x"`)
	assert.Contains(t, u.ToHTMLString(), "&amp;")
	assert.Contains(t, u.ToHTMLString(), "&quot;")
}
