package textile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestParserState() *parserState {
	return newParserState(nil, NewConfig().WithUID("glyphtest"))
}

func TestGlyphsSmartQuotes(t *testing.T) {
	t.Parallel()

	p := newTestParserState()
	out := p.glyphs(`"quoted"`)
	assert.Equal(t, "&#8220;quoted&#8221;", out)
}

func TestGlyphsApostrophe(t *testing.T) {
	t.Parallel()

	p := newTestParserState()
	out := p.glyphs("it's")
	assert.Equal(t, "it&#8217;s", out)
}

func TestGlyphsEmDash(t *testing.T) {
	t.Parallel()

	p := newTestParserState()
	out := p.glyphs("foo -- bar")
	assert.Equal(t, "foo &#8212; bar", out)
}

func TestGlyphsTrademark(t *testing.T) {
	t.Parallel()

	p := newTestParserState()
	out := p.glyphs("Acme(TM)")
	assert.Equal(t, "Acme&#8482;", out)
}

func TestGlyphsSkipsInsideTags(t *testing.T) {
	t.Parallel()

	p := newTestParserState()
	out := p.glyphs(`<a href="x">it's</a>`)
	assert.Contains(t, out, `href="x"`)
	assert.Contains(t, out, "it&#8217;s")
}

func TestGlyphsDimensionSign(t *testing.T) {
	t.Parallel()

	p := newTestParserState()
	out := p.glyphs("2x4")
	assert.Equal(t, "2&#215;4", out)
}
