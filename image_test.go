package textile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageBasic(t *testing.T) {
	t.Parallel()

	p := newTestParserState()
	out := p.shelf.retrieveURLs(p.shelf.retrieve(p.image("!http://example.com/a.png!")), func(s string) string { return s })
	assert.Contains(t, out, `<img`)
	assert.Contains(t, out, `src="http://example.com/a.png"`)
}

func TestImageWithAlignmentClassByDefaultOnHTML5(t *testing.T) {
	t.Parallel()

	p := newTestParserState()
	out := p.shelf.retrieve(p.shelf.retrieveURLs(p.image("!<http://example.com/a.png!"), func(s string) string { return s }))
	assert.Contains(t, out, `class="align-left"`)
}

func TestImageWithAlignmentAttributeWhenAlignClassDisabled(t *testing.T) {
	t.Parallel()

	p := newParserState(nil, NewConfig().WithUID("imgtest").WithAlignClass(false))
	out := p.shelf.retrieve(p.shelf.retrieveURLs(p.image("!<http://example.com/a.png!"), func(s string) string { return s }))
	assert.Contains(t, out, `align="left"`)
}

func TestImageRejectsInvalidScheme(t *testing.T) {
	t.Parallel()

	p := newTestParserState()
	input := "!javascript:alert(1)!"
	out := p.image(input)
	assert.Equal(t, input, out)
}

func TestProbeImageSizeRejectsNonHTTPScheme(t *testing.T) {
	t.Parallel()

	w, h, ok := probeImageSize(nil, "ftp://example.com/a.png")
	assert.False(t, ok)
	assert.Zero(t, w)
	assert.Zero(t, h)
}
