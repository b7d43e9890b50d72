package textile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanStrongAndEmphasis(t *testing.T) {
	t.Parallel()

	p := newTestParserState()
	out := p.shelf.retrieveTags(p.span("a *strong* word and an _em_ word"))
	assert.Contains(t, out, "<strong>strong</strong>")
	assert.Contains(t, out, "<em>em</em>")
}

func TestSpanCitation(t *testing.T) {
	t.Parallel()

	p := newTestParserState()
	out := p.shelf.retrieveTags(p.span("??a famous quote??"))
	assert.Contains(t, out, "<cite")
	assert.Contains(t, out, "a famous quote</cite>")
}

func TestSpanRecursionDepthGuard(t *testing.T) {
	t.Parallel()

	p := newTestParserState()
	p.shelf.spanDepth = p.cfg.maxSpanDepth
	out := p.span("*should not expand*")
	assert.Equal(t, "*should not expand*", out)
}
