package textile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ragodev/textile"
)

func parse(t *testing.T, cfg *textile.Config, input string) string {
	t.Helper()
	if cfg == nil {
		cfg = textile.NewConfig().WithUID("test")
	}
	return cfg.Parse(context.Background(), input)
}

func TestParseBasicParagraph(t *testing.T) {
	t.Parallel()

	out := parse(t, nil, "hello world")
	assert.Equal(t, "<p>hello world</p>", out)
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"empty string":     "",
		"only whitespace":  "   \n\t",
		"only newlines":    "\n\n\n",
	}
	for name, input := range tcs {
		input := input
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, input, parse(t, nil, input))
		})
	}
}

func TestParseInlineEmphasis(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"strong": {
			input: "I am *strong*",
			want:  "<p>I am <strong>strong</strong></p>",
		},
		"emphasis": {
			input: "I am _emphasized_",
			want:  "<p>I am <em>emphasized</em></p>",
		},
		"bold": {
			input: "I am **bold**",
			want:  "<p>I am <b>bold</b></p>",
		},
	}
	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, parse(t, nil, tc.input))
		})
	}
}

func TestParseHeading(t *testing.T) {
	t.Parallel()

	out := parse(t, nil, "h2. A heading")
	assert.Equal(t, "<h2>A heading</h2>", out)
}

func TestParseLink(t *testing.T) {
	t.Parallel()

	out := parse(t, nil, `"Anthropic":https://www.anthropic.com`)
	assert.Contains(t, out, `<a href="https://www.anthropic.com">Anthropic</a>`)
}

func TestParseBulletList(t *testing.T) {
	t.Parallel()

	out := parse(t, nil, "* one\n* two\n* three")
	assert.Contains(t, out, "<ul>")
	assert.Contains(t, out, "<li>one</li>")
	assert.Contains(t, out, "<li>two</li>")
	assert.Contains(t, out, "<li>three</li>")
	assert.Contains(t, out, "</ul>")
}

func TestParseTable(t *testing.T) {
	t.Parallel()

	out := parse(t, nil, "|a|b|\n|c|d|")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>a</td>")
	assert.Contains(t, out, "<td>d</td>")
}

func TestParseImage(t *testing.T) {
	t.Parallel()

	out := parse(t, nil, "!http://example.com/a.png(a title)!")
	assert.Contains(t, out, `src="http://example.com/a.png"`)
	assert.Contains(t, out, `alt="a title"`)
}

func TestParseRestrictedEscapesRawHTML(t *testing.T) {
	t.Parallel()

	cfg := textile.NewConfig().WithUID("test").WithRestricted(true)
	out := parse(t, cfg, "<script>alert(1)</script>")
	assert.NotContains(t, out, "<script>")
}

func TestParseRestrictedRejectsDisallowedScheme(t *testing.T) {
	t.Parallel()

	cfg := textile.NewConfig().WithUID("test").WithRestricted(true)
	out := parse(t, cfg, `"evil":javascript:alert(1)`)
	assert.NotContains(t, out, "<a")
}

func TestParseXHTMLSelfClosesBr(t *testing.T) {
	t.Parallel()

	cfg := textile.NewConfig().WithUID("test").WithHTMLKind(true)
	out := parse(t, cfg, "line one\nline two")
	assert.Contains(t, out, "<br />")
}

func TestParseLiteSkipsBlockTags(t *testing.T) {
	t.Parallel()

	cfg := textile.NewConfig().WithUID("test").WithLite(true)
	out := parse(t, cfg, "h2. Not a heading")
	assert.NotContains(t, out, "<h2>")
}

func TestSanitizerStripsScriptTag(t *testing.T) {
	t.Parallel()

	s := textile.NewSanitizer()
	out := s.Sanitize(`<p onclick="evil()">hi</p><script>alert(1)</script>`)
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "<p>hi</p>")
}

func TestParseFootnote(t *testing.T) {
	t.Parallel()

	out := parse(t, nil, "some text[1]\n\nfn1. the footnote")
	assert.Contains(t, out, `class="footnote"`)
}
