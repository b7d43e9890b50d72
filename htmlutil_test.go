package textile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeHTMLDefaultCutset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a &amp; b &lt;c&gt;", encodeHTML(`a & b <c>`, false, false))
	assert.Equal(t, `"quote"`, encodeHTML(`"quote"`, false, false))
}

func TestEncodeHTMLQuotes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "&quot;q&#39;t&quot;", encodeHTML(`"q't"`, true, false))
}

func TestEncodeHTMLLineSpacers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a&#10;b", encodeHTML("a\nb", false, true))
}

func TestReverseEncodeHTMLRoundTrips(t *testing.T) {
	t.Parallel()

	original := `a & b <c> "d" 'e'`
	encoded := encodeHTML(original, true, false)
	assert.Equal(t, original, reverseEncodeHTML(encoded))
}

func TestQuoteattrPrefersDoubleQuote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"plain"`, quoteattr("plain"))
	assert.Equal(t, `'has " inside'`, quoteattr(`has " inside`))
}

func TestQuoteattrBothQuotesPresent(t *testing.T) {
	t.Parallel()

	got := quoteattr(`has " and ' both`)
	assert.True(t, got[0] == '"' && got[len(got)-1] == '"')
	assert.Contains(t, got, "&quot;")
}

func TestGenerateTagSelfClosing(t *testing.T) {
	t.Parallel()

	got := generateTag("img", nil, []attrPair{{Name: "src", Value: "a.png"}})
	assert.Equal(t, `<img src="a.png" />`, got)
}

func TestGenerateTagWithContent(t *testing.T) {
	t.Parallel()

	content := "hello"
	got := generateTag("p", &content, nil)
	assert.Equal(t, "<p>hello</p>", got)
}

func TestGenerateTagEmptyTagReturnsContentUnchanged(t *testing.T) {
	t.Parallel()

	content := "raw text"
	assert.Equal(t, "raw text", generateTag("", &content, nil))
	assert.Equal(t, "", generateTag("", nil, nil))
}

func TestGenerateTagInvalidTagNameEscapesContent(t *testing.T) {
	t.Parallel()

	content := "<b>x</b>"
	got := generateTag("not a tag", &content, nil)
	assert.NotContains(t, got, "<b>")
}

func TestUnescapeDecodesNamedAndNumericEntities(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "café", unescape("caf&eacute;"))
	assert.Equal(t, "©", unescape("&#169;"))
	assert.Equal(t, "plain", unescape("plain"))
}

func TestHasRawTextBlockLevelWrapper(t *testing.T) {
	t.Parallel()

	assert.False(t, hasRawText("<div>already a block</div>"))
}

func TestHasRawTextDividerOnly(t *testing.T) {
	t.Parallel()

	assert.False(t, hasRawText("<br><br>"))
}

func TestHasRawTextPhrasingWrapper(t *testing.T) {
	t.Parallel()

	assert.True(t, hasRawText("<span>inline</span>"))
}

func TestHasRawTextPlain(t *testing.T) {
	t.Parallel()

	assert.True(t, hasRawText("plain paragraph text"))
}
