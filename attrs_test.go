package textile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBlockAttrsEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, blockAttrs{}, parseBlockAttrs("", "", true, false))
}

func TestParseBlockAttrsClassAndID(t *testing.T) {
	t.Parallel()

	got := parseBlockAttrs("(note#important)", "", true, false)
	assert.Equal(t, "note", got.class)
	assert.Equal(t, "important", got.id)
}

func TestParseBlockAttrsRestrictedDropsClassIDStyle(t *testing.T) {
	t.Parallel()

	got := parseBlockAttrs(`{color:red}(note#important)`, "", true, true)
	assert.Empty(t, got.class)
	assert.Empty(t, got.id)
	assert.Empty(t, got.style)
}

func TestParseBlockAttrsStyle(t *testing.T) {
	t.Parallel()

	got := parseBlockAttrs("{color:red; font-weight:bold}", "", true, false)
	assert.Equal(t, "color:red; font-weight:bold;", got.style)
}

func TestParseBlockAttrsColspanRowspan(t *testing.T) {
	t.Parallel()

	got := parseBlockAttrs(`\3/2`, "td", true, false)
	assert.Equal(t, "3", got.colspan)
	assert.Equal(t, "2", got.rowspan)
}

func TestBlockHTMLAttrsInsertIsSorted(t *testing.T) {
	t.Parallel()

	var a blockHTMLAttrs
	a.insert("title", "t")
	a.insert("class", "c")
	a.insert("id", "i")

	assert.Equal(t, ` class="c" id="i" title="t"`, a.String())
}

func TestBlockHTMLAttrsInsertOverwrites(t *testing.T) {
	t.Parallel()

	var a blockHTMLAttrs
	a.insert("class", "first")
	a.insert("class", "second")

	assert.Equal(t, ` class="second"`, a.String())
}

func TestInsertCSSClassRejectsInvalidNames(t *testing.T) {
	t.Parallel()

	var a blockHTMLAttrs
	assert.False(t, a.insertCSSClass("<script>"))
	assert.True(t, a.insertCSSClass("align-left"))
	assert.Equal(t, ` class="align-left"`, a.String())
}

func TestInsertCSSClassAppendsToExisting(t *testing.T) {
	t.Parallel()

	var a blockHTMLAttrs
	a.insert("class", "foo")
	assert.True(t, a.insertCSSClass("bar"))
	assert.Equal(t, ` class="foo bar"`, a.String())
}
