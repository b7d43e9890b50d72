package textile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShelveAndRetrieveRoundTrip(t *testing.T) {
	t.Parallel()

	s := newShelf("uid:", "uid-")
	id := s.shelve("<b>bold</b>")
	assert.Equal(t, "uid:0:shelve", id)

	out := s.retrieve("before " + id + " after")
	assert.Equal(t, "before <b>bold</b> after", out)
}

func TestShelveEmptyStringReturnsEmptyPlaceholder(t *testing.T) {
	t.Parallel()

	s := newShelf("uid:", "uid-")
	assert.Equal(t, "", s.shelve(""))
}

func TestRetrieveResolvesNestedPlaceholders(t *testing.T) {
	t.Parallel()

	s := newShelf("uid:", "uid-")
	inner := s.shelve("inner")
	outer := s.shelve("[" + inner + "]")

	out := s.retrieve(outer)
	assert.Equal(t, "[inner]", out)
}

func TestRetrieveURLsAppliesResolveCallback(t *testing.T) {
	t.Parallel()

	s := newShelf("uid:", "uid-")
	id := s.shelveURL("myflag")

	out := s.retrieveURLs("href="+id, func(v string) string {
		if v == "myflag" {
			return "https://example.com/"
		}
		return v
	})
	assert.Equal(t, "href=https://example.com/", out)
}

func TestStoreTagsAndRetrieveTags(t *testing.T) {
	t.Parallel()

	s := newShelf("uid:", "uid-")
	openTag, closeTag := s.storeTags("<strong>", "</strong>")

	text := openTag + "content" + closeTag
	out := s.retrieveTags(text)
	assert.Equal(t, "<strong>content</strong>", out)
}

func TestRetrieveTagsAcceptsRefIndexBeyondItemsLength(t *testing.T) {
	t.Parallel()

	s := newShelf("uid:", "uid-")
	// refCache indices grow independently of items: storeTags can hand out
	// an index that exceeds len(s.items) when nothing has been shelved yet.
	openTag, closeTag := s.storeTags("<strong>", "</strong>")
	assert.Empty(t, s.items)

	out := s.retrieveTags(openTag + "strong" + closeTag)
	assert.Equal(t, "<strong>strong</strong>", out)
}

func TestMatchPlaceholderRejectsUnknownIndex(t *testing.T) {
	t.Parallel()

	s := newShelf("uid:", "uid-")
	s.shelve("a")

	_, _, ok := s.matchPlaceholder("uid:5:shelve", "shelve", len(s.items))
	assert.False(t, ok)
}

func TestItoaAtoiFast(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", itoa(0))
	assert.Equal(t, "42", itoa(42))
	assert.Equal(t, "-7", itoa(-7))

	assert.Equal(t, 42, atoiFast("42"))
	assert.Equal(t, -1, atoiFast("4x2"))
}
