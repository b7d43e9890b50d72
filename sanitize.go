package textile

import "github.com/microcosm-cc/bluemonday"

// bluemondayPolicy adapts a *bluemonday.Policy to the Sanitizer interface,
// the Go counterpart of the reference implementation's optional Ammonia
// pass: nothing is sanitized unless a Config opts in via WithSanitizer.
type bluemondayPolicy struct {
	policy *bluemonday.Policy
}

func (b *bluemondayPolicy) Sanitize(html string) string {
	return b.policy.Sanitize(html)
}

// NewSanitizer builds the default Sanitizer, a bluemonday policy wide
// enough to pass through everything the converter itself can produce:
// headings, lists, definition lists, tables, footnote/note anchors,
// abbr/acronym, and images with the attributes image() sets.
func NewSanitizer() Sanitizer {
	policy := bluemonday.NewPolicy()

	policy.AllowStandardAttributes()
	policy.AllowStandardURLs()

	policy.AllowElements(
		"abbr", "acronym", "address", "article", "aside",
		"b", "bdi", "bdo", "blockquote", "br",
		"caption", "cite", "code", "col", "colgroup",
		"dd", "del", "dfn", "div", "dl", "dt",
		"em", "figcaption", "figure", "footer",
		"h1", "h2", "h3", "h4", "h5", "h6", "header", "hgroup", "hr",
		"i", "ins", "kbd",
		"li",
		"mark", "menu",
		"nav",
		"ol",
		"p", "pre",
		"q",
		"rp", "rt", "ruby",
		"s", "samp", "section", "small", "span", "strong", "sub", "summary", "sup",
		"table", "tbody", "td", "tfoot", "th", "thead", "time", "tr", "tt",
		"u", "ul",
		"var",
	)

	policy.AllowAttrs("id").Globally()
	policy.AllowAttrs("class", "style").Globally()

	policy.AllowAttrs("href").OnElements("a")
	policy.AllowAttrs("title").OnElements("a", "abbr", "acronym")
	policy.RequireNoFollowOnLinks(false)

	policy.AllowAttrs("src", "alt", "title", "width", "height", "align").OnElements("img")
	policy.AllowImages()

	policy.AllowAttrs("cite").OnElements("blockquote", "q", "del", "ins")
	policy.AllowAttrs("datetime").OnElements("del", "ins", "time")

	policy.AllowAttrs("colspan", "rowspan", "scope", "headers", "summary").OnElements(
		"td", "th", "table")
	policy.AllowAttrs("span", "width").OnElements("col", "colgroup")
	policy.AllowAttrs("start", "type").OnElements("ol")
	policy.AllowAttrs("type").OnElements("ul", "li")
	policy.AllowAttrs("value").OnElements("li")

	policy.AllowLists()
	policy.AllowTables()

	return &bluemondayPolicy{policy: policy}
}
