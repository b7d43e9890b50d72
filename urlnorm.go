package textile

import (
	"fmt"
	"net/url"
	"strings"
)

// pseudoBase is a discardable base URL joined against relative input so
// that relative URLs can be parsed and normalized with the same library
// used for absolute ones, then rendered back without the pseudo-host.
const pseudoBase = "http://example.com"

var baseURL = func() *url.URL {
	u, err := url.Parse(pseudoBase)
	if err != nil {
		panic(err)
	}
	return u
}()

// urlBits wraps net/url.URL to add relative-URL support: the user's
// original source text is retained so the rendered form preserves the
// original path exactly, substituting only a normalized query/fragment
// pulled from the dummy-base-resolved URL.
type urlBits struct {
	resolved *url.URL
	source   string
	relative bool
}

func makeRelativeURL(raw string) (urlBits, bool) {
	ref, err := url.Parse(raw)
	if err != nil {
		return urlBits{}, false
	}
	return urlBits{
		resolved: baseURL.ResolveReference(ref),
		source:   raw,
		relative: true,
	}, true
}

// parseURL implements the fallback chain: try as an absolute URL; on
// failure join against the pseudo base; on failure again, percent-encode
// every non-alphanumeric character and retry the join; give up with an
// empty relative URL if even that fails.
func parseURL(raw string) urlBits {
	if u, err := url.Parse(raw); err == nil && u.IsAbs() {
		return urlBits{resolved: u, relative: false}
	}
	if b, ok := makeRelativeURL(raw); ok {
		return b
	}
	safe := percentEncodeNonAlphanumeric(raw)
	if b, ok := makeRelativeURL(safe); ok {
		return b
	}
	return urlBits{resolved: baseURL, source: "", relative: true}
}

func percentEncodeNonAlphanumeric(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func (b urlBits) Scheme() string {
	if b.relative {
		return ""
	}
	return b.resolved.Scheme
}

func (b urlBits) IsRelative() bool { return b.relative }

// String renders the URL, preserving the user's original path text
// verbatim and backfilling only the query/fragment suffix with the
// dummy-base-resolved, percent-normalized variant.
func (b urlBits) String() string {
	if !b.relative {
		return b.resolved.String()
	}
	if b.source == "" {
		return ""
	}
	resolvedStr := b.resolved.String()
	source := b.source

	uq := strings.IndexByte(resolvedStr, '?')
	sq := strings.IndexByte(source, '?')
	if uq >= 0 && sq >= 0 {
		return source[:sq+1] + resolvedStr[uq+1:]
	}

	uf := strings.LastIndexByte(resolvedStr, '#')
	sf := strings.LastIndexByte(source, '#')
	switch {
	case uf >= 0 && sf >= 0:
		return source[:sf+1] + resolvedStr[uf+1:]
	case uf < 0 && sf >= 0:
		return source[:sf]
	default:
		return source
	}
}

// ToHTMLString renders the URL HTML-attribute-escaped, ready for direct
// injection into an href/src value.
func (b urlBits) ToHTMLString() string {
	return encodeHTML(b.String(), true, true)
}

// urlString models a value that is either already a normalized urlBits
// rendering, or raw text that must still be passed through parseURL the
// first time it is rendered.
type urlString struct {
	normalized bool
	text       string
}

func rawURLString(s string) urlString        { return urlString{text: s} }
func normalizedURLString(s string) urlString { return urlString{normalized: true, text: s} }

func (u urlString) Source() string { return u.text }

func (u urlString) String() string {
	if u.normalized {
		return u.text
	}
	if u.text == "" {
		return ""
	}
	return parseURL(u.text).String()
}

func (u urlString) ToHTMLString() string {
	return encodeHTML(u.String(), true, true)
}
