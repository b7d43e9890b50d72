package textile

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// encodeHTML maps '&', '<', '>' (always), plus '"' and '\'' when quotes is
// true, plus '\n', '\r', '\t' when lineSpacers is true, to their numeric or
// named entity forms.
func encodeHTML(text string, quotes, lineSpacers bool) string {
	var cutset string
	switch {
	case quotes && lineSpacers:
		cutset = "&<>\"'\n\r\t"
	case quotes:
		cutset = "&<>\"'"
	case lineSpacers:
		cutset = "&<>\n\r\t"
	default:
		cutset = "&<>"
	}

	var b strings.Builder
	b.Grow(2 * len(text))
	for {
		idx := strings.IndexAny(text, cutset)
		if idx < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:idx])
		switch text[idx] {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		case '\n':
			b.WriteString("&#10;")
		case '\r':
			b.WriteString("&#13;")
		case '\t':
			b.WriteString("&#9;")
		}
		text = text[idx+1:]
	}
	return b.String()
}

var reverseEncodeTable = map[string]string{
	"&amp;":  "&",
	"&lt;":   "<",
	"&gt;":   ">",
	"&quot;": "\"",
	"&#39;":  "'",
	"&#10;":  "\n",
	"&#13;":  "\r",
	"&#9;":   "\t",
}

// reverseEncodeHTML inverts the eight entities encodeHTML is able to
// produce. Used to un-escape attribute values that were only ever escaped
// by this package, never arbitrary HTML.
func reverseEncodeHTML(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}
	return reEntity.ReplaceAllStringFunc(text, func(m *rxMatch) string {
		if r, ok := reverseEncodeTable[m.String()]; ok {
			return r
		}
		return m.String()
	})
}

// quoteattr escapes and quotes an XML/HTML attribute value, preferring a
// double quote and falling back to a single quote when the value itself
// contains a double quote.
func quoteattr(data string) string {
	data = encodeHTML(data, false, true)
	switch {
	case strings.Contains(data, "\"") && strings.Contains(data, "'"):
		return "\"" + strings.ReplaceAll(data, "\"", "&quot;") + "\""
	case strings.Contains(data, "\""):
		return "'" + data + "'"
	default:
		return "\"" + data + "\""
	}
}

// isValidAttributeChar follows the WHATWG attribute-name character rule.
func isValidAttributeChar(r rune) bool {
	switch {
	case unicode.IsControl(r), unicode.IsSpace(r):
		return false
	case r >= 0xFDD0 && r <= 0xFDEF:
		return false
	case r == '=' || r == '/' || r == '>' || r == '"' || r == '\'':
		return false
	default:
		return true
	}
}

func isValidAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !isValidAttributeChar(r) {
			return false
		}
	}
	return true
}

// attrPair is an ordered HTML attribute name/value pair.
type attrPair struct {
	Name  string
	Value string
}

// joinHTMLAttributes appends ` name="value"` for every attribute whose name
// passes isValidAttrName.
func joinHTMLAttributes(b *strings.Builder, attrs []attrPair) {
	for _, a := range attrs {
		if !isValidAttrName(a.Name) {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteByte('=')
		b.WriteString(quoteattr(a.Value))
	}
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// generateTag builds a complete HTML tag. An empty tag name returns content
// unchanged; a tag name containing non-alphanumeric characters causes the
// content to be HTML-escaped and returned as plain text instead (this is how
// the parser safely renders a "tag name" that was actually user text). A nil
// content produces a self-closing tag.
func generateTag(tag string, content *string, attrs []attrPair) string {
	if tag == "" {
		if content == nil {
			return ""
		}
		return *content
	}
	if !isAlphanumeric(tag) {
		c := ""
		if content != nil {
			c = *content
		}
		return encodeHTML(c, true, false)
	}

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	joinHTMLAttributes(&b, attrs)
	if content != nil {
		b.WriteByte('>')
		b.WriteString(*content)
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteByte('>')
	} else {
		b.WriteString(" />")
	}
	return b.String()
}

func generateTagStr(tag, content string, attrs []attrPair) string {
	return generateTag(tag, &content, attrs)
}

// unescape is the full HTML5 named-and-numeric entity decoder. It delegates
// to golang.org/x/net/html, which implements the WHATWG "named character
// reference" state machine (longest-match-without-trailing-semicolon
// included) rather than hand-maintaining the ~2000 entry HTML5 table here.
func unescape(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}

// blockContent lists the tags whose presence in a block disables automatic
// paragraph wrapping. Order matters: "pre" must precede "p", "section"
// must precede "s", or the regex alternation only ever matches the prefix.
const blockContent = "address|article|aside|blockquote|details|div|dl|fieldset|figure|figcaption" +
	"|footer|form|h1|h2|h3|h4|h5|h6|header|hgroup|main|menu|nav|ol" +
	"|pre|p|section|s|table|template|ul"

const phrasingContent = "abbr|acronym|area|audio|a|bdo|br|button|b|canvas|cite|code|command|" +
	"data|datalist|del|dfn|em|embed|iframe|img|input|ins|i|kbd|keygen|" +
	"label|link|map|mark|math|meta|meter|noscript|object|output|progress|" +
	"q|ruby|samp|script|select|small|span|strong|sub|sup|svg|textarea|" +
	"time|var|video|wbr"

// hasRawText reports whether text should be emitted untouched rather than
// wrapped in a paragraph: false when the text opens/closes with a
// block-level tag, false for divider-only runs of <br>/<hr>/<img>, and for
// text fully wrapped in a single tag, whether that wrapper is phrasing
// content.
func hasRawText(text string) bool {
	if reUnwrappable.MatchString(text) || reDivider.MatchString(text) {
		return false
	}
	if m := reWrapped.FindStringSubmatch(text); m != nil {
		return rePhrasing.MatchString(m[1])
	}
	return true
}
