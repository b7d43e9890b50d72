package textile

import "strings"

// regexEscape backslash-escapes every regexp2 metacharacter in s so it can
// be embedded in a larger pattern as a literal.
func regexEscape(s string) string {
	const special = `\.+*?()|[]{}^$#`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// doSpecial replaces every "start ... end" delimited span in text, handing
// the leading boundary character, the inner text, and the (optional)
// trailing boundary character to replace. Used to shelve <notextile>,
// ==...==, @...@, <code>, <pre>, and <!-- --> spans before the rest of the
// pipeline can touch them.
func doSpecial(text, start, end string, replace func(before, inner, after string) string) string {
	pattern := mustRe(`(?ms)(^|\s|[\[({>|])` + regexEscape(start) + `(.*?)` + regexEscape(end) + `($|[\])}])?`)
	return pattern.ReplaceAllStringFunc(text, func(m *rxMatch) string {
		return replace(m.GroupN(1), m.GroupN(2), m.GroupN(3))
	})
}

// fTextile shelves the inner text of a <notextile>...</notextile> or
// ==...== span verbatim.
func (p *parserState) fTextile(before, inner, after string) string {
	before, after = getSpecialOptions(before, after)
	return before + p.shelf.shelve(inner) + after
}

// noTextile shelves <notextile>...</notextile> and ==...== spans so later
// passes leave their contents untouched.
func (p *parserState) noTextile(text string) string {
	step1 := doSpecial(text, "<notextile>", "</notextile>", p.fTextile)
	step2 := doSpecial(step1, "==", "==", p.fTextile)
	return step2
}

// code shelves <code>...</code>, @...@, and <pre>...</pre> spans, HTML-
// escaping their contents (and wrapping non-<pre> spans in a fresh <code>
// tag) before shelving.
func (p *parserState) code(text string) string {
	fCode := func(before, inner, after string) string {
		before, after = getSpecialOptions(before, after)
		encoded := encodeHTML(inner, false, false)
		return before + p.shelf.shelve("<code>"+encoded+"</code>") + after
	}
	fPre := func(before, inner, after string) string {
		before, after = getSpecialOptions(before, after)
		encoded := encodeHTML(inner, true, false)
		return before + "<pre>" + p.shelf.shelve(encoded) + "</pre>" + after
	}

	text = doSpecial(text, "<code>", "</code>", fCode)
	text = doSpecial(text, "@", "@", fCode)
	text = doSpecial(text, "<pre>", "</pre>", fPre)
	return text
}

// getHTMLComments shelves the body of every <!-- ... --> comment, leaving
// the comment delimiters themselves in the visible text.
func (p *parserState) getHTMLComments(text string) string {
	return doSpecial(text, "<!--", "-->", func(before, inner, _ string) string {
		return before + "<!--" + p.shelf.shelve(inner) + "-->"
	})
}

// unrestrictURL reverses encodeHTML's escaping on a URL captured while in
// restricted mode (where all input was HTML-encoded up front), so the URL
// can be normalized correctly; normalizing re-applies HTML escaping anyway.
func (p *parserState) unrestrictURL(url string) string {
	if p.cfg.restricted {
		return reverseEncodeHTML(url)
	}
	return url
}

var (
	reRestrictedURLRef   = mustRe(`(?:(?<=^)|(?<=\s))\[(.+)\]((?:` + joinSchemes(restrictedURLSchemes) + `:\/\/|\/)\S+)(?=\s|$)`)
	reUnrestrictedURLRef = mustRe(`(?:(?<=^)|(?<=\s))\[(.+)\]((?:` + joinSchemes(unrestrictedURLSchemes) + `:\/\/|\/)\S+)(?=\s|$)`)
)

var restrictedURLSchemes = []string{"http", "https", "ftp", "mailto"}
var unrestrictedURLSchemes = []string{"http", "https", "ftp", "mailto", "file", "tel", "callto", "sftp", "data"}

func joinSchemes(schemes []string) string { return strings.Join(schemes, "|") }

// getRefs captures "[flag]http://example.com/" style URL reference
// definitions, recording each under its flag in urlrefs and removing it
// from the visible text.
func (p *parserState) getRefs(text string) string {
	pattern := reUnrestrictedURLRef
	if p.cfg.restricted {
		pattern = reRestrictedURLRef
	}
	return pattern.ReplaceAllStringFunc(text, func(m *rxMatch) string {
		flag := m.GroupN(1)
		url := p.unrestrictURL(m.GroupN(2))
		p.urlrefs[flag] = rawURLString(url)
		return ""
	})
}

// getSpecialOptions strips a matching "[" ... "]" wrapper pair from a
// do_special match's before/after boundary text, so "[==x==]" doesn't leave
// stray brackets around the shelved placeholder.
func getSpecialOptions(pre, tail string) (string, string) {
	if pre == "[" && tail == "]" {
		return "", ""
	}
	return pre, tail
}
