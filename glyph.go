package textile

import (
	"strconv"
	"strings"
)

// glyphRule is one ordered (pattern, templated-replacement) step in the
// glyph pipeline. Replacement may reference numbered capture groups with
// "$1".."$9", matching the subset of backreference syntax the reference
// implementation's replacement strings actually use.
type glyphRule struct {
	re   *rx
	repl string
}

// curRES matches an optional currency symbol plus spaces; the dimension-sign
// rule allows it in its lookahead before the second operand, so "5 x $3"
// still fires.
var curRES = `(?:[` + snipCur + `]` + snipSpace + `*)?`

func buildGlyphRules(html5 bool) []glyphRule {
	acronymRepl := `<acronym title="$2">$1</acronym>`
	if html5 {
		acronymRepl = `<abbr title="$2">$1</abbr>`
	}
	return []glyphRule{
		// dimension sign
		{mustRe(`(?i)(?<=\b|x)([0-9]+[\])]?['"]? ?)[x]( ?[\[(]?)(?=[+-]?` + curRES + `[0-9]*\.?[0-9]+)`), `$1&#215;$2`},
		// apostrophe's
		{mustRe(`(` + snipWrd + `|\))'(` + snipWrd + `)`), `$1&#8217;$2`},
		// back in '88
		{mustRe(`(` + snipSpace + `)'(\d+` + snipWrd + `?)\b(?![.]?[` + snipWrd + `]*?')`), `$1&#8217;$2`},
		// single opening following an open bracket
		{mustRe(`([(\[{])'(?=\S)`), `$1&#8216;`},
		// single closing
		{mustRe(`(\S)'(?=` + snipSpace + `|` + pnctRES + `|<|$)`), `$1&#8217;`},
		// single opening
		{mustRe(`'`), `&#8216;`},
		// double opening following an open bracket
		{mustRe(`([(\[{])"(?=\S)`), `$1&#8220;`},
		// double closing
		{mustRe(`(\S)"(?=` + snipSpace + `|` + pnctRES + `|<|$)`), `$1&#8221;`},
		// double opening
		{mustRe(`"`), `&#8220;`},
		// ellipsis
		{mustRe(`([^.]?)\.{3}`), `$1&#8230;`},
		// ampersand
		{mustRe(`(\s?)&(\s)`), `$1&amp;$2`},
		// em dash
		{mustRe(`(\s?)--(\s?)`), `$1&#8212;$2`},
		// en dash
		{mustRe(` - `), ` &#8211; `},
		// trademark
		{mustRe(`(?i)(\b ?|` + snipSpace + `|^)[(\[]TM[\])]`), `$1&#8482;`},
		// registered
		{mustRe(`(?i)(\b ?|` + snipSpace + `|^)[(\[]R[\])]`), `$1&#174;`},
		// copyright
		{mustRe(`(?i)(\b ?|` + snipSpace + `|^)[(\[]C[\])]`), `$1&#169;`},
		// 1/2
		{mustRe(`[(\[]1\/2[\])]`), `&#189;`},
		// 1/4
		{mustRe(`[(\[]1\/4[\])]`), `&#188;`},
		// 3/4
		{mustRe(`[(\[]3\/4[\])]`), `&#190;`},
		// degrees
		{mustRe(`[(\[]o[\])]`), `&#176;`},
		// plus/minus
		{mustRe(`[(\[]\+\/-[\])]`), `&#177;`},
		// 3+ uppercase acronym
		{mustRe(`\b([` + snipAbr + `][` + snipACR + `]{2,})\b(?:[(]([^)]*)[)])`), acronymRepl},
	}
}

var html5GlyphRules = buildGlyphRules(true)
var xhtmlGlyphRules = buildGlyphRules(false)

var reGlyphSplitter = mustRe(`(<[\w/!?].*?>)`)

// snipNab matches lowercase letters trailing a run of uppercase ones, used
// to decide how much of a multi-letter acronym candidate to mark.
const snipNab = `\p{Ll}`

// reDyn3Plus flags 3-or-more consecutive uppercase letters as an acronym
// candidate ahead of the final glyph pass, wrapping it in a ":glyph:"
// marked <span class="caps"> so later pipeline stages treat it as opaque
// text instead of re-triggering glyph substitutions inside it.
var reDyn3Plus = mustRe(`(` + snipSpace + `|^|[>(;-])([` + snipAbr + `]{3,})([` + snipNab + `]*)` +
	`(?=` + snipSpace + `|` + pnctRES + `|<|$)(?=[^">]*?(<|$))`)

// applyTemplate expands "$1".."$9" references in repl against m's numbered
// capture groups.
func applyTemplate(m *rxMatch, repl string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		if repl[i] == '$' && i+1 < len(repl) && repl[i+1] >= '0' && repl[i+1] <= '9' {
			n, _ := strconv.Atoi(string(repl[i+1]))
			b.WriteString(m.GroupN(n))
			i++
			continue
		}
		b.WriteByte(repl[i])
	}
	return b.String()
}

// multiReplace applies every rule to text in order, each rule operating on
// the previous rule's output.
func multiReplace(text string, rules []glyphRule, dyn []glyphRule) string {
	for _, rule := range rules {
		text = rule.re.ReplaceAllStringFunc(text, func(m *rxMatch) string {
			return applyTemplate(m, rule.repl)
		})
	}
	for _, rule := range dyn {
		text = rule.re.ReplaceAllStringFunc(text, func(m *rxMatch) string {
			return applyTemplate(m, rule.repl)
		})
	}
	return text
}

// glyphs runs the glyph-substitution pipeline: smart quotes, dashes,
// dimension signs, trademark/registered/copyright marks, fractions, and
// multi-letter acronym wrapping. Angle-bracketed tags are left untouched by
// splitting the text around them first.
func (p *parserState) glyphs(text string) string {
	text = strings.TrimRight(text, "\n")

	rules := xhtmlGlyphRules
	if p.cfg.htmlKind == html5Kind {
		rules = html5GlyphRules
	}

	segments := reGlyphSplitter.SplitWithCapture(text)
	var b strings.Builder
	for i, seg := range segments {
		if i%2 == 0 {
			if !p.cfg.restricted {
				seg = reLoneAmp.ReplaceAll(seg, "&amp;")
				seg = strings.ReplaceAll(seg, "<", "&lt;")
				seg = strings.ReplaceAll(seg, ">", "&gt;")
			}
			seg = multiReplace(seg, rules, p.cfg.dynGlyphRules)
		}
		b.WriteString(seg)
	}
	return b.String()
}
