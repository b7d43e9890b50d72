package textile

import "strings"

// Shared regular-expression fragments, translated from the reference
// implementation's regex_snips module. PHP/Python regex engines assign
// slightly different meaning to some character classes than Rust/.NET
// engines do, so a handful of these differ subtly from their upstream
// PHP-Textile ancestor in order to behave correctly under regexp2.
const (
	classRES    = `(?:\([^)\n]+\))` // no classes/ids spanning newlines
	styleRES    = `(?:\{[^}\n]+\})` // or styles
	languageRES = `(?:\[[^\]\n]+\])`

	snipACR   = `\p{Lu}\p{Nd}`
	snipDigit = `\p{N}`
	snipSpace = `\s`
	snipWrd   = `(?:\p{L}|\p{M}|\p{N}|\p{Pc})`
	snipCur   = `\p{Sc}`
	snipChar  = `\S`

	valignRES = `[\-^~]`
	halignRES = `(?:\<(?!>)|(?<!<)\>|\<\>|\=|[()]+(?! ))`

	upperChars = `\p{Lu}`
	snipAbr    = upperChars
)

// pnctRES is the Textile "punctuation" character class; built from raw
// string segments to keep the embedded backtick literal.
const pnctRES = pnctPart1 + "`" + pnctPart2

const pnctPart1 = `[-!"#$%&()*+,/:;<=>?@\'\[\\\]\.^_`
const pnctPart2 = `{|}~]`

var clsRES = "(?:" +
	classRES + "(?:" + languageRES + "(?:" + styleRES + ")?|" + styleRES + "(?:" + languageRES + ")?)?|" +
	languageRES + "(?:" + classRES + "(?:" + styleRES + ")?|" + styleRES + "(?:" + classRES + ")?)?|" +
	styleRES + "(?:" + classRES + "(?:" + languageRES + ")?|" + languageRES + "(?:" + classRES + ")?)?" +
	")?"

var alignRES = "(?:" + halignRES + "|" + valignRES + ")*"

var reLoneAmp = mustRe(`(?i)&(?!#[0-9]+;|#x[a-f0-9]+;|[a-z][a-z0-9]*;)`)
var reDivider = mustRe(`(?si)^(?:</?(br|hr|img)(?:\s[^<>]*?|/?)>(?:</\1\s*?>)?)+$`)
var reEntity = mustRe(`(&(?:amp|lt|gt|quot|#39|#13|#10|#9);)`)

var reUnwrappable = mustRe(`(?si)</?(?:` + blockContent + `)(?:\s[^<>]*?|/?)>`)
var reWrapped = mustRe(`(?si)^</?([^\s<>/]+)[^<>]*?>(?:.*</\1\s*?>)?$`)
var rePhrasing = mustRe(`(?i)^(?:` + phrasingContent + `)$`)

// syms is the set of symbol glyphs accepted as a notelist's backlink start
// character; unlike letters and digits, a symbol is not incremented between
// successive backlinks, so every backlink repeats it.
const syms = "¤§µ¶†‡•∗∴◊♠♣♥♦"

func isSym(s string) bool {
	return strings.ContainsAny(s, syms) && len([]rune(s)) == 1
}
