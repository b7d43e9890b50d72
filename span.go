package textile

import "strings"

const spanPnct = `.,"'?!;:‹›«»„“”‚‘’`

// spanTagName maps a span delimiter to the HTML tag it wraps.
var spanTagName = map[string]string{
	"*":  "strong",
	"**": "b",
	"??": "cite",
	"_":  "em",
	"__": "i",
	"-":  "del",
	"%":  "span",
	"+":  "ins",
	"~":  "sub",
	"^":  "sup",
}

func spanRE(tag string) *rx {
	pattern := `(?<pre>^|(?<=[` + snipSpace + `>` + spanPnct + `\(])|[{\[])` +
		`(?<tag>` + tag + `)(?!` + tag + `)` +
		`(?<atts>` + clsRES + `)` +
		`(?!` + tag + `)` +
		`(?::(?<cite>\S+[^` + tag + `]` + snipSpace + `))?` +
		`(?<content>[^` + snipSpace + tag + `]+|\S.*?[^\s` + tag + `\n])` +
		`(?<end>[` + spanPnct + `]*)` +
		tag +
		`(?<tail>$|[\[\]}<]|(?=[` + spanPnct + `]{1,2}[^0-9]|\s|\)))`
	return mustRe(pattern)
}

// spanTagPatterns is evaluated in order: double-char delimiters (**, ??,
// __) must be tried before their single-char prefix (*, _) or the longer
// form would never match.
var spanTagPatterns = []*rx{
	spanRE(`\*\*`), spanRE(`\*`), spanRE(`\?\?`),
	spanRE(`\-`), spanRE(`__`), spanRE(`_`), spanRE(`%`),
	spanRE(`\+`), spanRE(`~`), spanRE(`\^`),
}

// span resolves Textile's inline phrase markup (*strong*, _em_, %span%,
// etc), recursing into its own content up to maxSpanDepth, and parking the
// generated open/close tags behind shelf placeholders so nested matches
// keep working against text that still contains an unresolved outer span.
func (p *parserState) span(text string) string {
	p.shelf.spanDepth++
	canReplace := p.shelf.spanDepth <= p.cfg.maxSpanDepth

	if canReplace {
		for _, pattern := range spanTagPatterns {
			text = pattern.ReplaceAllStringFunc(text, func(m *rxMatch) string {
				tagDelim := m.Group("tag")
				tag, ok := spanTagName[tagDelim]
				if !ok {
					return m.String()
				}
				atts := m.Group("atts")
				htmlAtts := parseBlockAttrs(atts, "", true, p.cfg.restricted).htmlAttrs()
				if m.HasGroup("cite") {
					htmlAtts.insert("cite", strings.TrimSpace(m.Group("cite")))
				}
				content := p.span(m.Group("content"))
				end := m.Group("end")
				pre, tail := getSpecialOptions(m.Group("pre"), m.Group("tail"))

				openTag := "<" + tag + htmlAtts.String() + ">"
				closeTag := "</" + tag + ">"
				openID, closeID := p.shelf.storeTags(openTag, closeTag)
				return pre + openID + content + end + closeID + tail
			})
		}
	}

	p.shelf.spanDepth--
	return text
}
