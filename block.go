package textile

import "strings"

const blockTagsRES = `bq|bc|notextile|pre|h[1-6]|fn\d+|p|###`
const blockTagsLiteRES = `bq|bc|p`

func textileBlockRE(blockTagsPattern string) *rx {
	return mustRe(`(?s)^(?<tag>` + blockTagsPattern + `)(?<atts>` + alignRES + clsRES + alignRES + `)\.(?<ext>\.?)` +
		`(?::(?<cite>\S+))? (?<graf>.*)$`)
}

var (
	reTextileTag      = textileBlockRE(blockTagsRES)
	reTextileLightTag = textileBlockRE(blockTagsLiteRES)
	reMultiEndline    = mustRe(`(\n{2,})`)
	reBrTag           = mustRe(`(?i)<br\s*?/?>`)
	reFnID            = mustRe(`fn(?<fnid>` + snipDigit + `+)`)
	reCodeLang        = mustRe(`^[a-zA-Z0-9_-]+$`)
	reNoteDef         = mustRe(`^note#(?<label>[^%<*!@#^(\[{ ` + snipSpace + `.]+)(?<link>[*!^]?)(?<att>` + clsRES + `)\.?[` + snipSpace + `]+(?<content>.*)$`)
)

// block is one rendered Textile block and the wrapper tags that surround
// it: outer (e.g. <blockquote>) and inner (e.g. <p>). eat marks a block
// that produces no visible output (a note definition or a "###" comment
// block), whose surrounding whitespace should also be swallowed.
type block struct {
	outerOpening string
	outerClosing string
	innerOpening string
	innerClosing string
	content      string
	eat          bool
}

// newBlock renders a single Textile block tag (bq, bc, pre, notextile,
// h1-h6, p, fn<N>, or ### comment) into its wrapper tags and parsed
// content.
func newBlock(p *parserState, tag, attrsRaw string, cite string, hasCite bool, content string) block {
	newContent := content
	eat := false
	attrs := parseBlockAttrs(attrsRaw, "", true, p.cfg.restricted)
	origHTMLAttrs := attrs.htmlAttrs()

	var innerOpening, innerClosing, outerOpening, outerClosing string

	if tag == "p" {
		notedef := reNoteDef.ReplaceAllStringFunc(newContent, func(m *rxMatch) string {
			return p.parseNoteDefs(m.Group("label"), m.Group("link"), m.Group("att"), m.Group("content"))
		})
		if notedef == "" {
			return block{eat: true, content: notedef}
		}
		newContent = notedef
	}

	newTag := tag
	if m := reFnID.FindMatch(tag); m != nil {
		fnidLabel := m.Group("fnid")
		fnid, known := p.footnotes[fnidLabel]
		if !known {
			fnid = p.cfg.linkPrefix + itoa(int(p.incrementLinkIndex()))
		}

		var supHTMLAttrs blockHTMLAttrs
		if attrs.class == "" {
			attrs.class = "footnote"
		}
		if attrs.id == "" {
			attrs.id = "fn" + fnid
		} else {
			supHTMLAttrs.insert("id", "fn"+fnid)
		}

		var sup string
		if !strings.Contains(attrsRaw, "^") {
			sup = generateTagStr("sup", fnidLabel, supHTMLAttrs)
		} else {
			fnrev := generateTagStr("a", fnidLabel, []attrPair{{Name: "href", Value: "#fnrev" + fnid}})
			sup = generateTagStr("sup", fnrev, supHTMLAttrs)
		}
		newContent = sup + " " + newContent
		newTag = "p"
	}

	switch newTag {
	case "bq":
		htmlAttrs := attrs.htmlAttrs()
		if hasCite {
			shelvedURL := p.shelf.shelveURL(rawURLString(p.unrestrictURL(cite)).ToHTMLString())
			htmlAttrs.insert("cite", shelvedURL)
		}
		outerOpening = "<blockquote" + htmlAttrs.String() + ">\n"
		innerOpening = "\t<p" + origHTMLAttrs.String() + ">"
		innerClosing = "</p>"
		outerClosing = "\n</blockquote>"
	case "bc":
		newContent = p.shelf.shelve(encodeHTML(newContent, true, false))
		var innerAtts blockHTMLAttrs
		if attrs.lang != "" {
			lang := attrs.lang
			attrs.lang = ""
			if reCodeLang.MatchString(lang) {
				innerAtts = blockAttrs{class: lang}.htmlAttrs()
			}
		}
		outerAtts := attrs.htmlAttrs()
		outerOpening = "<pre" + outerAtts.String() + "><code" + innerAtts.String() + ">"
		outerClosing = "</code></pre>"
	case "pre":
		newContent = p.shelf.shelve(encodeHTML(newContent, true, false))
		outerOpening = "<pre" + attrs.htmlAttrs().String() + ">"
		outerClosing = "</pre>"
	case "notextile":
		newContent = p.shelf.shelve(newContent)
	case "###":
		eat = true
	default:
		innerOpening = "<" + newTag + attrs.htmlAttrs().String() + ">"
		innerClosing = "</" + newTag + ">"
	}

	if !eat {
		newContent = p.graf(newContent)
	} else {
		newContent = ""
	}

	return block{
		outerOpening: outerOpening,
		outerClosing: outerClosing,
		innerOpening: innerOpening,
		innerClosing: innerClosing,
		eat:          eat,
		content:      newContent,
	}
}

// splitBlocks implements Textile's block splitter: input is split on blank
// lines, each chunk is matched against the block-tag grammar (or, lite
// mode, the lite subset), and an "extended" block (tag followed by "..")
// keeps absorbing subsequent untagged chunks into the same wrapper until
// another tagged block or the end of input closes it.
func (p *parserState) splitBlocks(text string) string {
	tagPattern := reTextileTag
	if p.cfg.lite {
		tagPattern = reTextileLightTag
	}

	var out []string
	var whitespace string
	eatWhitespace := false
	var ext, tag, atts, cite string
	hasCite := false
	var lastOuterClosing string
	eat := false

	blocks := reMultiEndline.SplitWithCapture(text)
	for _, blk := range blocks {
		if strings.TrimSpace(blk) == "" {
			if !eatWhitespace {
				whitespace += blk
			}
			continue
		}

		if ext == "" {
			tag, atts, cite, hasCite, eat = "p", "", "", false, false
		}

		eatWhitespace = false
		isAnonymousBlock := true
		var blockOutput string

		if m := tagPattern.FindMatch(blk); m != nil {
			isAnonymousBlock = false
			if ext != "" && len(out) > 0 {
				out[len(out)-1] += lastOuterClosing
			}
			tag = m.Group("tag")
			atts = m.Group("atts")
			ext = m.Group("ext")
			cite = m.Group("cite")
			hasCite = m.HasGroup("cite")
			content := m.Group("graf")

			bdata := newBlock(p, tag, atts, cite, hasCite, content)
			eat = bdata.eat
			lastOuterClosing = bdata.outerClosing

			blockOutput = bdata.outerOpening + bdata.innerOpening + bdata.content + bdata.innerClosing
			if ext == "" {
				blockOutput += bdata.outerClosing
			}
		} else {
			rawBlock := reDivider.MatchString(blk)
			if ext != "" || (!strings.HasPrefix(blk, " ") && !rawBlock) {
				bdata := newBlock(p, tag, atts, cite, hasCite, blk)
				eat = bdata.eat
				lastOuterClosing = bdata.outerClosing
				if bdata.content == "" || (tag == "p" && !hasRawText(bdata.content)) {
					blockOutput = bdata.content
				} else {
					blockOutput = bdata.innerOpening + bdata.content + bdata.innerClosing
				}
			} else if rawBlock && p.cfg.restricted {
				blockOutput = p.shelf.shelve(encodeHTML(blk, p.cfg.restricted, false))
			} else if rawBlock {
				blockOutput = p.shelf.shelve(blk)
			} else {
				blockOutput = p.graf(blk)
			}
		}

		blockOutput = p.doPBr(blockOutput)
		blockOutput = whitespace + reBrTag.ReplaceAll(blockOutput, p.cfg.properBrTag())

		if ext != "" && isAnonymousBlock {
			if len(out) > 0 {
				out[len(out)-1] += blockOutput
			}
		} else if !eat {
			out = append(out, blockOutput)
		}

		if eat {
			eatWhitespace = true
		} else {
			whitespace = ""
		}
	}
	if ext != "" && len(out) > 0 {
		out[len(out)-1] += lastOuterClosing
	}
	return strings.Join(out, "")
}

var reTagBr = mustRe(`(?i)(.+)(?!(?<=</dd>|</dt>|</li>|<br/>)|(?<=<br>)|(?<=<br />))\n(?![\s|])`)

// doTagBr rewrites bare newlines inside a single <tag>...</tag> span into
// explicit <br> tags, skipping newlines that already sit next to a break
// or a list-item/definition boundary.
func (p *parserState) doTagBr(tag, input string) string {
	pattern := mustRe(`(?s)<(` + regexEscape(tag) + `)([^>]*?)>(.*)(</` + regexEscape(tag) + `>)`)
	return pattern.ReplaceAllStringFunc(input, func(m *rxMatch) string {
		brTag := "<br>"
		if p.cfg.htmlKind == xhtmlKind {
			brTag = "<br />"
		}
		content := reTagBr.ReplaceAll(m.GroupN(3), "$1"+brTag)
		return "<" + m.GroupN(1) + m.GroupN(2) + ">" + content + m.GroupN(4)
	})
}

var (
	rePTag      = mustRe(`(?s)<(p|h[1-6])([^>]*?)>(.*)(</\1>)`)
	reBrNewline = mustRe(`(?i)<br[ ]*/?>` + snipSpace + `*\n(?![` + snipSpace + `|])`)
	reNewline   = mustRe(`\n(?![\s|])`)
)

// doPBr is doTagBr's specialization for <p>/<h1>-<h6>: an existing <br>
// followed by a newline and a line that does not start with whitespace or
// "|" is collapsed back to a bare newline first, so the following
// newline-to-<br> substitution doesn't double up.
func (p *parserState) doPBr(input string) string {
	return rePTag.ReplaceAllStringFunc(input, func(m *rxMatch) string {
		text := reBrNewline.ReplaceAll(m.GroupN(3), "\n")
		text = reNewline.ReplaceAll(text, p.cfg.properBrTag())
		return "<" + m.GroupN(1) + m.GroupN(2) + ">" + text + m.GroupN(4)
	})
}

const quoteStarts = "\"'({[«»‹›„‚‘”"

var reGlyphQuotedQuote = mustRe(` (?<pre>[` + regexEscape(quoteStarts) + `])(?<quoted>"?|"[^"]+)(?<post>.) `)

func matchingQuote(q rune) (rune, bool) {
	switch q {
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case '(':
		return ')', true
	case '{':
		return '}', true
	case '[':
		return ']', true
	case '«':
		return '»', true
	case '»':
		return '«', true
	case '‹':
		return '›', true
	case '›':
		return '‹', true
	case '„':
		return '“', true
	case '‚':
		return '‘', true
	case '‘':
		return '’', true
	case '”':
		return '“', true
	default:
		return 0, false
	}
}

// glyphQuotedQuote treats a word-like thing wrapped in matching bracket or
// quote characters, surrounded by spaces, as a single opaque "quoted
// quote" glyph, shelving the whole span so the generic quote-glyph rules
// in glyphs() don't also try to reinterpret its inner punctuation.
func (p *parserState) glyphQuotedQuote(text string) string {
	return reGlyphQuotedQuote.ReplaceAllStringFunc(text, func(m *rxMatch) string {
		preRunes := []rune(m.Group("pre"))
		postRunes := []rune(m.Group("post"))
		if len(preRunes) == 0 || len(postRunes) == 0 {
			return m.String()
		}
		preChar, postChar := preRunes[0], postRunes[0]
		want, ok := matchingQuote(preChar)
		if !ok || postChar != want {
			return m.String()
		}

		var newPre string
		switch preChar {
		case '"':
			newPre = "&#8220;"
		case '\'':
			newPre = "&#8216;"
		case ' ':
			newPre = "&nbsp;"
		default:
			newPre = string(preChar)
		}
		var newPost string
		switch postChar {
		case '"':
			newPost = "&#8221;"
		case '\'':
			newPost = "&#8217;"
		case ' ':
			newPost = "&nbsp;"
		default:
			newPost = string(postChar)
		}

		found := m.Group("quoted")
		switch {
		case len([]rune(found)) > 1:
			found = strings.TrimRight(p.glyphs(found), "\n")
		case found == "\"":
			found = "&quot;"
		}
		return p.shelf.shelve(" " + newPre + found + newPost + " ")
	})
}

// graf runs the full inline-phrase pipeline over a single block's content:
// raw-HTML and code shelving, comment shelving, URL reference capture,
// quoted-quote glyphing, link and image recognition, tables and lists,
// inline spans, footnote/note references, and finally typographic glyph
// substitution.
func (p *parserState) graf(text string) string {
	lite := p.cfg.lite
	if !lite {
		text = p.noTextile(text)
	}
	if !lite {
		text = p.code(text)
	}
	text = p.getHTMLComments(text)
	text = p.getRefs(text)
	text = p.glyphQuotedQuote(text)
	text = p.links(text)
	if p.cfg.imagesEnabled() {
		text = p.image(text)
	}
	if !lite {
		text = p.table(text)
	}
	if !lite {
		text = p.redclothList(text)
	}
	if !lite {
		text = p.textileLists(text)
	}
	text = p.span(text)
	text = p.footnoteRef(text)
	text = p.noteRef(text)
	text = p.glyphs(text)
	return strings.TrimRight(text, "\n")
}
