package textile

import (
	"context"
	"strings"
)

var reNormalizeCRLF = mustRe(`\r\n?`)
var reNormalizeBlankLine = mustRe(`(?m)^[ \t]*\n`)
var reFinalBrTag = mustRe(`<br( /)?>(?!\n)`)

// normalizeNewlines collapses CRLF/CR to LF, strips whitespace-only lines
// down to a bare newline, and trims leading/trailing newlines.
func normalizeNewlines(text string) string {
	text = reNormalizeCRLF.ReplaceAll(text, "\n")
	text = reNormalizeBlankLine.ReplaceAll(text, "\n")
	return strings.Trim(text, "\n")
}

// Parse converts Textile-formatted text into an HTML (or XHTML, depending
// on WithHTMLKind) fragment. A Config may be reused for any number of
// concurrent Parse calls; all intermediate state lives on the parserState
// built fresh for this call.
func (c *Config) Parse(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	if c.restricted {
		text = encodeHTML(text, false, false)
	}

	p := newParserState(ctx, c)
	text = normalizeNewlines(text)
	text = strings.ReplaceAll(text, p.cfg.uid, "")

	if c.blockTags {
		text = p.splitBlocks(text)
		text = p.placeNoteLists(text)
	} else {
		text = text + "\n\n"
		text = p.glyphQuotedQuote(text)
		text = p.span(text)
		text = p.glyphs(text)
	}

	text = p.shelf.retrieve(text)
	text = strings.ReplaceAll(text, p.cfg.uid+":glyph:", "")

	text = p.shelf.retrieveTags(text)
	text = p.retrieveURLs(text)

	if c.sanitizer != nil {
		text = c.sanitizer.Sanitize(text)
	}

	brTag := "<br>\n"
	if c.htmlKind == xhtmlKind {
		brTag = "<br />\n"
	}
	text = reFinalBrTag.ReplaceAll(text, brTag)

	return strings.TrimRight(text, "\n")
}
