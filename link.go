package textile

import "strings"

var reLinkSlice = mustRe(`":(?=` + snipChar + `)`)
var reLinkStartNoSpace = mustRe(`^\S|=$`)
var reLinkEndNoSpace = mustRe(`\S$`)

// markStartOfLinks slices text on every `":<not space>` boundary (the
// marker between a link's quoted text and its URL) and, scanning each
// slice right-to-left over its '"' characters, finds the quote that
// balances to become the true start of the link text. The found boundary
// is rewritten as a "{uid}linkStartMarker:" token for replaceLinks to
// anchor on, so a later '"' that merely appears inside ordinary prose
// can't be mistaken for a link start.
func (p *parserState) markStartOfLinks(text string) string {
	slices := reLinkSlice.Split(text)
	if len(slices) <= 1 {
		return text
	}

	lastSlice := slices[len(slices)-1]
	slices = slices[:len(slices)-1]

	var output []string
	for _, s := range slices {
		if !strings.Contains(s, "\"") {
			output = append(output, s)
			continue
		}

		possibleStartQuotes := strings.Split(s, "\"")

		possibility := possibleStartQuotes[len(possibleStartQuotes)-1]
		possibleStartQuotes = possibleStartQuotes[:len(possibleStartQuotes)-1]

		balanced := 0
		var linkparts []string
		i := 0

		for {
			linkparts = append(linkparts, possibility)

			if possibility != "" {
				if reLinkStartNoSpace.MatchString(possibility) {
					balanced--
				}
				if reLinkEndNoSpace.MatchString(possibility) {
					balanced++
				}
				if len(possibleStartQuotes) > 0 {
					possibility = possibleStartQuotes[len(possibleStartQuotes)-1]
					possibleStartQuotes = possibleStartQuotes[:len(possibleStartQuotes)-1]
				}
			} else {
				if i == 0 {
					balanced++
				} else {
					balanced--
				}
				i++
				if len(possibleStartQuotes) > 0 {
					possibility = possibleStartQuotes[len(possibleStartQuotes)-1]
					possibleStartQuotes = possibleStartQuotes[:len(possibleStartQuotes)-1]
				} else {
					linkparts = linkparts[:len(linkparts)-1]
					break
				}
				if possibility == "" || strings.HasSuffix(possibility, " ") {
					balanced = 0
				}
			}

			if balanced <= 0 {
				possibleStartQuotes = append(possibleStartQuotes, possibility)
				break
			}
		}

		for i, j := 0, len(linkparts)-1; i < j; i, j = i+1, j-1 {
			linkparts[i], linkparts[j] = linkparts[j], linkparts[i]
		}
		linkContent := strings.Join(linkparts, "\"")
		preLink := strings.Join(possibleStartQuotes, "\"")
		output = append(output, preLink+p.cfg.uid+"linkStartMarker:\""+linkContent)
	}

	output = append(output, lastSlice)
	return strings.Join(output, "\":")
}

var reLinkBlock = mustRe(`^(?<atts>` + clsRES + `)` + snipSpace + `*(?<text>(!.+!)|.+?)(?:\((?<title>[^)]+?)\))?$`)

// links finds and converts "text":url style inline links, shelving the
// rendered <a> tag.
func (p *parserState) links(text string) string {
	marked := p.markStartOfLinks(text)
	return p.replaceLinks(marked)
}

var reLinkCloseBracket = mustRe(`^(?<url>.*\])(?<tight>\[.*?)$`)
var reLinkTrailingBracket = mustRe(`^(?<url>.*\])(?!=)(?<end>.*?)$`)
var reLinkClosingTag = mustRe(`^(?<urlchars>.*)(?<tag></[a-z]+)$`)

// replaceLinks resolves every "{uid}linkStartMarker:"..."":url" token
// markStartOfLinks produced into a finished <a> tag, looping until a pass
// makes no further progress (nested links inside link text can require more
// than one pass to fully resolve).
func (p *parserState) replaceLinks(text string) string {
	needle := p.cfg.uid + "linkStartMarker:"
	pattern := mustRe(`(?<pre>\[)?` + regexEscape(needle) + `"(?<inner>(?:.|\n)*?)":(?<urlx>[^\s|^'"*]*)`)

	prev := text
	for strings.Contains(prev, needle) {
		next := pattern.ReplaceAllStringFunc(prev, func(m *rxMatch) string {
			return p.fLink(m, needle)
		})
		if next == prev {
			break
		}
		prev = next
	}
	return prev
}

func (p *parserState) fLink(m *rxMatch, needle string) string {
	whole := m.String()
	pre := m.Group("pre")
	inner := strings.ReplaceAll(m.Group("inner"), "\n", p.cfg.properBrTag())
	url := m.Group("urlx")

	if inner == "" {
		return pre + "\"" + inner + "\":" + url
	}

	var atts, linkText, title string
	if bm := reLinkBlock.FindMatch(inner); bm != nil {
		mText := bm.Group("text")
		atts = bm.Group("atts")
		title = bm.Group("title")
		if mText == "" {
			linkText = inner
		} else {
			linkText = mText
		}
	} else {
		linkText = inner
	}

	var pop, tight string
	csbCount := strings.Count(url, "]")
	counts := map[rune]int{}
	countsSet := map[rune]bool{}
	counts[']'] = csbCount
	countsSet[']'] = true

	if csbCount > 0 {
		if um := reLinkCloseBracket.FindMatch(url); um != nil {
			url = um.Group("url")
			tight = um.Group("tight")
		}
	}
	if csbCount > 0 {
		if um := reLinkTrailingBracket.FindMatch(url); um != nil {
			url = um.Group("url")
			tight = um.Group("end") + tight
		}
	}

	first := true
	urlChars := []rune(url)

	for {
		popped := false
		if len(urlChars) > 0 {
			c := urlChars[len(urlChars)-1]
			urlChars = urlChars[:len(urlChars)-1]
			switch c {
			case '!', '?', ':', ';', '.', ',':
				pop = string(c) + pop
				popped = true
			case '>':
				urlLeft := string(urlChars)
				if tm := reLinkClosingTag.FindMatch(urlLeft); tm != nil {
					urlChars = []rune(tm.Group("urlchars"))
					pop = tm.Group("tag") + string(c) + pop
					popped = true
				} else {
					urlChars = append(urlChars, c)
				}
			case ']':
				if !countsSet['['] {
					counts['['] = strings.Count(url, "[")
					countsSet['['] = true
				}
				if counts['['] == counts[']'] {
					urlChars = append(urlChars, c)
				} else {
					popped = true
					counts[']']--
					if first {
						pre = ""
					}
				}
			case ')':
				if !countsSet[')'] {
					counts['('] = strings.Count(url, "(")
					counts[')'] = strings.Count(url, ")")
					countsSet['('] = true
					countsSet[')'] = true
				}
				if counts['('] == counts[')'] {
					urlChars = append(urlChars, c)
				} else {
					pop = string(c) + pop
					counts[')']--
					popped = true
				}
			default:
				urlChars = append(urlChars, c)
			}
		}
		first = false
		if !popped {
			break
		}
	}

	url = string(urlChars)
	url = p.unrestrictURL(url)
	parsed := parseURL(url)

	var allowed []string
	if p.cfg.restricted {
		allowed = restrictedURLSchemes
	} else {
		allowed = unrestrictedURLSchemes
	}
	schemeInList := containsString(allowed, parsed.Scheme())
	if parsed.Scheme() != "" && !schemeInList {
		return strings.ReplaceAll(whole, needle, "")
	}

	if linkText == "$" {
		if schemeInList {
			linkText = makeURLReadable(url)
		} else if rurl, ok := p.urlrefs[url]; ok {
			linkText = encodeHTML(makeURLReadable(rurl.Source()), true, true)
		} else {
			linkText = url
		}
	}

	linkText = strings.TrimSpace(linkText)
	title = encodeHTML(title, false, false)

	if !p.cfg.noImage {
		linkText = p.image(linkText)
	}
	linkText = p.span(linkText)
	linkText = p.glyphs(linkText)

	normalizedURL := parsed.String()
	urlID := p.shelf.shelveURL(normalizedURLString(normalizedURL).ToHTMLString())

	attributes := parseBlockAttrs(atts, "", true, p.cfg.restricted).htmlAttrs()
	attributes.insert("href", urlID)
	if title != "" {
		attributes.insert("title", p.shelf.shelve(title))
	}
	if p.cfg.rel != "" {
		attributes.insert("rel", p.cfg.rel)
	}

	aText := generateTagStr("a", linkText, attributes)
	aShelfID := p.shelf.shelve(aText)
	return pre + aShelfID + pop + tight
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// isValidURL reports whether url's scheme (if it has one) is on the
// current mode's allowlist; a schemeless (relative) URL is always valid.
func (p *parserState) isValidURL(url string) bool {
	scheme := parseURL(url).Scheme()
	if scheme == "" {
		return true
	}
	allowed := unrestrictedURLSchemes
	if p.cfg.restricted {
		allowed = restrictedURLSchemes
	}
	return containsString(allowed, scheme)
}

// makeURLReadable strips a leading scheme (and "//" if present) from url,
// used to render a bare "$"-flagged link's visible text.
func makeURLReadable(url string) string {
	if idx := strings.Index(url, "://"); idx >= 0 {
		return url[idx+3:]
	}
	if idx := strings.Index(url, ":"); idx >= 0 {
		return url[idx+1:]
	}
	return url
}
