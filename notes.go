package textile

import "strings"

// parseNoteDefs handles a "note#label. content" definition line matched
// inside block(). It always returns "" (the definition line produces no
// visible output on its own); everything it learns is stashed against the
// note's label for placeNoteLists/noteRef to pick up later.
func (p *parserState) parseNoteDefs(label, link, att, content string) string {
	note := p.noteOrGet(label)
	if note.id == "" {
		note.id = p.cfg.linkPrefix + itoa(int(p.incrementLinkIndex()))
	}

	// Subsequent definitions of the same label are ignored; only the
	// first one to arrive fills in link/attrs/content.
	noteContent := p.graf(content)
	if !note.hasContent {
		if link != "" {
			note.link = link
			note.hasLink = true
		}
		note.attrs = parseBlockAttrs(att, "", true, p.cfg.restricted).String()
		note.content = noteContent
		note.hasContent = true
	}
	return ""
}

// makeBackRefLink renders the "^N" superscript backlink(s) that precede a
// note's content inside a note list, given the note's own back-link style
// override (info.link) falling back to the notelist's own gLinks style, and
// the cycling start character i.
func makeBackRefLink(info *noteInfo, gLinks string, i rune) string {
	backlinkType := gLinks
	if info.hasLink {
		backlinkType = info.link
	}
	allowInc := !isSym(string(i))

	switch backlinkType {
	case "!":
		return ""
	case "^":
		if len(info.refids) > 0 {
			return "<sup><a href=\"#noteref" + info.refids[0] + "\">" + charCodeToEntity(i) + "</a></sup>"
		}
		return ""
	default:
		var parts []string
		for _, refid := range info.refids {
			sup := "<sup><a href=\"#noteref" + refid + "\">" + charCodeToEntity(i) + "</a></sup>"
			if allowInc {
				i++
			}
			parts = append(parts, sup)
		}
		return strings.Join(parts, " ")
	}
}

func charCodeToEntity(r rune) string {
	return unescape("&#" + itoa(int(r)) + ";")
}

var reNoteList = mustRe(`<p>notelist(` + clsRES + `)(?:\:([\w|` + syms + `]))?([\^!]?)(\+?)\.?[\s]*</p>`)

// placeNoteLists resolves every "notelist(..)" marker in text into an <ol>
// of collected footnotes, ordered by the sequence number assigned when each
// note was referenced via noteRef. Notes that were defined but never
// referenced are appended when the marker carries the "+" extra.
func (p *parserState) placeNoteLists(text string) string {
	if len(p.notes) > 0 {
		ordered := make(map[string]*noteInfo, len(p.notes))
		for _, label := range p.noteOrder {
			info := p.notes[label]
			if info.hasSeq {
				clone := *info
				clone.seq = label
				clone.hasSeq = true
				ordered[info.seq] = &clone
			} else {
				p.unreferencedNotes[label] = info
			}
		}
		// re-key by sequence number, sorted numerically.
		seqs := make([]string, 0, len(ordered))
		for k := range ordered {
			seqs = append(seqs, k)
		}
		sortStrings(seqs)
		p.notes = make(map[string]*noteInfo, len(seqs))
		p.noteOrder = nil
		for _, seq := range seqs {
			p.notes[seq] = ordered[seq]
			p.noteOrder = append(p.noteOrder, seq)
		}
	}

	return reNoteList.ReplaceAllStringFunc(text, func(m *rxMatch) string {
		att := m.GroupN(1)
		gLinks := m.GroupN(3)
		extras := m.GroupN(4)

		startChar := 'a'
		if g2 := m.GroupN(2); g2 != "" {
			startChar = []rune(g2)[0]
		}

		index := gLinks + extras + string(startChar)
		result, cached := p.notelistCache[index]
		if !cached {
			var items []string
			for _, label := range p.noteOrder {
				info := p.notes[label]
				links := makeBackRefLink(info, gLinks, startChar)
				var li string
				if info.hasContent && info.attrs != "" {
					li = "\t\t<li" + info.attrs + ">" + links + "<span id=\"note" + info.id + "\"> </span>" + info.content + "</li>"
				} else {
					li = "\t\t<li>" + links + " Undefined Note [#" + info.seq + "].</li>"
				}
				items = append(items, li)
			}
			if extras == "+" && len(p.unreferencedNotes) > 0 {
				for _, info := range p.unreferencedNotes {
					items = append(items, "\t\t<li"+info.attrs+">"+info.content+"</li>")
				}
			}
			result = strings.Join(items, "\n")
			p.notelistCache[index] = result
		}
		if result == "" {
			return ""
		}
		listAtts := parseBlockAttrs(att, "", true, p.cfg.restricted).String()
		return "<ol" + listAtts + ">\n" + result + "\n\t</ol>"
	})
}

// sortStrings orders decimal digit strings by numeric value (a shorter
// string sorts first; equal lengths compare lexically).
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && (len(s[j-1]) > len(s[j]) || len(s[j-1]) == len(s[j]) && s[j-1] > s[j]); j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

var reFootnoteRef = mustRe(`(?<=\S)\[(` + snipDigit + `+)(!?)\](` + snipSpace + `?)`)

// footnoteRef replaces "[N]" and "[N!]" footnote markers with their
// superscript anchors, assigning each distinct N a stable id on first
// sight.
func (p *parserState) footnoteRef(text string) string {
	return reFootnoteRef.ReplaceAllStringFunc(text, func(m *rxMatch) string {
		matchID := m.GroupN(1)
		nolink := m.GroupN(2)
		space := m.GroupN(3)

		fnAtts := blockHTMLAttrs{{Name: "class", Value: "footnote"}}
		fnID, known := p.footnotes[matchID]
		if !known {
			fnID = p.cfg.linkPrefix + itoa(int(p.incrementLinkIndex()))
			fnAtts.insert("id", "fnrev"+fnID)
			p.footnotes[matchID] = fnID
		}

		linkTag := generateTagStr("a", matchID, []attrPair{{Name: "href", Value: "#fn" + fnID}})
		var supTag string
		if nolink == "!" {
			supTag = generateTagStr("sup", matchID, fnAtts)
		} else {
			supTag = generateTagStr("sup", linkTag, fnAtts)
		}
		return supTag + space
	})
}

var reNoteRef = mustRe(`\[(` + clsRES + `)\#([^\]!]+)([!]?)\]`)

// noteRef resolves "[#label]" note references, assigning each label a
// sequence number the first time it's seen (in document order, independent
// of where the matching definition appears) and recording the generated
// refid so placeNoteLists can later build the backlink.
func (p *parserState) noteRef(text string) string {
	return reNoteRef.ReplaceAllStringFunc(text, func(m *rxMatch) string {
		atts := m.GroupN(1)
		label := m.GroupN(2)
		nolink := m.GroupN(3)

		htmlAtts := parseBlockAttrs(atts, "", true, p.cfg.restricted).htmlAttrs()

		note := p.noteOrGet(label)
		var num string
		if note.hasSeq {
			num = note.seq
		} else {
			num = itoa(p.noteIndex)
			note.seq = num
			note.hasSeq = true
			p.noteIndex++
		}

		refid := p.cfg.linkPrefix + itoa(int(p.incrementLinkIndex()))
		isNoteIDEmpty := note.id == ""
		newID := note.id
		if isNoteIDEmpty {
			newID = p.cfg.linkPrefix + itoa(int(p.incrementLinkIndex()))
		}

		result := "<span id=\"noteref" + refid + "\">" + num + "</span>"
		if nolink != "!" {
			result = "<a href=\"#note" + newID + "\">" + result + "</a>"
		}

		note.refids = append(note.refids, refid)
		if isNoteIDEmpty {
			note.id = newID
		}

		return generateTagStr("sup", result, htmlAtts)
	})
}
