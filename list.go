package textile

import (
	"strconv"
	"strings"
)

var (
	reRedclothList    = mustRe(`(?ms)^([-]+` + clsRES + `[ .].*:=.*)$(?![^-])`)
	reRedclothSplit   = mustRe(`(?m)\n(?=[-])`)
	reRedclothAttrs   = mustRe(`(?ms)^[-]+(` + clsRES + `)\.? (.*)$`)
	reRedclothTermDef = mustRe(`(?s)^(.*?)` + snipSpace + `*:=(.*?)` + snipSpace + `*(=:|:=)?` + snipSpace + `*$`)
)

// redclothList turns a run of "- term := definition =:" lines into a
// definition list, recursing each term/definition through graf.
func (p *parserState) redclothList(text string) string {
	return reRedclothList.ReplaceAllStringFunc(text, func(cap *rxMatch) string {
		var out []string
		for _, line := range reRedclothSplit.SplitWithCapture(cap.String()) {
			m := reRedclothAttrs.FindMatch(line)
			if m == nil {
				continue
			}
			atts := m.GroupN(1)
			content := strings.TrimSpace(m.GroupN(2))
			htmlAtts := parseBlockAttrs(atts, "", true, p.cfg.restricted).String()

			var term, definition string
			if xm := reRedclothTermDef.FindMatch(content); xm != nil {
				term = strings.TrimSpace(xm.GroupN(1))
				definition = strings.Trim(xm.GroupN(2), " ")
			} else {
				term = content
			}

			if len(out) == 0 {
				var dlTag string
				if definition == "" {
					dlTag = "<dl" + htmlAtts + ">"
				} else {
					dlTag = "<dl>"
				}
				out = append(out, dlTag)
			}

			if term != "" {
				newlineStartedDef := strings.HasPrefix(definition, "\n")
				definition = strings.ReplaceAll(strings.TrimSpace(definition), "\n", p.cfg.properBrTag())
				if newlineStartedDef {
					definition = "<p>" + definition + "</p>"
				}
				term = strings.ReplaceAll(term, "\n", p.cfg.properBrTag())

				term = p.graf(term)
				definition = p.graf(definition)

				out = append(out, "\t<dt"+htmlAtts+">"+term+"</dt>")
				if definition != "" {
					out = append(out, "\t<dd>"+definition+"</dd>")
				}
			}
		}
		if len(out) == 0 {
			return cap.String()
		}
		out = append(out, "</dl>")
		return strings.Join(out, "\n")
	})
}

var (
	reTextileLists  = mustRe(`(?ms)^((?:[*;:]+|[*;:#]*#(?:_|` + snipDigit + `+)?)` + clsRES + `[ .].*)$(?![^#*;:])`)
	reListSplit     = mustRe(`(?m)\n(?=[*#;:])`)
	reListLineParse = mustRe(`(?s)^(?<tl>[#*;:]+)(?<st>_|` + snipDigit + `+)?(?<atts>` + clsRES + `)[ .](?<content>.*)$`)
	reListStart     = mustRe(`^([#*]+)`)
)

func listType(tl string) string {
	m := reListStart.FindMatch(tl)
	if m == nil {
		return "dl"
	}
	if strings.HasSuffix(m.GroupN(1), "#") {
		return "ol"
	}
	return "ul"
}

type listItem struct {
	atts    string
	content string
	level   int
	tl      string
	st      string
}

// textileLists renders a run of "* foo\n** bar\n# one\n# two" lines into
// nested <ul>/<ol>/<dl> lists, tracking per-marker ordered-list numbering
// across calls via olStarts.
func (p *parserState) textileLists(text string) string {
	return reTextileLists.ReplaceAllStringFunc(text, func(cap *rxMatch) string {
		whole := cap.String()
		var items []listItem
		for _, line := range reListSplit.SplitWithCapture(whole) {
			if m := reListLineParse.FindMatch(line); m != nil {
				tl := m.Group("tl")
				items = append(items, listItem{
					tl:      tl,
					atts:    m.Group("atts"),
					content: m.Group("content"),
					level:   len([]rune(tl)),
					st:      m.Group("st"),
				})
			} else if len(items) > 0 {
				last := &items[len(items)-1]
				last.content += "\n" + line
			}
		}
		if len(items) == 0 || items[0].level > 1 {
			return whole
		}

		lists := make(map[string]listMarker)
		var listOrder []string

		var out []string
		var litem string
		var prev *listItem

		for index := range items {
			item := &items[index]
			content := strings.TrimSpace(item.content)
			ltype := listType(item.tl)
			switch {
			case strings.Contains(item.tl, ";"):
				litem = "dt"
			case strings.Contains(item.tl, ":"):
				litem = "dd"
			default:
				litem = "li"
			}
			var next *listItem
			if index+1 < len(items) {
				next = &items[index+1]
			}
			showItem := content != ""

			atts := parseBlockAttrs(item.atts, "", true, p.cfg.restricted).htmlAttrs()

			if ltype == "ol" {
				startValue, ok := p.olStarts[item.tl]
				if !ok {
					startValue = 1
				}
				if prev == nil || item.level > prev.level {
					if item.st == "" {
						startValue = 1
					} else if item.st != "_" {
						if n, err := strconv.Atoi(item.st); err == nil {
							startValue = n
						}
					}
					if item.st != "" {
						atts.insert("start", itoa(startValue))
					}
				}
				if showItem {
					startValue++
				}
				p.olStarts[item.tl] = startValue
			}

			if prev != nil && strings.Contains(prev.tl, ";") && strings.Contains(item.tl, ":") {
				setListOrder(&listOrder, lists, item.tl, listMarker{kind: 2})
			}

			tabs := strings.Repeat("\t", item.level-1)
			var line string
			if _, ok := lists[item.tl]; !ok {
				setListOrder(&listOrder, lists, item.tl, listMarker{kind: 1})
				if showItem {
					line = tabs + "<" + ltype + atts.String() + ">\n" + tabs + "\t<" + litem + atts.String() + ">" + content
				} else {
					line = tabs + "<" + ltype + atts.String() + ">"
				}
			} else if showItem {
				line = tabs + "\t<" + litem + atts.String() + ">" + content
			}

			if showItem && (next == nil || next.level <= item.level) {
				line += "</" + litem + ">"
			}

			for i := len(listOrder) - 1; i >= 0; i-- {
				k := listOrder[i]
				v := lists[k]
				indent := len([]rune(k))
				if next == nil || indent > next.level {
					if v.kind != 2 {
						line += "\n" + tabs + "</" + listType(k) + ">"
						if indent > 1 {
							line += "</" + litem + ">"
						}
					}
					delete(lists, k)
					listOrder = append(listOrder[:i], listOrder[i+1:]...)
				}
			}

			prev = item
			out = append(out, line)
		}

		merged := strings.Join(out, "\n")
		return p.doTagBr(litem, merged)
	})
}

// listMarker records, per list-marker string (e.g. "*", "##"), whether a
// list is currently open for it and whether it's a real nested list (kind
// 1) or just a dt/dd pairing marker that shouldn't emit its own closing
// tag (kind 2).
type listMarker struct {
	kind int
}

func setListOrder(order *[]string, lists map[string]listMarker, key string, v listMarker) {
	if _, ok := lists[key]; !ok {
		*order = append(*order, key)
	}
	lists[key] = v
}
