package textile

import (
	"sort"
	"strconv"
	"strings"
)

var (
	reColspanAttr   = mustRe(`\\(\d+)`)
	reRowspanAttr   = mustRe(`/(\d+)`)
	reAttrValign    = mustRe(`^` + valignRES)
	reAttrStyle     = mustRe(`\{([^}]*)\}`)
	reAttrLang      = mustRe(`\[([^\]]+)\]`)
	reAttrAclass    = mustRe(`\(([^()]+)\)`)
	reCSSID         = mustRe(`^([-a-zA-Z0-9_\.\:]*)$`)
	reAttrPadLeft   = mustRe(`([(]+)`)
	reAttrPadRight  = mustRe(`([)]+)`)
	reAttrCol       = mustRe(`^(?:\\(\d+)\.?)?\s*(\d+)?`)
	reCSSClasses    = mustRe(`^([-a-zA-Z 0-9_\.\/\[\]:!]*)$`)
	reAttrHalign    = mustRe(`(` + halignRES + `)`)
	reCSSClassName  = mustRe(`^([-a-zA-Z 0-9_\/\[\].:!#]+)$`)
)

// blockAttrs is the parsed form of a Textile attribute microsyntax
// fragment; empty string means the attribute was not present.
type blockAttrs struct {
	colspan string
	style   string
	class   string
	id      string
	rowspan string
	lang    string
	span    string
	width   string
}

// parseBlockAttrs parses the "{style}(class#id)[lang]<>=^" attribute
// microsyntax attached to blocks, cells, spans, and images. element
// enables td/tr/col-only syntax (colspan/rowspan, vertical align, col
// span+width); includeID controls whether a parsed id survives into the
// result (cells discard it); restricted disables class/id/style.
func parseBlockAttrs(raw string, element string, includeID, restricted bool) blockAttrs {
	if raw == "" {
		return blockAttrs{}
	}

	matched := raw
	var style []string

	var colspan, rowspan string
	if element == "td" {
		if m := reColspanAttr.FindMatch(matched); m != nil {
			colspan = m.GroupN(1)
		}
		if m := reRowspanAttr.FindMatch(matched); m != nil {
			rowspan = m.GroupN(1)
		}
	}

	if element == "td" || element == "tr" {
		if m := reAttrValign.FindMatch(matched); m != nil {
			var alignment string
			switch m.String() {
			case "^":
				alignment = "top"
			case "-":
				alignment = "middle"
			case "~":
				alignment = "bottom"
			}
			if alignment != "" {
				style = append(style, "vertical-align:"+alignment)
			}
		}
	}

	if !restricted {
		if m := reAttrStyle.FindMatch(matched); m != nil {
			decls := strings.TrimRight(m.GroupN(1), ";")
			for _, part := range strings.Split(decls, ";") {
				style = append(style, strings.TrimSpace(part))
			}
			matched = strings.Replace(matched, m.String(), "", 1)
		}
	}

	var lang string
	if m := reAttrLang.FindMatch(matched); m != nil {
		lang = m.GroupN(1)
		matched = strings.Replace(matched, m.String(), "", 1)
	}

	var aclass, blockID string
	if m := reAttrAclass.FindMatch(matched); m != nil {
		idClassMix := m.GroupN(1)
		if hashIdx := strings.IndexByte(idClassMix, '#'); hashIdx < 0 {
			if reCSSClasses.MatchString(idClassMix) {
				aclass = idClassMix
			}
		} else {
			left, right := idClassMix[:hashIdx], idClassMix[hashIdx+1:]
			if left != "" && reCSSClasses.MatchString(left) {
				aclass = left
			}
			if reCSSID.MatchString(right) {
				blockID = right
			}
		}
		matched = strings.Replace(matched, m.String(), "", 1)
		if restricted {
			aclass, blockID = "", ""
		}
	}

	if m := reAttrPadLeft.FindMatch(matched); m != nil {
		n := len([]rune(m.GroupN(1)))
		style = append(style, "padding-left:"+strconv.Itoa(n)+"em")
		matched = strings.Replace(matched, m.String(), "", 1)
	}
	if m := reAttrPadRight.FindMatch(matched); m != nil {
		n := len([]rune(m.GroupN(1)))
		style = append(style, "padding-right:"+strconv.Itoa(n)+"em")
		matched = strings.Replace(matched, m.String(), "", 1)
	}

	if m := reAttrHalign.FindMatch(matched); m != nil {
		var alignment string
		switch m.GroupN(1) {
		case "<":
			alignment = "left"
		case "=":
			alignment = "center"
		case ">":
			alignment = "right"
		case "<>":
			alignment = "justify"
		}
		if alignment != "" {
			style = append(style, "text-align:"+alignment)
		}
	}

	var span, width string
	if element == "col" {
		if m := reAttrCol.FindMatch(matched); m != nil {
			span = m.GroupN(1)
			width = m.GroupN(2)
		}
	}

	result := blockAttrs{
		colspan: colspan,
		rowspan: rowspan,
		lang:    lang,
		span:    span,
		width:   width,
		class:   aclass,
	}
	if includeID {
		result.id = blockID
	}
	if len(style) > 0 && !restricted {
		result.style = strings.Join(style, "; ") + ";"
	}
	return result
}

// blockHTMLAttrs is an alphabetically-ordered set of rendered HTML
// attributes, mirroring the reference implementation's
// BlockHtmlAttributes binary-search-ordered vector.
type blockHTMLAttrs []attrPair

func (a *blockHTMLAttrs) insert(key, value string) {
	i := sort.Search(len(*a), func(i int) bool { return (*a)[i].Name >= key })
	if i < len(*a) && (*a)[i].Name == key {
		(*a)[i].Value = value
		return
	}
	*a = append(*a, attrPair{})
	copy((*a)[i+1:], (*a)[i:])
	(*a)[i] = attrPair{Name: key, Value: value}
}

// insertOpt inserts key/value only when value is non-empty, mirroring the
// reference implementation's "+= (key, Option<String>)" convenience.
func (a *blockHTMLAttrs) insertOpt(key, value string) {
	if value != "" {
		a.insert(key, value)
	}
}

// insertCSSClass validates name against the CSS class-name grammar and,
// if valid, appends it to any existing "class" attribute (space
// separated). Reports whether the class was accepted.
func (a *blockHTMLAttrs) insertCSSClass(name string) bool {
	trimmed := strings.TrimSpace(name)
	if !reCSSClassName.MatchString(trimmed) {
		return false
	}
	i := sort.Search(len(*a), func(i int) bool { return (*a)[i].Name >= "class" })
	if i < len(*a) && (*a)[i].Name == "class" {
		(*a)[i].Value = (*a)[i].Value + " " + trimmed
	} else {
		*a = append(*a, attrPair{})
		copy((*a)[i+1:], (*a)[i:])
		(*a)[i] = attrPair{Name: "class", Value: trimmed}
	}
	return true
}

func (a blockHTMLAttrs) String() string {
	var b strings.Builder
	for _, kv := range a {
		b.WriteByte(' ')
		b.WriteString(kv.Name)
		b.WriteByte('=')
		b.WriteString(quoteattr(kv.Value))
	}
	return b.String()
}

// htmlAttrs renders the parsed attribute set into alphabetical-order
// HTML attributes: class, colspan, id, lang, rowspan, span, style, width.
func (ba blockAttrs) htmlAttrs() blockHTMLAttrs {
	var out blockHTMLAttrs
	out.insertOpt("class", ba.class)
	out.insertOpt("colspan", ba.colspan)
	out.insertOpt("id", ba.id)
	out.insertOpt("lang", ba.lang)
	out.insertOpt("rowspan", ba.rowspan)
	out.insertOpt("span", ba.span)
	out.insertOpt("style", ba.style)
	out.insertOpt("width", ba.width)
	return out
}

// String renders blockAttrs directly to its HTML attribute string,
// equivalent to the reference implementation's "From<BlockAttributes>
// for String" conversion.
func (ba blockAttrs) String() string {
	return ba.htmlAttrs().String()
}
