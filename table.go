package textile

import "strings"

const tableSpanRES = `(?:(?:\\\d+)|(?:\/\d+))*`

var (
	reTableComponents = mustRe(`(?m)\|` + snipSpace + `*?$`)
	reTableCaption    = mustRe(`(?s)^\|\=(?<capts>` + tableSpanRES + alignRES + clsRES + `)\. (?<cap>[^\n]*)(?<row>.*)`)
	reTableGrpMatch   = mustRe(`(?ms)(?:^\|(?<part>` + valignRES + `)(?<rgrpatts>` + tableSpanRES + alignRES + clsRES + `)\.` + snipSpace + `*$\n)?^(?<row>.*)`)
	reTableRowMatch   = mustRe(`^(?<ratts>` + alignRES + clsRES + `\. )(?<row>.*)`)
	reTableCellMatch  = mustRe(`(?s)^(?<catts>_?` + tableSpanRES + alignRES + clsRES + `)\. (?<cell>.*)`)
	reCellAPattern    = mustRe(`(?s)(?<space>` + snipSpace + `*)(?<cell>.*)`)
	reColgroup        = mustRe(`(?m)^\|:(?<cols>` + tableSpanRES + alignRES + clsRES + `\. .*)`)
	reTableHeading    = mustRe(`^_(?=` + snipSpace + `|` + pnctRES + `)`)
)

var reTableBlock = mustRe(`(?ms)^(?:table(?<tatts>_?` + tableSpanRES + alignRES + clsRES + `)\.(?<summary>.*?)\n)?^(?<rows>` + alignRES + clsRES + `\.? ?\|.*\|)[\s]*\n\n`)

// table extracts an optional "table(atts). summary" header line plus the
// pipe-delimited row block that follows it and renders the whole thing via
// processTable. Text that doesn't match a table block is returned unchanged.
func (p *parserState) table(text string) string {
	padded := text + "\n\n"
	m := reTableBlock.FindMatch(padded)
	if m == nil {
		return padded
	}
	return p.processTable(m.Group("tatts"), m.Group("rows"), m.Group("summary"), m.HasGroup("summary"))
}

func processCaption(capts, cap string, restricted bool) string {
	atts := parseBlockAttrs(capts, "", true, restricted).htmlAttrs()
	tag := generateTagStr("caption", strings.TrimSpace(cap), atts)
	return "\t" + tag + "\n"
}

// tableSection accumulates the rows belonging to one <thead>/<tbody>/
// <tfoot> grouping until the next group marker (or end of table) closes it.
type tableSection struct {
	tag   string
	attrs blockAttrs
	rows  []string
}

func (ts *tableSection) process() string {
	content := strings.Join(ts.rows, "") + "\n\t"
	return generateTagStr(ts.tag, content, ts.attrs.htmlAttrs())
}

type tableRow struct {
	cells []string
	attrs blockHTMLAttrs
}

func (r *tableRow) process() string {
	cellData := strings.Join(r.cells, "") + "\n\t\t"
	return "\n\t\t" + generateTagStr("tr", cellData, r.attrs)
}

// processTable renders a whole "|a|b|\n|c|d|" table block into an HTML
// <table>, handling the optional caption row, colgroup row, thead/tfoot/
// tbody group markers, and per-row/per-cell attribute microsyntax.
func (p *parserState) processTable(tatts, rowsStr, summary string, hasSummary bool) string {
	htmlAttrs := parseBlockAttrs(tatts, "table", true, p.cfg.restricted).htmlAttrs()
	if hasSummary {
		if s := strings.TrimSpace(summary); s != "" {
			htmlAttrs.insert("summary", s)
		}
	}

	var caption, colgroup string
	var content []string
	var groups []string
	var rgrp *tableSection

	rawRows := reTableComponents.Split(rowsStr)
	var rows []string
	for _, r := range rawRows {
		if r != "" {
			rows = append(rows, r)
		}
	}

	for i := 0; i < len(rows); i++ {
		row := strings.TrimLeft(rows[i], " \t")

		// Caption: only on row 0, otherwise "|=. foo|..." is a normal
		// center-aligned cell.
		if i == 0 {
			if m := reTableCaption.FindMatch(row); m != nil {
				caption = "\n" + processCaption(m.Group("capts"), m.Group("cap"), p.cfg.restricted)
				newRow := strings.TrimLeft(m.Group("row"), " \t\n")
				if newRow == "" {
					continue
				}
				row = newRow
			}
		}

		// Colgroup: may not end with a closing pipe, absorbing the start
		// of the next row.
		if m := reColgroup.FindMatch(row); m != nil {
			cols := strings.ReplaceAll(m.Group("cols"), ".", "")
			for idx, col := range strings.Split(cols, "|") {
				groupAtts := parseBlockAttrs(strings.TrimSpace(col), "col", true, p.cfg.restricted).String()
				colgroup += "\t<col"
				if idx == 0 {
					colgroup += "group" + groupAtts + ">"
				} else {
					colgroup += groupAtts + " />"
				}
				colgroup += "\n"
			}
			colgroup += "\t</colgroup>"
			if nl := strings.IndexByte(row, '\n'); nl >= 0 {
				row = strings.TrimLeft(row[nl:], " \t\n")
			} else {
				continue
			}
		}

		// thead/tfoot/tbody group marker.
		if m := reTableGrpMatch.FindMatch(strings.TrimLeft(row, " \t")); m != nil {
			if part, rgrpatts := m.Group("part"), m.Group("rgrpatts"); part != "" {
				if rgrp != nil {
					groups = append(groups, "\n\t"+rgrp.process())
				}
				var sectionTag string
				switch part {
				case "^":
					sectionTag = "thead"
				case "~":
					sectionTag = "tfoot"
				case "-":
					sectionTag = "tbody"
				}
				rgrp = &tableSection{
					tag:   sectionTag,
					attrs: parseBlockAttrs(rgrpatts, "", true, p.cfg.restricted),
				}
			}
			row = m.Group("row")
		}

		var rowAtts blockHTMLAttrs
		if m := reTableRowMatch.FindMatch(strings.TrimLeft(row, " \t")); m != nil {
			row = m.Group("row")
			rowAtts = parseBlockAttrs(m.Group("ratts"), "tr", true, p.cfg.restricted).htmlAttrs()
		}

		r := &tableRow{attrs: rowAtts}
		cells := strings.Split(row, "|")
		if len(cells) > 0 {
			cells = cells[1:]
		}
		for _, cell := range cells {
			ctag := "td"
			if reTableHeading.MatchString(cell) {
				ctag = "th"
			}

			cellAtts := blockHTMLAttrs(nil)
			if m := reTableCellMatch.FindMatch(cell); m != nil {
				cellAtts = parseBlockAttrs(m.Group("catts"), "td", true, p.cfg.restricted).htmlAttrs()
				cell = m.Group("cell")
			}

			var rendered string
			if !p.cfg.lite {
				if m := reCellAPattern.FindMatch(cell); m != nil {
					inner := p.redclothList(m.Group("cell"))
					inner = p.textileLists(inner)
					rendered = m.Group("space") + inner
				}
			} else {
				rendered = cell
			}

			c := generateTagStr(ctag, rendered, cellAtts)
			lineTag := "\n\t\t\t" + c
			r.cells = append(r.cells, p.doTagBr(ctag, lineTag))
		}

		if rgrp != nil {
			rgrp.rows = append(rgrp.rows, r.process())
		} else {
			content = append(content, r.process())
		}
	}

	if rgrp != nil {
		groups = append(groups, "\n\t"+rgrp.process())
	}

	tagContent := caption + colgroup + strings.Join(groups, "") + strings.Join(content, "") + "\n\t"
	tbl := generateTagStr("table", tagContent, htmlAttrs)
	return "\t" + tbl + "\n\n"
}
