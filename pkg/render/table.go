package render

import (
	"strings"

	"urcloud_chat/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
)

type tableRow struct {
	cells  []string
	header bool
}

func (r *renderer) table(n *html.Node, indent int) {
	rows := collectRows(n, nil)
	if len(rows) == 0 {
		return
	}
	pad := strings.Repeat(" ", indent)
	for _, line := range renderTable(rows, max(r.width-indent, 1)) {
		r.lines = append(r.lines, pad+line)
	}
}

func collectRows(n *html.Node, rows []tableRow) []tableRow {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead", "tbody", "tfoot":
			rows = collectRows(c, rows)
		case "tr":
			row := tableRow{header: true}
			for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
				if cell.Type != html.ElementNode || (cell.Data != "td" && cell.Data != "th") {
					continue
				}
				if cell.Data == "td" {
					row.header = false
				}
				row.cells = append(row.cells, strings.TrimSpace(collapseSpace(textContent(cell))))
			}
			if len(row.cells) > 0 {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func renderTable(rows []tableRow, width int) []string {
	cols := 0
	for _, row := range rows {
		if len(row.cells) > cols {
			cols = len(row.cells)
		}
	}
	if cols == 0 {
		return nil
	}

	colWidths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row.cells {
			if w := runewidth.StringWidth(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	fixedWidth := 3*cols + 1
	maxContent := width - fixedWidth
	if maxContent < cols {
		return renderTableFallback(rows, width)
	}
	colWidths = fitColumnWidths(colWidths, maxContent)

	var rendered []string
	for i, row := range rows {
		cells := make([]string, cols)
		copy(cells, row.cells)
		line := buildTableLine(cells, colWidths)
		if row.header {
			rendered = append(rendered, styles.TextBoldStyle.Render(line))
			if i+1 < len(rows) && !rows[i+1].header {
				rendered = append(rendered, styles.TextStyle.Render(buildTableSeparator(colWidths)))
			}
			continue
		}
		rendered = append(rendered, styles.TextStyle.Render(line))
	}
	return rendered
}

func renderTableFallback(rows []tableRow, width int) []string {
	var rendered []string
	for _, row := range rows {
		line := strings.Join(row.cells, " | ")
		for _, part := range strings.Split(ansi.Hardwrap(line, width, true), "\n") {
			rendered = append(rendered, styles.TextStyle.Render(part))
		}
	}
	return rendered
}

func buildTableLine(row []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("│")
	for i, cell := range row {
		if i >= len(widths) {
			break
		}
		text := runewidth.Truncate(cell, widths[i], "…")
		text = runewidth.FillRight(text, widths[i])
		sb.WriteString(" ")
		sb.WriteString(text)
		sb.WriteString(" │")
	}
	return sb.String()
}

func buildTableSeparator(widths []int) string {
	var sb strings.Builder
	sb.WriteString("├")
	for i, w := range widths {
		if w < 1 {
			w = 1
		}
		sb.WriteString(strings.Repeat("─", w+2))
		if i < len(widths)-1 {
			sb.WriteString("┼")
		}
	}
	sb.WriteString("┤")
	return sb.String()
}

// fitColumnWidths shrinks the widest column one cell at a time until the
// row fits in maxContent.
func fitColumnWidths(widths []int, maxContent int) []int {
	out := make([]int, len(widths))
	if maxContent <= 0 {
		for i := range out {
			out[i] = 1
		}
		return out
	}
	copy(out, widths)

	total := 0
	for i, w := range out {
		if w < 1 {
			out[i] = 1
			w = 1
		}
		total += w
	}

	for total > maxContent {
		maxIdx := -1
		maxVal := 0
		for i, w := range out {
			if w > maxVal {
				maxVal = w
				maxIdx = i
			}
		}
		if maxIdx == -1 || maxVal <= 1 {
			break
		}
		out[maxIdx]--
		total--
	}
	return out
}
