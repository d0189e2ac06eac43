// Package tabular handles the raw text side of CSV ingestion: a lenient
// RFC-4180-style cell scanner and the pre-parse repair pass for broken
// inventory exports. The scanner is hand-rolled because the upstream
// exports are too loose for encoding/csv strict mode (quotes mid-cell,
// uneven row widths).
package tabular

import "strings"

// Parse scans raw CSV text into rows of trimmed string cells.
//
// A double quote toggles quoted-field mode; two consecutive quotes
// inside a quoted field decode to one literal quote. Commas and line
// breaks inside quoted mode are field content. Outside quoted mode a
// comma ends a cell and a line break (\n or \r\n) ends a row. Blank
// rows are dropped; a final unterminated line still yields a row when
// non-empty. No header or type inference happens here.
func Parse(text string) [][]string {
	var (
		rows     [][]string
		cells    []string
		cell     strings.Builder
		inQuotes bool
	)

	endCell := func() {
		cells = append(cells, strings.TrimSpace(cell.String()))
		cell.Reset()
	}

	endRow := func() {
		endCell()
		if len(cells) == 1 && cells[0] == "" {
			cells = nil
			return
		}
		rows = append(rows, cells)
		cells = nil
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				cell.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			endCell()
		case ch == '\n' && !inQuotes:
			endRow()
		case ch == '\r' && !inQuotes && i+1 < len(text) && text[i+1] == '\n':
			endRow()
			i++
		default:
			cell.WriteByte(ch)
		}
	}

	// Final unterminated line.
	if cell.Len() > 0 || len(cells) > 0 {
		endRow()
	}

	return rows
}
