package pdfwriter

import "math"

// tableRow draws one data table row, starting a new page with a repeated
// header row when the row does not fit.
func (d *document) tableRow(cells []string, face fontFace) {
	ts := d.style.Table
	h := d.rowHeight(cells, d.tableWidths, face, ts, d.style.CellPadding)
	if d.needsPageBreak(h) {
		d.pdf.AddPage()
		d.pdf.SetLineWidth(d.style.GridLineWidth)
		if len(d.tableHeader) > 0 {
			d.row(d.tableHeader, d.tableWidths, d.bold, ts, true)
		}
	}
	d.row(cells, d.tableWidths, face, ts, true)
}

// row draws cells side by side starting at the left margin and moves the
// cursor below the row. Text wraps inside its cell.
func (d *document) row(cells []string, widths []float64, face fontFace, ts TextStyle, grid bool) {
	pad := d.style.CellPadding
	if !grid {
		pad = 0
	}

	h := d.rowHeight(cells, widths, face, ts, pad)
	if d.needsPageBreak(h) {
		d.pdf.AddPage()
	}

	left, _, _, _ := d.pdf.GetMargins()
	x := left
	y := d.pdf.GetY()

	d.setFont(face, ts.Size)
	for i, w := range widths {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		if grid {
			d.pdf.Rect(x, y, w, h, "D")
		}
		d.pdf.SetXY(x+pad, y+pad)
		d.pdf.MultiCell(math.Max(w-2*pad, 1), ts.Leading, d.tr(text), "", "L", false)
		x += w
	}

	d.pdf.SetXY(left, y+h)
}

// rowHeight is the height of the tallest cell of a row.
func (d *document) rowHeight(cells []string, widths []float64, face fontFace, ts TextStyle, pad float64) float64 {
	d.setFont(face, ts.Size)

	lines := 1
	for i, w := range widths {
		if i >= len(cells) || cells[i] == "" {
			continue
		}
		n := len(d.pdf.SplitLines([]byte(d.tr(cells[i])), math.Max(w-2*pad, 1)))
		if n > lines {
			lines = n
		}
	}
	return float64(lines)*ts.Leading + 2*pad
}

func (d *document) needsPageBreak(h float64) bool {
	_, pageH := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	return d.pdf.GetY()+h > pageH-bottom
}
