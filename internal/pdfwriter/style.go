package pdfwriter

import "github.com/ginjaninja78/stundennachweis/internal/config"

// TextStyle is the font size and line height of one kind of text, in points.
type TextStyle struct {
	Size       float64
	Leading    float64
	SpaceAfter float64
}

// Style holds every layout value the writer needs. It is built once per run
// and never changed while documents are rendered.
type Style struct {
	PageSize string

	MarginTopBottom float64
	MarginLeftRight float64

	Title  TextStyle
	Body   TextStyle
	Table  TextStyle
	Footer TextStyle

	CellPadding      float64
	GridLineWidth    float64
	SpaceBeforeTable float64

	LabelColumnWidth float64
	DateColumnWidth  float64
	HoursColumnWidth float64

	BarcodeSize float64
}

// paragraphSpaceAfter separates metadata paragraphs.
const paragraphSpaceAfter = 6

// NewStyle converts the configured style settings.
func NewStyle(s config.StyleSettings) Style {
	return Style{
		PageSize:         s.PageSize,
		MarginTopBottom:  s.MarginTopBottom,
		MarginLeftRight:  s.MarginLeftRight,
		Title:            TextStyle{Size: s.TitleFontSize, Leading: s.TitleLeading, SpaceAfter: s.TitleSpaceAfter},
		Body:             TextStyle{Size: s.BodyFontSize, Leading: s.BodyLeading, SpaceAfter: paragraphSpaceAfter},
		Table:            TextStyle{Size: s.TableFontSize, Leading: s.TableLeading},
		Footer:           TextStyle{Size: s.FooterFontSize, Leading: s.FooterFontSize * 1.25},
		CellPadding:      s.TableCellPadding,
		GridLineWidth:    s.GridLineWidth,
		SpaceBeforeTable: s.SpaceBeforeTable,
		LabelColumnWidth: s.LabelColumnWidth,
		DateColumnWidth:  s.DateColumnWidth,
		HoursColumnWidth: s.HoursColumnWidth,
		BarcodeSize:      s.BarcodeSize,
	}
}

// DefaultStyle returns the classic A4 layout.
func DefaultStyle() Style {
	return NewStyle(config.Default().Style)
}
