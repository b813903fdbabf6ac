// =============================================================================
// Stundennachweis Generator - PDF Writer
// =============================================================================
//
// This module renders a document plan into a PDF file with gofpdf.
//
// LAYOUT:
//   - Title in the bold font, metadata and table body in the medium font
//   - Data table with a thin black grid, bold header row repeated on every
//     page, and a bold total row
//   - Optional footer lines at the bottom of every page
//   - Optional barcode in the top margin of the first page
//
// FONTS:
//   When font-bold.ttf and font-medium.ttf are supplied they are embedded as
//   UTF-8 fonts. Otherwise the core Helvetica fonts are used with the
//   cp1252 code page, which covers German umlauts.
//
// =============================================================================

package pdfwriter

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/boombuler/barcode/qr"
	"github.com/ginjaninja78/stundennachweis/internal/fields"
	"github.com/ginjaninja78/stundennachweis/internal/plan"
	"github.com/ginjaninja78/stundennachweis/internal/types"
	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/barcode"
)

const (
	boldFamily   = "font-bold"
	mediumFamily = "font-medium"
	coreFamily   = "Helvetica"

	pdf417Columns       = 5
	pdf417SecurityLevel = 2

	creator = "stundennachweis"

	// footerMinGap is the least space between the footer and the page edge.
	footerMinGap = 18.0
)

var errNilDocument = errors.New("document plan is nil")

// fontFace is a registered gofpdf family and style.
type fontFace struct {
	family string
	style  string
}

// Writer renders document plans. A Writer holds no per-document state and
// may be reused for any number of documents.
type Writer struct {
	style      Style
	boldFont   string
	mediumFont string
}

// Option configures a Writer.
type Option func(*Writer)

// WithFonts embeds the given TrueType files as bold and medium font.
func WithFonts(bold, medium string) Option {
	return func(w *Writer) {
		w.boldFont = bold
		w.mediumFont = medium
	}
}

// New creates a Writer with the given style.
func New(style Style, opts ...Option) *Writer {
	w := &Writer{style: style}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Render writes doc to path. On failure no file is left behind.
func (w *Writer) Render(doc *plan.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &types.IOError{Op: "create", Path: path, Err: err}
	}

	if err := w.Write(f, doc); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Write renders doc to out.
func (w *Writer) Write(out io.Writer, doc *plan.Document) error {
	if doc == nil {
		return &types.RenderError{Op: "document", Err: errNilDocument}
	}

	d, err := w.newDocument()
	if err != nil {
		return err
	}

	d.setInfo(doc.Info)
	if footer, ok := doc.Footer(); ok && len(footer.Lines) > 0 {
		d.setFooter(footer)
	}

	d.pdf.AddPage()

	// Barcodes belong on the first page, whatever their position in the plan.
	for _, b := range doc.Blocks {
		if bc, ok := b.(plan.Barcode); ok {
			d.barcode(bc)
			if d.pdf.Err() {
				return &types.RenderError{Op: "barcode", Err: d.pdf.Error()}
			}
		}
	}

	for _, b := range doc.Blocks {
		op, err := d.renderBlock(b)
		if err != nil {
			return &types.RenderError{Op: op, Err: err}
		}
		if d.pdf.Err() {
			return &types.RenderError{Op: op, Err: d.pdf.Error()}
		}
	}

	if err := d.pdf.Output(out); err != nil {
		return &types.RenderError{Op: "output", Err: err}
	}
	return nil
}

// =============================================================================
// DOCUMENT STATE
// =============================================================================

// document is the rendering state of a single PDF.
type document struct {
	pdf    *gofpdf.Fpdf
	style  Style
	bold   fontFace
	medium fontFace
	tr     func(string) string

	contentWidth float64
	tableWidths  []float64
	tableHeader  []string
}

func (w *Writer) newDocument() (*document, error) {
	s := w.style
	pdf := gofpdf.New("P", "pt", s.PageSize, "")
	pdf.SetMargins(s.MarginLeftRight, s.MarginTopBottom, s.MarginLeftRight)
	pdf.SetAutoPageBreak(true, s.MarginTopBottom)

	d := &document{pdf: pdf, style: s}

	if w.boldFont != "" && w.mediumFont != "" {
		pdf.AddUTF8Font(boldFamily, "", w.boldFont)
		pdf.AddUTF8Font(mediumFamily, "", w.mediumFont)
		if pdf.Err() {
			return nil, &types.RenderError{Op: "font", Err: pdf.Error()}
		}
		d.bold = fontFace{family: boldFamily}
		d.medium = fontFace{family: mediumFamily}
		d.tr = func(s string) string { return s }
	} else {
		d.bold = fontFace{family: coreFamily, style: "B"}
		d.medium = fontFace{family: coreFamily}
		d.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pageW, _ := pdf.GetPageSize()
	d.contentWidth = pageW - 2*s.MarginLeftRight
	d.tableWidths = []float64{
		s.DateColumnWidth,
		s.HoursColumnWidth,
		math.Max(d.contentWidth-s.DateColumnWidth-s.HoursColumnWidth, 0),
	}

	return d, nil
}

func (d *document) setInfo(info plan.Info) {
	d.pdf.SetTitle(info.Title, true)
	d.pdf.SetSubject(info.Subject, true)
	d.pdf.SetKeywords(info.Keywords, true)
	if info.Author != "" {
		d.pdf.SetAuthor(info.Author, true)
	}
	d.pdf.SetCreator(creator, true)
}

func (d *document) setFont(face fontFace, size float64) {
	d.pdf.SetFont(face.family, face.style, size)
}

func (d *document) renderBlock(b plan.Block) (string, error) {
	switch b := b.(type) {
	case plan.Title:
		d.title(b)
		return "title", nil
	case plan.Metadata:
		return "metadata", d.metadata(b)
	case plan.DataTable:
		d.dataTable(b)
		return "table", nil
	case plan.Total:
		d.total(b)
		return "total", nil
	case plan.Footer, plan.Barcode:
		// Drawn outside the block flow.
		return "", nil
	default:
		return "layout", fmt.Errorf("unsupported block %T", b)
	}
}

// =============================================================================
// BLOCKS
// =============================================================================

func (d *document) title(t plan.Title) {
	ts := d.style.Title
	d.setFont(d.bold, ts.Size)
	d.pdf.MultiCell(d.contentWidth, ts.Leading, d.tr(t.Text), "", "L", false)
	d.pdf.Ln(ts.SpaceAfter)
}

func (d *document) metadata(m plan.Metadata) error {
	bs := d.style.Body
	d.setFont(d.medium, bs.Size)

	switch m.Style {
	case plan.MetadataParagraphs:
		for _, f := range m.Fields {
			d.pdf.MultiCell(d.contentWidth, bs.Leading, d.tr(f.Label+": "+f.Value), "", "L", false)
			d.pdf.Ln(bs.SpaceAfter)
		}
	case plan.MetadataTable, "":
		widths := []float64{
			d.style.LabelColumnWidth,
			math.Max(d.contentWidth-d.style.LabelColumnWidth, 0),
		}
		for _, f := range m.Fields {
			d.row([]string{f.Label + ": ", f.Value}, widths, d.medium, bs, false)
		}
	default:
		return fmt.Errorf("unknown metadata style %q", m.Style)
	}
	return nil
}

func (d *document) dataTable(t plan.DataTable) {
	d.pdf.Ln(d.style.SpaceBeforeTable)
	d.tableHeader = t.Header

	d.pdf.SetLineWidth(d.style.GridLineWidth)
	d.pdf.SetDrawColor(0, 0, 0)

	d.row(t.Header, d.tableWidths, d.bold, d.style.Table, true)
	for _, cells := range t.Rows {
		d.tableRow(cells, d.medium)
	}
}

func (d *document) total(t plan.Total) {
	d.tableRow([]string{t.Label, fields.FormatHours(t.Hours), ""}, d.bold)
}

func (d *document) barcode(b plan.Barcode) {
	size := d.style.BarcodeSize
	w, h := size, size

	var key string
	switch b.Symbology {
	case plan.SymbologyQR:
		key = barcode.RegisterQR(d.pdf, b.Content, qr.M, qr.Auto)
	case plan.SymbologyPDF417:
		key = barcode.RegisterPdf417(d.pdf, b.Content, pdf417Columns, pdf417SecurityLevel)
		w, h = size*2, size/2
	default:
		d.pdf.SetErrorf("unknown barcode symbology %q", b.Symbology)
		return
	}
	if d.pdf.Err() {
		return
	}

	pageW, _ := d.pdf.GetPageSize()
	_, top, right, _ := d.pdf.GetMargins()
	x := pageW - right - w
	y := math.Max((top-h)/2, 0)
	barcode.Barcode(d.pdf, key, x, y, w, h, false)
}

// footerLayout returns the distance of the footer's first line from the page
// bottom and the bottom margin the page body must keep free. A footer that
// fits is centred in the bottom margin. A taller one sits footerMinGap above
// the page edge and the margin grows to keep footerMinGap above it.
func (s Style) footerLayout(lines int) (offset, bottomMargin float64) {
	height := float64(lines) * s.Footer.Leading
	gap := math.Max((s.MarginTopBottom-height)/2, footerMinGap)
	offset = height + gap
	return offset, math.Max(s.MarginTopBottom, offset+footerMinGap)
}

func (d *document) setFooter(f plan.Footer) {
	lines := make([]string, len(f.Lines))
	copy(lines, f.Lines)
	fs := d.style.Footer

	offset, bottom := d.style.footerLayout(len(lines))
	d.pdf.SetAutoPageBreak(true, bottom)

	d.pdf.SetFooterFunc(func() {
		d.pdf.SetY(-offset)
		d.setFont(d.medium, fs.Size)
		for _, line := range lines {
			d.pdf.CellFormat(d.contentWidth, fs.Leading, d.tr(line), "", 1, "L", false, 0, "")
		}
	})
}
