// Package plan describes a Stundennachweis document as an ordered list of
// layout blocks, independent of any rendering technology.
//
// A Document is produced once per invoice unit by the assembler and consumed
// once by a renderer.
package plan

import "github.com/shopspring/decimal"

// Document is the complete, renderer-neutral description of one output file.
type Document struct {
	Info   Info
	Blocks []Block
}

// Info carries document properties written into the PDF metadata.
type Info struct {
	Title    string
	Subject  string
	Author   string
	Keywords string
}

// Block is one layout element. The concrete types below are the only
// implementations.
type Block interface {
	block()
}

// MetadataStyle selects how the metadata block is laid out.
type MetadataStyle string

const (
	MetadataTable      MetadataStyle = "table"
	MetadataParagraphs MetadataStyle = "paragraphs"
)

// Title is the document heading.
type Title struct {
	Text string
}

// Field is a single label/value pair.
type Field struct {
	Label string
	Value string
}

// Metadata lists the client and project details below the title.
type Metadata struct {
	Style  MetadataStyle
	Fields []Field
}

// DataTable is the table of time entries: one header row plus one row per
// entry, in entry order.
type DataTable struct {
	Header []string
	Rows   [][]string
}

// Total is the sum row appended below the data table.
type Total struct {
	Label string
	Hours decimal.Decimal
}

// Footer is static text repeated at the bottom of every page.
type Footer struct {
	Lines []string
}

// Symbology selects the barcode type of a Barcode block.
type Symbology string

const (
	SymbologyQR     Symbology = "qr"
	SymbologyPDF417 Symbology = "pdf417"
)

// Barcode is an identifier code printed in the top right corner of the first
// page.
type Barcode struct {
	Symbology Symbology
	Content   string
}

func (Title) block()     {}
func (Metadata) block()  {}
func (DataTable) block() {}
func (Total) block()     {}
func (Footer) block()    {}
func (Barcode) block()   {}

// Table returns the document's data table, if any.
func (d *Document) Table() (DataTable, bool) {
	for _, b := range d.Blocks {
		if t, ok := b.(DataTable); ok {
			return t, true
		}
	}
	return DataTable{}, false
}

// Footer returns the document's footer block, if any. Renderers need it up
// front because the footer is drawn on every page.
func (d *Document) Footer() (Footer, bool) {
	for _, b := range d.Blocks {
		if f, ok := b.(Footer); ok {
			return f, true
		}
	}
	return Footer{}, false
}
