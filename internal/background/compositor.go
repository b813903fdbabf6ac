// Package background lays a backdrop PDF (letterhead) under the first page of
// a generated document.
//
// The first page of the backdrop is drawn beneath the first page of the
// document, scaled to its size. Any further document pages are copied
// unchanged. The result replaces the document file atomically.
package background

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ginjaninja78/stundennachweis/internal/types"
	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
	lpdf "github.com/ledongthuc/pdf"
)

const (
	mediaBox = "/MediaBox"

	// A4 in points, used when an imported page reports no size.
	defaultPageWidth  = 595.28
	defaultPageHeight = 841.89
)

var errNoPages = errors.New("document has no pages")

// Compositor merges backdrops into rendered documents.
type Compositor struct{}

// New returns a Compositor.
func New() *Compositor {
	return &Compositor{}
}

// Overlay draws page 1 of backdropPath beneath page 1 of docPath and rewrites
// docPath in place. docPath is left untouched on failure.
func (c *Compositor) Overlay(docPath, backdropPath string) (err error) {
	if _, err := os.Stat(backdropPath); err != nil {
		return &types.IOError{Op: "open backdrop", Path: backdropPath, Err: err}
	}
	if _, err := PageCount(backdropPath); err != nil {
		return &types.IOError{Op: "read backdrop", Path: backdropPath, Err: err}
	}
	pages, err := PageCount(docPath)
	if err != nil {
		return &types.IOError{Op: "read document", Path: docPath, Err: err}
	}

	// The page importer reports malformed input by panicking.
	defer func() {
		if r := recover(); r != nil {
			err = &types.IOError{Op: "compose", Path: docPath, Err: fmt.Errorf("%v", r)}
		}
	}()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	imp := gofpdi.NewImporter()

	backdropTpl, _, _ := importPage(pdf, imp, backdropPath, 1)
	for i := 1; i <= pages; i++ {
		tpl, w, h := importPage(pdf, imp, docPath, i)
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		if i == 1 {
			imp.UseImportedTemplate(pdf, backdropTpl, 0, 0, w, h)
		}
		imp.UseImportedTemplate(pdf, tpl, 0, 0, w, h)
	}

	if pdf.Err() {
		return &types.IOError{Op: "compose", Path: docPath, Err: pdf.Error()}
	}

	return writeAtomic(pdf, docPath)
}

// PageCount returns the number of pages of the PDF at path.
func PageCount(path string) (int, error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := r.NumPage()
	if n < 1 {
		return 0, errNoPages
	}
	return n, nil
}

// importPage imports a page as template and returns its id and size.
func importPage(pdf *gofpdf.Fpdf, imp *gofpdi.Importer, path string, page int) (tpl int, w, h float64) {
	tpl = imp.ImportPage(pdf, path, page, mediaBox)
	w, h = defaultPageWidth, defaultPageHeight
	if dims, ok := imp.GetPageSizes()[page]; ok {
		if box, ok := dims[mediaBox]; ok && box["w"] > 0 && box["h"] > 0 {
			w, h = box["w"], box["h"]
		}
	}
	return tpl, w, h
}

// writeAtomic writes pdf next to path and renames it over path.
func writeAtomic(pdf *gofpdf.Fpdf, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".compose-*.pdf")
	if err != nil {
		return &types.IOError{Op: "create temp", Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	if err := pdf.Output(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &types.IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &types.IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &types.IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
