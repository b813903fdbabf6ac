package background

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/stundennachweis/internal/types"
	"github.com/jung-kurt/gofpdf"
)

func writePDF(t *testing.T, path string, pages int, label string) {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.Text(72, 72, fmt.Sprintf("%s %d", label, i))
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestOverlayKeepsAllPages(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.pdf")
	backdrop := filepath.Join(dir, "background.pdf")
	writePDF(t, doc, 3, "CONTENT")
	writePDF(t, backdrop, 1, "BACKDROP")

	before, err := os.Stat(doc)
	if err != nil {
		t.Fatal(err)
	}

	if err := New().Overlay(doc, backdrop); err != nil {
		t.Fatalf("Overlay: %v", err)
	}

	n, err := PageCount(doc)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 pages, got %d", n)
	}

	after, err := os.Stat(doc)
	if err != nil {
		t.Fatal(err)
	}
	if after.Size() == before.Size() {
		t.Error("document was not rewritten")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestOverlayMissingBackdrop(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.pdf")
	writePDF(t, doc, 1, "CONTENT")
	original, _ := os.ReadFile(doc)

	err := New().Overlay(doc, filepath.Join(dir, "nope.pdf"))
	var ioErr *types.IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "open backdrop" {
		t.Fatalf("expected open backdrop IOError, got %v", err)
	}

	current, _ := os.ReadFile(doc)
	if string(current) != string(original) {
		t.Error("document changed after failed overlay")
	}
}

func TestOverlayCorruptBackdrop(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.pdf")
	backdrop := filepath.Join(dir, "background.pdf")
	writePDF(t, doc, 1, "CONTENT")
	if err := os.WriteFile(backdrop, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New().Overlay(doc, backdrop)
	var ioErr *types.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
}
