package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "stundennachweis.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Document.Totals {
		t.Error("totals should default to on")
	}
	if cfg.Output.DirName != "invoices" {
		t.Errorf("dir name = %q", cfg.Output.DirName)
	}
	if cfg.Document.MetadataStyle != "table" {
		t.Errorf("metadata style = %q", cfg.Document.MetadataStyle)
	}
	if cfg.Style.MarginTopBottom != 72 || cfg.Style.MarginLeftRight != 54 {
		t.Errorf("margins = %v/%v", cfg.Style.MarginTopBottom, cfg.Style.MarginLeftRight)
	}
	want := []string{"client", "project", "start", "duration", "task"}
	for i, col := range cfg.Input.Columns.Required() {
		if col != want[i] {
			t.Errorf("column %d = %q, want %q", i, col, want[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
log_level: debug
input:
  delimiter: ";"
  columns:
    task: description
output:
  summary: true
document:
  totals: false
  metadata_style: paragraphs
  barcode: qr
  assets_dir: assets
  footer:
    - Max Mustermann
    - IBAN DE00 0000
style:
  title_font_size: 20
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Input.Delimiter != ";" {
		t.Errorf("unexpected top-level values: %+v", cfg)
	}
	if cfg.Input.Columns.Task != "description" || cfg.Input.Columns.Client != "client" {
		t.Errorf("columns = %+v", cfg.Input.Columns)
	}
	if cfg.Document.Totals {
		t.Error("totals should be off")
	}
	if !cfg.Output.Summary || cfg.Output.DirName != "invoices" {
		t.Errorf("output = %+v", cfg.Output)
	}
	if len(cfg.Document.Footer) != 2 {
		t.Errorf("footer = %v", cfg.Document.Footer)
	}
	if cfg.Document.AssetsDir != filepath.Join(dir, "assets") {
		t.Errorf("assets dir = %q, want resolved against config dir", cfg.Document.AssetsDir)
	}
	if cfg.Style.TitleFontSize != 20 || cfg.Style.BodyFontSize != 12 {
		t.Errorf("style = %+v", cfg.Style)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"log level":      "log_level: loud\n",
		"metadata style": "document:\n  metadata_style: grid\n",
		"barcode":        "document:\n  barcode: ean13\n",
		"delimiter":      "input:\n  delimiter: \"::\"\n",
		"dir name":       "output:\n  dir_name: a/b\n",
		"page size":      "style:\n  page_size: B7\n",
		"yaml":           "document: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), content)
			if _, err := Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelimiterRune(t *testing.T) {
	tests := map[string]rune{",": ',', ";": ';', "tab": '\t', "\\t": '\t', "|": '|', "#": '#'}
	for in, want := range tests {
		got, err := DelimiterRune(in)
		if err != nil || got != want {
			t.Errorf("DelimiterRune(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := DelimiterRune(`"`); err == nil {
		t.Error("quote must not be accepted as delimiter")
	}
}

func TestAssetResolution(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Document.AssetsDir = dir

	if got := cfg.BackgroundPath(); got != "" {
		t.Errorf("background without file = %q", got)
	}
	if _, _, ok := cfg.FontPaths(); ok {
		t.Error("fonts reported without files")
	}

	for _, name := range []string{BackgroundFileName, BoldFontFileName, MediumFontFileName} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if got := cfg.BackgroundPath(); got != filepath.Join(dir, BackgroundFileName) {
		t.Errorf("background = %q", got)
	}
	if bold, medium, ok := cfg.FontPaths(); !ok || filepath.Base(bold) != BoldFontFileName || filepath.Base(medium) != MediumFontFileName {
		t.Errorf("fonts = %q %q %v", bold, medium, ok)
	}

	cfg.Document.Background = "/explicit/backdrop.pdf"
	if got := cfg.BackgroundPath(); got != "/explicit/backdrop.pdf" {
		t.Errorf("explicit background = %q", got)
	}
}
