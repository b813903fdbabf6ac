package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		dryRun, noTotals, errorLog, verbose, logLevel = false, false, "", false, ""
		strict, failFast = false, false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "times.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "Stundennachweis Generator "+Version) || !strings.Contains(out, "commit: "+Commit) {
		t.Errorf("output = %q", out)
	}
}

func TestValidateCommandReportsRows(t *testing.T) {
	input := writeCSV(t, "client,project,start,duration,task\n"+
		"Acme,P1_Web,2024-03-05 09:00:00,1,x\n"+
		"Acme,P1_Web,06.03.2024,1,y\n")
	logPath := filepath.Join(t.TempDir(), "errors.log")

	out, err := execute(t, "validate", input, "--error-log", logPath)
	if err == nil {
		t.Fatal("expected an error for an invalid input")
	}
	if !strings.Contains(out, "Row 3") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("error log not written: %v", err)
	}
}

func TestValidateCommandStrict(t *testing.T) {
	// A zero duration is a warning only.
	input := writeCSV(t, "client,project,start,duration,task\n"+
		"Acme,P1_Web,2024-03-05 09:00:00,0,x\n")

	if _, err := execute(t, "validate", input); err != nil {
		t.Fatalf("warnings alone should pass: %v", err)
	}

	out, err := execute(t, "validate", input, "--strict")
	if err == nil || !strings.Contains(err.Error(), "strict") {
		t.Fatalf("expected strict failure, got %v", err)
	}
	if !strings.Contains(out, "1 warning(s)") {
		t.Errorf("output = %q", out)
	}
}

func TestValidateCommandFailFast(t *testing.T) {
	input := writeCSV(t, "client,project,start,duration,task\n"+
		"Acme,P1_Web,bad,1,x\n"+
		"Acme,P1_Web,worse,1,y\n")

	out, err := execute(t, "validate", input, "--fail-fast")
	if err == nil || !strings.Contains(err.Error(), "first in row 2") {
		t.Fatalf("expected error for row 2, got %v", err)
	}
	if !strings.Contains(out, "1 error(s)") {
		t.Errorf("output = %q", out)
	}
}

func TestMalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STUNDENNACHWEIS_LOG_LEVEL=\"debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wd, wdErr := os.Getwd()
	if wdErr != nil {
		t.Fatal(wdErr)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err := execute(t, "version")
	if err == nil || !strings.Contains(err.Error(), ".env") {
		t.Fatalf("expected .env error, got %v", err)
	}
}

func TestGenerateCommand(t *testing.T) {
	input := writeCSV(t, "client,project,start,duration,task\n"+
		"Acme,P100_Website Redesign,2024-03-05 09:00:00,2.5,Design\n")

	out, err := execute(t, "generate", input)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "PDF invoices successfully generated.") {
		t.Errorf("output = %q", out)
	}

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(input), "invoices", "*_Stundennachweis_Website Redesign_RNR.pdf"))
	if err != nil || len(matches) != 1 {
		t.Errorf("documents = %v (%v)", matches, err)
	}
}

func TestGenerateCommandDryRun(t *testing.T) {
	input := writeCSV(t, "client,project,start,duration,task\n"+
		"Acme,P1_Web,2024-03-05 09:00:00,1,x\n"+
		"Globex,X1_App,2024-03-06 09:00:00,2,y\n")

	out, err := execute(t, "generate", input, "--dry-run")
	if err != nil {
		t.Fatalf("generate --dry-run: %v", err)
	}
	if !strings.Contains(out, "Dry run: 2 document(s) would be written.") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(input), "invoices")); !os.IsNotExist(err) {
		t.Errorf("output directory created in dry run: %v", err)
	}
}

func TestGenerateCommandRequiresInput(t *testing.T) {
	if _, err := execute(t, "generate"); err == nil {
		t.Fatal("expected an error without an input file")
	}
}
