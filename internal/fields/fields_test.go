package fields

import (
	"errors"
	"strings"
	"testing"

	"github.com/ginjaninja78/stundennachweis/internal/types"
	"github.com/shopspring/decimal"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2024-03-05 09:00:00", "05.03.2024"},
		{"2024-12-31 23:59:59", "31.12.2024"},
		{"2023-01-01 00:00:00", "01.01.2023"},
	}
	for _, tt := range tests {
		got, err := FormatDate(tt.raw)
		if err != nil {
			t.Fatalf("FormatDate(%q): %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestFormatDateRejectsOtherLayouts(t *testing.T) {
	for _, raw := range []string{"", "2024-03-05", "05.03.2024 09:00:00", "2024-03-05T09:00:00", "garbage"} {
		_, err := FormatDate(raw)
		var fe *types.InputFormatError
		if !errors.As(err, &fe) {
			t.Errorf("FormatDate(%q): expected InputFormatError, got %v", raw, err)
			continue
		}
		if fe.Field != "start" || fe.Value != raw {
			t.Errorf("FormatDate(%q): unexpected error fields %+v", raw, fe)
		}
	}
}

func TestSplitProjectIdentifier(t *testing.T) {
	tests := []struct {
		id      string
		wantRef string
		wantNm  string
	}{
		{"P100_Website Redesign", "P100", "Website Redesign"},
		{"X1_Name_With_Underscores", "X1", "Name With Underscores"},
		{"_Leading", "", "Leading"},
		{"R9_", "R9", ""},
	}
	for _, tt := range tests {
		ref, name, err := SplitProjectIdentifier(tt.id)
		if err != nil {
			t.Fatalf("SplitProjectIdentifier(%q): %v", tt.id, err)
		}
		if ref != tt.wantRef || name != tt.wantNm {
			t.Errorf("SplitProjectIdentifier(%q) = (%q, %q), want (%q, %q)", tt.id, ref, name, tt.wantRef, tt.wantNm)
		}
	}
}

func TestSplitProjectIdentifierWithoutSeparator(t *testing.T) {
	_, _, err := SplitProjectIdentifier("NoSeparator")
	var fe *types.InputFormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected InputFormatError, got %v", err)
	}
	if fe.Field != "project" {
		t.Errorf("field = %q, want project", fe.Field)
	}
}

func TestSplitProjectIdentifierRoundTrip(t *testing.T) {
	for _, id := range []string{"A_B", "P100_Website_Redesign", "X1_Name_With_Underscores", "ref_", "_x_y_"} {
		ref, name, err := SplitProjectIdentifier(id)
		if err != nil {
			t.Fatalf("SplitProjectIdentifier(%q): %v", id, err)
		}
		joined := ref + "_" + strings.ReplaceAll(name, " ", "_")
		if joined != id {
			t.Errorf("round trip of %q gave %q", id, joined)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Re/Design: v2?", "Re_Design_ v2_"},
		{`a<b>c:d"e/f\g|h?i*j`, "a_b_c_d_e_f_g_h_i_j"},
		{"Website Redesign", "Website Redesign"},
		{"Änderung/Übersicht", "Änderung_Übersicht"},
		{"", ""},
	}
	for _, tt := range tests {
		got := SanitizeFilename(tt.in)
		if got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if len([]rune(got)) != len([]rune(tt.in)) {
			t.Errorf("SanitizeFilename(%q) changed length", tt.in)
		}
		if again := SanitizeFilename(got); again != got {
			t.Errorf("SanitizeFilename not idempotent for %q: %q -> %q", tt.in, got, again)
		}
	}
}

func TestPeriodLabelUsesFirstRowOnly(t *testing.T) {
	entries := []types.TimeEntry{
		{Row: 2, Start: "2024-03-31 09:00:00"},
		{Row: 3, Start: "2024-01-01 09:00:00"},
		{Row: 4, Start: "2024-05-15 09:00:00"},
	}
	got, err := PeriodLabel(entries)
	if err != nil {
		t.Fatalf("PeriodLabel: %v", err)
	}
	if got != "03.2024" {
		t.Errorf("PeriodLabel = %q, want 03.2024", got)
	}
}

func TestPeriodLabelEmpty(t *testing.T) {
	_, err := PeriodLabel(nil)
	if !errors.Is(err, types.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestPeriodLabelBadFirstRow(t *testing.T) {
	_, err := PeriodLabel([]types.TimeEntry{{Row: 7, Start: "05.03.2024"}})
	var fe *types.InputFormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected InputFormatError, got %v", err)
	}
	if fe.Row != 7 {
		t.Errorf("row = %d, want 7", fe.Row)
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2.5", "2.5"},
		{"1.0", "1.0"},
		{"3", "3"},
		{"0.25", "0.25"},
		{"10.50", "10.50"},
	}
	for _, tt := range tests {
		d := decimal.RequireFromString(tt.in)
		if got := FormatHours(d); got != tt.want {
			t.Errorf("FormatHours(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}

	sum := decimal.RequireFromString("2.5").Add(decimal.RequireFromString("1.0"))
	if got := FormatHours(sum); got != "3.5" {
		t.Errorf("FormatHours(2.5+1.0) = %q, want 3.5", got)
	}
}
