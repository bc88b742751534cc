package cellvalue

import (
	"errors"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		input     Cell
		wantValid bool
		wantValue string
	}{
		{name: "empty cell", input: Empty(), wantValid: false},
		{name: "not available sentinel", input: FromText("N/A"), wantValid: false},
		{name: "plain text", input: FromText("Healthcare Professional"), wantValid: true, wantValue: "Healthcare Professional"},
		{name: "text is trimmed", input: FromText("  hcp \t"), wantValid: true, wantValue: "hcp"},
		{name: "padded sentinel", input: FromText(" N/A "), wantValid: false},
		{name: "sentinel inside text", input: FromText("N/A yet"), wantValid: true, wantValue: "N/A yet"},
		{name: "empty text stays valid", input: FromText(""), wantValid: true, wantValue: ""},
		{name: "whole number", input: FromInt(5), wantValid: true, wantValue: "5"},
		{name: "negative number", input: FromInt(-12), wantValid: true, wantValue: "-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if got.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", got.Valid, tt.wantValid)
			}
			if got.String != tt.wantValue {
				t.Errorf("String = %q, want %q", got.String, tt.wantValue)
			}
		})
	}
}

func TestNormalize_UnsupportedTypes(t *testing.T) {
	cells := []Cell{
		FromFloat(1.5),
		{Kind: KindBool, Bool: true},
		{Kind: KindTime, Time: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Kind: KindError, Text: "#DIV/0!"},
	}

	for _, c := range cells {
		_, err := Normalize(c)
		var typeErr *UnsupportedTypeError
		if !errors.As(err, &typeErr) {
			t.Errorf("Normalize(%s) error = %v, want *UnsupportedTypeError", c.Kind, err)
			continue
		}
		if typeErr.Kind != c.Kind {
			t.Errorf("error kind = %s, want %s", typeErr.Kind, c.Kind)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []Cell{
		FromText("  Language  "),
		FromText("O'Brien"),
		FromInt(42),
		FromText("N/A"),
		FromText("\tN/A "),
		Empty(),
	}

	for _, c := range inputs {
		first, err := Normalize(c)
		if err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}

		again := Empty()
		if first.Valid {
			again = FromText(first.String)
		}
		second, err := Normalize(again)
		if err != nil {
			t.Fatalf("Normalize() second pass error = %v", err)
		}
		if first != second {
			t.Errorf("Normalize not idempotent: %+v then %+v", first, second)
		}
	}
}

func TestRow(t *testing.T) {
	row := Row{Empty(), FromText("Language"), Empty()}

	if got := row.NonEmpty(); got != 1 {
		t.Errorf("NonEmpty() = %d, want 1", got)
	}
	if row.IsBlank() {
		t.Error("IsBlank() = true, want false")
	}
	if !(Row{Empty(), Empty()}).IsBlank() {
		t.Error("IsBlank() on empty cells = false, want true")
	}
	if !(Row{}).IsBlank() {
		t.Error("IsBlank() on zero-length row = false, want true")
	}
	if got := row.At(7); got.Kind != KindEmpty {
		t.Errorf("At(7) kind = %s, want empty", got.Kind)
	}
}
