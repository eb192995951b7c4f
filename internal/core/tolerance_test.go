package core_test

import (
	"errors"
	"testing"

	"bar-inventory/internal/core"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"integer", "12", "12", false},
		{"decimal comma", "2,5", "2.5", false},
		{"decimal dot", "2.50", "2.5", false},
		{"surrounding spaces", "  7 ", "7", false},
		{"leading separator", ",5", "0.5", false},
		{"trailing separator", "3,", "3", false},
		{"empty reads as zero", "", "0", false},
		{"three decimals", "1,234", "", true},
		{"letters", "abc", "", true},
		{"negative", "-1", "", true},
		{"two separators", "1,2,3", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := core.ParseQuantity(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, core.ErrValidation) {
					t.Fatalf("Expected validation error for %q, got %v", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tt.raw, err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCleanNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"12,50 €", "12.5"},
		{"  8 ", "8"},
		{"EUR 3.4", "3.4"},
		{"", "0"},
		{"n/a", "0"},
	}
	for _, tt := range tests {
		if got := core.CleanNumber(tt.raw); !got.Equal(dec(tt.want)) {
			t.Errorf("CleanNumber(%q): expected %s, got %s", tt.raw, tt.want, got)
		}
	}
}

func TestDiffers(t *testing.T) {
	if core.Differs(dec("1.0005"), dec("1")) {
		t.Error("Expected values within tolerance to compare equal")
	}
	if !core.Differs(dec("1.002"), dec("1")) {
		t.Error("Expected values beyond tolerance to differ")
	}
}
