package entities

import "testing"

func TestCanonicalSKU(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading_zeros_stripped", "00123", "123"},
		{"no_leading_zeros", "123", "123"},
		{"all_zeros_keeps_one", "000", "0"},
		{"single_zero", "0", "0"},
		{"empty", "", ""},
		{"whitespace_trimmed", " 0042 ", "42"},
		{"alphanumeric", "0A12", "A12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalSKU(tt.in); got != tt.want {
				t.Errorf("CanonicalSKU(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMakeItemKey_LeadingZeroEquivalence(t *testing.T) {
	a := MakeItemKey("MGC", "00123")
	b := MakeItemKey("MGC", "123")
	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
	if a != "MGC|123" {
		t.Errorf("unexpected key %q", a)
	}
}

func TestItemKey_Split(t *testing.T) {
	loc, sku := ItemKey("MGC|123").Split()
	if loc != "MGC" || sku != "123" {
		t.Errorf("Split() = %q, %q", loc, sku)
	}

	loc, sku = ItemKey("MGC").Split()
	if loc != "MGC" || sku != "" {
		t.Errorf("Split() without separator = %q, %q", loc, sku)
	}
}
