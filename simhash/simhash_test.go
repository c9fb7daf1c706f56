package simhash

import (
	"reflect"
	"testing"
)

func TestTitle_CaseAndPunctuationIgnored(t *testing.T) {
	a := Title("Apple MacBook Air M2")
	b := Title("  apple macbook-air, M2 ")

	if a != b {
		t.Errorf("titles differing only in case and punctuation got distance %d", Distance(a, b))
	}
}

func TestTitle_SimilarTitles(t *testing.T) {
	a := Title("Lenovo IdeaPad Slim 3 Intel Core i5 12th Gen 15.6 inch Laptop")
	b := Title("Lenovo IdeaPad Slim 3 Intel Core i5 12th Gen 15.6 inch Laptop (Grey)")

	if dist := Distance(a, b); dist > 16 {
		t.Errorf("near-identical titles have too large distance: %d", dist)
	}
}

func TestTitle_DifferentTitles(t *testing.T) {
	a := Title("Lenovo IdeaPad Slim 3 Intel Core i5 Laptop")
	b := Title("Stainless Steel Electric Kettle 1.5 Litre")

	if dist := Distance(a, b); dist < 5 {
		t.Errorf("unrelated titles have too small distance: %d", dist)
	}
}

func TestTitle_Empty(t *testing.T) {
	if fp := Title(" -- "); fp != 0 {
		t.Errorf("title without words should produce fingerprint 0, got: %064b", fp)
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	features := []string{"usb", "c", "cable"}
	if Fingerprint(features) != Fingerprint(features) {
		t.Error("same features produced different fingerprints")
	}
	if Fingerprint([]string{"hello"}) == 0 {
		t.Error("single feature should produce a non-zero fingerprint")
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("HP 15s, Thin & Light (Silver)")
	want := []string{"hp", "15s", "thin", "light", "silver"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want int
	}{
		{"identical", 0xFF, 0xFF, 0},
		{"all different", 0, ^uint64(0), 64},
		{"one bit", 0, 1, 1},
		{"two bits", 0, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilar(t *testing.T) {
	a := Title("boat Rockerz 450 Bluetooth Headphones")
	b := Title("Prestige Induction Cooktop 1200 Watt")
	dist := Distance(a, b)

	if !Similar(a, a, 0) {
		t.Error("identical fingerprints should be similar at threshold 0")
	}
	if Similar(a, b, dist-1) {
		t.Errorf("should not be similar at threshold %d (distance is %d)", dist-1, dist)
	}
	if !Similar(a, b, dist) {
		t.Errorf("should be similar at threshold equal to distance (%d)", dist)
	}
}
