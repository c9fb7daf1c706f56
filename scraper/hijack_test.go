package scraper

import (
	"testing"

	"github.com/go-rod/rod/lib/proto"
)

func TestIsAdDomain(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"amazon-adsystem.com", true},
		{"aax-eu.amazon-adsystem.com", true},
		{"stats.g.doubleclick.net", true},
		{"WWW.GOOGLETAGMANAGER.COM.", true},
		{"www.amazon.in", false},
		{"m.media-amazon.com", false},
		{"notdoubleclick.net", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isAdDomain(tt.host); got != tt.want {
			t.Errorf("isAdDomain(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

func TestBlockedTypes(t *testing.T) {
	got := blockedTypes([]string{"Font", "Media", "Bogus"})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (unknown names ignored)", len(got))
	}
	if _, ok := got[proto.NetworkResourceTypeFont]; !ok {
		t.Error("Font not blocked")
	}
	if _, ok := got[proto.NetworkResourceTypeMedia]; !ok {
		t.Error("Media not blocked")
	}
	if _, ok := got[proto.NetworkResourceTypeImage]; ok {
		t.Error("Image must stay loadable by default")
	}
}
