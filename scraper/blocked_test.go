package scraper

import "testing"

func TestRobotCheckReason(t *testing.T) {
	tests := []struct {
		title   string
		captcha bool
		want    string
	}{
		{"Amazon.in : laptops", false, ""},
		{"Amazon.in : laptops", true, "captcha form present"},
		{"Robot Check", false, "robot check page"},
		{"Sorry! Something went wrong!", false, "storefront error page"},
		{"", false, ""},
	}
	for _, tt := range tests {
		if got := robotCheckReason(tt.title, tt.captcha); got != tt.want {
			t.Errorf("robotCheckReason(%q, %v) = %q, want %q", tt.title, tt.captcha, got, tt.want)
		}
	}
}
