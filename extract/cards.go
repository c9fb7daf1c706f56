package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var (
	resultItem = cascadia.MustCompile(`div.s-result-item[data-asin]`)
	priceWhole = cascadia.MustCompile(`.a-price-whole`)
	cardImage  = cascadia.MustCompile(`.s-image`)

	sponsoredMarkers = []cascadia.Selector{
		cascadia.MustCompile(`.puis-label-popover-hover`),
		cascadia.MustCompile(`a.s-link-style[href*="/sspa/click"]`),
		cascadia.MustCompile(`.s-sponsored-label-text`),
	}
	badgeText = cascadia.MustCompile(`span`)
)

// cardReader pulls the title out of one result-card layout.
type cardReader interface {
	readTitle(card *goquery.Selection) (string, bool)
}

// selectorReader reads the title from the first element matching sel.
type selectorReader struct {
	name string
	sel  cascadia.Selector
}

func (r selectorReader) readTitle(card *goquery.Selection) (string, bool) {
	text := normalizeText(card.FindMatcher(r.sel).First().Text())
	return text, text != ""
}

// readers lists the card layouts in the order they are tried. Full-width
// rows use the medium title, grid tiles the base-plus one.
var readers = []cardReader{
	selectorReader{name: "row", sel: cascadia.MustCompile(`.a-size-medium.a-color-base.a-text-normal`)},
	selectorReader{name: "grid", sel: cascadia.MustCompile(`.a-size-base-plus.a-color-base.a-text-normal`)},
}

func readTitle(card *goquery.Selection) (string, bool) {
	for _, r := range readers {
		if title, ok := r.readTitle(card); ok {
			return title, true
		}
	}
	return "", false
}

// isSponsored matches the known marker selectors, or a badge whose whole
// text is "Sponsored".
func isSponsored(card *goquery.Selection) bool {
	for _, m := range sponsoredMarkers {
		if card.FindMatcher(m).Length() > 0 {
			return true
		}
	}
	badge := card.FindMatcher(badgeText).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.EqualFold(normalizeText(s.Text()), "Sponsored")
	})
	return badge.Length() > 0
}

// isSecureImage accepts absolute https URLs with a host.
func isSecureImage(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host != ""
}

// normalizeText collapses runs of whitespace the way innerText renders them.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
