// Package extract turns a rendered search results page into validated
// product records.
package extract

import (
	"fmt"
	"iter"
	"strings"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/scout/models"
	"golang.org/x/net/html"
)

// Stats counts what happened to each candidate node during one pass.
type Stats struct {
	Nodes         int
	Accepted      int
	Sponsored     int
	MissingField  int
	InvalidPrice  int
	InsecureImage int
}

// Page is a parsed results page.
type Page struct {
	cards *goquery.Selection
	stats Stats
}

// Parse parses the rendered HTML of a results page.
func Parse(doc string) (*Page, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("extract: parse results page: %w", err)
	}
	d := goquery.NewDocumentFromNode(root)
	return &Page{cards: d.FindMatcher(resultItem).FilterFunction(hasASIN)}, nil
}

// hasASIN drops widget wrappers, which carry an empty data-asin and may
// enclose real result items.
func hasASIN(_ int, s *goquery.Selection) bool {
	asin, _ := s.Attr("data-asin")
	return strings.TrimSpace(asin) != ""
}

// Candidates returns the number of result containers on the page.
func (p *Page) Candidates() int {
	return p.cards.Length()
}

// Stats reports the counters of the pass run so far.
func (p *Page) Stats() Stats {
	return p.stats
}

// Products yields at most limit records in document order. Sponsored
// cards are dropped before anything else is read; cards with a missing or
// invalid field are skipped without counting against limit.
//
// The sequence can be ranged over once. Later ranges yield nothing.
func (p *Page) Products(limit int, category string) iter.Seq[models.ScrapedProduct] {
	var consumed atomic.Bool
	return func(yield func(models.ScrapedProduct) bool) {
		if consumed.Swap(true) || limit <= 0 {
			return
		}
		for i := range p.cards.Length() {
			if p.stats.Accepted >= limit {
				return
			}
			p.stats.Nodes++
			prod, ok := p.read(p.cards.Eq(i), category)
			if !ok {
				continue
			}
			p.stats.Accepted++
			if !yield(prod) {
				return
			}
		}
	}
}

func (p *Page) read(card *goquery.Selection, category string) (models.ScrapedProduct, bool) {
	if isSponsored(card) {
		p.stats.Sponsored++
		return models.ScrapedProduct{}, false
	}

	title, hasTitle := readTitle(card)
	priceEl := card.FindMatcher(priceWhole).First()
	imgEl := card.FindMatcher(cardImage).First()
	if !hasTitle || priceEl.Length() == 0 || imgEl.Length() == 0 {
		p.stats.MissingField++
		return models.ScrapedProduct{}, false
	}

	price, err := ParsePrice(priceEl.Text())
	if err != nil {
		p.stats.InvalidPrice++
		return models.ScrapedProduct{}, false
	}

	src, _ := imgEl.Attr("src")
	if !isSecureImage(src) {
		p.stats.InsecureImage++
		return models.ScrapedProduct{}, false
	}

	return models.ScrapedProduct{
		Title:       title,
		Price:       price,
		Image:       strings.TrimSpace(src),
		Description: Describe(title),
		Category:    category,
	}, true
}

// Describe renders the synthesized description for a title.
func Describe(title string) string {
	return fmt.Sprintf("A high-quality %s.", title)
}

// Products parses doc and returns its record sequence along with the page,
// whose Stats are complete once the sequence has been drained.
func Products(doc string, limit int, category string) (iter.Seq[models.ScrapedProduct], *Page, error) {
	p, err := Parse(doc)
	if err != nil {
		return nil, nil, err
	}
	return p.Products(limit, category), p, nil
}
