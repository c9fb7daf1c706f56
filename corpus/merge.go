// Package corpus holds the deduplicated set of staged products and the
// stores it is persisted in.
package corpus

import "github.com/use-agent/scout/models"

// Merge appends the records of batch whose title is not yet present in
// prior and returns the new corpus together with the number appended.
//
// prior is neither reordered nor modified; the result is a fresh slice.
// Titles are compared exactly, so casing and spacing variants are
// distinct records. A title repeated inside batch is appended once.
func Merge(batch, prior []models.ScrapedProduct) ([]models.ScrapedProduct, int) {
	seen := make(map[string]struct{}, len(prior)+len(batch))
	for _, p := range prior {
		seen[p.Title] = struct{}{}
	}

	merged := make([]models.ScrapedProduct, len(prior), len(prior)+len(batch))
	copy(merged, prior)

	added := 0
	for _, p := range batch {
		if _, dup := seen[p.Title]; dup {
			continue
		}
		seen[p.Title] = struct{}{}
		merged = append(merged, p)
		added++
	}
	return merged, added
}
