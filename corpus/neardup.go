package corpus

import (
	"github.com/use-agent/scout/models"
	"github.com/use-agent/scout/simhash"
)

// DefaultNearThreshold is the SimHash distance at or below which two
// titles are reported as likely duplicates.
const DefaultNearThreshold = 3

// NearDuplicates reports pairs of records whose titles are not identical
// but fingerprint within threshold of each other. It only reports; Merge
// keeps exact-title semantics.
func NearDuplicates(records []models.ScrapedProduct, threshold int) []models.NearDuplicate {
	prints := make([]uint64, len(records))
	for i, p := range records {
		prints[i] = simhash.Title(p.Title)
	}

	var out []models.NearDuplicate
	for i := range records {
		if prints[i] == 0 {
			continue
		}
		for j := i + 1; j < len(records); j++ {
			if records[i].Title == records[j].Title {
				continue
			}
			if d := simhash.Distance(prints[i], prints[j]); d <= threshold {
				out = append(out, models.NearDuplicate{
					First:    records[i].Title,
					Second:   records[j].Title,
					Distance: d,
				})
			}
		}
	}
	return out
}
