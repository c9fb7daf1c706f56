package corpus

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/use-agent/scout/models"
)

func titled(titles ...string) []models.ScrapedProduct {
	out := make([]models.ScrapedProduct, len(titles))
	for i, t := range titles {
		out[i] = models.ScrapedProduct{
			Title:       t,
			Price:       float64(100 * (i + 1)),
			Image:       "https://img.example/" + t + ".jpg",
			Description: "A high-quality " + t + ".",
			Category:    "electronics",
		}
	}
	return out
}

func titlesOf(records []models.ScrapedProduct) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func TestMerge_Scenario(t *testing.T) {
	prior := titled("A", "B")
	batch := titled("B", "C")

	merged, added := Merge(batch, prior)

	assert.Equal(t, []string{"A", "B", "C"}, titlesOf(merged))
	assert.Equal(t, 1, added)
	assert.Equal(t, prior[1], merged[1], "the prior B wins over the new B")
}

func TestMerge_Idempotent(t *testing.T) {
	cases := []struct {
		prior, batch []string
	}{
		{nil, []string{"A"}},
		{[]string{"A", "B"}, []string{"B", "C"}},
		{[]string{"A"}, []string{"A"}},
		{[]string{"X", "Y"}, []string{"Z", "Z", "W"}},
	}

	for _, c := range cases {
		t.Run(fmt.Sprint(c.prior, c.batch), func(t *testing.T) {
			batch := titled(c.batch...)
			once, _ := Merge(batch, titled(c.prior...))
			twice, addedAgain := Merge(batch, once)

			assert.Equal(t, once, twice)
			assert.Zero(t, addedAgain)
		})
	}
}

func TestMerge_OrderPreserved(t *testing.T) {
	prior := titled("D", "A", "C")
	batch := titled("Z", "A", "B", "Y")

	merged, added := Merge(batch, prior)

	assert.Equal(t, []string{"D", "A", "C", "Z", "B", "Y"}, titlesOf(merged))
	assert.Equal(t, 3, added)
}

func TestMerge_TitleUniqueness(t *testing.T) {
	merged, added := Merge(titled("A", "B", "A", "C", "B"), titled("C"))

	assert.Equal(t, []string{"C", "A", "B"}, titlesOf(merged))
	assert.Equal(t, 2, added)

	seen := map[string]bool{}
	for _, r := range merged {
		assert.False(t, seen[r.Title], "duplicate title %q", r.Title)
		seen[r.Title] = true
	}
}

func TestMerge_ExactTitleMatchOnly(t *testing.T) {
	merged, added := Merge(titled("laptop", "Laptop ", "LAPTOP"), titled("Laptop"))

	assert.Equal(t, 3, added)
	assert.Len(t, merged, 4)
}

func TestMerge_EmptyPriorBootstrap(t *testing.T) {
	merged, added := Merge(titled("A", "B", "C"), nil)

	assert.Equal(t, 3, added)
	assert.Equal(t, []string{"A", "B", "C"}, titlesOf(merged))
}

func TestMerge_PriorNotMutated(t *testing.T) {
	prior := make([]models.ScrapedProduct, 2, 10)
	copy(prior, titled("A", "B"))
	snapshot := append([]models.ScrapedProduct(nil), prior...)

	merged, _ := Merge(titled("C", "D"), prior)
	merged[0].Title = "changed"

	assert.Equal(t, snapshot, prior)
	assert.Equal(t, models.ScrapedProduct{}, prior[:cap(prior)][2], "spare capacity untouched")
}
