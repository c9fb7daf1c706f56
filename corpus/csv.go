package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/use-agent/scout/models"
)

var csvHeader = []string{"title", "price", "image", "description", "category"}

// WriteCSV writes records with a header row, for spreadsheet curation.
func WriteCSV(w io.Writer, records []models.ScrapedProduct) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("corpus: write csv header: %w", err)
	}
	for _, p := range records {
		row := []string{
			p.Title,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			p.Image,
			p.Description,
			p.Category,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("corpus: write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
