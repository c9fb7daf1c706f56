package corpus

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/scout/models"
)

func TestWriteCSV(t *testing.T) {
	records := []models.ScrapedProduct{
		{Title: `Kettle, 1.5L "Steel"`, Price: 1299, Image: "https://img/k.jpg", Description: "A high-quality kettle.", Category: "kitchen"},
		{Title: "Mug", Price: 49.5, Image: "https://img/m.jpg", Description: "A high-quality Mug.", Category: "kitchen"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	want := "title,price,image,description,category\n" +
		`"Kettle, 1.5L ""Steel""",1299,https://img/k.jpg,A high-quality kettle.,kitchen` + "\n" +
		"Mug,49.5,https://img/m.jpg,A high-quality Mug.,kitchen\n"
	assert.Equal(t, want, buf.String())
}
