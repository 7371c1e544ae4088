package ledger

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
)

// GeneratedBarcodePrefix marks barcodes the system allocated rather than
// ones scanned off packaging.
const GeneratedBarcodePrefix = "GEN-"

const barcodeBandWidth = 500

// NextGeneratedBarcode allocates the next sequential barcode for a
// category. Each category owns a numeric band of width 500 determined by
// its position in the category list, and the next number is one past the
// highest generated barcode already assigned within that band. A category
// missing from the list gets a random four-digit fallback outside any band.
func NextGeneratedBarcode(category string, categories []string, products []entity.Product) string {
	bandIndex := -1
	for i, c := range categories {
		if c == category {
			bandIndex = i
			break
		}
	}
	if bandIndex == -1 {
		return fmt.Sprintf("%s%d", GeneratedBarcodePrefix, 1000+rand.Intn(9000))
	}

	start := bandIndex * barcodeBandWidth
	end := (bandIndex + 1) * barcodeBandWidth

	max := start
	for i := range products {
		p := &products[i]
		if p.Category != category || !strings.HasPrefix(p.Barcode, GeneratedBarcodePrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(p.Barcode, GeneratedBarcodePrefix))
		if err != nil {
			continue
		}
		if n > max && n < end {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", GeneratedBarcodePrefix, max+1)
}
