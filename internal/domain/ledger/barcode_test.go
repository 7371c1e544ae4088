package ledger

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
)

func TestNextGeneratedBarcodeUsesCategoryBand(t *testing.T) {
	categories := []string{"Grocery", "Toiletries", "Stationery"}
	products := []entity.Product{
		{Category: "Grocery", Barcode: "GEN-003"},
		{Category: "Grocery", Barcode: "GEN-017"},
		{Category: "Grocery", Barcode: "8901234567890"}, // scanned, ignored
		{Category: "Toiletries", Barcode: "GEN-502"},
	}

	if got := NextGeneratedBarcode("Grocery", categories, products); got != "GEN-018" {
		t.Fatalf("next grocery barcode = %q, want GEN-018", got)
	}
	if got := NextGeneratedBarcode("Toiletries", categories, products); got != "GEN-503" {
		t.Fatalf("next toiletries barcode = %q, want GEN-503", got)
	}
	// Empty band starts at the band base plus one.
	if got := NextGeneratedBarcode("Stationery", categories, products); got != "GEN-1001" {
		t.Fatalf("next stationery barcode = %q, want GEN-1001", got)
	}
}

func TestNextGeneratedBarcodeIgnoresOtherBands(t *testing.T) {
	categories := []string{"Grocery", "Toiletries"}
	products := []entity.Product{
		// Numbered far outside grocery's 0-499 band; must not leak in.
		{Category: "Grocery", Barcode: "GEN-900"},
	}
	if got := NextGeneratedBarcode("Grocery", categories, products); got != "GEN-001" {
		t.Fatalf("next grocery barcode = %q, want GEN-001", got)
	}
}

func TestNextGeneratedBarcodeFallbackForUnknownCategory(t *testing.T) {
	got := NextGeneratedBarcode("Electronics", []string{"Grocery"}, nil)
	if !strings.HasPrefix(got, GeneratedBarcodePrefix) {
		t.Fatalf("fallback barcode %q missing prefix", got)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(got, GeneratedBarcodePrefix))
	if err != nil {
		t.Fatalf("fallback barcode %q is not numeric", got)
	}
	if n < 1000 || n > 9999 {
		t.Fatalf("fallback barcode number %d outside 1000-9999", n)
	}
}
