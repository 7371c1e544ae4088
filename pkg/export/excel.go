// Package export builds Excel workbooks for inventory and sales reports.
package export

import (
	"fmt"

	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const (
	inventorySheet    = "Inventory"
	transactionsSheet = "Transactions"
)

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func setColumnWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

// InventoryWorkbook renders the product catalog as an Excel workbook.
// Prices arrive in minor units and are written out as decimals.
func InventoryWorkbook(products []entity.Product) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), inventorySheet)

	header := []interface{}{
		"Barcode", "Product Name", "Category", "HSN/SAC",
		"Buy Price", "Sell Price", "Current Stock", "Total Sold",
		"Stock Value (Buy)", "Stock Value (Sell)", "Status",
	}
	if err := writeRow(f, inventorySheet, 1, header); err != nil {
		return nil, err
	}

	for i, p := range products {
		category := p.Category
		if category == "" {
			category = "-"
		}
		hsn := "-"
		if p.HSNCode != nil && *p.HSNCode != "" {
			hsn = *p.HSNCode
		}
		status := "Available"
		switch {
		case p.Stock <= 0:
			status = "Out of Stock"
		case p.Stock < 5:
			status = "Low Stock"
		}

		row := []interface{}{
			p.Barcode,
			p.Name,
			category,
			hsn,
			float64(p.BuyPrice) / 100,
			float64(p.SellPrice) / 100,
			p.Stock,
			p.TotalSold,
			float64(int64(p.Stock)*p.BuyPrice) / 100,
			float64(int64(p.Stock)*p.SellPrice) / 100,
			status,
		}
		if err := writeRow(f, inventorySheet, i+2, row); err != nil {
			return nil, err
		}
	}

	widths := []float64{15, 30, 15, 12, 12, 12, 12, 12, 15, 15, 15}
	if err := setColumnWidths(f, inventorySheet, widths); err != nil {
		return nil, err
	}
	return f, nil
}

// TransactionsWorkbook renders transaction history as an Excel workbook.
func TransactionsWorkbook(transactions []entity.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), transactionsSheet)

	header := []interface{}{
		"Date", "Invoice No", "Type", "Customer", "Items Count",
		"Subtotal", "Discount", "Tax", "Total", "Payment Method",
	}
	if err := writeRow(f, transactionsSheet, 1, header); err != nil {
		return nil, err
	}

	for i, t := range transactions {
		customer := t.CustomerName
		if customer == "" {
			customer = "Walk-in"
		}
		method := string(t.PaymentMethod)
		if method == "" {
			method = "Cash"
		}

		row := []interface{}{
			t.Date.Format("2006-01-02 15:04"),
			t.InvoiceNo,
			string(t.Type),
			customer,
			len(t.Items),
			float64(t.Subtotal) / 100,
			float64(t.Discount) / 100,
			float64(t.Tax) / 100,
			float64(t.Total) / 100,
			method,
		}
		if err := writeRow(f, transactionsSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	widths := []float64{20, 15, 10, 25, 12, 12, 12, 12, 12, 15}
	if err := setColumnWidths(f, transactionsSheet, widths); err != nil {
		return nil, err
	}
	return f, nil
}

// Filename builds a dated report filename, e.g. Inventory_Report_2026-03-14.xlsx
func Filename(prefix, date string) string {
	return fmt.Sprintf("%s_Report_%s.xlsx", prefix, date)
}
