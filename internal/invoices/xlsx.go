package invoices

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// ExportXLSX renders the document as a spreadsheet and returns the file bytes
// together with the download filename (Bill_<ISO-date>.xlsx).
func ExportXLSX(doc *Document) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	row := 1
	setRow := func(values ...any) error {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return err
			}
		}
		row++
		return nil
	}
	skipRow := func() { row++ }

	header := [][]any{
		{doc.BusinessName},
		{doc.BusinessContact},
		{"Invoice Date:", doc.InvoiceDate, "Time:", doc.InvoiceTime},
		{"Bill To:", doc.BillTo},
	}
	for _, line := range header {
		if err := setRow(line...); err != nil {
			return nil, "", fmt.Errorf("writing invoice header: %w", err)
		}
	}
	skipRow()

	if err := setRow("Item", "Quantity", "Rate", "Discount", "Amount"); err != nil {
		return nil, "", fmt.Errorf("writing table header: %w", err)
	}
	for _, tableRow := range doc.Rows {
		if err := setRow(tableRow.Item, tableRow.Quantity, tableRow.Rate, tableRow.DiscountPercent, tableRow.Amount); err != nil {
			return nil, "", fmt.Errorf("writing table row: %w", err)
		}
	}
	skipRow()

	totals := [][]any{
		{"Subtotal:", doc.Subtotal},
		{doc.TaxLabel + ":", doc.Tax},
		{"Total Discount:", doc.OverallDiscount},
		{"Total Amount:", doc.Total},
	}
	for _, line := range totals {
		if err := setRow(line...); err != nil {
			return nil, "", fmt.Errorf("writing totals: %w", err)
		}
	}
	skipRow()

	if err := setRow("Terms and Conditions:"); err != nil {
		return nil, "", fmt.Errorf("writing terms header: %w", err)
	}
	for i, term := range doc.Terms {
		if err := setRow(fmt.Sprintf("%d. %s", i+1, term)); err != nil {
			return nil, "", fmt.Errorf("writing terms: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("encoding spreadsheet: %w", err)
	}
	return buf.Bytes(), "Bill_" + doc.ISODate + ".xlsx", nil
}
