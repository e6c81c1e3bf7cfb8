package invoices

import (
	"strings"
	"testing"

	"github.com/shivamcrackers/posbill-backend/pkg/config"
	"github.com/shopspring/decimal"
)

func renderedFixture(t *testing.T) *Document {
	t.Helper()

	invoice, err := Compute([]LineInput{
		{ProductName: "Kulhar", Quantity: 4, DiscountPercent: decimal.Zero, UnitPrice: dec(t, "1.75")},
		{ProductName: "Water Bottle", Quantity: 2, DiscountPercent: dec(t, "50.00"), UnitPrice: decimal.NewFromInt(10)},
	}, decimal.NewFromInt(2), "Ravi", frozenNow)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	invoice.Number = "inv-test-1"

	business := config.BusinessConfig{Name: "Shivam Crackers", Contact: "Mobile: +918210012972"}
	invoiceCfg := config.InvoiceConfig{
		CurrencySymbol: "₹",
		Terms:          []string{"Goods once sold will not be taken back.", "All disputes subject to local jurisdiction."},
	}
	return Render(invoice, business, invoiceCfg)
}

func TestRenderFormatsAmounts(t *testing.T) {
	t.Parallel()

	doc := renderedFixture(t)

	if doc.BusinessName != "Shivam Crackers" {
		t.Fatalf("unexpected business name %q", doc.BusinessName)
	}
	if doc.InvoiceNumber != "inv-test-1" {
		t.Fatalf("unexpected invoice number %q", doc.InvoiceNumber)
	}
	if doc.BillTo != "Ravi" {
		t.Fatalf("unexpected bill-to %q", doc.BillTo)
	}

	if len(doc.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(doc.Rows))
	}
	first := doc.Rows[0]
	if first.Rate != "₹1.75" || first.Amount != "₹7.00" || first.DiscountPercent != "0%" {
		t.Fatalf("unexpected first row %+v", first)
	}
	// 50.00 renders without trailing zeros.
	if doc.Rows[1].DiscountPercent != "50%" {
		t.Fatalf("unexpected second row discount %q", doc.Rows[1].DiscountPercent)
	}

	if doc.Subtotal != "₹17.00" || doc.OverallDiscount != "₹2.00" || doc.Total != "₹15.00" {
		t.Fatalf("unexpected totals: subtotal=%q discount=%q total=%q", doc.Subtotal, doc.OverallDiscount, doc.Total)
	}
	if doc.TaxLabel != "Tax (0%)" || doc.Tax != "₹0.00" {
		t.Fatalf("unexpected tax line: %q %q", doc.TaxLabel, doc.Tax)
	}
}

func TestRenderDateFormats(t *testing.T) {
	t.Parallel()

	doc := renderedFixture(t)

	if doc.InvoiceDate != "02/11/2025" {
		t.Fatalf("unexpected invoice date %q", doc.InvoiceDate)
	}
	if doc.InvoiceTime != "6:30:15 PM" {
		t.Fatalf("unexpected invoice time %q", doc.InvoiceTime)
	}
	if doc.ISODate != "2025-11-02" {
		t.Fatalf("unexpected ISO date %q", doc.ISODate)
	}
}

func TestExportXLSX(t *testing.T) {
	t.Parallel()

	doc := renderedFixture(t)

	data, filename, err := ExportXLSX(doc)
	if err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}
	if filename != "Bill_2025-11-02.xlsx" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if len(data) == 0 {
		t.Fatal("expected spreadsheet bytes")
	}
	// XLSX files are zip archives.
	if !strings.HasPrefix(string(data[:2]), "PK") {
		t.Fatalf("expected zip signature, got % x", data[:2])
	}
}

func TestTrimTrailingZeros(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"50.00": "50",
		"12.50": "12.5",
		"0":     "0",
		"33.33": "33.33",
	}
	for in, want := range cases {
		if got := trimTrailingZeros(in); got != want {
			t.Fatalf("trimTrailingZeros(%q) = %q, want %q", in, got, want)
		}
	}
}
