package invoices

import (
	"strings"

	"github.com/shivamcrackers/posbill-backend/pkg/config"
)

// DocumentRow is one presentation-ready invoice table row. Rates and amounts
// are rounded to two decimals here and nowhere earlier.
type DocumentRow struct {
	Item            string `json:"item"`
	Quantity        int    `json:"quantity"`
	Rate            string `json:"rate"`
	DiscountPercent string `json:"discount_percent"`
	Amount          string `json:"amount"`
}

// Document is the fully rendered invoice handed to export collaborators
// (image, PDF, spreadsheet). It is the calculator output plus the fixed
// vendor header, tax line and terms.
type Document struct {
	BusinessName    string        `json:"business_name"`
	BusinessContact string        `json:"business_contact"`
	InvoiceNumber   string        `json:"invoice_number"`
	InvoiceDate     string        `json:"invoice_date"`
	InvoiceTime     string        `json:"invoice_time"`
	ISODate         string        `json:"iso_date"`
	BillTo          string        `json:"bill_to"`
	Rows            []DocumentRow `json:"rows"`
	Subtotal        string        `json:"subtotal"`
	TaxLabel        string        `json:"tax_label"`
	Tax             string        `json:"tax"`
	OverallDiscount string        `json:"overall_discount"`
	Total           string        `json:"total"`
	Terms           []string      `json:"terms"`
}

// Render formats the invoice for presentation using the configured vendor
// header and currency symbol. Tax is fixed at zero.
func Render(invoice *Invoice, business config.BusinessConfig, invoiceCfg config.InvoiceConfig) *Document {
	symbol := invoiceCfg.CurrencySymbol

	rows := make([]DocumentRow, 0, len(invoice.Rows))
	for _, row := range invoice.Rows {
		rows = append(rows, DocumentRow{
			Item:            row.Item,
			Quantity:        row.Quantity,
			Rate:            symbol + row.UnitPrice.StringFixed(2),
			DiscountPercent: trimTrailingZeros(row.DiscountPercent.String()) + "%",
			Amount:          symbol + row.Amount.StringFixed(2),
		})
	}

	return &Document{
		BusinessName:    business.Name,
		BusinessContact: business.Contact,
		InvoiceNumber:   invoice.Number,
		InvoiceDate:     invoice.GeneratedAt.Format("02/01/2006"),
		InvoiceTime:     invoice.GeneratedAt.Format("3:04:05 PM"),
		ISODate:         invoice.GeneratedAt.Format("2006-01-02"),
		BillTo:          invoice.CustomerName,
		Rows:            rows,
		Subtotal:        symbol + invoice.Subtotal.StringFixed(2),
		TaxLabel:        "Tax (0%)",
		Tax:             symbol + "0.00",
		OverallDiscount: symbol + invoice.OverallDiscount.StringFixed(2),
		Total:           symbol + invoice.Total.StringFixed(2),
		Terms:           append([]string{}, invoiceCfg.Terms...),
	}
}

func trimTrailingZeros(value string) string {
	if !strings.Contains(value, ".") {
		return value
	}
	value = strings.TrimRight(value, "0")
	return strings.TrimSuffix(value, ".")
}
