package invoices

import (
	"strings"
	"time"

	pkgerrors "github.com/shivamcrackers/posbill-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

const defaultCustomerName = "Customer"

var (
	oneHundred  = decimal.NewFromInt(100)
	maxDiscount = oneHundred
)

// LineInput is one computed invoice line request. UnitPrice is the price
// snapshot the line was created with, not the current catalog price.
type LineInput struct {
	ProductName     string
	Quantity        int
	DiscountPercent decimal.Decimal
	UnitPrice       decimal.Decimal
}

// Row is one rendered invoice line.
type Row struct {
	Item            string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	Amount          decimal.Decimal
}

// Invoice is the computed, renderable summary of a completed sale. It is
// ephemeral; nothing here is persisted.
type Invoice struct {
	Number          string
	CustomerName    string
	Rows            []Row
	Subtotal        decimal.Decimal
	OverallDiscount decimal.Decimal
	Total           decimal.Decimal
	GeneratedAt     time.Time
}

// Compute turns the line inputs plus a flat overall discount into an invoice.
// Any invalid line aborts the whole computation; amounts accumulate at full
// decimal precision and are rounded only at presentation time. Compute has no
// side effects and never mutates its inputs.
func Compute(lines []LineInput, overallDiscount decimal.Decimal, customerName string, now time.Time) (*Invoice, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "no products in the cart")
	}

	rows := make([]Row, 0, len(lines))
	subtotal := decimal.Zero
	for i, line := range lines {
		if err := validateLine(i, line); err != nil {
			return nil, err
		}
		factor := decimal.NewFromInt(1).Sub(line.DiscountPercent.Div(oneHundred))
		amount := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Mul(factor)
		subtotal = subtotal.Add(amount)
		rows = append(rows, Row{
			Item:            line.ProductName,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			Amount:          amount,
		})
	}

	if overallDiscount.IsNegative() || overallDiscount.GreaterThan(subtotal) {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidDiscount, "overall discount must be between 0 and the subtotal").
			WithDetails(map[string]any{
				"overall_discount": overallDiscount.String(),
				"subtotal":         subtotal.String(),
			})
	}

	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		customerName = defaultCustomerName
	}

	return &Invoice{
		CustomerName:    customerName,
		Rows:            rows,
		Subtotal:        subtotal,
		OverallDiscount: overallDiscount,
		Total:           subtotal.Sub(overallDiscount),
		GeneratedAt:     now,
	}, nil
}

func validateLine(index int, line LineInput) error {
	details := map[string]any{"line": index}
	if strings.TrimSpace(line.ProductName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "line is missing a product name").WithDetails(details)
	}
	if line.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be a positive integer").WithDetails(details)
	}
	if line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(maxDiscount) {
		return pkgerrors.New(pkgerrors.CodeValidation, "line discount must be between 0 and 100").WithDetails(details)
	}
	if line.UnitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "line unit price cannot be negative").WithDetails(details)
	}
	return nil
}
