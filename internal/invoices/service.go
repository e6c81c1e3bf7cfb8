package invoices

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shivamcrackers/posbill-backend/internal/cart"
	pkgerrors "github.com/shivamcrackers/posbill-backend/pkg/errors"
	"github.com/shivamcrackers/posbill-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Flow labels used on invoice metrics.
const (
	FlowCart  = "cart"
	FlowAdHoc = "adhoc"
)

type cartReader interface {
	Lines(ctx context.Context, sessionID string) ([]cart.Line, error)
}

type priceLookup interface {
	Lookup(ctx context.Context, name string) (decimal.Decimal, error)
}

// AdHocEntry is one row of the row-based flow. Prices are resolved against
// the catalog at compute time.
type AdHocEntry struct {
	ProductName     string
	Quantity        int
	DiscountPercent decimal.Decimal
}

// Service generates invoices from carts or ad hoc row lists.
type Service interface {
	GenerateFromCart(ctx context.Context, sessionID string, overallDiscount decimal.Decimal, customerName string) (*Invoice, error)
	GenerateAdHoc(ctx context.Context, entries []AdHocEntry, overallDiscount decimal.Decimal, customerName string) (*Invoice, error)
}

type service struct {
	carts   cartReader
	catalog priceLookup
	metrics *metrics.BillingMetrics
	now     func() time.Time
}

// NewService wires the invoice generator to its collaborators.
func NewService(carts cartReader, catalog priceLookup, billing *metrics.BillingMetrics) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog lookup required")
	}
	return &service{
		carts:   carts,
		catalog: catalog,
		metrics: billing,
		now:     time.Now,
	}, nil
}

// GenerateFromCart computes an invoice from the session's cart. The cart is
// left untouched; repeated generation re-renders the same accumulating cart
// and callers clear explicitly when they want a fresh one.
func (s *service) GenerateFromCart(ctx context.Context, sessionID string, overallDiscount decimal.Decimal, customerName string) (*Invoice, error) {
	lines, err := s.carts.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	inputs := make([]LineInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, LineInput{
			ProductName:     line.ProductName,
			Quantity:        line.Quantity,
			DiscountPercent: line.DiscountPercent,
			UnitPrice:       line.UnitPrice,
		})
	}

	invoice, err := Compute(inputs, overallDiscount, customerName, s.now())
	if err != nil {
		return nil, err
	}
	s.finish(invoice, FlowCart)
	return invoice, nil
}

// GenerateAdHoc computes an invoice from explicit rows, resolving each row's
// price against the catalog at compute time. Any unresolved or invalid row
// aborts the whole computation.
func (s *service) GenerateAdHoc(ctx context.Context, entries []AdHocEntry, overallDiscount decimal.Decimal, customerName string) (*Invoice, error) {
	if len(entries) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "no rows to bill")
	}

	inputs := make([]LineInput, 0, len(entries))
	for i, entry := range entries {
		price, err := s.catalog.Lookup(ctx, entry.ProductName)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "row references a product that is not in the catalog").
					WithDetails(map[string]any{"line": i, "product_name": entry.ProductName})
			}
			return nil, err
		}
		inputs = append(inputs, LineInput{
			ProductName:     entry.ProductName,
			Quantity:        entry.Quantity,
			DiscountPercent: entry.DiscountPercent,
			UnitPrice:       price,
		})
	}

	invoice, err := Compute(inputs, overallDiscount, customerName, s.now())
	if err != nil {
		return nil, err
	}
	s.finish(invoice, FlowAdHoc)
	return invoice, nil
}

func (s *service) finish(invoice *Invoice, flow string) {
	invoice.Number = uuid.NewString()
	s.metrics.IncInvoiceGenerated(flow)
	total, _ := invoice.Total.Float64()
	s.metrics.ObserveInvoiceTotal(flow, total)
}
