package cart

import (
	"context"
	"testing"

	pkgerrors "github.com/shivamcrackers/posbill-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

type priceLookupFunc func(ctx context.Context, name string) (decimal.Decimal, error)

func (fn priceLookupFunc) Lookup(ctx context.Context, name string) (decimal.Decimal, error) {
	return fn(ctx, name)
}

func fixedCatalog(prices map[string]string) priceLookupFunc {
	return func(ctx context.Context, name string) (decimal.Decimal, error) {
		raw, ok := prices[name]
		if !ok {
			return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return decimal.RequireFromString(raw), nil
	}
}

func newSessionWithService(t *testing.T, catalog priceLookupFunc) (Service, string) {
	t.Helper()
	svc, err := NewService(NewMemoryRepository(), catalog)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	sessionID, err := svc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	return svc, sessionID
}

func TestAddLineSnapshotsCatalogPrice(t *testing.T) {
	t.Parallel()

	prices := map[string]string{"Kulhar": "1.75"}
	svc, sessionID := newSessionWithService(t, fixedCatalog(prices))

	index, err := svc.AddLine(context.Background(), sessionID, "Kulhar", 2, decimal.Zero)
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if index != 0 {
		t.Fatalf("expected first line at index 0, got %d", index)
	}

	// A later catalog edit must not change the already-added line.
	prices["Kulhar"] = "99"

	lines, err := svc.Lines(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if !lines[0].UnitPrice.Equal(decimal.RequireFromString("1.75")) {
		t.Fatalf("line price changed after catalog edit: %s", lines[0].UnitPrice)
	}
}

func TestAddLineValidation(t *testing.T) {
	t.Parallel()

	svc, sessionID := newSessionWithService(t, fixedCatalog(map[string]string{"Kulhar": "1.75"}))

	cases := []struct {
		name     string
		product  string
		quantity int
		discount decimal.Decimal
	}{
		{name: "empty product", product: "", quantity: 1, discount: decimal.Zero},
		{name: "unknown product", product: "Rocket", quantity: 1, discount: decimal.Zero},
		{name: "zero quantity", product: "Kulhar", quantity: 0, discount: decimal.Zero},
		{name: "negative quantity", product: "Kulhar", quantity: -2, discount: decimal.Zero},
		{name: "negative discount", product: "Kulhar", quantity: 1, discount: decimal.NewFromInt(-1)},
		{name: "discount above 100", product: "Kulhar", quantity: 1, discount: decimal.RequireFromString("100.01")},
	}
	for _, tc := range cases {
		_, err := svc.AddLine(context.Background(), sessionID, tc.product, tc.quantity, tc.discount)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected VALIDATION_ERROR, got %v", tc.name, err)
		}
	}

	size, err := svc.Size(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != 0 {
		t.Fatalf("rejected lines must not be appended, size=%d", size)
	}

	// Boundary discounts are accepted.
	if _, err := svc.AddLine(context.Background(), sessionID, "Kulhar", 1, decimal.Zero); err != nil {
		t.Fatalf("discount 0 should be valid: %v", err)
	}
	if _, err := svc.AddLine(context.Background(), sessionID, "Kulhar", 1, decimal.NewFromInt(100)); err != nil {
		t.Fatalf("discount 100 should be valid: %v", err)
	}
}

func TestRemoveLineReindexes(t *testing.T) {
	t.Parallel()

	svc, sessionID := newSessionWithService(t, fixedCatalog(map[string]string{"A": "1", "B": "2", "C": "3"}))

	for _, product := range []string{"A", "B", "C"} {
		if _, err := svc.AddLine(context.Background(), sessionID, product, 1, decimal.Zero); err != nil {
			t.Fatalf("AddLine(%s): %v", product, err)
		}
	}

	if err := svc.RemoveLine(context.Background(), sessionID, 1); err != nil {
		t.Fatalf("RemoveLine(1): %v", err)
	}
	lines, _ := svc.Lines(context.Background(), sessionID)
	if len(lines) != 2 || lines[0].ProductName != "A" || lines[1].ProductName != "C" {
		t.Fatalf("expected [A,C], got %+v", lines)
	}

	// A second removal at index 1 removes C, not B.
	if err := svc.RemoveLine(context.Background(), sessionID, 1); err != nil {
		t.Fatalf("RemoveLine(1) again: %v", err)
	}
	lines, _ = svc.Lines(context.Background(), sessionID)
	if len(lines) != 1 || lines[0].ProductName != "A" {
		t.Fatalf("expected [A], got %+v", lines)
	}
}

func TestRemoveLineOutOfRange(t *testing.T) {
	t.Parallel()

	svc, sessionID := newSessionWithService(t, fixedCatalog(map[string]string{"A": "1"}))

	for _, index := range []int{-1, 0, 5} {
		err := svc.RemoveLine(context.Background(), sessionID, index)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeOutOfRange {
			t.Fatalf("RemoveLine(%d): expected OUT_OF_RANGE, got %v", index, err)
		}
	}
}

func TestClearEmptiesCart(t *testing.T) {
	t.Parallel()

	svc, sessionID := newSessionWithService(t, fixedCatalog(map[string]string{"A": "1"}))

	if _, err := svc.AddLine(context.Background(), sessionID, "A", 3, decimal.Zero); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := svc.Clear(context.Background(), sessionID); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	size, _ := svc.Size(context.Background(), sessionID)
	if size != 0 {
		t.Fatalf("expected empty cart, size=%d", size)
	}
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newSessionWithService(t, fixedCatalog(map[string]string{"A": "1"}))

	_, err := svc.Lines(context.Background(), "missing")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for unknown session, got %v", err)
	}
}
