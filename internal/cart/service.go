package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/shivamcrackers/posbill-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

var maxDiscountPercent = decimal.NewFromInt(100)

type priceLookup interface {
	Lookup(ctx context.Context, name string) (decimal.Decimal, error)
}

// Service exposes cart session operations.
type Service interface {
	CreateSession(ctx context.Context) (string, error)
	AddLine(ctx context.Context, sessionID, productName string, quantity int, discountPercent decimal.Decimal) (int, error)
	RemoveLine(ctx context.Context, sessionID string, index int) error
	Clear(ctx context.Context, sessionID string) error
	Lines(ctx context.Context, sessionID string) ([]Line, error)
	Size(ctx context.Context, sessionID string) (int, error)
	IsEmpty(ctx context.Context, sessionID string) (bool, error)
}

type service struct {
	repo    Repository
	catalog priceLookup
}

// NewService builds a cart service backed by the provided repository and
// catalog price lookup.
func NewService(repo Repository, catalog priceLookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog lookup required")
	}
	return &service{repo: repo, catalog: catalog}, nil
}

func (s *service) CreateSession(ctx context.Context) (string, error) {
	sessionID := uuid.NewString()
	if err := s.repo.Create(ctx, sessionID); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart session")
	}
	return sessionID, nil
}

// AddLine validates the request, snapshots the current catalog price into the
// new line and appends it, returning the new line's index.
func (s *service) AddLine(ctx context.Context, sessionID, productName string, quantity int, discountPercent decimal.Decimal) (int, error) {
	if strings.TrimSpace(productName) == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if quantity < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer").
			WithDetails(map[string]any{"quantity": quantity})
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(maxDiscountPercent) {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 0 and 100").
			WithDetails(map[string]any{"discount_percent": discountPercent.String()})
	}

	price, err := s.catalog.Lookup(ctx, productName)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "product is not in the catalog").
				WithDetails(map[string]any{"product_name": productName})
		}
		return 0, err
	}

	index, err := s.repo.Append(ctx, sessionID, Line{
		ProductName:     productName,
		Quantity:        quantity,
		DiscountPercent: discountPercent,
		UnitPrice:       price,
	})
	if err != nil {
		return 0, mapRepoError(err)
	}
	return index, nil
}

func (s *service) RemoveLine(ctx context.Context, sessionID string, index int) error {
	if err := s.repo.RemoveAt(ctx, sessionID, index); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Clear(ctx, sessionID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (s *service) Lines(ctx context.Context, sessionID string) ([]Line, error) {
	lines, err := s.repo.Lines(ctx, sessionID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return lines, nil
}

func (s *service) Size(ctx context.Context, sessionID string) (int, error) {
	lines, err := s.Lines(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}

func (s *service) IsEmpty(ctx context.Context, sessionID string) (bool, error) {
	size, err := s.Size(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return size == 0, nil
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart session not found")
	case errors.Is(err, ErrIndexOutOfRange):
		return pkgerrors.New(pkgerrors.CodeOutOfRange, "line index out of range")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cart repository")
	}
}
