package validators

import (
	"strings"

	pkgerrors "github.com/shivamcrackers/posbill-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// ParseDecimal parses a decimal request field sent as a JSON string. An empty
// value parses to zero so optional money fields can be omitted.
func ParseDecimal(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "field must be a decimal number").
			WithDetails(map[string]any{"field": field})
	}
	return value, nil
}
