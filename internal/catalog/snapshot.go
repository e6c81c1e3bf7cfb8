package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Entry is a single sellable product and its unit price.
type Entry struct {
	Name      string
	UnitPrice decimal.Decimal
}

// DefaultEntries returns the built-in catalog used when no snapshot is
// persisted yet or the persisted payload cannot be parsed.
func DefaultEntries() []Entry {
	return []Entry{
		{Name: "Kulhar", UnitPrice: decimal.RequireFromString("1.75")},
		{Name: "Water Bottle", UnitPrice: decimal.NewFromInt(10)},
	}
}

// EncodeSnapshot serializes entries as a single JSON object mapping product
// name to unit price, with prices emitted as plain numbers. Entry order is
// preserved in the payload.
func EncodeSnapshot(entries []Entry) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(entry.Name)
		if err != nil {
			return "", fmt.Errorf("encoding product name: %w", err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.WriteString(entry.UnitPrice.String())
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

// DecodeSnapshot parses a serialized catalog, preserving the key order of the
// payload. Any malformed payload yields an error; callers fall back to the
// default catalog wholesale rather than repairing partially.
func DecodeSnapshot(payload string) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("snapshot is not a JSON object")
	}

	var entries []Entry
	seen := map[string]struct{}{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading product name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid product name in snapshot")
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate product %q in snapshot", name)
		}
		seen[name] = struct{}{}

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading price for %q: %w", name, err)
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return nil, fmt.Errorf("price for %q is not a number", name)
		}
		price, err := decimal.NewFromString(num.String())
		if err != nil {
			return nil, fmt.Errorf("parsing price for %q: %w", name, err)
		}
		entries = append(entries, Entry{Name: name, UnitPrice: price})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("closing snapshot: %w", err)
	}
	return entries, nil
}
