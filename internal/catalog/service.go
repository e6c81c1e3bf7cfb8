package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shivamcrackers/posbill-backend/pkg/errors"
	"github.com/shivamcrackers/posbill-backend/pkg/logger"
	"github.com/shivamcrackers/posbill-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

// SnapshotStore persists the full serialized catalog under a well-known key.
type SnapshotStore interface {
	Load(ctx context.Context, key string) (payload string, found bool, err error)
	Save(ctx context.Context, key, payload string) error
}

// Service owns the product/price catalog.
type Service interface {
	Upsert(ctx context.Context, name string, price decimal.Decimal) error
	Remove(ctx context.Context, name string) error
	Lookup(ctx context.Context, name string) (decimal.Decimal, error)
	Search(ctx context.Context, term string) ([]Entry, error)
	List(ctx context.Context) ([]Entry, error)
}

type service struct {
	mu      sync.RWMutex
	store   SnapshotStore
	key     string
	prices  map[string]decimal.Decimal
	order   []string
	metrics *metrics.BillingMetrics
	logg    *logger.Logger
}

// NewService loads the catalog from the snapshot store, falling back to the
// default catalog when no snapshot exists or it fails to parse.
func NewService(ctx context.Context, store SnapshotStore, key string, billing *metrics.BillingMetrics, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("snapshot key required")
	}

	svc := &service{
		store:   store,
		key:     key,
		prices:  map[string]decimal.Decimal{},
		metrics: billing,
		logg:    logg,
	}

	entries, err := svc.loadEntries(ctx)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		svc.prices[entry.Name] = entry.UnitPrice
		svc.order = append(svc.order, entry.Name)
	}
	return svc, nil
}

func (s *service) loadEntries(ctx context.Context) ([]Entry, error) {
	payload, found, err := s.store.Load(ctx, s.key)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load catalog snapshot")
	}
	if !found {
		return DefaultEntries(), nil
	}
	entries, err := DecodeSnapshot(payload)
	if err != nil {
		// Malformed persisted data is treated as absent, not repaired.
		if s.logg != nil {
			s.logg.Warn(ctx, "catalog snapshot unparsable, using defaults")
		}
		return DefaultEntries(), nil
	}
	return entries, nil
}

func (s *service) Upsert(ctx context.Context, name string, price decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New(errors.CodeValidation, "product name is required")
	}
	if !price.IsPositive() {
		return errors.New(errors.CodeValidation, "price must be greater than zero").
			WithDetails(map[string]any{"price": price.String()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.prices[name]
	s.prices[name] = price
	if !existed {
		s.order = append(s.order, name)
	}

	if err := s.persistLocked(ctx); err != nil {
		// All-or-nothing per call: roll the entry back on persist failure.
		if existed {
			s.prices[name] = prev
		} else {
			delete(s.prices, name)
			s.order = s.order[:len(s.order)-1]
		}
		return err
	}

	s.metrics.IncCatalogMutation("upsert")
	return nil
}

func (s *service) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.prices[name]
	if !existed {
		// Removing an absent name is a no-op at the data layer.
		return nil
	}

	pos := -1
	for i, n := range s.order {
		if n == name {
			pos = i
			break
		}
	}
	delete(s.prices, name)
	s.order = append(s.order[:pos], s.order[pos+1:]...)

	if err := s.persistLocked(ctx); err != nil {
		s.prices[name] = prev
		s.order = append(s.order[:pos], append([]string{name}, s.order[pos:]...)...)
		return err
	}

	s.metrics.IncCatalogMutation("remove")
	return nil
}

func (s *service) Lookup(ctx context.Context, name string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	price, ok := s.prices[name]
	if !ok {
		return decimal.Decimal{}, errors.New(errors.CodeNotFound, "product not found")
	}
	return price, nil
}

func (s *service) Search(ctx context.Context, term string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(term))
	matched := []Entry{}
	for _, name := range s.order {
		if needle == "" || strings.Contains(strings.ToLower(name), needle) {
			matched = append(matched, Entry{Name: name, UnitPrice: s.prices[name]})
		}
	}
	return matched, nil
}

func (s *service) List(ctx context.Context) ([]Entry, error) {
	return s.Search(ctx, "")
}

func (s *service) persistLocked(ctx context.Context) error {
	entries := make([]Entry, 0, len(s.order))
	for _, name := range s.order {
		entries = append(entries, Entry{Name: name, UnitPrice: s.prices[name]})
	}
	payload, err := EncodeSnapshot(entries)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encode catalog snapshot")
	}
	if err := s.store.Save(ctx, s.key, payload); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "save catalog snapshot")
	}
	return nil
}
