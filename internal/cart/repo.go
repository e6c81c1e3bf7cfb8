package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

// Line is one product/quantity/discount entry. UnitPrice is the catalog price
// snapshotted when the line was added; later catalog edits never touch it.
type Line struct {
	ProductName     string
	Quantity        int
	DiscountPercent decimal.Decimal
	UnitPrice       decimal.Decimal
}

var (
	ErrSessionNotFound = errors.New("cart session not found")
	ErrIndexOutOfRange = errors.New("line index out of range")
)

// Repository stores the ordered line sequence per cart session.
type Repository interface {
	Create(ctx context.Context, sessionID string) error
	Lines(ctx context.Context, sessionID string) ([]Line, error)
	Append(ctx context.Context, sessionID string, line Line) (int, error)
	RemoveAt(ctx context.Context, sessionID string, index int) error
	Clear(ctx context.Context, sessionID string) error
}

// MemoryRepository keeps carts in process memory. Carts are ephemeral by
// design; only the catalog outlives the process.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[string][]Line
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: map[string][]Line{}}
}

func (r *MemoryRepository) Create(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[sessionID]; !ok {
		r.carts[sessionID] = []Line{}
	}
	return nil
}

func (r *MemoryRepository) Lines(ctx context.Context, sessionID string) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines, ok := r.carts[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *MemoryRepository) Append(ctx context.Context, sessionID string, line Line) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines, ok := r.carts[sessionID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	r.carts[sessionID] = append(lines, line)
	return len(lines), nil
}

func (r *MemoryRepository) RemoveAt(ctx context.Context, sessionID string, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines, ok := r.carts[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if index < 0 || index >= len(lines) {
		return ErrIndexOutOfRange
	}
	r.carts[sessionID] = append(lines[:index], lines[index+1:]...)
	return nil
}

func (r *MemoryRepository) Clear(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[sessionID]; !ok {
		return ErrSessionNotFound
	}
	r.carts[sessionID] = []Line{}
	return nil
}
