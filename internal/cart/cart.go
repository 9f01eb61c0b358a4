// Package cart implements the shopping cart engine: an ordered list of lines
// merged by product identity, persisted as a JSON snapshot so the cart
// survives a restart. The engine is the only writer of its snapshot key.
package cart

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/iahmedd-k/Canton-Store/internal/catalog"
	"github.com/iahmedd-k/Canton-Store/internal/store"
)

// snapshotKey is the fixed store key for the serialized cart.
const snapshotKey = "cart"

// Line is one row in the cart: a single product identity and its quantity.
// Quantity is always >= 1; a decrement that would reach 0 removes the line.
type Line struct {
	ProductID string           `json:"productId"`
	Name      string           `json:"name"`
	UnitPrice float64          `json:"unitPrice"`
	Image     catalog.ImageRef `json:"image"`
	Quantity  int              `json:"quantity"`
}

// Engine owns the shopper's cart. All mutations persist the snapshot before
// returning; if the store is unavailable the engine keeps going in memory and
// the cart simply will not survive a restart.
type Engine struct {
	mu    sync.Mutex
	kv    store.KV
	lines []Line
}

// New creates a cart engine, rehydrating any snapshot persisted under the
// cart key. A missing, unreadable, or corrupt snapshot starts an empty cart.
func New(kv store.KV) *Engine {
	e := &Engine{kv: kv}

	raw, err := kv.Get(snapshotKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		log.Warn().Err(err).Msg("cart snapshot unavailable, starting empty")
	default:
		if err := json.Unmarshal([]byte(raw), &e.lines); err != nil {
			log.Warn().Err(err).Msg("cart snapshot corrupt, starting empty")
			e.lines = nil
		}
	}

	return e
}

// AddItem merges the product into the cart: an existing line for the same
// product id gains one more unit, otherwise a new line is appended with
// quantity 1. Insertion order of existing lines is preserved. A negative
// price is normalized to 0; a product without an id is ignored.
func (e *Engine) AddItem(p catalog.Product) {
	if p.ID == "" {
		log.Warn().Str("name", p.Name).Msg("product without id not added to cart")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].ProductID == p.ID {
			e.lines[i].Quantity++
			e.persist()
			return
		}
	}

	price := p.Price
	if price < 0 {
		price = 0
	}

	e.lines = append(e.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: price,
		Image:     p.Image,
		Quantity:  1,
	})
	e.persist()
}

// Increment adds one unit to the line for productID. No-op if absent.
func (e *Engine) Increment(productID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].ProductID == productID {
			e.lines[i].Quantity++
			e.persist()
			return
		}
	}
}

// Decrement removes one unit from the line for productID, removing the line
// entirely when the quantity reaches 0. No-op if absent.
func (e *Engine) Decrement(productID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].ProductID != productID {
			continue
		}

		e.lines[i].Quantity--
		if e.lines[i].Quantity < 1 {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
		}
		e.persist()
		return
	}
}

// Remove deletes the line for productID unconditionally. No-op if absent.
func (e *Engine) Remove(productID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].ProductID == productID {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			e.persist()
			return
		}
	}
}

// Clear empties the cart. Called after a successful checkout.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lines = nil
	e.persist()
}

// Total recomputes the cart total from the current lines on every call.
func (e *Engine) Total() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var total float64
	for _, l := range e.lines {
		total += l.UnitPrice * float64(l.Quantity)
	}

	return total
}

// Lines returns the ordered cart lines. The slice is a copy; mutating it
// does not affect the cart.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Line, len(e.lines))
	copy(out, e.lines)

	return out
}

// Len returns the number of lines in the cart.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.lines)
}

// persist writes the snapshot. Persistence failure is logged and absorbed:
// the in-memory cart stays authoritative for the rest of the process.
// Callers must hold e.mu.
func (e *Engine) persist() {
	data, err := json.Marshal(e.lines)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal cart snapshot")
		return
	}

	if err := e.kv.Set(snapshotKey, string(data)); err != nil {
		log.Warn().Err(err).Msg("cart not persisted, continuing in memory")
	}
}
