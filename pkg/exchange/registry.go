package exchange

import "sync"

// TraderRegistry hands out shared Trader instances by id in a thread-safe
// manner. Orders reference traders by pointer, never the other way around;
// anyone needing a trader's outstanding work iterates the books.
type TraderRegistry struct {
	mu      sync.RWMutex
	traders map[uint64]*Trader
}

func NewTraderRegistry() *TraderRegistry {
	return &TraderRegistry{
		traders: make(map[uint64]*Trader),
	}
}

// Get retrieves a trader without creating it. Use for queries only.
func (r *TraderRegistry) Get(id uint64) (*Trader, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.traders[id]
	return t, ok
}

// GetOrCreate retrieves the trader for id, creating a zero-balance one the
// first time the id is seen. Concurrent callers always receive the same
// instance.
func (r *TraderRegistry) GetOrCreate(id uint64) *Trader {
	r.mu.RLock()
	t, ok := r.traders[id]
	r.mu.RUnlock()
	if ok {
		return t
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.traders[id]; ok {
		return t
	}
	t = NewTrader(id)
	r.traders[id] = t
	return t
}

func (r *TraderRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.traders)
}
