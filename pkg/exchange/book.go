package exchange

import (
	"sync"

	"github.com/tidwall/btree"
)

// Book holds the live orders of one side, ordered by priority, with a
// secondary exchange-id index for O(1) cancellation.
//
// Priority within a side: market orders first, then the better limit price
// (higher for buys, lower for sells), ties broken by earlier arrival.
//
// Two locks guard the two structures. Writers (insert, sweep) take the index
// lock and then the tree lock; matching and snapshot readers take only a
// shared tree lock. Per-order locks always nest inside book locks.
type Book struct {
	side Side

	indexMu sync.RWMutex
	index   map[uint64]*Order

	treeMu sync.RWMutex
	tree   *btree.BTreeG[*Order]
}

func NewBook(side Side) *Book {
	less := buyLess
	if side == Sell {
		less = sellLess
	}
	return &Book{
		side:  side,
		index: make(map[uint64]*Order),
		tree:  btree.NewBTreeG[*Order](less),
	}
}

func buyLess(a, b *Order) bool {
	if a.isMarket != b.isMarket {
		return a.isMarket
	}
	if a.limitPrice != b.limitPrice {
		return a.limitPrice > b.limitPrice
	}
	return a.seq < b.seq
}

func sellLess(a, b *Order) bool {
	if a.isMarket != b.isMarket {
		return a.isMarket
	}
	if a.limitPrice != b.limitPrice {
		return a.limitPrice < b.limitPrice
	}
	return a.seq < b.seq
}

func (b *Book) Side() Side { return b.side }

// Insert adds o to the book in O(log n). It reports false when an order with
// the same exchange id is already indexed, even if that holder is terminal
// but not yet swept.
func (b *Book) Insert(o *Order) bool {
	b.indexMu.Lock()
	defer b.indexMu.Unlock()
	b.treeMu.Lock()
	defer b.treeMu.Unlock()

	if _, exists := b.index[o.exchangeID]; exists {
		return false
	}
	b.tree.Set(o)
	b.index[o.exchangeID] = o
	return true
}

// CancelByID sets the cancel flag on the indexed order and reports whether
// the order was live (uncancelled with quantity left) at that moment. The
// report drives the engine's ack/reject response; a repeat cancel is a
// reject but leaves no other trace.
func (b *Book) CancelByID(exchangeID uint64) bool {
	b.indexMu.RLock()
	o, ok := b.index[exchangeID]
	b.indexMu.RUnlock()
	if !ok {
		return false
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	live := o.remaining > 0 && !o.cancelled
	o.cancelled = true
	return live
}

// Get looks up an order by exchange id without touching its state.
func (b *Book) Get(exchangeID uint64) (*Order, bool) {
	b.indexMu.RLock()
	defer b.indexMu.RUnlock()
	o, ok := b.index[exchangeID]
	return o, ok
}

// Sweep removes every terminal order and its index entry, holding exclusive
// access to both structures for the duration. Live orders keep their relative
// order. Returns how many orders were removed.
func (b *Book) Sweep() int {
	b.indexMu.Lock()
	defer b.indexMu.Unlock()
	b.treeMu.Lock()
	defer b.treeMu.Unlock()

	var dead []*Order
	b.tree.Scan(func(o *Order) bool {
		o.mu.Lock()
		terminal := o.terminalLocked()
		o.mu.Unlock()
		if terminal {
			dead = append(dead, o)
		}
		return true
	})

	for _, o := range dead {
		b.tree.Delete(o)
		delete(b.index, o.exchangeID)
	}
	return len(dead)
}

// Ascend walks the book in priority order under a shared tree lock. The visit
// callback may take per-order locks but must not call back into the book's
// writers. Returning false stops the walk.
func (b *Book) Ascend(visit func(o *Order) bool) {
	b.treeMu.RLock()
	defer b.treeMu.RUnlock()
	b.tree.Scan(visit)
}

// Len reports how many orders are in the book, swept or not.
func (b *Book) Len() int {
	b.treeMu.RLock()
	defer b.treeMu.RUnlock()
	return b.tree.Len()
}

// limitEndpoints returns the highest-priority limit order and the
// lowest-priority order overall, under one consistent view of the tree.
// Because market orders sort before every limit order, the last entry is a
// limit order whenever any limit order exists, so the pair spans the side's
// limit orders in priority order. ok is false when the side has none.
func (b *Book) limitEndpoints() (first, last *Order, ok bool) {
	b.treeMu.RLock()
	defer b.treeMu.RUnlock()

	b.tree.Scan(func(o *Order) bool {
		if !o.isMarket {
			first = o
			return false
		}
		return true
	})
	if first == nil {
		return nil, nil, false
	}
	last, _ = b.tree.Max()
	return first, last, true
}
