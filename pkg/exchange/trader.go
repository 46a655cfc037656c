package exchange

import (
	"math"
	"sync/atomic"
)

// Trader is an identity with an atomically mutable balance. Orders share a
// Trader by pointer; many orders may fund from (or pay into) the same balance
// concurrently, so the balance is a lone atomic scalar outside every lock in
// the engine's hierarchy.
type Trader struct {
	id      uint64
	balance atomic.Uint64
}

func NewTrader(id uint64) *Trader {
	return &Trader{id: id}
}

func (t *Trader) ID() uint64 { return t.id }

// Balance returns a snapshot of the current balance.
func (t *Trader) Balance() uint64 { return t.balance.Load() }

// Credit unconditionally adds amount to the balance, saturating at the
// maximum representable value instead of wrapping.
func (t *Trader) Credit(amount uint64) {
	for {
		old := t.balance.Load()
		next := old + amount
		if next < old {
			next = math.MaxUint64
		}
		if t.balance.CompareAndSwap(old, next) {
			return
		}
	}
}

// Debit atomically subtracts amount from the balance. It reports false and
// leaves the balance untouched when the current balance is insufficient.
// All-or-nothing: the matcher relies on this as its commit point.
func (t *Trader) Debit(amount uint64) bool {
	if amount == 0 {
		return true
	}
	for {
		old := t.balance.Load()
		if old < amount {
			return false
		}
		if t.balance.CompareAndSwap(old, old-amount) {
			return true
		}
	}
}
