package exchange

import "sync"

// History is the append-only transaction log. Appends happen in commit order,
// so the log is totally ordered. A limit of 0 keeps everything; otherwise the
// oldest entries are dropped once the limit is exceeded.
type History struct {
	mu    sync.RWMutex
	limit int
	txs   []Transaction
}

func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Append records tx unless it is the zero no-trade value.
func (h *History) Append(tx Transaction) {
	if tx.IsZero() {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.txs = append(h.txs, tx)
	if h.limit > 0 && len(h.txs) > h.limit {
		// Shift in place so the backing array does not grow without bound.
		n := copy(h.txs, h.txs[len(h.txs)-h.limit:])
		h.txs = h.txs[:n]
	}
}

// Last returns the most recent transaction, or the zero Transaction when the
// history is empty.
func (h *History) Last() Transaction {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.txs) == 0 {
		return Transaction{}
	}
	return h.txs[len(h.txs)-1]
}

// LastN returns a copy of up to n of the most recent transactions in
// chronological order, most recent last.
func (h *History) LastN(n int) []Transaction {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n <= 0 || len(h.txs) == 0 {
		return nil
	}
	if n > len(h.txs) {
		n = len(h.txs)
	}
	out := make([]Transaction, n)
	copy(out, h.txs[len(h.txs)-n:])
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.txs)
}
