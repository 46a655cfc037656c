// Package exchange implements a concurrent, in-memory continuous-auction
// matching engine for a single instrument. Orders arrive from multiple
// goroutines, rest in two priority-ordered books, and are matched against the
// opposite book on arrival; funds move between trader balances at match time
// and completed trades land in an append-only history. A background sweeper
// garbage-collects terminal orders and re-runs matching to catch trades made
// possible by out-of-band balance credits.
package exchange

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/quantmesh/exchange/pkg/util"
)

// Config carries the engine's tunables. Zero values fall back to defaults:
// a 5s sweep interval, unbounded history, the real clock, and no metrics.
type Config struct {
	SweepInterval time.Duration
	HistoryLimit  int
	Clock         util.Clock
	Metrics       *Metrics
}

// Engine routes place/cancel/query operations, owns both books and the
// history, and runs the background sweeper until Close.
type Engine struct {
	log     *zap.Logger
	clock   util.Clock
	metrics *Metrics

	sweepInterval time.Duration

	buys  *Book
	sells *Book

	history *History

	marketPrice atomic.Uint64
	seq         atomic.Uint64

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewEngine starts an engine and its sweeper. A nil logger is replaced with a
// no-op logger. The caller must Close the engine to stop the sweeper.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = util.RealClock{}
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 5 * time.Second
	}

	e := &Engine{
		log:           logger,
		clock:         cfg.Clock,
		metrics:       cfg.Metrics,
		sweepInterval: cfg.SweepInterval,
		buys:          NewBook(Buy),
		sells:         NewBook(Sell),
		history:       NewHistory(cfg.HistoryLimit),
		done:          make(chan struct{}),
	}

	e.wg.Add(1)
	go e.runSweeper()

	e.log.Info("engine started",
		zap.Duration("sweep_interval", e.sweepInterval),
		zap.Int("history_limit", cfg.HistoryLimit),
	)
	return e
}

// Close wakes the sweeper, waits for it to exit, and makes the engine
// quiescent. Pending client calls are expected to have returned already.
// Safe to call more than once.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		close(e.done)
		e.wg.Wait()
		e.log.Info("engine stopped")
	})
}

// Place inserts the order into its side's book and matches it against the
// opposite book in priority order. A duplicate exchange id is the only
// placement rejection; an order that rests unmatched is still acked.
func (e *Engine) Place(o *Order) Response {
	if o == nil || o.client == nil {
		return NewOrderReject
	}

	// The arrival sequence doubles as the priority tie-breaker; it must be
	// assigned before the order becomes visible in its book.
	o.seq = e.seq.Add(1)

	own, opposite := e.buys, e.sells
	if o.side == Sell {
		own, opposite = e.sells, e.buys
	}

	if !own.Insert(o) {
		e.metrics.orderRejected()
		e.log.Debug("duplicate exchange id",
			zap.Uint64("exchange_id", o.exchangeID),
			zap.Stringer("side", o.side),
		)
		return NewOrderReject
	}
	e.metrics.orderPlaced()

	e.updateMarketPrice()
	marketPrice := e.marketPrice.Load()
	placedPrice := o.effectivePrice(marketPrice)

	// Walk the opposite book best-first. Candidates are compared by their
	// stored price: market candidates store 0/MaxUint64 and so never trigger
	// the early break, which is what puts them ahead of every limit order in
	// the first place.
	opposite.Ascend(func(candidate *Order) bool {
		if o.Remaining() == 0 {
			return false
		}
		if candidate.Remaining() == 0 {
			return true
		}
		if !crosses(o.side, placedPrice, candidate.limitPrice) {
			return false // first non-crossing candidate; none after it cross
		}
		e.recordTrade(matchOrders(o, candidate, marketPrice))
		return true
	})

	return NewOrderAck
}

// crosses reports whether a resting order at restingPrice can trade against a
// placed order of side placedSide at placedPrice.
func crosses(placedSide Side, placedPrice, restingPrice uint64) bool {
	if placedSide == Buy {
		return restingPrice <= placedPrice
	}
	return restingPrice >= placedPrice
}

// Cancel flips the cancel flag on the identified order. CancelAck means the
// order was live at that moment; cancelling an unknown, filled, or
// already-cancelled order is a reject and changes nothing.
func (e *Engine) Cancel(exchangeID uint64, side Side) Response {
	book := e.buys
	if side == Sell {
		book = e.sells
	}
	if book.CancelByID(exchangeID) {
		e.metrics.orderCancelled()
		return CancelAck
	}
	return CancelReject
}

// StateOf reports the lifecycle state of the order with the given exchange
// id, or OrderUnknown once it has been swept (or never existed).
func (e *Engine) StateOf(exchangeID uint64) OrderStatus {
	if o, ok := e.buys.Get(exchangeID); ok {
		return o.Status()
	}
	if o, ok := e.sells.Get(exchangeID); ok {
		return o.Status()
	}
	return OrderUnknown
}

// MarketPrice returns the current market-price estimate.
func (e *Engine) MarketPrice() uint64 {
	return e.marketPrice.Load()
}

// LastTransaction returns the most recent transaction, or the zero
// Transaction when nothing has traded.
func (e *Engine) LastTransaction() Transaction {
	return e.history.Last()
}

// LastTransactions returns up to n of the most recent transactions in
// chronological order, most recent last.
func (e *Engine) LastTransactions(n int) []Transaction {
	return e.history.LastN(n)
}

// updateMarketPrice recomputes the estimate from the current books and
// publishes it atomically. An inconclusive estimate leaves the old value.
func (e *Engine) updateMarketPrice() {
	if price, ok := estimateMarketPrice(e.buys, e.sells); ok {
		e.marketPrice.Store(price)
		e.metrics.setMarketPrice(price)
	}
}

// recordTrade appends a non-empty transaction to the history in commit order.
func (e *Engine) recordTrade(tx Transaction) {
	if tx.IsZero() {
		return
	}
	e.history.Append(tx)
	e.metrics.trade(tx)
	e.log.Debug("trade",
		zap.Uint64("seller_exchange_id", tx.SellerExchangeID),
		zap.Uint64("buyer_exchange_id", tx.BuyerExchangeID),
		zap.Uint64("quantity", tx.Quantity),
		zap.Uint64("price", tx.Price),
	)
}

func (e *Engine) runSweeper() {
	defer e.wg.Done()
	for {
		select {
		case <-e.clock.After(e.sweepInterval):
			e.sweepOnce()
		case <-e.done:
			return
		}
	}
}

// sweepOnce garbage-collects both books and then re-runs matching across
// them. The cross pass exists for one reason: an order that failed to match
// for lack of funds can trade later once its buyer is credited out-of-band,
// and nothing else revisits resting orders.
func (e *Engine) sweepOnce() {
	removed := e.buys.Sweep() + e.sells.Sweep()

	marketPrice := e.marketPrice.Load()
	matched := 0

	e.buys.Ascend(func(buy *Order) bool {
		if buy.Remaining() == 0 {
			return true
		}
		e.sells.Ascend(func(sell *Order) bool {
			if buy.Remaining() == 0 {
				return false
			}
			if sell.Remaining() == 0 {
				return true
			}
			// Stored prices on both sides, same early break as Place.
			if sell.limitPrice > buy.limitPrice {
				return false
			}
			tx := matchOrders(buy, sell, marketPrice)
			if !tx.IsZero() {
				matched++
				e.recordTrade(tx)
			}
			return true
		})
		return true
	})

	e.metrics.sweep()
	e.log.Debug("sweep",
		zap.Int("removed", removed),
		zap.Int("matched", matched),
	)
}
