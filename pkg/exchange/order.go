package exchange

import (
	"math"
	"sync"
)

// Side of an order. The engine-wide convention is Sell == true, Buy == false.
type Side bool

const (
	Buy  Side = false
	Sell Side = true
)

func (s Side) String() string {
	if s == Sell {
		return "sell"
	}
	return "buy"
}

// Response is the closed set of user-visible outcomes for place and cancel.
type Response int

const (
	NewOrderAck Response = iota
	NewOrderReject
	CancelAck
	CancelReject
)

func (r Response) String() string {
	switch r {
	case NewOrderAck:
		return "new_order_ack"
	case NewOrderReject:
		return "new_order_reject"
	case CancelAck:
		return "cancel_ack"
	case CancelReject:
		return "cancel_reject"
	default:
		return "unknown"
	}
}

// OrderStatus is the lifecycle state reported by Engine.StateOf.
type OrderStatus int8

const (
	OrderUnknown OrderStatus = iota
	OrderOpen
	OrderPartiallyFilled
	OrderFilled
	OrderCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderOpen:
		return "open"
	case OrderPartiallyFilled:
		return "partially_filled"
	case OrderFilled:
		return "filled"
	case OrderCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Transaction records a completed trade. The zero value means no-trade and is
// silently dropped by the history.
type Transaction struct {
	SellerExchangeID uint64
	BuyerExchangeID  uint64
	Quantity         uint64
	Price            uint64
}

func (t Transaction) IsZero() bool { return t == Transaction{} }

// Order is an immutable header plus a mutable (remaining, cancelled) pair
// guarded by the per-order mutex. An order lives in exactly one book, becomes
// terminal once remaining hits zero or it is cancelled, and is removed by the
// next sweep. It is never resurrected.
type Order struct {
	client     *Trader
	exchangeID uint64
	side       Side
	isMarket   bool
	limitPrice uint64
	initialQty uint64

	// seq is the arrival sequence the engine assigns at placement; it is the
	// priority tie-breaker and must not change afterwards.
	seq uint64

	mu        sync.Mutex
	remaining uint64
	cancelled bool
}

// NewOrder builds an order. For market orders the caller-supplied price is
// ignored and replaced with 0 (sell) or MaxUint64 (buy) so that market orders
// sort ahead of every limit order by price comparison alone.
func NewOrder(client *Trader, exchangeID, price, quantity uint64, side Side, isMarket bool) *Order {
	if isMarket {
		if side == Sell {
			price = 0
		} else {
			price = math.MaxUint64
		}
	}
	return &Order{
		client:     client,
		exchangeID: exchangeID,
		side:       side,
		isMarket:   isMarket,
		limitPrice: price,
		initialQty: quantity,
		remaining:  quantity,
	}
}

func (o *Order) Client() *Trader    { return o.client }
func (o *Order) ExchangeID() uint64 { return o.exchangeID }
func (o *Order) Side() Side         { return o.side }
func (o *Order) IsMarket() bool     { return o.isMarket }
func (o *Order) LimitPrice() uint64 { return o.limitPrice }

func (o *Order) ClientID() uint64 {
	if o.client == nil {
		return 0
	}
	return o.client.ID()
}

// Remaining returns the current unfilled quantity.
func (o *Order) Remaining() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.remaining
}

// Cancelled reports whether the one-shot cancel flag has been set.
func (o *Order) Cancelled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cancelled
}

// Terminal reports whether the order can never trade again.
func (o *Order) Terminal() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.terminalLocked()
}

// Status derives the lifecycle state from the mutable pair. Cancellation wins
// over fill state so a cancelled-then-swept order reads the same as a
// cancelled-but-unswept one.
func (o *Order) Status() OrderStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case o.cancelled:
		return OrderCancelled
	case o.remaining == 0:
		return OrderFilled
	case o.remaining < o.initialQty:
		return OrderPartiallyFilled
	default:
		return OrderOpen
	}
}

// snapshot returns the mutable pair under the order lock.
func (o *Order) snapshot() (remaining uint64, cancelled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.remaining, o.cancelled
}

// effectivePrice is the price an order trades at: the market estimate for
// market orders, the limit otherwise.
func (o *Order) effectivePrice(marketPrice uint64) uint64 {
	if o.isMarket {
		return marketPrice
	}
	return o.limitPrice
}

// terminalLocked requires o.mu held.
func (o *Order) terminalLocked() bool {
	return o.cancelled || o.remaining == 0
}

// decreaseQuantity requires o.mu held. Decrementing past zero is a
// programming error, not a runtime condition.
func (o *Order) decreaseQuantity(quantity uint64) {
	if quantity > o.remaining {
		panic("exchange: order quantity underflow")
	}
	o.remaining -= quantity
}
