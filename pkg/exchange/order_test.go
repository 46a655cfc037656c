package exchange

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOrderMarketPriceNormalization(t *testing.T) {
	tr := NewTrader(1)

	sell := NewOrder(tr, 1, 12345, 10, Sell, true)
	require.Equal(t, uint64(0), sell.LimitPrice(), "market sell stores price 0")

	buy := NewOrder(tr, 2, 12345, 10, Buy, true)
	require.Equal(t, uint64(math.MaxUint64), buy.LimitPrice(), "market buy stores max price")

	limit := NewOrder(tr, 3, 12345, 10, Buy, false)
	require.Equal(t, uint64(12345), limit.LimitPrice())
}

func TestOrderStatus(t *testing.T) {
	tr := NewTrader(1)
	o := NewOrder(tr, 1, 100, 10, Buy, false)
	require.Equal(t, OrderOpen, o.Status())

	o.mu.Lock()
	o.decreaseQuantity(4)
	o.mu.Unlock()
	require.Equal(t, OrderPartiallyFilled, o.Status())
	require.Equal(t, uint64(6), o.Remaining())
	require.False(t, o.Terminal())

	o.mu.Lock()
	o.decreaseQuantity(6)
	o.mu.Unlock()
	require.Equal(t, OrderFilled, o.Status())
	require.True(t, o.Terminal())
}

func TestOrderStatusCancelledWins(t *testing.T) {
	tr := NewTrader(1)
	o := NewOrder(tr, 1, 100, 10, Sell, false)

	o.mu.Lock()
	o.cancelled = true
	o.mu.Unlock()

	require.Equal(t, OrderCancelled, o.Status())
	require.True(t, o.Terminal())
}

func TestOrderDecreaseQuantityPanicsOnUnderflow(t *testing.T) {
	tr := NewTrader(1)
	o := NewOrder(tr, 1, 100, 5, Buy, false)

	require.Panics(t, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.decreaseQuantity(6)
	})
	require.Equal(t, uint64(5), o.Remaining(), "failed decrement must not change quantity")
}

func TestOrderEffectivePrice(t *testing.T) {
	tr := NewTrader(1)

	limit := NewOrder(tr, 1, 70, 1, Buy, false)
	require.Equal(t, uint64(70), limit.effectivePrice(55))

	market := NewOrder(tr, 2, 0, 1, Sell, true)
	require.Equal(t, uint64(55), market.effectivePrice(55))
}

func TestResponseAndStatusStrings(t *testing.T) {
	require.Equal(t, "new_order_ack", NewOrderAck.String())
	require.Equal(t, "new_order_reject", NewOrderReject.String())
	require.Equal(t, "cancel_ack", CancelAck.String())
	require.Equal(t, "cancel_reject", CancelReject.String())
	require.Equal(t, "sell", Sell.String())
	require.Equal(t, "buy", Buy.String())
	require.Equal(t, "partially_filled", OrderPartiallyFilled.String())
}

func TestTransactionIsZero(t *testing.T) {
	require.True(t, Transaction{}.IsZero())
	require.False(t, Transaction{Quantity: 1, Price: 1}.IsZero())
}
