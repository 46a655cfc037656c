package exchange

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchOrdersNoTrade(t *testing.T) {
	seller := NewTrader(1)
	buyer := NewTrader(2)
	buyer.Credit(10000)

	tests := []struct {
		name        string
		a, b        *Order
		marketPrice uint64
	}{
		{
			name: "same side",
			a:    NewOrder(seller, 1, 100, 1, Sell, false),
			b:    NewOrder(buyer, 2, 100, 1, Sell, false),
		},
		{
			name: "self trade",
			a:    NewOrder(seller, 1, 100, 1, Sell, false),
			b:    NewOrder(seller, 2, 100, 1, Buy, false),
		},
		{
			name: "zero sell quantity",
			a:    NewOrder(seller, 1, 100, 0, Sell, false),
			b:    NewOrder(buyer, 2, 100, 1, Buy, false),
		},
		{
			name: "zero buy quantity",
			a:    NewOrder(seller, 1, 100, 1, Sell, false),
			b:    NewOrder(buyer, 2, 100, 0, Buy, false),
		},
		{
			name: "no crossing",
			a:    NewOrder(seller, 1, 150, 1, Sell, false),
			b:    NewOrder(buyer, 2, 100, 1, Buy, false),
		},
		{
			name:        "zero mid price",
			a:           NewOrder(seller, 1, 0, 1, Sell, true),
			b:           NewOrder(buyer, 2, 1, 1, Buy, false),
			marketPrice: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, matchOrders(tt.a, tt.b, tt.marketPrice).IsZero())
		})
	}
}

func TestMatchOrdersCancelledUnderLock(t *testing.T) {
	seller := NewTrader(1)
	buyer := NewTrader(2)
	buyer.Credit(10000)

	sell := NewOrder(seller, 1, 100, 1, Sell, false)
	buy := NewOrder(buyer, 2, 100, 1, Buy, false)
	sell.mu.Lock()
	sell.cancelled = true
	sell.mu.Unlock()

	require.True(t, matchOrders(sell, buy, 0).IsZero())
	require.Equal(t, uint64(10000), buyer.Balance())
}

func TestMatchOrdersFullFill(t *testing.T) {
	seller := NewTrader(1)
	buyer := NewTrader(2)
	buyer.Credit(100)

	sell := NewOrder(seller, 10, 100, 1, Sell, false)
	buy := NewOrder(buyer, 11, 100, 1, Buy, false)

	tx := matchOrders(buy, sell, 0) // argument order must not matter
	require.Equal(t, Transaction{
		SellerExchangeID: 10,
		BuyerExchangeID:  11,
		Quantity:         1,
		Price:            100,
	}, tx)

	require.Equal(t, uint64(0), buyer.Balance())
	require.Equal(t, uint64(100), seller.Balance())
	require.Equal(t, uint64(0), sell.Remaining())
	require.Equal(t, uint64(0), buy.Remaining())
}

func TestMatchOrdersBalanceLimitsFill(t *testing.T) {
	// Scenario: sell 10 @ 100 against buy 10 @ 100 funded with 300. The
	// buyer can only afford 3 at the mid price of 100.
	seller := NewTrader(1)
	buyer := NewTrader(2)
	buyer.Credit(300)

	sell := NewOrder(seller, 1, 100, 10, Sell, false)
	buy := NewOrder(buyer, 2, 100, 10, Buy, false)

	tx := matchOrders(sell, buy, 0)
	require.Equal(t, uint64(3), tx.Quantity)
	require.Equal(t, uint64(100), tx.Price)
	require.Equal(t, uint64(7), sell.Remaining())
	require.Equal(t, uint64(7), buy.Remaining())
	require.Equal(t, uint64(0), buyer.Balance())
	require.Equal(t, uint64(300), seller.Balance())
}

func TestMatchOrdersMidPrice(t *testing.T) {
	seller := NewTrader(1)
	buyer := NewTrader(2)
	buyer.Credit(1000)

	// Buy at 110 against sell at 100 trades at the truncated mid, 105.
	sell := NewOrder(seller, 1, 100, 1, Sell, false)
	buy := NewOrder(buyer, 2, 110, 1, Buy, false)

	tx := matchOrders(sell, buy, 0)
	require.Equal(t, uint64(105), tx.Price)

	// Price crossing invariant at commit.
	require.GreaterOrEqual(t, buy.limitPrice, tx.Price)
	require.LessOrEqual(t, sell.limitPrice, tx.Price)
}

func TestMatchOrdersMarketAgainstLimit(t *testing.T) {
	seller := NewTrader(1)
	buyer := NewTrader(2)
	buyer.Credit(1000)

	sell := NewOrder(seller, 1, 0, 2, Sell, true)
	buy := NewOrder(buyer, 2, 50, 2, Buy, false)

	// Market sell effective price is the market estimate, 45 -> mid 47.
	tx := matchOrders(sell, buy, 45)
	require.Equal(t, uint64(47), tx.Price)
	require.Equal(t, uint64(2), tx.Quantity)
	require.Equal(t, uint64(1000-94), buyer.Balance())
	require.Equal(t, uint64(94), seller.Balance())
}
