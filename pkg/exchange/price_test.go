package exchange

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineIntersection(t *testing.T) {
	// y = x and y = -x + 2 cross at (1, 1).
	x, y, ok := lineIntersection(0, 0, 2, 2, 0, 2, 2, 0)
	require.True(t, ok)
	require.InDelta(t, 1.0, x, 1e-9)
	require.InDelta(t, 1.0, y, 1e-9)
}

func TestLineIntersectionParallel(t *testing.T) {
	_, _, ok := lineIntersection(0, 0, 1, 1, 0, 5, 1, 6)
	require.False(t, ok)
}

func TestLineIntersectionDegenerate(t *testing.T) {
	// A single point is not a line; the determinant collapses to zero.
	_, _, ok := lineIntersection(3, 3, 3, 3, 0, 2, 2, 0)
	require.False(t, ok)
}

func TestEstimateMarketPrice(t *testing.T) {
	tr := NewTrader(1)
	buys := NewBook(Buy)
	sells := NewBook(Sell)

	// Demand through (2,50) and (1,40): y = 10x + 30.
	placeInBook(t, buys, NewOrder(tr, 1, 50, 2, Buy, false), 1)
	placeInBook(t, buys, NewOrder(tr, 2, 40, 1, Buy, false), 2)

	// Supply through (1,80) and (3,95): y = 7.5x + 72.5.
	placeInBook(t, sells, NewOrder(tr, 3, 80, 1, Sell, false), 3)
	placeInBook(t, sells, NewOrder(tr, 4, 95, 3, Sell, false), 4)

	price, ok := estimateMarketPrice(buys, sells)
	require.True(t, ok)
	require.Equal(t, uint64(200), price) // intersection at (17, 200)
}

func TestEstimateMarketPriceSkipsMarketOrders(t *testing.T) {
	tr := NewTrader(1)
	buys := NewBook(Buy)
	sells := NewBook(Sell)

	// Market orders sort first but must not serve as line endpoints.
	placeInBook(t, buys, NewOrder(tr, 10, 0, 99, Buy, true), 1)
	placeInBook(t, buys, NewOrder(tr, 1, 50, 2, Buy, false), 2)
	placeInBook(t, buys, NewOrder(tr, 2, 40, 1, Buy, false), 3)
	placeInBook(t, sells, NewOrder(tr, 3, 80, 1, Sell, false), 4)
	placeInBook(t, sells, NewOrder(tr, 4, 95, 3, Sell, false), 5)

	price, ok := estimateMarketPrice(buys, sells)
	require.True(t, ok)
	require.Equal(t, uint64(200), price)
}

func TestEstimateMarketPriceMissingSide(t *testing.T) {
	tr := NewTrader(1)
	buys := NewBook(Buy)
	sells := NewBook(Sell)

	placeInBook(t, buys, NewOrder(tr, 1, 50, 2, Buy, false), 1)
	placeInBook(t, buys, NewOrder(tr, 2, 40, 1, Buy, false), 2)

	_, ok := estimateMarketPrice(buys, sells)
	require.False(t, ok, "no limit sells, estimate unchanged")

	placeInBook(t, sells, NewOrder(tr, 3, 0, 1, Sell, true), 3)
	_, ok = estimateMarketPrice(buys, sells)
	require.False(t, ok, "a lone market sell is not a supply line")
}

func TestEstimateMarketPriceDegenerateSides(t *testing.T) {
	tr := NewTrader(1)
	buys := NewBook(Buy)
	sells := NewBook(Sell)

	// One limit order per side: both lines are single points, the
	// determinant is zero, and the estimate stays put.
	placeInBook(t, buys, NewOrder(tr, 1, 100, 1, Buy, false), 1)
	placeInBook(t, sells, NewOrder(tr, 2, 100, 1, Sell, false), 2)

	_, ok := estimateMarketPrice(buys, sells)
	require.False(t, ok)
}
