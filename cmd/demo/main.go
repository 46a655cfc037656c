// Demo driver: exercises the matching engine the way a pair of impatient
// traders would. Not part of the library surface.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/quantmesh/exchange/params"
	"github.com/quantmesh/exchange/pkg/exchange"
	"github.com/quantmesh/exchange/pkg/util"
)

func main() {
	cfg := params.LoadFromEnv("")

	var logger *zap.Logger
	var err error
	if cfg.Log.File != "" {
		logger, err = util.NewLoggerWithFile(cfg.Log.File)
	} else {
		logger, err = util.NewLogger()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	eng := exchange.NewEngine(exchange.Config{
		SweepInterval: cfg.Engine.SweepInterval,
		HistoryLimit:  cfg.Engine.HistoryLimit,
		Metrics:       exchange.NewMetrics(prometheus.DefaultRegisterer),
	}, logger)
	defer eng.Close()

	traders := exchange.NewTraderRegistry()
	tr0 := traders.GetOrCreate(0)
	tr1 := traders.GetOrCreate(1)

	var exchangeID atomic.Uint64
	place := func(tr *exchange.Trader, price, qty uint64, side exchange.Side, market bool) {
		id := exchangeID.Add(1)
		resp := eng.Place(exchange.NewOrder(tr, id, price, qty, side, market))
		fmt.Printf("place id=%d %s -> %s\n", id, side, resp)
	}

	// A sell and a buy that cross on price but not on funds.
	place(tr0, 100, 1, exchange.Sell, false)
	place(tr1, 100, 1, exchange.Buy, false)
	eng.PrintTo(os.Stdout)

	// Credit the buyer out-of-band; the sweeper picks the trade up.
	tr1.Credit(100)
	time.Sleep(cfg.Engine.SweepInterval + time.Second)
	eng.PrintTo(os.Stdout)

	// Build both sides of the book so the estimator has lines to work with.
	for _, o := range []struct{ price, qty uint64 }{
		{100, 1}, {110, 2}, {120, 3}, {140, 5}, {150, 6},
	} {
		place(tr0, o.price, o.qty, exchange.Sell, false)
	}
	for _, o := range []struct{ price, qty uint64 }{
		{90, 1}, {100, 2}, {110, 3}, {120, 4}, {130, 5},
	} {
		place(tr1, o.price, o.qty, exchange.Buy, false)
	}

	tr0.Credit(1000)
	tr1.Credit(1000)
	place(tr1, 140, 6, exchange.Buy, false)
	eng.PrintTo(os.Stdout)
	fmt.Printf("market price: %d, balances: tr0=%d tr1=%d\n",
		eng.MarketPrice(), tr0.Balance(), tr1.Balance())

	// A cancel and a pair of market orders against the derived price.
	fmt.Printf("cancel id=4 -> %s\n", eng.Cancel(4, exchange.Sell))
	place(tr1, 0, 50, exchange.Buy, true)
	tr1.Credit(10000)
	place(tr0, 0, 25, exchange.Sell, true)
	time.Sleep(cfg.Engine.SweepInterval + time.Second)
	eng.PrintTo(os.Stdout)
	fmt.Printf("balances: tr0=%d tr1=%d\n", tr0.Balance(), tr1.Balance())

	storm(eng, traders, &exchangeID)

	fmt.Println("transaction history")
	eng.PrintHistoryTo(os.Stdout, 1000)
}

// storm hammers the engine from two goroutines and prints where the funds
// ended up. Trades between the pair conserve their combined balance; trades
// against earlier resting orders move funds in or out of it.
func storm(eng *exchange.Engine, traders *exchange.TraderRegistry, exchangeID *atomic.Uint64) {
	tr2 := traders.GetOrCreate(2)
	tr3 := traders.GetOrCreate(3)
	tr2.Credit(10000)
	tr3.Credit(10000)
	before := tr2.Balance() + tr3.Balance()

	var wg sync.WaitGroup
	for _, tr := range []*exchange.Trader{tr2, tr3} {
		wg.Add(1)
		go func(tr *exchange.Trader) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(tr.ID())))
			for i := 0; i < 1000; i++ {
				price := uint64(rng.Intn(200))
				qty := uint64(rng.Intn(10))
				side := exchange.Side(rng.Intn(2) == 1)
				eng.Place(exchange.NewOrder(tr, exchangeID.Add(1), price, qty, side, false))
			}
		}(tr)
	}
	wg.Wait()

	fmt.Printf("storm done: tr2=%d tr3=%d (sum %d, started with %d)\n",
		tr2.Balance(), tr3.Balance(), tr2.Balance()+tr3.Balance(), before)
}
