package exchange

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// PrintTo writes a human-readable snapshot of both books to w, buys first.
// Market orders show the current market-price estimate in the price column.
// The format is for eyeballs only and is not stable.
func (e *Engine) PrintTo(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "client id\texchange id\tprice\tquantity\tmarket\tside")

	marketPrice := e.MarketPrice()
	row := func(o *Order) bool {
		remaining, _ := o.snapshot()
		price := o.limitPrice
		if o.isMarket {
			price = marketPrice
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\t%s\n",
			o.ClientID(), o.exchangeID, price, remaining,
			yesNo(o.isMarket), o.side)
		return true
	}
	e.buys.Ascend(row)
	e.sells.Ascend(row)
	tw.Flush()
}

// PrintHistoryTo writes up to n of the most recent transactions to w,
// chronological order, most recent last.
func (e *Engine) PrintHistoryTo(w io.Writer, n int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "seller exchange id\tbuyer exchange id\tsold\tprice")
	for _, tx := range e.LastTransactions(n) {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n",
			tx.SellerExchangeID, tx.BuyerExchangeID, tx.Quantity, tx.Price)
	}
	tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
