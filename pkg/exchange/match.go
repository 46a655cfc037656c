package exchange

// matchOrders attempts a single trade between two orders of opposite sides
// and returns the resulting transaction, or the zero Transaction when no
// trade is possible.
//
// The buyer's debit is the commit point: between quoting the affordable
// quantity and debiting, another matcher may have consumed buyer balance, in
// which case the debit fails and the loop requotes against the new, smaller
// balance instead of giving up.
func matchOrders(a, b *Order, marketPrice uint64) Transaction {
	var empty Transaction

	if a.side == b.side {
		return empty
	}

	sell, buy := a, b
	if a.side == Buy {
		sell, buy = b, a
	}

	if sell.ClientID() == buy.ClientID() {
		return empty // no self-trade
	}
	if sell.Remaining() == 0 || buy.Remaining() == 0 {
		return empty
	}

	buyPrice := buy.effectivePrice(marketPrice)
	sellPrice := sell.effectivePrice(marketPrice)
	if buyPrice < sellPrice {
		return empty // no crossing
	}

	buyer := buy.client
	seller := sell.client

	// Both order locks are needed; take them in ascending exchange-id order
	// so concurrent matchers sharing an order pair cannot deadlock.
	first, second := buy, sell
	if sell.exchangeID < buy.exchangeID {
		first, second = sell, buy
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if buy.cancelled || sell.cancelled {
		return empty
	}

	// Mid-price, computed without overflowing on large limit prices.
	price := buyPrice/2 + sellPrice/2 + (buyPrice & sellPrice & 1)
	if price == 0 {
		return empty
	}

	for {
		maxQuantity := min(sell.remaining, buy.remaining)
		quantity := min(buyer.Balance()/price, maxQuantity)
		if quantity == 0 {
			return empty
		}

		if !buyer.Debit(quantity * price) {
			continue // balance moved under us; requote
		}

		seller.Credit(quantity * price)
		buy.decreaseQuantity(quantity)
		sell.decreaseQuantity(quantity)

		return Transaction{
			SellerExchangeID: sell.exchangeID,
			BuyerExchangeID:  buy.exchangeID,
			Quantity:         quantity,
			Price:            price,
		}
	}
}
