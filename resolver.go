package classy

// ValueResolver supplies cost basis, prices, and market values for account
// balances. Implementations are expected to be synchronous and side-effect
// free from the engine's perspective; any caching belongs to the caller.
type ValueResolver interface {
	// Cost returns the account's aggregated cost basis, converted to currency
	// when possible. When conversion is not possible the returned money keeps
	// its original currency, which the caller detects by comparing currencies.
	// ok is false when the account has no cost entries at all.
	Cost(account AccountNode, currency string, on Date) (cost Money, ok bool)

	// LatestPrice returns the most recent known price of commodity quoted in
	// currency, and the date it was observed. ok is false when no price is
	// known.
	LatestPrice(commodity, currency string) (on Date, price Money, ok bool)

	// MarketValue returns the account balance converted to currency using the
	// latest prices known on the given date.
	MarketValue(account AccountNode, currency string, on Date) Money
}
