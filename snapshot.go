package classy

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Snapshot is an immutable view of account balances, commodity
// classifications, and price histories at a single point in time. It is the
// reference ValueResolver implementation: reports are computed fresh from a
// snapshot on every request, and concurrent requests over different
// snapshots are safe because nothing is shared.
type Snapshot struct {
	on          Date
	accounts    []AccountNode
	commodities CommoditySet
	prices      map[string][]pricePoint // commodity -> chronological quotes
}

// pricePoint is one observed price of a commodity.
type pricePoint struct {
	on    Date
	price Money
}

// NewSnapshot returns an empty snapshot dated on.
func NewSnapshot(on Date) *Snapshot {
	return &Snapshot{
		on:          on,
		commodities: make(CommoditySet),
		prices:      make(map[string][]pricePoint),
	}
}

// On returns the date of the snapshot.
func (s *Snapshot) On() Date { return s.on }

// AddAccount records an account balance in the snapshot.
func (s *Snapshot) AddAccount(a AccountNode) {
	s.accounts = append(s.accounts, a)
}

// DeclareCommodity records classification metadata for a commodity.
func (s *Snapshot) DeclareCommodity(symbol string, c Classification) {
	s.commodities[symbol] = c
}

// AddPrice records an observed price for a commodity. A currency priced in
// another currency acts as a forex rate for cost conversion.
func (s *Snapshot) AddPrice(commodity string, on Date, price Money) {
	history := append(s.prices[commodity], pricePoint{on: on, price: price})
	sort.SliceStable(history, func(i, j int) bool { return history[i].on.Before(history[j].on) })
	s.prices[commodity] = history
}

// Accounts returns the account balances of the snapshot.
func (s *Snapshot) Accounts() []AccountNode { return s.accounts }

// Commodities returns the snapshot's classification metadata.
func (s *Snapshot) Commodities() CommodityMeta { return s.commodities }

// LatestPrice implements ValueResolver using the last quote on or before the
// snapshot date. Quotes in a different currency are ignored; no chained
// conversion is attempted.
func (s *Snapshot) LatestPrice(commodity, currency string) (Date, Money, bool) {
	return s.latestPriceAt(commodity, currency, s.on)
}

func (s *Snapshot) latestPriceAt(commodity, currency string, limit Date) (Date, Money, bool) {
	var (
		best  pricePoint
		found bool
	)
	for _, p := range s.prices[commodity] {
		if p.on.After(limit) {
			break
		}
		if p.price.Currency() != currency {
			continue
		}
		best = p
		found = true
	}
	return best.on, best.price, found
}

// Cost implements ValueResolver. It reduces the balance to per-currency cost
// totals (a cash position's cost is the cash amount itself) and converts them
// to the target currency through the latest known rates. When a non-zero
// total cannot be converted it is returned in its own currency, which the
// engine reports as a warning.
func (s *Snapshot) Cost(account AccountNode, currency string, on Date) (Money, bool) {
	totals := make(map[string]decimal.Decimal)
	var currencies []string
	for _, pos := range account.Balance {
		cur, amount := pos.Currency, pos.Units
		if pos.Cost != nil {
			cur, amount = pos.Cost.Currency, pos.Cost.Amount
		}
		if _, ok := totals[cur]; !ok {
			currencies = append(currencies, cur)
		}
		totals[cur] = totals[cur].Add(amount)
	}
	if len(currencies) == 0 {
		return Money{}, false
	}

	limit := s.bound(on)
	total := M(0, currency)
	for _, cur := range currencies {
		amount := totals[cur]
		if cur == currency {
			total = total.Add(M(amount, currency))
			continue
		}
		if _, rate, ok := s.latestPriceAt(cur, currency, limit); ok {
			total = total.Add(rate.Mul(amount))
			continue
		}
		// Unconvertible: hand the foreign total back as is.
		return M(amount, cur), true
	}
	return total, true
}

// MarketValue implements ValueResolver: units are valued at the latest known
// prices, positions already in the target currency at face value. A position
// with no quote falls back to its cost when that cost is already in the
// target currency; otherwise it contributes nothing.
func (s *Snapshot) MarketValue(account AccountNode, currency string, on Date) Money {
	limit := s.bound(on)
	total := M(0, currency)
	for _, pos := range account.Balance {
		if pos.Currency == currency {
			total = total.Add(M(pos.Units, currency))
			continue
		}
		if _, price, ok := s.latestPriceAt(pos.Currency, currency, limit); ok {
			total = total.Add(price.Mul(pos.Units))
			continue
		}
		if pos.Cost != nil && pos.Cost.Currency == currency {
			total = total.Add(M(pos.Cost.Amount, currency))
		}
	}
	return total
}

// bound caps a requested date to the snapshot date: a snapshot cannot see
// prices past itself.
func (s *Snapshot) bound(on Date) Date {
	if s.on.Before(on) {
		return s.on
	}
	return on
}
