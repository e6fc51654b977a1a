package classy

import "github.com/shopspring/decimal"

// staticResolver is a canned ValueResolver for engine tests: costs and
// market values are keyed by account name, prices by commodity.
type staticResolver struct {
	costs     map[string]Money
	prices    map[string]Money
	priceDate Date
	values    map[string]Money
}

func (r staticResolver) Cost(a AccountNode, currency string, on Date) (Money, bool) {
	c, ok := r.costs[a.Name]
	return c, ok
}

func (r staticResolver) LatestPrice(commodity, currency string) (Date, Money, bool) {
	p, ok := r.prices[commodity]
	return r.priceDate, p, ok
}

func (r staticResolver) MarketValue(a AccountNode, currency string, on Date) Money {
	return r.values[a.Name]
}

// position builds a costed position from major-unit float amounts.
func position(units float64, commodity string, costAmount float64, costCurrency string) Position {
	return Position{
		Units:    decimal.NewFromFloat(units),
		Currency: commodity,
		Cost:     &Cost{Amount: decimal.NewFromFloat(costAmount), Currency: costCurrency},
	}
}

// cash builds a plain cash position.
func cash(units float64, currency string) Position {
	return Position{Units: decimal.NewFromFloat(units), Currency: currency}
}
