package classy

import (
	"github.com/shopspring/decimal"
)

// MixedCommodities is the sentinel commodity assigned to an account whose
// balance holds more than one commodity.
const MixedCommodities = "mixed_commodities"

// Cost is the acquisition cost attached to a position.
type Cost struct {
	Amount   decimal.Decimal
	Currency string
}

// Position is one slice of an account balance: a number of units of a
// commodity, with an optional aggregated cost basis. Plain cash positions
// carry no cost; their cost basis is the cash amount itself.
type Position struct {
	Units    decimal.Decimal
	Currency string
	Cost     *Cost
}

// Balance is the full set of positions held by an account, in the order they
// were recorded.
type Balance []Position

// IsEmpty reports whether the balance holds no position at all.
func (b Balance) IsEmpty() bool { return len(b) == 0 }

// AccountNode is an account as seen by the breakdown engine: its name, its
// balance, and the metadata attached to its opening entry. The engine never
// mutates it.
type AccountNode struct {
	Name     string
	Balance  Balance
	OpenMeta map[string]string
}

// Commodity returns the common commodity across the account's balance, or
// MixedCommodities when the balance mixes several. An empty balance has no
// commodity.
func (a AccountNode) Commodity() string {
	if a.Balance.IsEmpty() {
		return ""
	}
	ref := a.Balance[0].Currency
	for _, p := range a.Balance[1:] {
		if p.Currency != ref {
			return MixedCommodities
		}
	}
	return ref
}
