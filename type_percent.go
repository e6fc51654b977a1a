package classy

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent is an exact percentage value.
//
// Allocations are rounded half-even to two decimals when computed; gain/loss
// percentages keep their full precision and are rounded at display time only.
type Percent struct {
	value decimal.Decimal
}

// PercentOf returns n as a percentage of d, with full precision.
func PercentOf(n, d Money) Percent {
	return Percent{value: n.value.Div(d.value).Mul(hundred)}
}

// AllocationOf returns the share of total represented by part, rounded
// half-even to two decimals. It is zero whenever total is zero.
func AllocationOf(part, total Money) Percent {
	if total.IsZero() {
		return Percent{}
	}
	return Percent{value: part.value.Div(total.value).Mul(hundred).RoundBank(2)}
}

func (p Percent) Equal(q Percent) bool { return p.value.Equal(q.value) }
func (p Percent) IsZero() bool         { return p.value.IsZero() }

func (p Percent) String() string {
	return p.value.StringFixed(2) + "%"
}

func (p Percent) SignedString() string {
	if p.value.IsZero() {
		return "-"
	}
	if p.value.IsPositive() {
		return "+" + p.String()
	}
	return p.String()
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return p.value.Round(2).MarshalJSON()
}
