package classy

import (
	"testing"
	"time"
)

func testSnapshot() *Snapshot {
	s := NewSnapshot(NewDate(2026, time.August, 25))
	s.DeclareCommodity("STK", Classification{AssetClass: "equity", AssetSubclass: "single-stock"})
	s.AddPrice("STK", NewDate(2026, time.August, 10), M(9, "EUR"))
	s.AddPrice("STK", NewDate(2026, time.August, 21), M(10, "EUR"))
	s.AddPrice("USD", NewDate(2026, time.August, 20), M(0.9, "EUR"))
	return s
}

func TestSnapshotLatestPrice(t *testing.T) {
	s := testSnapshot()
	on, price, ok := s.LatestPrice("STK", "EUR")
	if !ok {
		t.Fatal("expected a price")
	}
	if on != NewDate(2026, time.August, 21) || !price.Equal(M(10, "EUR")) {
		t.Errorf("LatestPrice = %s %s", on, price)
	}

	if _, _, ok := s.LatestPrice("UNKNOWN", "EUR"); ok {
		t.Error("expected no price for unknown commodity")
	}
	// Quotes in another currency are not usable.
	if _, _, ok := s.LatestPrice("STK", "USD"); ok {
		t.Error("expected no price in a foreign quote currency")
	}
}

func TestSnapshotPriceDateBound(t *testing.T) {
	// A report dated before the latest quote sees only the earlier one.
	s := testSnapshot()
	account := AccountNode{Name: "Assets:Stock", Balance: Balance{position(10, "STK", 80, "EUR")}}
	mv := s.MarketValue(account, "EUR", NewDate(2026, time.August, 15))
	if !mv.Equal(M(90, "EUR")) {
		t.Errorf("market value on the 15th = %s, want 90 EUR", mv)
	}

	// And the snapshot never sees past its own date.
	s.AddPrice("STK", NewDate(2026, time.September, 1), M(100, "EUR"))
	mv = s.MarketValue(account, "EUR", NewDate(2026, time.September, 10))
	if !mv.Equal(M(100, "EUR")) {
		t.Errorf("market value after snapshot date = %s, want 100 EUR", mv)
	}
}

func TestSnapshotMarketValue(t *testing.T) {
	s := testSnapshot()
	account := AccountNode{Name: "Assets:Mixed", Balance: Balance{
		cash(100, "EUR"),
		position(10, "STK", 80, "EUR"),
	}}
	// Cash at face value plus 10 units at the latest price of 10.
	mv := s.MarketValue(account, "EUR", s.On())
	if !mv.Equal(M(200, "EUR")) {
		t.Errorf("market value = %s, want 200 EUR", mv)
	}
}

func TestSnapshotMarketValueCostFallback(t *testing.T) {
	// No quote for the commodity: fall back to its cost when the cost is in
	// the target currency.
	s := testSnapshot()
	account := AccountNode{Name: "Assets:Unpriced", Balance: Balance{position(3, "XXX", 75, "EUR")}}
	mv := s.MarketValue(account, "EUR", s.On())
	if !mv.Equal(M(75, "EUR")) {
		t.Errorf("market value = %s, want 75 EUR", mv)
	}
}

func TestSnapshotCost(t *testing.T) {
	s := testSnapshot()
	account := AccountNode{Name: "Assets:Mixed", Balance: Balance{
		cash(100, "EUR"),
		position(10, "STK", 80, "EUR"),
	}}
	cost, ok := s.Cost(account, "EUR", s.On())
	if !ok {
		t.Fatal("expected a cost")
	}
	if !cost.Equal(M(180, "EUR")) {
		t.Errorf("cost = %s, want 180 EUR", cost)
	}
}

func TestSnapshotCostForexConversion(t *testing.T) {
	// A USD cost converts through the USD/EUR rate declared as a price.
	s := testSnapshot()
	account := AccountNode{Name: "Assets:US", Balance: Balance{position(5, "STK", 200, "USD")}}
	cost, ok := s.Cost(account, "EUR", s.On())
	if !ok {
		t.Fatal("expected a cost")
	}
	if !cost.Equal(M(180, "EUR")) {
		t.Errorf("cost = %s, want 180 EUR", cost)
	}
}

func TestSnapshotCostUnconvertible(t *testing.T) {
	// No rate for JPY: the total comes back in its own currency, which the
	// engine turns into a warning.
	s := testSnapshot()
	account := AccountNode{Name: "Assets:JP", Balance: Balance{position(5, "STK", 1000, "JPY")}}
	cost, ok := s.Cost(account, "EUR", s.On())
	if !ok {
		t.Fatal("expected a cost")
	}
	if cost.Currency() != "JPY" {
		t.Errorf("cost currency = %q, want JPY", cost.Currency())
	}
}

func TestSnapshotCostEmpty(t *testing.T) {
	s := testSnapshot()
	if _, ok := s.Cost(AccountNode{Name: "Assets:Empty"}, "EUR", s.On()); ok {
		t.Error("expected no cost for an empty balance")
	}
}

func TestSnapshotAddPriceOutOfOrder(t *testing.T) {
	s := NewSnapshot(NewDate(2026, time.August, 25))
	s.AddPrice("STK", NewDate(2026, time.August, 21), M(10, "EUR"))
	s.AddPrice("STK", NewDate(2026, time.August, 10), M(9, "EUR"))
	_, price, ok := s.LatestPrice("STK", "EUR")
	if !ok || !price.Equal(M(10, "EUR")) {
		t.Errorf("LatestPrice = %s %v, want 10 EUR", price, ok)
	}
}
