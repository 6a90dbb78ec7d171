package core

import (
	"testing"
	"time"
)

func income(dateISO string, cents int64, distanceMeters int64) Transaction {
	t := Transaction{DateISO: dateISO, Type: Income, AmountCents: cents}
	if distanceMeters > 0 {
		t.DistanceMeters = &distanceMeters
	}
	return t
}

func expense(dateISO string, cents int64, category *Category) Transaction {
	return Transaction{DateISO: dateISO, Type: Expense, AmountCents: cents, Category: category}
}

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(nil)
	if s.IncomeCents != 0 || s.ExpenseCents != 0 || s.NetCents != 0 || s.Km != 0 {
		t.Fatalf("empty input should be all zero: %+v", s)
	}
	if s.NetPerKm != nil || s.CostPerKm != nil {
		t.Fatalf("rates must be undefined on empty input")
	}
}

func TestComputeStatsScenario(t *testing.T) {
	// One month of courier work: 1500,00 income over 100km, 50,00 of fuel.
	txs := []Transaction{
		income("2024-03-01", 150000, 100000),
		expense("2024-03-02", 5000, ptr(CategoryFuel)),
	}
	s := ComputeStats(txs)

	if s.IncomeCents != 150000 {
		t.Fatalf("incomeCents = %d", s.IncomeCents)
	}
	if s.ExpenseCents != 5000 {
		t.Fatalf("expenseCents = %d", s.ExpenseCents)
	}
	if s.NetCents != 145000 {
		t.Fatalf("netCents = %d", s.NetCents)
	}
	if s.FuelCents != 5000 {
		t.Fatalf("fuelCents = %d", s.FuelCents)
	}
	if s.Km != 100 {
		t.Fatalf("km = %v", s.Km)
	}
	if s.NetPerKm == nil || *s.NetPerKm != 1450.0 {
		t.Fatalf("netPerKm = %v", s.NetPerKm)
	}
	if s.CostPerKm == nil || *s.CostPerKm != 50.0 {
		t.Fatalf("costPerKm = %v", s.CostPerKm)
	}
}

func TestComputeStatsAccountingIdentity(t *testing.T) {
	txs := []Transaction{
		income("2024-03-01", 123, 0),
		income("2024-03-05", 456, 2000),
		expense("2024-03-02", 78, ptr(CategoryFuel)),
		expense("2024-03-03", 90, ptr(CategoryFood)),
		expense("2024-03-04", 11, ptr(CategoryMaintenance)),
		expense("2024-03-06", 22, ptr(CategoryOther)),
		expense("2024-03-07", 33, nil),
		expense("2024-03-08", 44, ptr(Category("legacy-tag"))),
	}
	s := ComputeStats(txs)

	if s.NetCents != s.IncomeCents-s.ExpenseCents {
		t.Fatalf("net %d != income %d - expense %d", s.NetCents, s.IncomeCents, s.ExpenseCents)
	}

	bucketSum := s.FuelCents + s.FoodCents + s.MaintenanceCents + s.OtherCents + s.UncategorizedCents
	if bucketSum != s.ExpenseCents {
		t.Fatalf("bucket sum %d != expense total %d", bucketSum, s.ExpenseCents)
	}

	// Unrecognized tags land in the uncategorized bucket next to nil.
	if s.UncategorizedCents != 33+44 {
		t.Fatalf("uncategorizedCents = %d", s.UncategorizedCents)
	}
}

func TestComputeStatsRatesUndefinedWithoutKm(t *testing.T) {
	txs := []Transaction{
		income("2024-03-01", 10000, 0),
		expense("2024-03-02", 5000, ptr(CategoryFuel)),
	}
	s := ComputeStats(txs)
	if s.Km != 0 {
		t.Fatalf("km = %v", s.Km)
	}
	if s.NetPerKm != nil || s.CostPerKm != nil {
		t.Fatalf("rates must be undefined when km == 0, got net=%v cost=%v", s.NetPerKm, s.CostPerKm)
	}
}

func TestComputeProjectionMidMonth(t *testing.T) {
	s := Stats{IncomeCents: 10000, ExpenseCents: 3000, NetCents: 7000}
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	p := ComputeProjection(s, 2024, 3, now)
	if p.DaysInMonth != 31 || p.CurrentDay != 10 {
		t.Fatalf("days=%d current=%d", p.DaysInMonth, p.CurrentDay)
	}
	if p.IncomeCents != 31000 {
		t.Fatalf("projected income = %d", p.IncomeCents)
	}
	if p.ExpenseCents != 9300 {
		t.Fatalf("projected expense = %d", p.ExpenseCents)
	}
	if p.NetCents != 21700 {
		t.Fatalf("projected net = %d", p.NetCents)
	}
}

func TestComputeProjectionFullyElapsedIsIdentity(t *testing.T) {
	s := Stats{IncomeCents: 12345, ExpenseCents: 678, NetCents: 12345 - 678}

	// A past month counts as fully elapsed.
	now := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	p := ComputeProjection(s, 2024, 2, now)
	if p.CurrentDay != p.DaysInMonth {
		t.Fatalf("past month should be fully elapsed: current=%d days=%d", p.CurrentDay, p.DaysInMonth)
	}
	if p.IncomeCents != s.IncomeCents || p.ExpenseCents != s.ExpenseCents || p.NetCents != s.NetCents {
		t.Fatalf("projection should equal actuals when month fully elapsed: %+v", p)
	}

	// Same on the last day of the current month.
	lastDay := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	p = ComputeProjection(s, 2024, 2, lastDay)
	if p.IncomeCents != s.IncomeCents || p.NetCents != s.NetCents {
		t.Fatalf("projection should equal actuals on the last day: %+v", p)
	}
}

func TestCompareMonths(t *testing.T) {
	cur := Stats{NetCents: 1000, FuelCents: 500, FoodCents: 200}
	prev := Stats{NetCents: 1500, FuelCents: 500, FoodCents: 100}

	d := CompareMonths(cur, prev)
	if d.NetCents != -500 {
		t.Fatalf("net diff = %d", d.NetCents)
	}
	if d.FuelCents != 0 {
		t.Fatalf("fuel diff = %d, zero must stay zero", d.FuelCents)
	}
	if d.FoodCents != 100 {
		t.Fatalf("food diff = %d", d.FoodCents)
	}
}

func TestMonthRange(t *testing.T) {
	cases := []struct {
		year, month int
		start, end  string
	}{
		{2024, 3, "2024-03-01", "2024-04-01"},
		{2024, 12, "2024-12-01", "2025-01-01"},
		{2024, 1, "2024-01-01", "2024-02-01"},
	}
	for _, tc := range cases {
		start, end := MonthRange(tc.year, tc.month)
		if start != tc.start || end != tc.end {
			t.Fatalf("%d-%d: got [%s, %s)", tc.year, tc.month, start, end)
		}
	}

	// December's end boundary is January's start boundary.
	_, decEnd := MonthRange(2024, 12)
	janStart, _ := MonthRange(2025, 1)
	if decEnd != janStart {
		t.Fatalf("rollover mismatch: %s vs %s", decEnd, janStart)
	}
}

func TestPreviousMonth(t *testing.T) {
	if y, m := PreviousMonth(2024, 1); y != 2023 || m != 12 {
		t.Fatalf("got %d-%d", y, m)
	}
	if y, m := PreviousMonth(2024, 7); y != 2024 || m != 6 {
		t.Fatalf("got %d-%d", y, m)
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, days int
	}{
		{2024, 2, 29}, // leap year
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.days {
			t.Fatalf("%d-%d: got %d days", tc.year, tc.month, got)
		}
	}
}
