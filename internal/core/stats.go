package core

import (
	"fmt"
	"math"
	"time"
)

// Stats is the single-pass monthly accumulation over a transaction list.
// Rate fields are nil when no distance was recorded: a rate over zero
// kilometres is undefined, not zero.
type Stats struct {
	IncomeCents        int64 `json:"incomeCents"`
	ExpenseCents       int64 `json:"expenseCents"`
	NetCents           int64 `json:"netCents"`
	FuelCents          int64 `json:"fuelCents"`
	FoodCents          int64 `json:"foodCents"`
	MaintenanceCents   int64 `json:"maintenanceCents"`
	OtherCents         int64 `json:"otherCents"`
	UncategorizedCents int64 `json:"uncategorizedCents"`

	Km        float64  `json:"km"`
	NetPerKm  *float64 `json:"netPerKm"`
	CostPerKm *float64 `json:"costPerKm"`
}

// Projection is a daily-average extrapolation of month-to-date totals to a
// full-month estimate. It is not a statistical forecast: when the month is
// fully elapsed the projected values equal the actuals.
type Projection struct {
	DaysInMonth  int   `json:"daysInMonth"`
	CurrentDay   int   `json:"currentDay"`
	IncomeCents  int64 `json:"projectedIncomeCents"`
	ExpenseCents int64 `json:"projectedExpenseCents"`
	NetCents     int64 `json:"projectedNetCents"`
}

// MonthDiff holds signed month-over-month differences. Zero means "same as
// previous month" and is reported distinctly from positive or negative.
type MonthDiff struct {
	NetCents  int64 `json:"netDiffCents"`
	FuelCents int64 `json:"fuelDiffCents"`
	FoodCents int64 `json:"foodDiffCents"`
}

// ComputeStats accumulates totals, category buckets, and distance over one
// pass. It never fails: empty input yields all-zero stats with undefined
// rates. Order does not matter.
func ComputeStats(transactions []Transaction) Stats {
	var s Stats
	var kmMeters int64

	for _, t := range transactions {
		if t.Type == Income {
			s.IncomeCents += t.AmountCents
			if t.DistanceMeters != nil && *t.DistanceMeters > 0 {
				kmMeters += *t.DistanceMeters
			}
			continue
		}
		s.ExpenseCents += t.AmountCents
		switch {
		case t.Category == nil:
			s.UncategorizedCents += t.AmountCents
		case *t.Category == CategoryFuel:
			s.FuelCents += t.AmountCents
		case *t.Category == CategoryFood:
			s.FoodCents += t.AmountCents
		case *t.Category == CategoryMaintenance:
			s.MaintenanceCents += t.AmountCents
		case *t.Category == CategoryOther:
			s.OtherCents += t.AmountCents
		default:
			s.UncategorizedCents += t.AmountCents
		}
	}

	s.NetCents = s.IncomeCents - s.ExpenseCents
	s.Km = float64(kmMeters) / 1000

	if s.Km > 0 {
		netPerKm := float64(s.NetCents) / 100 / s.Km
		costPerKm := float64(s.ExpenseCents) / 100 / s.Km
		s.NetPerKm = &netPerKm
		s.CostPerKm = &costPerKm
	}
	return s
}

// ComputeProjection extrapolates the month-to-date totals in s linearly to
// the whole of year/month. A past or future month counts as fully elapsed,
// so its projection equals its actuals.
func ComputeProjection(s Stats, year, month int, now time.Time) Projection {
	daysInMonth := DaysInMonth(year, month)

	currentDay := daysInMonth
	if now.Year() == year && int(now.Month()) == month {
		currentDay = now.Day()
	}
	if currentDay < 1 {
		currentDay = 1
	}
	if currentDay > daysInMonth {
		currentDay = daysInMonth
	}

	project := func(cents int64) int64 {
		return int64(math.Round(float64(cents) / float64(currentDay) * float64(daysInMonth)))
	}

	return Projection{
		DaysInMonth:  daysInMonth,
		CurrentDay:   currentDay,
		IncomeCents:  project(s.IncomeCents),
		ExpenseCents: project(s.ExpenseCents),
		NetCents:     project(s.NetCents),
	}
}

// CompareMonths reports signed differences between the current and previous
// month for net balance, fuel, and food spending.
func CompareMonths(current, previous Stats) MonthDiff {
	return MonthDiff{
		NetCents:  current.NetCents - previous.NetCents,
		FuelCents: current.FuelCents - previous.FuelCents,
		FoodCents: current.FoodCents - previous.FoodCents,
	}
}

// DaysInMonth returns the number of calendar days in year/month.
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange returns the half-open dateISO interval [start, end) covering
// year/month, with December rolling into January of the next year. The
// bounds compare lexicographically because dateISO is fixed-width.
func MonthRange(year, month int) (start, end string) {
	start = fmt.Sprintf("%04d-%02d-01", year, month)
	endYear, endMonth := year, month+1
	if month == 12 {
		endYear, endMonth = year+1, 1
	}
	end = fmt.Sprintf("%04d-%02d-01", endYear, endMonth)
	return start, end
}

// PreviousMonth rolls year/month back by one, crossing the year boundary
// the same way MonthRange rolls forward.
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}
