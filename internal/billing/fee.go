package billing

import (
	"math"
	"time"

	"carpark/internal/db"
	"carpark/internal/interval"
)

// FeeMode selects how far an ongoing booking accrues inside the reporting month.
type FeeMode string

const (
	// FeeModeAccrued caps the effective window at "today": fees already earned.
	FeeModeAccrued FeeMode = "accrued"
	// FeeModeProjected bills through month end regardless of today.
	FeeModeProjected FeeMode = "projected"
)

// ParseFeeMode returns the mode named by s, defaulting to accrued.
func ParseFeeMode(s string) FeeMode {
	if FeeMode(s) == FeeModeProjected {
		return FeeModeProjected
	}
	return FeeModeAccrued
}

// Fee is the prorated charge of one booking inside one reporting window.
// Start/End are the effective, clipped dates the charge covers.
type Fee struct {
	Start time.Time
	End   time.Time
	Days  int
	Gross float64
	Net   float64
}

// Prorate computes the fee of a booking against a reporting month.
// A missing price bills zero. Gross is floored to a whole currency unit at
// computation time, so stored per-row figures sum back to report totals
// exactly. The multiplication happens before the division: floor(p*d/m) gives
// a full month at price p exactly p, where floor((p/m)*d) can land one unit
// short.
func Prorate(monthlyPrice float64, booking, month interval.Interval, today time.Time, mode FeeMode, exempt bool) Fee {
	window := month
	if mode == FeeModeAccrued {
		t := interval.Day(today)
		if t.Before(window.End) {
			window.End = t
		}
	}

	eff, ok := booking.Clip(window)
	if !ok {
		return Fee{}
	}

	days := eff.Days()
	gross := math.Floor(monthlyPrice * float64(days) / float64(month.Days()))
	if gross < 0 {
		gross = 0
	}
	net := gross
	if exempt {
		net = 0
	}
	return Fee{Start: eff.Start, End: eff.End, Days: days, Gross: gross, Net: net}
}

// Exempt reports whether the booking's fee is waived: management employees
// and bond holders of tier 1 or 2 park for free. Tier 0 or no tier pays.
func Exempt(employeeType string, tier int) bool {
	if employeeType == db.EmployeeTypeManagement {
		return true
	}
	return tier == 1 || tier == 2
}
