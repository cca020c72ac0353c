package billing

import "carpark/internal/interval"

// Buckets flags every movement class a booking belongs to for one reporting
// month. The classes answer different questions and are deliberately not a
// partition: a booking spanning the whole month is both Beginning and Ending,
// and one that starts and ends in-month is both New and Expired.
type Buckets struct {
	Beginning bool
	New       bool
	Expired   bool
	Ending    bool
}

// Classify buckets a booking against the month window.
func Classify(booking, month interval.Interval) Buckets {
	var b Buckets
	if booking.Start.Before(month.Start) && !booking.End.Before(month.Start) {
		b.Beginning = true
	}
	if !booking.Start.Before(month.Start) && !booking.Start.After(month.End) {
		b.New = true
	}
	if !booking.End.Before(month.Start) && !booking.End.After(month.End) && !booking.IsIndefinite() {
		b.Expired = true
	}
	if !booking.Start.After(month.End) && !booking.End.Before(month.End) {
		b.Ending = true
	}
	return b
}
