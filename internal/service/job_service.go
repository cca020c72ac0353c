package service

import (
	"fmt"
	"time"

	"carpark/internal/db"

	log "github.com/sirupsen/logrus"
)

type JobStore interface {
	GetConfirmedBookingIDsPastEnd(asOf time.Time) ([]int, error)
	UpdateBookingStatuses(ids []int, newStatus string) error
}

type JobService struct {
	store JobStore
	clock Clock
}

func NewJobService(store JobStore, clock Clock) *JobService {
	return &JobService{store: store, clock: clock}
}

// ExpireFinishedBookings marks confirmed bookings whose end date has passed
// as expired. Indefinite bookings never expire; the caller cancels them.
func (s *JobService) ExpireFinishedBookings() error {
	log.Println("Cron Job: Checking for bookings to mark as 'expired'...")

	ids, err := s.store.GetConfirmedBookingIDsPastEnd(s.clock.Now())
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed bookings past end date: %w", err)
	}
	if len(ids) == 0 {
		log.Println("Cron Job: No confirmed bookings found past their end date.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as 'expired'. IDs: %v", len(ids), ids)

	if err := s.store.UpdateBookingStatuses(ids, db.BookingStatusExpired); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}

	log.Printf("Cron Job: Successfully updated %d bookings to 'expired'.", len(ids))
	return nil
}
