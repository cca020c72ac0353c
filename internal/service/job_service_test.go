package service

import (
	"errors"
	"testing"
	"time"

	"carpark/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobStore struct {
	pastEnd []int
	err     error

	updatedIDs    []int
	updatedStatus string
}

func (s *fakeJobStore) GetConfirmedBookingIDsPastEnd(asOf time.Time) ([]int, error) {
	return s.pastEnd, s.err
}

func (s *fakeJobStore) UpdateBookingStatuses(ids []int, newStatus string) error {
	s.updatedIDs = ids
	s.updatedStatus = newStatus
	return nil
}

func TestExpireFinishedBookings(t *testing.T) {
	store := &fakeJobStore{pastEnd: []int{3, 7}}
	svc := NewJobService(store, fakeClock{now: day(2025, time.March, 1)})

	require.NoError(t, svc.ExpireFinishedBookings())
	assert.Equal(t, []int{3, 7}, store.updatedIDs)
	assert.Equal(t, db.BookingStatusExpired, store.updatedStatus)
}

func TestExpireFinishedBookingsNothingToDo(t *testing.T) {
	store := &fakeJobStore{}
	svc := NewJobService(store, fakeClock{now: day(2025, time.March, 1)})

	require.NoError(t, svc.ExpireFinishedBookings())
	assert.Nil(t, store.updatedIDs)
}

func TestExpireFinishedBookingsStoreError(t *testing.T) {
	store := &fakeJobStore{err: errors.New("db down")}
	svc := NewJobService(store, fakeClock{now: day(2025, time.March, 1)})

	assert.Error(t, svc.ExpireFinishedBookings())
	assert.Nil(t, store.updatedIDs)
}
