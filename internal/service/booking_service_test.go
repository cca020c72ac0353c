package service

import (
	"testing"
	"time"

	"carpark/internal/db"
	"carpark/internal/entities"
	"carpark/internal/interval"
	"carpark/internal/svcerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingFixture() (*BookingService, *fakeBookingStore, *fakeCatalog, *fakeNotifier) {
	store := newFakeBookingStore()
	catalog := newFakeCatalog()
	catalog.spots[1] = db.ParkingSpot{ID: 1, LotID: "A 1", ZoneText: "North Lot", SpotType: db.SpotTypeReserved, Price: 3000, IsActive: true}
	catalog.spots[2] = db.ParkingSpot{ID: 2, LotID: "A 2", ZoneText: "North Lot", SpotType: db.SpotTypeReserved, Price: 3000, IsActive: true}
	catalog.spots[3] = db.ParkingSpot{ID: 3, LotID: "A 3", ZoneText: "North Lot", SpotType: db.SpotTypeGeneral, IsActive: true}
	catalog.spots[9] = db.ParkingSpot{ID: 9, LotID: "Z 9", ZoneText: "Old Lot", SpotType: db.SpotTypeGeneral, IsActive: false}
	catalog.employees[1] = db.Employee{ID: 1, EmployeeCode: "00000001", FullName: "Dana Flores", EmployeeType: db.EmployeeTypeGeneral, Plates: []string{"ABC123"}}
	catalog.employees[2] = db.Employee{ID: 2, EmployeeCode: "00000002", FullName: "Sam Ortiz", EmployeeType: db.EmployeeTypeGeneral}
	notifier := &fakeNotifier{}
	svc := NewBookingService(store, catalog, notifier, fakeClock{now: day(2025, time.January, 1)})
	return svc, store, catalog, notifier
}

func TestCreateBooking(t *testing.T) {
	svc, _, _, notifier := newBookingFixture()

	b, err := svc.CreateBooking(entities.BookingRequest{
		SpotID: 1, EmployeeID: 1,
		StartDate: "2025-01-05", EndDate: "2025-01-20",
	})
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.Len(t, b.Code, 8)
	assert.Equal(t, db.BookingStatusConfirmed, b.Status)
	assert.Equal(t, "ABC123", b.LicensePlateUsed)
	assert.Equal(t, day(2025, time.January, 5), b.BookingStart)
	assert.Equal(t, day(2025, time.January, 20), b.BookingEnd)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "confirmed", notifier.sent[0].status)
}

func TestCreateBookingIndefinite(t *testing.T) {
	svc, _, _, _ := newBookingFixture()

	b, err := svc.CreateBooking(entities.BookingRequest{
		SpotID: 1, EmployeeID: 1,
		StartDate: "2025-01-05", IsIndefinite: true,
	})
	require.NoError(t, err)
	assert.True(t, interval.IsIndefiniteDate(b.BookingEnd))
}

func TestCreateBookingRejectsInvalidRange(t *testing.T) {
	svc, _, _, _ := newBookingFixture()

	_, err := svc.CreateBooking(entities.BookingRequest{
		SpotID: 1, EmployeeID: 1,
		StartDate: "2025-01-20", EndDate: "2025-01-05",
	})
	assert.ErrorIs(t, err, svcerr.ErrInvalidRange)
}

func TestCreateBookingRejectsUnknownSpotAndEmployee(t *testing.T) {
	svc, _, _, _ := newBookingFixture()

	_, err := svc.CreateBooking(entities.BookingRequest{
		SpotID: 42, EmployeeID: 1,
		StartDate: "2025-01-05", EndDate: "2025-01-06",
	})
	assert.ErrorIs(t, err, svcerr.ErrNotFound)

	// Inactive spots cannot be booked either.
	_, err = svc.CreateBooking(entities.BookingRequest{
		SpotID: 9, EmployeeID: 1,
		StartDate: "2025-01-05", EndDate: "2025-01-06",
	})
	assert.ErrorIs(t, err, svcerr.ErrNotFound)

	_, err = svc.CreateBooking(entities.BookingRequest{
		SpotID: 1, EmployeeID: 42,
		StartDate: "2025-01-05", EndDate: "2025-01-06",
	})
	assert.ErrorIs(t, err, svcerr.ErrNotFound)
}

func TestCreateBookingRejectsSpotConflict(t *testing.T) {
	svc, _, _, _ := newBookingFixture()

	_, err := svc.CreateBooking(entities.BookingRequest{
		SpotID: 1, EmployeeID: 1,
		StartDate: "2025-01-05", EndDate: "2025-01-20",
	})
	require.NoError(t, err)

	// Touching the existing booking's last day still conflicts.
	_, err = svc.CreateBooking(entities.BookingRequest{
		SpotID: 1, EmployeeID: 2,
		StartDate: "2025-01-20", EndDate: "2025-01-25",
	})
	assert.ErrorIs(t, err, svcerr.ErrSpotOccupied)

	// The day after is free.
	_, err = svc.CreateBooking(entities.BookingRequest{
		SpotID: 1, EmployeeID: 2,
		StartDate: "2025-01-21", EndDate: "2025-01-25",
	})
	assert.NoError(t, err)
}

func TestCreateBookingRejectsEmployeeDoubleBooking(t *testing.T) {
	svc, _, _, _ := newBookingFixture()

	_, err := svc.CreateBooking(entities.BookingRequest{
		SpotID: 2, EmployeeID: 2,
		StartDate: "2025-01-05", EndDate: "2025-01-20",
	})
	require.NoError(t, err)

	// Same employee, different spot, overlapping dates.
	_, err = svc.CreateBooking(entities.BookingRequest{
		SpotID: 3, EmployeeID: 2,
		StartDate: "2025-01-10", EndDate: "2025-01-15",
	})
	assert.ErrorIs(t, err, svcerr.ErrEmployeeAlreadyBooked)

	// Disjoint dates are fine.
	_, err = svc.CreateBooking(entities.BookingRequest{
		SpotID: 3, EmployeeID: 2,
		StartDate: "2025-01-21", EndDate: "2025-01-25",
	})
	assert.NoError(t, err)
}

func TestAmendBooking(t *testing.T) {
	svc, _, _, notifier := newBookingFixture()

	b, err := svc.CreateBooking(entities.BookingRequest{
		SpotID: 1, EmployeeID: 1,
		StartDate: "2025-01-05", EndDate: "2025-01-20",
	})
	require.NoError(t, err)

	// Shifting within its own dates must not conflict with itself.
	updated, err := svc.AmendBooking(b.ID, entities.AmendBookingRequest{
		StartDate: "2025-01-10", EndDate: "2025-01-25",
	})
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.January, 10), updated.BookingStart)
	assert.Equal(t, day(2025, time.January, 25), updated.BookingEnd)

	_, err = svc.CreateBooking(entities.BookingRequest{
		SpotID: 1, EmployeeID: 2,
		StartDate: "2025-02-01", EndDate: "2025-02-10",
	})
	require.NoError(t, err)

	// Extending into the other booking's dates conflicts.
	_, err = svc.AmendBooking(b.ID, entities.AmendBookingRequest{
		StartDate: "2025-01-10", EndDate: "2025-02-05",
	})
	assert.ErrorIs(t, err, svcerr.ErrSpotOccupied)

	assert.Equal(t, "updated", notifier.sent[1].status)
}

func TestAmendBookingUnknownID(t *testing.T) {
	svc, _, _, _ := newBookingFixture()

	_, err := svc.AmendBooking(99, entities.AmendBookingRequest{
		StartDate: "2025-01-10", EndDate: "2025-01-25",
	})
	assert.ErrorIs(t, err, svcerr.ErrNotFound)
}

func TestDeleteBookingFreesTheSpot(t *testing.T) {
	svc, _, _, notifier := newBookingFixture()

	b, err := svc.CreateBooking(entities.BookingRequest{
		SpotID: 1, EmployeeID: 1,
		StartDate: "2025-01-05", EndDate: "2025-01-20",
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteBooking(b.ID))

	// Deleting twice is a not-found, not a second delete.
	assert.ErrorIs(t, svc.DeleteBooking(b.ID), svcerr.ErrNotFound)

	// The freed dates can be rebooked by someone else.
	_, err = svc.CreateBooking(entities.BookingRequest{
		SpotID: 1, EmployeeID: 2,
		StartDate: "2025-01-05", EndDate: "2025-01-20",
	})
	assert.NoError(t, err)

	assert.Equal(t, "cancelled", notifier.sent[1].status)
}

func TestSpotStatus(t *testing.T) {
	svc, _, _, _ := newBookingFixture()

	active, err := svc.CreateBooking(entities.BookingRequest{
		SpotID: 1, EmployeeID: 1,
		StartDate: "2025-01-05", EndDate: "2025-01-20",
	})
	require.NoError(t, err)
	next, err := svc.CreateBooking(entities.BookingRequest{
		SpotID: 1, EmployeeID: 2,
		StartDate: "2025-02-01", EndDate: "2025-02-10",
	})
	require.NoError(t, err)

	status, err := svc.SpotStatus(1, day(2025, time.January, 10))
	require.NoError(t, err)
	assert.Equal(t, "Occupied", status.Status)
	require.NotNil(t, status.ActiveBooking)
	assert.Equal(t, active.ID, status.ActiveBooking.ID)
	require.NotNil(t, status.NextBooking)
	assert.Equal(t, next.ID, status.NextBooking.ID)

	status, err = svc.SpotStatus(1, day(2025, time.January, 25))
	require.NoError(t, err)
	assert.Equal(t, "Available", status.Status)
	assert.Nil(t, status.ActiveBooking)
	require.NotNil(t, status.NextBooking)
	assert.Equal(t, next.ID, status.NextBooking.ID)

	_, err = svc.SpotStatus(42, day(2025, time.January, 10))
	assert.ErrorIs(t, err, svcerr.ErrNotFound)
}

func TestSpotBoard(t *testing.T) {
	svc, store, _, _ := newBookingFixture()

	store.details = []db.BookingDetail{
		detail(1, 1, day(2025, time.January, 5), day(2025, time.January, 20), db.SpotTypeReserved, 3000),
	}

	rows, err := svc.SpotBoard(day(2025, time.January, 10))
	require.NoError(t, err)
	require.Len(t, rows, 3, "inactive spots stay off the board")

	byID := make(map[int]entities.SpotBoardRow)
	for _, r := range rows {
		byID[r.SpotID] = r
	}
	assert.Equal(t, "Occupied", byID[1].Status)
	assert.Equal(t, "Dana Flores", byID[1].FullName)
	assert.Equal(t, "Available", byID[2].Status)
	assert.Empty(t, byID[2].FullName)
}
