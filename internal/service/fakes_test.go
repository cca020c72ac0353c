package service

import (
	"fmt"
	"sync"
	"time"

	"carpark/internal/db"
)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

// fakeBookingStore keeps the ledger in memory with the same overlap and
// soft-delete semantics as the SQL repository.
type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   int
	bookings map[int]*db.Booking
	details  []db.BookingDetail
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{nextID: 1, bookings: make(map[int]*db.Booking)}
}

func (s *fakeBookingStore) Create(b *db.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.nextID
	s.nextID++
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *fakeBookingStore) GetByID(id int) (*db.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookingStore) UpdateInterval(id int, start, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok && !b.IsDeleted {
		b.BookingStart = start
		b.BookingEnd = end
	}
	return nil
}

func (s *fakeBookingStore) SoftDelete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok {
		b.IsDeleted = true
	}
	return nil
}

func overlaps(b *db.Booking, start, end time.Time) bool {
	return !b.BookingStart.After(end) && !b.BookingEnd.Before(start)
}

func (s *fakeBookingStore) ListOverlappingForSpot(spotID int, start, end time.Time, excludeID int) ([]db.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Booking
	for _, b := range s.bookings {
		if b.SpotID == spotID && !b.IsDeleted && b.ID != excludeID && overlaps(b, start, end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) ListOverlappingForEmployee(employeeID int, start, end time.Time, excludeID int) ([]db.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Booking
	for _, b := range s.bookings {
		if b.EmployeeID == employeeID && !b.IsDeleted && b.ID != excludeID && overlaps(b, start, end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) FindActiveForSpot(spotID int, on time.Time) (*db.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.SpotID == spotID && !b.IsDeleted && overlaps(b, on, on) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeBookingStore) FindNextForSpot(spotID int, after time.Time) (*db.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var next *db.Booking
	for _, b := range s.bookings {
		if b.SpotID == spotID && !b.IsDeleted && b.BookingStart.After(after) {
			if next == nil || b.BookingStart.Before(next.BookingStart) {
				next = b
			}
		}
	}
	if next == nil {
		return nil, nil
	}
	cp := *next
	return &cp, nil
}

func (s *fakeBookingStore) ListDetails(start, end time.Time) ([]db.BookingDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.BookingDetail
	for _, d := range s.details {
		if !d.IsDeleted && overlaps(&d.Booking, start, end) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) ListAllDetails() ([]db.BookingDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]db.BookingDetail(nil), s.details...), nil
}

type fakeCatalog struct {
	spots     map[int]db.ParkingSpot
	employees map[int]db.Employee
	tiers     map[string]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		spots:     make(map[int]db.ParkingSpot),
		employees: make(map[int]db.Employee),
		tiers:     make(map[string]int),
	}
}

func (c *fakeCatalog) GetSpot(id int) (*db.ParkingSpot, error) {
	if s, ok := c.spots[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (c *fakeCatalog) GetEmployee(id int) (*db.Employee, error) {
	if e, ok := c.employees[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (c *fakeCatalog) ListActiveSpots() ([]db.ParkingSpot, error) {
	var out []db.ParkingSpot
	for _, s := range c.spots {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *fakeCatalog) GetPrivilegeTier(employeeCode string) (int, error) {
	return c.tiers[employeeCode], nil
}

type notification struct {
	bookingID int
	status    string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *fakeNotifier) BookingChanged(b *db.Booking, emp *db.Employee, status string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{bookingID: b.ID, status: status})
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func detail(id, spotID int, start, end time.Time, spotType string, price float64) db.BookingDetail {
	return db.BookingDetail{
		Booking: db.Booking{
			ID:           id,
			Code:         fmt.Sprintf("BK%02d", id),
			SpotID:       spotID,
			BookingStart: start,
			BookingEnd:   end,
			Status:       db.BookingStatusConfirmed,
		},
		EmployeeCode: "00000001",
		EmployeeName: "Dana Flores",
		EmployeeType: db.EmployeeTypeGeneral,
		LotID:        "A 1",
		ZoneText:     "North Lot",
		SpotType:     spotType,
		SpotActive:   true,
		Price:        price,
	}
}
