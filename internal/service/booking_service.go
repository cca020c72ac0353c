package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"carpark/internal/db"
	"carpark/internal/entities"
	"carpark/internal/interval"
	"carpark/internal/svcerr"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

const (
	spotStatusOccupied  = "Occupied"
	spotStatusAvailable = "Available"
)

// BookingStore is the booking ledger persistence.
type BookingStore interface {
	Create(b *db.Booking) error
	GetByID(id int) (*db.Booking, error)
	UpdateInterval(id int, start, end time.Time) error
	SoftDelete(id int) error
	ListOverlappingForSpot(spotID int, start, end time.Time, excludeID int) ([]db.Booking, error)
	ListOverlappingForEmployee(employeeID int, start, end time.Time, excludeID int) ([]db.Booking, error)
	FindActiveForSpot(spotID int, on time.Time) (*db.Booking, error)
	FindNextForSpot(spotID int, after time.Time) (*db.Booking, error)
	ListDetails(start, end time.Time) ([]db.BookingDetail, error)
	ListAllDetails() ([]db.BookingDetail, error)
}

// CatalogStore is the read-only inventory the booking core consumes.
type CatalogStore interface {
	GetSpot(id int) (*db.ParkingSpot, error)
	GetEmployee(id int) (*db.Employee, error)
	ListActiveSpots() ([]db.ParkingSpot, error)
	GetPrivilegeTier(employeeCode string) (int, error)
}

// Notifier is told about committed booking changes. Implementations must not
// block and must not fail the write.
type Notifier interface {
	BookingChanged(b *db.Booking, emp *db.Employee, status string)
}

type BookingService struct {
	store    BookingStore
	catalog  CatalogStore
	notifier Notifier
	clock    Clock

	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func NewBookingService(store BookingStore, catalog CatalogStore, notifier Notifier, clock Clock) *BookingService {
	return &BookingService{
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		clock:    clock,
		locks:    make(map[int]*sync.Mutex),
	}
}

// spotLock serializes conflict-check-then-write per spot. The check and the
// insert are two statements; without the lock two callers could both pass the
// check and double-book the spot.
func (s *BookingService) spotLock(spotID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[spotID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[spotID] = l
	}
	return l
}

// parseBookingInterval turns the request dates into a validated interval.
// An indefinite booking gets the far-future sentinel end date.
func parseBookingInterval(startDate, endDate string, indefinite bool) (interval.Interval, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("%w: bad start date %q", svcerr.ErrInvalidRange, startDate)
	}
	if indefinite {
		return interval.Indefinite(start), nil
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("%w: bad end date %q", svcerr.ErrInvalidRange, endDate)
	}
	iv, err := interval.New(start, end)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("%w: %s > %s", svcerr.ErrInvalidRange, startDate, endDate)
	}
	return iv, nil
}

// checkConflicts runs both conflict rules against the current ledger.
// excludeID skips the booking being edited so it never conflicts with itself.
func (s *BookingService) checkConflicts(spotID, employeeID int, iv interval.Interval, excludeID int) error {
	others, err := s.store.ListOverlappingForSpot(spotID, iv.Start, iv.End, excludeID)
	if err != nil {
		return fmt.Errorf("error checking spot conflicts: %w", err)
	}
	if len(others) > 0 {
		return fmt.Errorf("%w: spot %d is held by booking %s", svcerr.ErrSpotOccupied, spotID, others[0].Code)
	}

	others, err = s.store.ListOverlappingForEmployee(employeeID, iv.Start, iv.End, excludeID)
	if err != nil {
		return fmt.Errorf("error checking employee conflicts: %w", err)
	}
	if len(others) > 0 {
		return fmt.Errorf("%w: employee %d holds booking %s", svcerr.ErrEmployeeAlreadyBooked, employeeID, others[0].Code)
	}
	return nil
}

func (s *BookingService) CreateBooking(req entities.BookingRequest) (*db.Booking, error) {
	iv, err := parseBookingInterval(req.StartDate, req.EndDate, req.IsIndefinite)
	if err != nil {
		return nil, err
	}

	spot, err := s.catalog.GetSpot(req.SpotID)
	if err != nil {
		return nil, err
	}
	if spot == nil || !spot.IsActive {
		return nil, fmt.Errorf("%w: spot %d", svcerr.ErrNotFound, req.SpotID)
	}
	emp, err := s.catalog.GetEmployee(req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, fmt.Errorf("%w: employee %d", svcerr.ErrNotFound, req.EmployeeID)
	}

	lock := s.spotLock(req.SpotID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.checkConflicts(req.SpotID, req.EmployeeID, iv, 0); err != nil {
		return nil, err
	}

	plate := ""
	if len(emp.Plates) > 0 {
		plate = emp.Plates[0]
	}

	b := &db.Booking{
		Code:             strings.ToUpper(uuid.NewString()[:8]),
		SpotID:           req.SpotID,
		EmployeeID:       req.EmployeeID,
		LicensePlateUsed: plate,
		BookingStart:     iv.Start,
		BookingEnd:       iv.End,
		Status:           db.BookingStatusConfirmed,
	}
	if err := s.store.Create(b); err != nil {
		log.Printf("Error creating booking in store: %v", err)
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.BookingChanged(b, emp, "confirmed")
	}
	return b, nil
}

// AmendBooking re-validates both conflict rules for the new dates, excluding
// the booking's own record, then updates its interval.
func (s *BookingService) AmendBooking(id int, req entities.AmendBookingRequest) (*db.Booking, error) {
	iv, err := parseBookingInterval(req.StartDate, req.EndDate, req.IsIndefinite)
	if err != nil {
		return nil, err
	}

	b, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil || b.IsDeleted {
		return nil, fmt.Errorf("%w: booking %d", svcerr.ErrNotFound, id)
	}

	lock := s.spotLock(b.SpotID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.checkConflicts(b.SpotID, b.EmployeeID, iv, b.ID); err != nil {
		return nil, err
	}
	if err := s.store.UpdateInterval(b.ID, iv.Start, iv.End); err != nil {
		return nil, err
	}
	b.BookingStart = iv.Start
	b.BookingEnd = iv.End

	if s.notifier != nil {
		if emp, err := s.catalog.GetEmployee(b.EmployeeID); err == nil {
			s.notifier.BookingChanged(b, emp, "updated")
		}
	}
	return b, nil
}

// DeleteBooking flags the booking deleted. The row stays queryable for
// historical reporting but no longer blocks the spot or the employee.
func (s *BookingService) DeleteBooking(id int) error {
	b, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	if b == nil || b.IsDeleted {
		return fmt.Errorf("%w: booking %d", svcerr.ErrNotFound, id)
	}
	if err := s.store.SoftDelete(id); err != nil {
		return err
	}

	if s.notifier != nil {
		if emp, err := s.catalog.GetEmployee(b.EmployeeID); err == nil {
			s.notifier.BookingChanged(b, emp, "cancelled")
		}
	}
	return nil
}

// SpotStatus answers "who holds this spot on this date, and who is next".
func (s *BookingService) SpotStatus(spotID int, on time.Time) (*entities.SpotStatusResponse, error) {
	spot, err := s.catalog.GetSpot(spotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, fmt.Errorf("%w: spot %d", svcerr.ErrNotFound, spotID)
	}

	day := interval.Day(on)
	active, err := s.store.FindActiveForSpot(spotID, day)
	if err != nil {
		return nil, err
	}
	next, err := s.store.FindNextForSpot(spotID, day)
	if err != nil {
		return nil, err
	}

	resp := &entities.SpotStatusResponse{
		SpotID: spotID,
		Date:   day.Format(dateLayout),
		Status: spotStatusAvailable,
	}
	if active != nil {
		resp.Status = spotStatusOccupied
		resp.ActiveBooking = entities.NewBookingResponse(active)
	}
	if next != nil {
		resp.NextBooking = entities.NewBookingResponse(next)
	}
	return resp, nil
}

// SpotBoard lists every active spot with its occupant on the given date.
func (s *BookingService) SpotBoard(on time.Time) ([]entities.SpotBoardRow, error) {
	day := interval.Day(on)
	spots, err := s.catalog.ListActiveSpots()
	if err != nil {
		return nil, err
	}
	details, err := s.store.ListDetails(day, day)
	if err != nil {
		return nil, err
	}
	bySpot := make(map[int]db.BookingDetail, len(details))
	for _, d := range details {
		bySpot[d.SpotID] = d
	}

	rows := make([]entities.SpotBoardRow, 0, len(spots))
	for _, sp := range spots {
		row := entities.SpotBoardRow{
			SpotID:   sp.ID,
			LotID:    sp.LotID,
			Zone:     sp.ZoneText,
			SpotType: sp.SpotType,
			Price:    sp.Price,
			Status:   spotStatusAvailable,
		}
		if d, ok := bySpot[sp.ID]; ok {
			row.Status = spotStatusOccupied
			row.EmployeeCode = d.EmployeeCode
			row.FullName = d.EmployeeName
			row.LicensePlate = d.LicensePlateUsed
			row.BookingStart = interval.Day(d.BookingStart).Format(dateLayout)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ListBookings returns the full booking detail list, newest first,
// soft-deleted rows included and flagged.
func (s *BookingService) ListBookings() ([]entities.BookingListRow, error) {
	details, err := s.store.ListAllDetails()
	if err != nil {
		return nil, err
	}
	rows := make([]entities.BookingListRow, 0, len(details))
	for _, d := range details {
		code := d.EmployeeCode
		name := d.EmployeeName
		if name == "" {
			name = "Unknown"
		}
		rows = append(rows, entities.BookingListRow{
			ID:           d.ID,
			Code:         d.Code,
			EmployeeCode: code,
			FullName:     name,
			LotID:        d.LotID,
			LicensePlate: d.LicensePlateUsed,
			BookingStart: interval.Day(d.BookingStart).Format(dateLayout),
			BookingEnd:   interval.Day(d.BookingEnd).Format(dateLayout),
			Indefinite:   interval.IsIndefiniteDate(d.BookingEnd),
			Status:       d.Status,
			Deleted:      d.IsDeleted,
		})
	}
	return rows, nil
}
