package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"carpark/internal/db"
	"carpark/internal/entities"
)

var bondHolderHeader = []string{"id", "full_name", "employee_code", "tier"}

type PrivilegeStore interface {
	List() ([]db.BondHolder, error)
	ReplaceAll(holders []db.BondHolder) error
}

// PrivilegeService owns the bond-holder register: CSV import (whole-file
// replacement), CSV export and listing.
type PrivilegeService struct {
	store PrivilegeStore
}

func NewPrivilegeService(store PrivilegeStore) *PrivilegeService {
	return &PrivilegeService{store: store}
}

func (s *PrivilegeService) List() ([]entities.BondHolderRow, error) {
	holders, err := s.store.List()
	if err != nil {
		return nil, err
	}
	rows := make([]entities.BondHolderRow, 0, len(holders))
	for _, h := range holders {
		rows = append(rows, entities.BondHolderRow{
			ID:           h.ID,
			FullName:     h.FullName,
			EmployeeCode: h.EmployeeCode,
			Tier:         h.Tier,
		})
	}
	return rows, nil
}

// ReplaceFromCSV parses the uploaded register and swaps the whole table for
// it. Returns how many holders were imported.
func (s *PrivilegeService) ReplaceFromCSV(r io.Reader) (int, error) {
	holders, err := ParseBondHolderCSV(r)
	if err != nil {
		return 0, err
	}
	if err := s.store.ReplaceAll(holders); err != nil {
		return 0, err
	}
	return len(holders), nil
}

func (s *PrivilegeService) ExportCSV(w io.Writer) error {
	holders, err := s.store.List()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(bondHolderHeader); err != nil {
		return fmt.Errorf("error writing bond holder header: %w", err)
	}
	for _, h := range holders {
		record := []string{h.ID, h.FullName, h.EmployeeCode, strconv.Itoa(h.Tier)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("error writing bond holder row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseBondHolderCSV reads an exported register. Spreadsheet exports are
// messy: the first header cell may carry a UTF-8 BOM or non-breaking spaces,
// employee codes lose their leading zeros, and a malformed tier falls back
// to 0 (no exemption) rather than failing the whole file.
func ParseBondHolderCSV(r io.Reader) ([]db.BondHolder, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading bond holder header: %w", err)
	}
	if len(header) > 0 {
		header[0] = cleanHeaderCell(header[0])
	}
	if len(header) < len(bondHolderHeader) {
		return nil, fmt.Errorf("bond holder file has %d columns, expected %d", len(header), len(bondHolderHeader))
	}
	for i, want := range bondHolderHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("bond holder file column %d is %q, expected %q", i+1, header[i], want)
		}
	}

	var holders []db.BondHolder
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading bond holder row: %w", err)
		}
		id := strings.TrimSpace(record[0])
		if id == "" {
			continue
		}
		tier, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil {
			tier = 0
		}
		holders = append(holders, db.BondHolder{
			ID:           id,
			FullName:     strings.TrimSpace(record[1]),
			EmployeeCode: padEmployeeCode(strings.TrimSpace(record[2])),
			Tier:         tier,
		})
	}
	return holders, nil
}

// cleanHeaderCell strips a UTF-8 BOM and non-breaking spaces from the first
// header cell before comparison.
func cleanHeaderCell(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(s)
}

// padEmployeeCode restores the zero-padded 8-digit form that spreadsheet
// round trips strip from numeric codes.
func padEmployeeCode(code string) string {
	if code == "" {
		return code
	}
	if _, err := strconv.Atoi(code); err != nil {
		return code
	}
	if len(code) >= 8 {
		return code
	}
	return strings.Repeat("0", 8-len(code)) + code
}
