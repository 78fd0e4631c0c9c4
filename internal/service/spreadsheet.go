package service

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadRowsFromFile turns a source file into an import batch. The format is
// picked by extension: .xlsx via excelize, anything else is read as CSV.
func ReadRowsFromFile(path string) ([]RawImportRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSXRows(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		return ReadCSVRows(f)
	}
}

// ReadCSVRows reads a header-led CSV into raw import rows. Header names are
// matched loosely ("Guest Name", "guest_name" and "guestName" are all the
// same column).
func ReadCSVRows(r io.Reader) ([]RawImportRow, error) {
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err == io.EOF {
		return []RawImportRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[normalizeHeader(h)] = i
	}
	if _, ok := cols["guestname"]; !ok {
		return nil, fmt.Errorf("missing guest name column in header %v", header)
	}

	rows := make([]RawImportRow, 0, 16)
	line := 1
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, rowFromRecord(rec, cols))
	}
	return rows, nil
}

// ReadXLSXRows reads the first sheet of an XLSX workbook. Cells are fetched
// raw so date cells surface as serial numbers instead of display strings.
func ReadXLSXRows(path string) ([]RawImportRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(records) == 0 {
		return []RawImportRow{}, nil
	}
	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		cols[normalizeHeader(h)] = i
	}
	if _, ok := cols["guestname"]; !ok {
		return nil, fmt.Errorf("missing guest name column in sheet %s", sheet)
	}

	rows := make([]RawImportRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, rowFromRecord(rec, cols))
	}
	return rows, nil
}

func rowFromRecord(rec []string, cols map[string]int) RawImportRow {
	field := func(names ...string) string {
		for _, n := range names {
			if idx, ok := cols[n]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
		}
		return ""
	}
	return RawImportRow{
		GuestName:  field("guestname", "guest"),
		GuestEmail: field("guestemail", "email"),
		GuestPhone: field("guestphone", "phone"),
		RoomName:   field("roomname", "room"),
		CheckIn:    field("checkin", "checkindate"),
		CheckOut:   field("checkout", "checkoutdate"),
		Status:     field("status"),
		TotalPrice: field("totalprice", "price", "amount"),
		Source:     field("source"),
		BookType:   field("booktype"),
	}
}

func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if r == ' ' || r == '_' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
