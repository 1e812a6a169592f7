package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gfragi/book-seat-pay/internal/data/entity"
)

// columns is the booking table layout. Exports, restores and the CSV
// store all share it, so a downloaded table can be uploaded back as-is.
var columns = []string{
	"timestamp",
	"parent_name",
	"email",
	"child_class",
	"child_tickets",
	"adult_tickets",
	"total_tickets",
	"total_amount",
	"payment_method",
	"payment_code",
	"payment_status",
	"category",
	"priority_number",
}

// WriteTable writes the header and one row per record.
func WriteTable(w io.Writer, records []entity.Booking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(encodeRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTable parses a booking table, returning a SchemaError when the
// header or any row does not fit the layout. A leading byte order mark
// is tolerated so exported files can be read back.
func ReadTable(r io.Reader) ([]entity.Booking, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SchemaError{Reason: "missing header row"}
	}
	if err != nil {
		return nil, &SchemaError{Reason: err.Error()}
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var records []entity.Booking
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &SchemaError{Reason: err.Error()}
		}
		rec, err := decodeRow(row, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func validateHeader(got []string) error {
	if len(got) > 0 {
		got[0] = strings.TrimPrefix(got[0], "\uFEFF")
	}
	if len(got) != len(columns) {
		return &SchemaError{Reason: fmt.Sprintf("want %d columns, got %d", len(columns), len(got))}
	}
	for i, want := range columns {
		if strings.TrimSpace(got[i]) != want {
			return &SchemaError{Reason: fmt.Sprintf("column %d is %q, want %q", i+1, got[i], want)}
		}
	}
	return nil
}

func encodeRow(r entity.Booking) []string {
	return []string{
		r.Timestamp.Format(entity.TimeLayout),
		r.ParentName,
		r.Email,
		r.ChildClass,
		strconv.Itoa(r.ChildTickets),
		strconv.Itoa(r.AdultTickets),
		strconv.Itoa(r.TotalTickets),
		strconv.FormatFloat(r.TotalAmount, 'f', -1, 64),
		string(r.PaymentMethod),
		r.PaymentCode,
		string(r.PaymentStatus),
		string(r.Category),
		strconv.Itoa(r.PriorityNumber),
	}
}

func decodeRow(row []string, line int) (entity.Booking, error) {
	rec := entity.Booking{
		ParentName:    strings.TrimSpace(row[1]),
		Email:         entity.NormalizeEmail(row[2]),
		ChildClass:    strings.TrimSpace(row[3]),
		PaymentMethod: entity.PaymentMethod(strings.TrimSpace(row[8])),
		PaymentCode:   strings.TrimSpace(row[9]),
		PaymentStatus: entity.PaymentStatus(strings.TrimSpace(row[10])),
		Category:      entity.Category(strings.TrimSpace(row[11])),
	}

	if ts := strings.TrimSpace(row[0]); ts != "" {
		parsed, err := time.Parse(entity.TimeLayout, ts)
		if err != nil {
			return entity.Booking{}, &SchemaError{Reason: fmt.Sprintf("row %d: bad timestamp %q", line, ts)}
		}
		rec.Timestamp = parsed
	}

	// Rows with enum values outside the schema must not enter the live
	// table; a category typo would otherwise count against capacity.
	switch rec.PaymentMethod {
	case entity.PaymentMethodIRIS, entity.PaymentMethodRevolut, entity.PaymentMethodCash, entity.PaymentMethodNone:
	default:
		return entity.Booking{}, &SchemaError{Reason: fmt.Sprintf("row %d: unknown payment_method %q", line, rec.PaymentMethod)}
	}
	switch rec.PaymentStatus {
	case entity.PaymentStatusPending, entity.PaymentStatusPaid, entity.PaymentStatusWaitlist:
	default:
		return entity.Booking{}, &SchemaError{Reason: fmt.Sprintf("row %d: unknown payment_status %q", line, rec.PaymentStatus)}
	}
	switch rec.Category {
	case entity.CategoryInterest, entity.CategoryWaitlist:
	default:
		return entity.Booking{}, &SchemaError{Reason: fmt.Sprintf("row %d: unknown category %q", line, rec.Category)}
	}

	var err error
	if rec.ChildTickets, err = parseCount(row[4], line, "child_tickets"); err != nil {
		return entity.Booking{}, err
	}
	if rec.AdultTickets, err = parseCount(row[5], line, "adult_tickets"); err != nil {
		return entity.Booking{}, err
	}
	if rec.TotalTickets, err = parseCount(row[6], line, "total_tickets"); err != nil {
		return entity.Booking{}, err
	}
	if rec.TotalAmount, err = parseAmount(row[7], line); err != nil {
		return entity.Booking{}, err
	}
	if rec.PriorityNumber, err = parseCount(row[12], line, "priority_number"); err != nil {
		return entity.Booking{}, err
	}
	return rec, nil
}

func parseCount(field string, line int, name string) (int, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, &SchemaError{Reason: fmt.Sprintf("row %d: %s %q is not a number", line, name, field)}
	}
	return n, nil
}

func parseAmount(field string, line int) (float64, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, &SchemaError{Reason: fmt.Sprintf("row %d: total_amount %q is not a number", line, field)}
	}
	return f, nil
}
