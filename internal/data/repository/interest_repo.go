package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/gfragi/book-seat-pay/internal/data/entity"
)

// interestAliases maps the column titles of the sign-up form export onto
// field keys. The form is exported straight from Google Forms with Greek
// titles; plain snake_case titles are accepted too so a cleaned-up sheet
// keeps working.
var interestAliases = map[string]string{
	"Timestamp":                    "timestamp",
	"timestamp":                    "timestamp",
	"Email address":                "email",
	"email":                        "email",
	"Ονοματεπώνυμο γονέα/κηδεμόνα": "parent_name",
	"parent_name":                  "parent_name",
	"Τμήμα παιδιού/παιδιών":        "child_class",
	"child_class":                  "child_class",
	"Αριθμός παιδικών εισιτηρίων":  "child_tickets",
	"child_tickets":                "child_tickets",
	"Αριθμός συνοδών ενηλίκων":     "adult_tickets",
	"adult_tickets":                "adult_tickets",
}

// CSVInterestRepository reads the declared-interest registry from a CSV
// export of the sign-up form. The file is read-only; a missing file means
// no registry is in play and submissions go uncapped.
type CSVInterestRepository struct {
	path string
}

func NewCSVInterestRepository(path string) *CSVInterestRepository {
	return &CSVInterestRepository{path: path}
}

func (r *CSVInterestRepository) Load(ctx context.Context) ([]entity.InterestEntry, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load", Path: r.path, Err: err}
	}
	defer f.Close()

	entries, err := readInterest(f)
	if err != nil {
		return nil, &StorageError{Op: "load", Path: r.path, Err: err}
	}
	return entries, nil
}

func readInterest(rd io.Reader) ([]entity.InterestEntry, error) {
	cr := csv.NewReader(rd)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	header[0] = strings.TrimPrefix(header[0], "\uFEFF")

	index := map[string]int{}
	for i, cell := range header {
		if key, ok := interestAliases[strings.TrimSpace(cell)]; ok {
			index[key] = i
		}
	}
	for _, key := range []string{"email", "child_tickets", "adult_tickets"} {
		if _, ok := index[key]; !ok {
			return nil, fmt.Errorf("missing column %q", key)
		}
	}

	field := func(row []string, key string) string {
		i, ok := index[key]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var entries []entity.InterestEntry
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		e := entity.InterestEntry{
			Timestamp:    field(row, "timestamp"),
			ParentName:   field(row, "parent_name"),
			Email:        entity.NormalizeEmail(field(row, "email")),
			ChildClass:   field(row, "child_class"),
			ChildTickets: looseCount(field(row, "child_tickets")),
			AdultTickets: looseCount(field(row, "adult_tickets")),
		}
		e.TotalTickets = e.ChildTickets + e.AdultTickets
		entries = append(entries, e)
	}
	return entries, nil
}

// looseCount parses form input as people actually type it. Anything that
// is not a clean number counts as zero rather than failing the import.
func looseCount(field string) int {
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0
	}
	return n
}
