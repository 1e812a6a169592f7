package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gfragi/book-seat-pay/internal/data/entity"
	"github.com/gfragi/book-seat-pay/internal/data/repository"
)

const tableHeader = "timestamp,parent_name,email,child_class,child_tickets,adult_tickets," +
	"total_tickets,total_amount,payment_method,payment_code,payment_status,category,priority_number\n"

func sampleTable() []entity.Booking {
	return []entity.Booking{
		{
			Timestamp:     time.Date(2025, 11, 10, 9, 30, 0, 0, time.UTC),
			ParentName:    "Maria Papadopoulou",
			Email:         "maria@example.com",
			ChildClass:    "B1",
			ChildTickets:  2,
			AdultTickets:  1,
			TotalTickets:  3,
			TotalAmount:   30,
			PaymentMethod: entity.PaymentMethodIRIS,
			PaymentCode:   "EVT-001",
			PaymentStatus: entity.PaymentStatusPaid,
			Category:      entity.CategoryInterest,
		},
		{
			Timestamp:      time.Date(2025, 11, 11, 18, 15, 0, 0, time.UTC),
			ParentName:     "Chris Antoniou",
			Email:          "chris@example.com",
			ChildClass:     "A2",
			ChildTickets:   1,
			AdultTickets:   1,
			TotalTickets:   2,
			PaymentStatus:  entity.PaymentStatusWaitlist,
			Category:       entity.CategoryWaitlist,
			PriorityNumber: 1,
		},
	}
}

func TestCSVStoreLoadCreatesMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "payments.csv")
	store := repository.NewCSVStore(path, filepath.Join(dir, "backups"))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, tableHeader, string(content))
}

func TestCSVStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payments.csv")
	store := repository.NewCSVStore(path, filepath.Join(dir, "backups"))

	want := sampleTable()
	require.NoError(t, store.Save(context.Background(), want))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)

	// The temp file used for the swap must not linger.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "payments.csv", entries[0].Name())
}

func TestCSVStoreLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payments.csv")
	require.NoError(t, os.WriteFile(path, []byte("not,a,booking,table\n1,2,3,4\n"), 0o644))

	store := repository.NewCSVStore(path, filepath.Join(dir, "backups"))
	_, err := store.Load(context.Background())

	var storageErr *repository.StorageError
	require.ErrorAs(t, err, &storageErr)
}

func TestCSVStoreReplaceArchivesCurrentTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payments.csv")
	backupDir := filepath.Join(dir, "backups")
	store := repository.NewCSVStore(path, backupDir)

	before := sampleTable()[:1]
	require.NoError(t, store.Save(context.Background(), before))

	after := sampleTable()
	ref, err := store.Replace(context.Background(), after)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "payments-"), "archive name keeps the table's base name: %s", ref)
	require.True(t, strings.HasSuffix(ref, ".csv"))

	archived, err := os.Open(filepath.Join(backupDir, ref))
	require.NoError(t, err)
	defer archived.Close()

	oldTable, err := repository.ReadTable(archived)
	require.NoError(t, err)
	require.Equal(t, before, oldTable, "the archive holds the table as it was before the swap")

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, after, got)
}

func TestReadTableRejectsWrongHeader(t *testing.T) {
	table := "email,tickets\nmaria@example.com,3\n"

	_, err := repository.ReadTable(strings.NewReader(table))
	var schemaErr *repository.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestReadTableRejectsBadRow(t *testing.T) {
	table := tableHeader +
		"2025-11-10 09:30:00,Maria,maria@example.com,B1,two,1,3,30,IRIS,EVT-001,pending,interest,0\n"

	_, err := repository.ReadTable(strings.NewReader(table))
	var schemaErr *repository.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Contains(t, schemaErr.Reason, "child_tickets")
}

func TestReadTableRejectsUnknownEnumValues(t *testing.T) {
	rows := map[string]string{
		"category":       "2025-11-10 09:30:00,Maria,maria@example.com,B1,2,1,3,30,IRIS,EVT-001,pending,bogus,0\n",
		"payment_status": "2025-11-10 09:30:00,Maria,maria@example.com,B1,2,1,3,30,IRIS,EVT-001,refunded,interest,0\n",
		"payment_method": "2025-11-10 09:30:00,Maria,maria@example.com,B1,2,1,3,30,PayPal,EVT-001,pending,interest,0\n",
	}
	for field, row := range rows {
		_, err := repository.ReadTable(strings.NewReader(tableHeader + row))
		var schemaErr *repository.SchemaError
		require.ErrorAs(t, err, &schemaErr, field)
		require.Contains(t, schemaErr.Reason, field)
	}
}

func TestReadTableToleratesByteOrderMark(t *testing.T) {
	// Exports carry a byte order mark for spreadsheet apps and must be
	// accepted when uploaded back.
	table := "\uFEFF" + tableHeader +
		"2025-11-10 09:30:00,Maria,maria@example.com,B1,2,1,3,30,IRIS,EVT-001,pending,interest,0\n"

	records, err := repository.ReadTable(strings.NewReader(table))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "EVT-001", records[0].PaymentCode)
}
