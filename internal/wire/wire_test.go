package wire_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gfragi/book-seat-pay/internal/data/repository"
	"github.com/gfragi/book-seat-pay/internal/wire"
	"github.com/gfragi/book-seat-pay/pkg/utils"
)

const testAdminKey = "sesame-open"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()

	cfg := &utils.Config{
		App: utils.AppConfig{Name: "book-seat-pay", Port: "0"},
		Event: utils.EventConfig{
			SeatCapacity:  10,
			TicketPrice:   10,
			DeadlineLabel: "20 December 2025",
		},
		Admin: utils.AdminConfig{Password: testAdminKey},
	}
	store := repository.NewCSVStore(filepath.Join(dir, "payments.csv"), filepath.Join(dir, "backups"))
	interest := repository.NewCSVInterestRepository(filepath.Join(dir, "interest.csv"))

	app, err := wire.Wiring(store, interest, cfg, zap.NewNop())
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func doJSON(t *testing.T, method, url, adminKey string, body string) (*http.Response, envelope) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if adminKey != "" {
		req.Header.Set("X-Admin-Key", adminKey)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRoutesRequireKey(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/admin/summary", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/admin/summary", "wrong-key", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/admin/summary", testAdminKey, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Status)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	// Submit a booking.
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/bookings", "",
		`{"parent_name":"Maria Papadopoulou","email":"maria@example.com","child_class":"B1","child_tickets":2,"adult_tickets":1,"payment_method":"IRIS"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.Status)

	var booking struct {
		PaymentCode   string  `json:"payment_code"`
		PaymentStatus string  `json:"payment_status"`
		TotalAmount   float64 `json:"total_amount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	require.Equal(t, "EVT-001", booking.PaymentCode)
	require.Equal(t, "pending", booking.PaymentStatus)
	require.Equal(t, 30.0, booking.TotalAmount)

	// Availability reflects the held seats.
	resp, env = doJSON(t, http.MethodGet, srv.URL+"/api/availability", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var avail struct {
		SeatsUsed      int `json:"seats_used"`
		SeatsAvailable int `json:"seats_available"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &avail))
	require.Equal(t, 3, avail.SeatsUsed)
	require.Equal(t, 7, avail.SeatsAvailable)

	// The family can find their booking.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/bookings/lookup?email=Maria@Example.com", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Admin confirms the payment.
	resp, env = doJSON(t, http.MethodPost, srv.URL+"/api/admin/payments/mark-paid", testAdminKey,
		`{"payment_code":"EVT-001"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	require.Equal(t, "paid", booking.PaymentStatus)

	// A paid booking can no longer be edited.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/bookings", "",
		`{"parent_name":"Maria Papadopoulou","email":"maria@example.com","child_class":"B1","child_tickets":1,"adult_tickets":1,"payment_method":"IRIS"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Oversized requests name the seats left.
	resp, env = doJSON(t, http.MethodPost, srv.URL+"/api/bookings", "",
		`{"parent_name":"Big Family","email":"big@example.com","child_tickets":6,"adult_tickets":4,"payment_method":"Cash"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Contains(t, env.Message, "7 seats available")
}

func TestValidationOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/bookings", "",
		`{"parent_name":"M","email":"not-an-email","child_tickets":1,"payment_method":"IRIS"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.False(t, env.Status)
	require.NotEmpty(t, env.Errors, "field errors are spelled out for the form")

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/bookings", "", `{not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/admin/export", nil)
	require.NoError(t, err)
	req.Header.Set("X-Admin-Key", testAdminKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(buf.String(), "\uFEFF"))
	require.Contains(t, buf.String(), "timestamp,parent_name,email")
}

func TestRestoreOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	table := "timestamp,parent_name,email,child_class,child_tickets,adult_tickets," +
		"total_tickets,total_amount,payment_method,payment_code,payment_status,category,priority_number\n" +
		"2025-11-15 10:00:00,Eleni Markou,eleni@example.com,B2,2,2,4,40,Revolut,EVT-001,pending,interest,0\n"

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "payments.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(table))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/admin/restore", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Admin-Key", testAdminKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	var restored struct {
		ArchivedAs string `json:"archived_as"`
		Records    int    `json:"records"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &restored))
	require.Equal(t, 1, restored.Records)
	require.NotEmpty(t, restored.ArchivedAs)

	// The restored table answers lookups.
	lookupResp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/bookings/lookup?email=eleni@example.com", "", "")
	require.Equal(t, http.StatusOK, lookupResp.StatusCode)
}
