package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beehive/dashboard/internal/app"
	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/models"
	"github.com/beehive/dashboard/internal/storage"
)

// newTestServer creates a test server backed by real storage in a
// temporary directory.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := common.NewSilentLogger()
	cfg := common.NewDefaultConfig()
	cfg.Storage.Bank.Path = filepath.Join(t.TempDir(), "bank")
	cfg.Scheduler.Enabled = false

	mgr, err := storage.NewManager(logger, cfg)
	require.NoError(t, err)

	a := app.NewAppWithStorage(cfg, logger, mgr)
	t.Cleanup(func() { a.Close() })
	return NewServer(a)
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func doRequest(t *testing.T, srv *Server, method, path string, body *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func createTestAccount(t *testing.T, srv *Server, name string, iban string, balance float64) models.Account {
	t.Helper()
	rec := doRequest(t, srv, http.MethodPost, "/api/accounts", jsonBody(t, map[string]interface{}{
		"name":    name,
		"iban":    iban,
		"balance": balance,
		"type":    "CURRENT",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var account models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	return account
}

func testIBAN(c byte) string {
	return strings.Repeat(string(c), models.IBANLength)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestAccountLifecycle(t *testing.T) {
	srv := newTestServer(t)

	account := createTestAccount(t, srv, "Checking", testIBAN('A'), 1000)
	assert.NotEmpty(t, account.ID)
	assert.Equal(t, "default", account.UserID)

	rec := doRequest(t, srv, http.MethodGet, "/api/accounts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var accounts []models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
	require.Len(t, accounts, 1)

	rec = doRequest(t, srv, http.MethodPut, "/api/accounts/"+account.ID, jsonBody(t, map[string]interface{}{
		"name": "Renamed", "iban": testIBAN('B'), "type": "SAVINGS", "priority": 2,
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 1000.0, updated.Balance)

	rec = doRequest(t, srv, http.MethodDelete, "/api/accounts/"+account.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/accounts/"+account.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccountCreateValidation(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/accounts", jsonBody(t, map[string]interface{}{
		"name": "Bad", "iban": "short", "type": "CURRENT",
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccountDuplicateIBANConflict(t *testing.T) {
	srv := newTestServer(t)

	createTestAccount(t, srv, "First", testIBAN('A'), 0)
	rec := doRequest(t, srv, http.MethodPost, "/api/accounts", jsonBody(t, map[string]interface{}{
		"name": "Second", "iban": testIBAN('A'), "type": "CURRENT",
	}))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMovementEndpoints(t *testing.T) {
	srv := newTestServer(t)
	account := createTestAccount(t, srv, "Checking", testIBAN('A'), 1000)

	rec := doRequest(t, srv, http.MethodPost, "/api/movements", jsonBody(t, map[string]interface{}{
		"accountId":   account.ID,
		"category":    "GROCERIES",
		"type":        "EXPENSE",
		"amount":      200,
		"description": "weekly shop",
		"date":        time.Now().Format(time.RFC3339),
		"status":      "CONFIRMED",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var movement models.Movement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movement))

	// Balance reflects the confirmed expense.
	rec = doRequest(t, srv, http.MethodGet, "/api/accounts/"+account.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, 800.0, fetched.Balance)

	rec = doRequest(t, srv, http.MethodGet, "/api/accounts/"+account.ID+"/movements", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var movements []models.Movement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movements))
	require.Len(t, movements, 1)

	rec = doRequest(t, srv, http.MethodDelete, "/api/movements/"+movement.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/accounts/"+account.ID, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, 1000.0, fetched.Balance)
}

func TestMovementListFilters(t *testing.T) {
	srv := newTestServer(t)
	account := createTestAccount(t, srv, "Checking", testIBAN('A'), 5000)

	for _, m := range []map[string]interface{}{
		{"accountId": account.ID, "type": "EXPENSE", "amount": 100, "category": "GROCERIES", "date": "2026-06-01T10:00:00Z", "status": "CONFIRMED"},
		{"accountId": account.ID, "type": "EXPENSE", "amount": 200, "category": "RENT", "date": "2026-06-10T10:00:00Z", "status": "PENDING"},
		{"accountId": account.ID, "type": "INCOME", "amount": 900, "category": "SALARY", "date": "2026-06-20T10:00:00Z", "status": "CONFIRMED"},
	} {
		rec := doRequest(t, srv, http.MethodPost, "/api/movements", jsonBody(t, m))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	var movements []models.Movement

	rec := doRequest(t, srv, http.MethodGet, "/api/movements?accountId="+account.ID+"&type=EXPENSE", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movements))
	assert.Len(t, movements, 2)

	rec = doRequest(t, srv, http.MethodGet, "/api/movements?accountId="+account.ID+"&status=PENDING", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movements))
	require.Len(t, movements, 1)
	assert.Equal(t, 200.0, movements[0].Amount)

	rec = doRequest(t, srv, http.MethodGet, "/api/movements?accountId="+account.ID+"&from=2026-06-05&to=2026-06-25", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movements))
	assert.Len(t, movements, 2)

	rec = doRequest(t, srv, http.MethodGet, "/api/movements?accountId="+account.ID+"&from=junk", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/movements", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMovementInsufficientFunds(t *testing.T) {
	srv := newTestServer(t)
	account := createTestAccount(t, srv, "Checking", testIBAN('A'), 100)

	rec := doRequest(t, srv, http.MethodPost, "/api/movements", jsonBody(t, map[string]interface{}{
		"accountId": account.ID,
		"type":      "EXPENSE",
		"amount":    500,
		"date":      time.Now().Format(time.RFC3339),
		"status":    "CONFIRMED",
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient funds")
}

func TestPlannedEndpoints(t *testing.T) {
	srv := newTestServer(t)
	account := createTestAccount(t, srv, "Checking", testIBAN('A'), 1000)

	rec := doRequest(t, srv, http.MethodPost, "/api/planned", jsonBody(t, map[string]interface{}{
		"accountId":     account.ID,
		"category":      "RENT",
		"type":          "EXPENSE",
		"amount":        800,
		"description":   "rent",
		"recurrence":    "MONTHLY",
		"nextExecution": time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
		"status":        "PENDING",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var planned models.Planned
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &planned))

	rec = doRequest(t, srv, http.MethodGet, "/api/planned", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Planned
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = doRequest(t, srv, http.MethodDelete, "/api/planned/"+planned.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLandingStatisticsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	createTestAccount(t, srv, "Checking", testIBAN('A'), 1500)

	rec := doRequest(t, srv, http.MethodGet, "/api/statistics/landing", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.LandingStatistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1500.0, stats.Balance)
	assert.Equal(t, 1, stats.AccountCount)
	assert.Len(t, stats.BalanceTrend, 29)
}

func TestTrendChartEndpoint(t *testing.T) {
	srv := newTestServer(t)
	createTestAccount(t, srv, "Checking", testIBAN('A'), 1500)

	rec := doRequest(t, srv, http.MethodGet, "/api/statistics/landing/chart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func TestAnalyticsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	account := createTestAccount(t, srv, "Checking", testIBAN('A'), 5000)

	rec := doRequest(t, srv, http.MethodPost, "/api/movements", jsonBody(t, map[string]interface{}{
		"accountId": account.ID,
		"category":  "SALARY",
		"type":      "INCOME",
		"amount":    1000,
		"date":      time.Now().Format(time.RFC3339),
		"status":    "CONFIRMED",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, srv, http.MethodGet, "/api/analytics?timeFilter=month", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.AnalyticsStatistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1000.0, stats.TotalIncome)
	assert.NotEmpty(t, stats.ChartData)

	rec = doRequest(t, srv, http.MethodGet, "/api/analytics?timeFilter=quarter", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserScopedByHeader(t *testing.T) {
	srv := newTestServer(t)

	body := jsonBody(t, map[string]interface{}{
		"name": "Alice's", "iban": testIBAN('A'), "type": "CURRENT",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/accounts", body)
	req.Header.Set("X-BeeHive-User-ID", "alice")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// The default user sees no accounts.
	rec2 := doRequest(t, srv, http.MethodGet, "/api/accounts", nil)
	require.Equal(t, http.StatusOK, rec2.Code)
	var accounts []models.Account
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &accounts))
	assert.Empty(t, accounts)

	// Alice sees hers.
	req = httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("X-BeeHive-User-ID", "alice")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
	assert.Len(t, accounts, 1)
}

func TestCategoriesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var catalog []categoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Equal(t, len(models.Categories), len(catalog))
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodDelete, "/api/statistics/landing", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
