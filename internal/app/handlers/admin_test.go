package handlers_test

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linemk/storefront/internal/app/handlers"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesReportHandler(t *testing.T) {
	svc := &fakeAdminService{rows: []models.SalesRow{
		{OrderID: 1, OrderDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), UserID: 1, ProductID: 11, Quantity: 2, Price: decimal.RequireFromString("5.99")},
		{OrderID: 1, OrderDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), UserID: 1, ProductID: 12, Quantity: 1, Price: decimal.RequireFromString("10.99")},
	}}
	handler := handlers.SalesReportHandler(newTestLogger(), svc)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(http.MethodGet, "/api/admin/sales_report", "", 1, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=orders.csv", rr.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(bytes.NewReader(rr.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	// заголовок и по строке на позицию заказа
	assert.Len(t, records, 3)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(http.MethodGet, "/api/admin/sales_report?format=xlsx", "", 1, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "attachment; filename=orders.xlsx", rr.Header().Get("Content-Disposition"))
	// xlsx - zip-архив
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(http.MethodGet, "/api/admin/sales_report?format=pdf", "", 1, nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdminUserHandlers(t *testing.T) {
	svc := &fakeAdminService{users: []*models.User{{ID: 1, Username: "admin", IsAdmin: true}, {ID: 2, Username: "alice"}}}

	rr := httptest.NewRecorder()
	handlers.ListUsersHandler(newTestLogger(), svc).
		ServeHTTP(rr, newRequest(http.MethodGet, "/api/admin/users", "", 1, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"alice"`)

	deleteHandler := handlers.DeleteUserHandler(newTestLogger(), svc)
	rr = httptest.NewRecorder()
	deleteHandler.ServeHTTP(rr, newRequest(http.MethodDelete, "/api/admin/users/2", "", 1, map[string]string{"id": "2"}))
	assert.Equal(t, http.StatusOK, rr.Code)

	svc.err = storage.ErrUserNotFound
	rr = httptest.NewRecorder()
	deleteHandler.ServeHTTP(rr, newRequest(http.MethodDelete, "/api/admin/users/9", "", 1, map[string]string{"id": "9"}))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "user not found")
}
