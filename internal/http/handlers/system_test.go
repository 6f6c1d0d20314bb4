package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func TestDBCheckCountsBookings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/db-check", (&SystemHandler{DB: db}).DBCheck)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/db-check", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"bookings_in_db":3`) {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestDBCheckQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("table missing"))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/db-check", (&SystemHandler{DB: db}).DBCheck)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/db-check", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
}
