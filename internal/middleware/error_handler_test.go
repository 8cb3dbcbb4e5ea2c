package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campushub/room-booking-service/internal/dto"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()
	ErrorHandler(err, e.NewContext(req, rec))

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestErrorHandler_HTTPErrorWithStringMessage(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusConflict, "booking conflict detected"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "booking conflict detected", body.Message)
}

func TestErrorHandler_HTTPErrorWithErrorMessage(t *testing.T) {
	he := echo.NewHTTPError(http.StatusNotFound)
	he.Message = errors.New("room not found")

	rec, body := renderError(t, he)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "room not found", body.Message)
}

func TestErrorHandler_UnknownErrorHidesDetail(t *testing.T) {
	rec, body := renderError(t, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", body.Message)
}

func TestErrorHandler_CommittedResponseLeftAlone(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, c.NoContent(http.StatusNoContent))

	ErrorHandler(errors.New("late failure"), c)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
