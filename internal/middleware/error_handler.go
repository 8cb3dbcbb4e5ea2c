package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/campushub/room-booking-service/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every failure as dto.ErrorResponse, the API's single
// error shape. Non-HTTP errors become a generic 500 so internal detail never
// reaches the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		default:
			msg = fmt.Sprintf("%v", m)
		}
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
