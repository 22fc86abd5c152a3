package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
	"github.com/ilyadubrovsky/tracking-attendance/internal/validation"
)

var badRequestErrors = []error{
	ierrors.ErrInvalidDate,
	ierrors.ErrInvalidMark,
	ierrors.ErrNotClassDay,
	ierrors.ErrInvalidBackup,
	ierrors.ErrReservedUnitID,
	ierrors.ErrEmptyRoster,
}

var notFoundErrors = []error{
	ierrors.ErrStudentNotFound,
	ierrors.ErrUnitNotFound,
}

func httpErrorHandler(err error, c echo.Context) {
	var (
		code    int
		message interface{}
		herr    *echo.HTTPError
	)

	switch {
	case errors.As(err, &herr):
		code = herr.Code
		message = echo.Map{"error": herr.Message}
	case validation.Fields(err) != nil:
		fields := make(map[string]string)
		for _, f := range validation.Fields(err) {
			fields[f.Field] = f.Error
		}
		code = http.StatusBadRequest
		message = echo.Map{"error": ierrors.ErrValidation.Error(), "fields": fields}
	case isAny(err, badRequestErrors):
		code = http.StatusBadRequest
		message = echo.Map{"error": err.Error()}
	case isAny(err, notFoundErrors):
		code = http.StatusNotFound
		message = echo.Map{"error": err.Error()}
	default:
		code = http.StatusInternalServerError
		message = echo.Map{"error": http.StatusText(http.StatusInternalServerError)}
		log.Error().
			Str("method", c.Request().Method).
			Str("uri", c.Request().RequestURI).
			Msgf("httpErrorHandler: %v", err.Error())
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, message)
	}
	if err != nil {
		log.Error().Msgf("httpErrorHandler: c.JSON: %v", err.Error())
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
