package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hospital/hms/internal/platform/apperr"
)

type detail struct {
	Detail string `json:"detail"`
}

// ErrorHandler renders every error returned by a handler. Validation and
// constraint failures become field maps, missing records 404, echo's own
// HTTP errors keep their code and anything else is logged and hidden
// behind a 500.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).
				Str("request_id", requestIDFrom(c)).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}

func render(err error) (int, interface{}) {
	var (
		ve *apperr.ValidationError
		nf *apperr.NotFoundError
		ce *apperr.ConstraintError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Fields
	case errors.As(err, &nf):
		return http.StatusNotFound, detail{Detail: "Not found."}
	case errors.As(err, &ce):
		field := ce.Field
		if field == "" {
			field = apperr.NonFieldErrors
		}
		return http.StatusBadRequest, map[string][]string{field: {ce.Message}}
	case errors.As(err, &he):
		if he.Code >= http.StatusInternalServerError {
			return he.Code, detail{Detail: "internal server error"}
		}
		return he.Code, detail{Detail: httpMessage(he)}
	default:
		return http.StatusInternalServerError, detail{Detail: "internal server error"}
	}
}

func httpMessage(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case nil:
		return http.StatusText(he.Code)
	default:
		return fmt.Sprint(m)
	}
}
