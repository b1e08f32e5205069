package handlers

import (
	"github.com/OyhamburoDev/luna-backend/internal/apperrors"
	"github.com/labstack/echo/v4"
)

// httpError translates a workflow error into the HTTP response the mobile
// shell shows. Duplicate, rate-limit and validation failures keep their
// actionable message; infrastructure failures get a generic retry hint.
func httpError(err error) *echo.HTTPError {
	code := apperrors.CodeOf(err)
	message := err.Error()
	if code == apperrors.ErrInfrastructure {
		message = "Something went wrong. Please try again."
	}
	return echo.NewHTTPError(apperrors.HTTPStatus(code), message)
}
