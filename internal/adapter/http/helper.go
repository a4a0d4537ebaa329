package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	appdomain "instantcredit-backend/internal/domain/application"
	profiledomain "instantcredit-backend/internal/domain/profile"
	userdomain "instantcredit-backend/internal/domain/user"
)

// writeError maps domain errors to HTTP codes. Entity-specific not-found
// errors keep their message so the caller knows which reference was wrong;
// everything unrecognized is an opaque 500.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appdomain.ErrNotFound),
		errors.Is(err, appdomain.ErrDocumentNotFound),
		errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, profiledomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appdomain.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appdomain.ErrInvalidStatus),
		errors.Is(err, userdomain.ErrEmailTaken):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, userdomain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	default:
		log.Printf("http: internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
