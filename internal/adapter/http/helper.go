package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	loanDomain "peerlend-backend/internal/domain/loan"
	offerDomain "peerlend-backend/internal/domain/offer"
	profileDomain "peerlend-backend/internal/domain/profile"
	"peerlend-backend/internal/domain/session"
	"peerlend-backend/internal/logger"
	"peerlend-backend/internal/usecase/auth"
	"peerlend-backend/internal/usecase/evidence"
)

// writeError maps domain errors to HTTP codes; anything unmapped is a 500
// that gets logged but not leaked.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, session.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})

	case errors.Is(err, loanDomain.ErrNotBorrower),
		errors.Is(err, loanDomain.ErrNotLender),
		errors.Is(err, loanDomain.ErrOwnOffer):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	case errors.Is(err, offerDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, profileDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, loanDomain.ErrAlreadyBorrowed),
		errors.Is(err, profileDomain.ErrEmailTaken):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, offerDomain.ErrInvalidAmount),
		errors.Is(err, offerDomain.ErrInvalidInterestRate),
		errors.Is(err, loanDomain.ErrNoEvidence),
		errors.Is(err, evidence.ErrFileTooLarge),
		errors.Is(err, evidence.ErrUnsupportedFileType),
		errors.Is(err, auth.ErrWeakPassword):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	logger.Log.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
