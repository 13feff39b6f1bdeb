package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

func respondError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidEntryID),
		errors.Is(err, entity.ErrEmptyHeadword),
		errors.Is(err, entity.ErrEmptyDefinition),
		errors.Is(err, entity.ErrInvalidHistoryID),
		errors.Is(err, entity.ErrInvalidUserName),
		errors.Is(err, entity.ErrInvalidUserEmail):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrInvalidCredentials),
		errors.Is(err, entity.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrPermissionDenied),
		errors.Is(err, entity.ErrDialectNotGranted):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrEntryNotFound),
		errors.Is(err, entity.ErrHistoryNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrDuplicateEntry),
		errors.Is(err, entity.ErrUserAlreadyExists),
		errors.Is(err, entity.ErrReviewConflict),
		errors.Is(err, entity.ErrNotPendingReview):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
