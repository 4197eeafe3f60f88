package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hackhub/teamhub/internal/handler/middleware"
	"hackhub/teamhub/internal/service"
	"hackhub/teamhub/pkg/response"
)

var ErrNoClaims = errors.New("claims not found in context")

func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return uuid.Nil, ErrNoClaims
	}
	return claims.UserID()
}

// requireUserID writes a 401 and returns false when the caller is unknown.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return uuid.Nil, false
	}
	return userID, true
}

// uuidParam parses a path parameter, writing a 400 on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps a service failure to an HTTP response. Unknown errors are
// attached to the context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c, fallback)
	}
}
