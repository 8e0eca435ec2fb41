package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "moolah/internal/errors"
	"moolah/internal/logger"
	"moolah/internal/middleware"
)

// ErrorResponse is the standard error envelope, documented for swagger.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the machine code and human message of an error.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// getUID extracts the authenticated owner uid from the Gin context.
// Returns ErrUnauthorized if not present. The resolved uid is the only
// scoping key handlers ever pass to services; client-supplied uids are
// never accepted for own-data endpoints.
func getUID(c *gin.Context) (string, error) {
	uid, exists := c.Get(middleware.ContextUID)
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return uid.(string), nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
		}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorBody{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}
