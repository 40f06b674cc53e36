package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps a service error to its HTTP status and writes the
// response, logging server-side failures.
func respondError(c *gin.Context, err error, publicMsg string) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error(publicMsg,
			slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: publicMsg})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// requireUserID pulls the authenticated user from the request context,
// aborting with 401 when absent.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// workspaceID returns the :workspace_id path parameter.
func workspaceID(c *gin.Context) string {
	return c.Param("workspace_id")
}

// forceRefresh reports whether the request asked to bypass the cache.
func forceRefresh(c *gin.Context) bool {
	return c.Query("forceRefresh") == "true"
}
