package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
)

// salaryCreditHandler exposes the recorded salary credits.
type salaryCreditHandler struct {
	creditService portssvc.SalaryCreditSvcFacade
}

func newSalaryCreditHandler(scs portssvc.SalaryCreditSvcFacade) *salaryCreditHandler {
	return &salaryCreditHandler{creditService: scs}
}

// registerSalaryCreditRoutes registers salary credit routes under a
// workspace group.
func registerSalaryCreditRoutes(rg *gin.RouterGroup, creditService portssvc.SalaryCreditSvcFacade) {
	h := newSalaryCreditHandler(creditService)
	rg.GET("/salary-credits", h.listCredits)
}

// listCredits godoc
// @Summary List salary credits
// @Description Lists recorded credits, optionally filtered to a set of
// @Description projects via the projectIDs query parameter (comma separated).
// @Tags salary-credits
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param projectIDs query string false "Comma separated project IDs"
// @Success 200 {array} dto.SalaryCreditResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/salary-credits [get]
func (h *salaryCreditHandler) listCredits(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var projectIDs []string
	if raw := c.Query("projectIDs"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				projectIDs = append(projectIDs, id)
			}
		}
	}

	credits, err := h.creditService.ListCredits(c.Request.Context(), userID, workspaceID(c), projectIDs)
	if err != nil {
		respondError(c, err, "Failed to list salary credits")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSalaryCreditsResponse(credits))
}
