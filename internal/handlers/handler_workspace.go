package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
	"github.com/timekeep-hq/timekeep_app/internal/middleware"
)

// workspaceHandler handles HTTP requests related to workspaces, their
// members, and their settings.
type workspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
	settingsService  portssvc.SettingsSvcFacade
}

func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade, ss portssvc.SettingsSvcFacade) *workspaceHandler {
	return &workspaceHandler{
		workspaceService: ws,
		settingsService:  ss,
	}
}

// createWorkspace godoc
// @Summary Create a new workspace
// @Description Creates a new workspace and assigns the creator as admin.
// @Tags workspaces
// @Accept json
// @Produce json
// @Param workspace body dto.CreateWorkspaceRequest true "Workspace details"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces [post]
func (h *workspaceHandler) createWorkspace(c *gin.Context) {
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create workspace", slog.String("workspace_name", req.Name))

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), req.Name, req.Description, userID)
	if err != nil {
		respondError(c, err, "Failed to create workspace")
		return
	}
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(workspace))
}

// listUserWorkspaces godoc
// @Summary List workspaces for current user
// @Description Retrieves the workspaces the authenticated user belongs to.
// @Tags workspaces
// @Produce json
// @Success 200 {object} dto.ListWorkspacesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces [get]
func (h *workspaceHandler) listUserWorkspaces(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	workspaces, err := h.workspaceService.ListUserWorkspaces(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list workspaces")
		return
	}
	c.JSON(http.StatusOK, dto.ToListWorkspacesResponse(workspaces))
}

// getWorkspace godoc
// @Summary Get workspace details
// @Tags workspaces
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [get]
func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	wsID := workspaceID(c)
	if err := h.workspaceService.AuthorizeUserAction(c.Request.Context(), userID, wsID, domain.RoleReadOnly); err != nil {
		respondError(c, err, "Failed to authorize workspace access")
		return
	}
	workspace, err := h.workspaceService.FindWorkspaceByID(c.Request.Context(), wsID)
	if err != nil {
		respondError(c, err, "Failed to fetch workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

// addUserToWorkspace godoc
// @Summary Add a user to a workspace
// @Description Adds (or re-activates) a member with a role. Requires admin.
// @Tags workspaces
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param membership body dto.AddUserToWorkspaceRequest true "Member details"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/users [post]
func (h *workspaceHandler) addUserToWorkspace(c *gin.Context) {
	var req dto.AddUserToWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.workspaceService.AddUserToWorkspace(c.Request.Context(), userID, req.UserID, workspaceID(c), req.Role); err != nil {
		respondError(c, err, "Failed to add user to workspace")
		return
	}
	c.Status(http.StatusNoContent)
}

// listWorkspaceUsers godoc
// @Summary List workspace members
// @Tags workspaces
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {array} dto.UserWorkspaceResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/users [get]
func (h *workspaceHandler) listWorkspaceUsers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	members, err := h.workspaceService.ListWorkspaceUsers(c.Request.Context(), userID, workspaceID(c))
	if err != nil {
		respondError(c, err, "Failed to list workspace members")
		return
	}
	resp := make([]dto.UserWorkspaceResponse, len(members))
	for i := range members {
		resp[i] = dto.ToUserWorkspaceResponse(&members[i])
	}
	c.JSON(http.StatusOK, resp)
}

// removeUserFromWorkspace godoc
// @Summary Remove a member from a workspace
// @Tags workspaces
// @Param workspace_id path string true "Workspace ID"
// @Param user_id path string true "User ID to remove"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/users/{user_id} [delete]
func (h *workspaceHandler) removeUserFromWorkspace(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.workspaceService.RemoveUserFromWorkspace(c.Request.Context(), userID, c.Param("user_id"), workspaceID(c)); err != nil {
		respondError(c, err, "Failed to remove user from workspace")
		return
	}
	c.Status(http.StatusNoContent)
}

// getSettings godoc
// @Summary Get workspace settings
// @Description Returns the flattened key-value settings map.
// @Tags settings
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/settings [get]
func (h *workspaceHandler) getSettings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	settings, err := h.settingsService.GetSettings(c.Request.Context(), userID, workspaceID(c))
	if err != nil {
		respondError(c, err, "Failed to fetch workspace settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// updateSettings godoc
// @Summary Update workspace settings
// @Description Upserts the provided keys; absent keys are untouched. Requires admin.
// @Tags settings
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param settings body dto.UpdateSettingsRequest true "Settings to upsert"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/settings [put]
func (h *workspaceHandler) updateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	updated, err := h.settingsService.UpdateSettings(c.Request.Context(), userID, workspaceID(c), req.Settings)
	if err != nil {
		respondError(c, err, "Failed to update workspace settings")
		return
	}
	c.JSON(http.StatusOK, updated)
}
