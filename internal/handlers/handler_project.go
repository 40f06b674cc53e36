package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
)

// projectHandler handles HTTP requests related to projects, including the
// manual salary credit action on fixed projects.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
	creditService  portssvc.SalaryCreditSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade, scs portssvc.SalaryCreditSvcFacade) *projectHandler {
	return &projectHandler{projectService: ps, creditService: scs}
}

// registerProjectRoutes registers project routes under a workspace group.
func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade, creditService portssvc.SalaryCreditSvcFacade) {
	h := newProjectHandler(projectService, creditService)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:project_id", h.getProject)
		projects.PUT("/:project_id", h.updateProject)
		projects.DELETE("/:project_id", h.deleteProject)
		projects.POST("/mark-credited", h.markCredited)
	}
}

// createProject godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	project, err := h.projectService.CreateProject(c.Request.Context(), userID, workspaceID(c), req)
	if err != nil {
		respondError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// listProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param forceRefresh query bool false "Bypass the cache"
// @Success 200 {array} dto.ProjectResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	projects, err := h.projectService.ListProjects(c.Request.Context(), userID, workspaceID(c), forceRefresh(c))
	if err != nil {
		respondError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProjectsResponse(projects))
}

// getProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param project_id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/projects/{project_id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	project, err := h.projectService.GetProject(c.Request.Context(), userID, workspaceID(c), c.Param("project_id"))
	if err != nil {
		respondError(c, err, "Failed to fetch project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// updateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param project_id path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/projects/{project_id} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	project, err := h.projectService.UpdateProject(c.Request.Context(), userID, workspaceID(c), c.Param("project_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// deleteProject godoc
// @Summary Delete a project
// @Tags projects
// @Param workspace_id path string true "Workspace ID"
// @Param project_id path string true "Project ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/projects/{project_id} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.projectService.DeleteProject(c.Request.Context(), userID, workspaceID(c), c.Param("project_id")); err != nil {
		respondError(c, err, "Failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}

// markCredited godoc
// @Summary Record a salary credit for a fixed project
// @Description Records that the fixed fee was paid out. The credit is booked
// @Description against the month before the credited date.
// @Tags projects
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param credit body dto.MarkCreditedRequest true "Credit details"
// @Success 201 {object} dto.SalaryCreditResponse
// @Failure 400 {object} ErrorResponse "Not a fixed project, or month already credited"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/projects/mark-credited [post]
func (h *projectHandler) markCredited(c *gin.Context) {
	var req dto.MarkCreditedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	credit, err := h.creditService.MarkCredited(c.Request.Context(), userID, workspaceID(c), req)
	if err != nil {
		respondError(c, err, "Failed to record salary credit")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSalaryCreditResponse(credit))
}
