package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
)

// templateHandler handles invoice template CRUD.
type templateHandler struct {
	templateService portssvc.TemplateSvcFacade
}

func newTemplateHandler(ts portssvc.TemplateSvcFacade) *templateHandler {
	return &templateHandler{templateService: ts}
}

// registerTemplateRoutes registers template routes under a workspace group.
func registerTemplateRoutes(rg *gin.RouterGroup, templateService portssvc.TemplateSvcFacade) {
	h := newTemplateHandler(templateService)

	templates := rg.Group("/templates")
	{
		templates.POST("", h.createTemplate)
		templates.GET("", h.listTemplates)
		templates.GET("/:template_id", h.getTemplate)
		templates.PUT("/:template_id", h.updateTemplate)
		templates.DELETE("/:template_id", h.deleteTemplate)
	}
}

// createTemplate godoc
// @Summary Create an invoice template
// @Tags templates
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param template body dto.CreateTemplateRequest true "Template details"
// @Success 201 {object} dto.TemplateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/templates [post]
func (h *templateHandler) createTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	template, err := h.templateService.CreateTemplate(c.Request.Context(), userID, workspaceID(c), req)
	if err != nil {
		respondError(c, err, "Failed to create template")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTemplateResponse(template))
}

// listTemplates godoc
// @Summary List invoice templates
// @Tags templates
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {array} dto.TemplateResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/templates [get]
func (h *templateHandler) listTemplates(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	templates, err := h.templateService.ListTemplates(c.Request.Context(), userID, workspaceID(c))
	if err != nil {
		respondError(c, err, "Failed to list templates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTemplatesResponse(templates))
}

// getTemplate godoc
// @Summary Get an invoice template
// @Tags templates
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param template_id path string true "Template ID"
// @Success 200 {object} dto.TemplateResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/templates/{template_id} [get]
func (h *templateHandler) getTemplate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	template, err := h.templateService.GetTemplate(c.Request.Context(), userID, workspaceID(c), c.Param("template_id"))
	if err != nil {
		respondError(c, err, "Failed to fetch template")
		return
	}
	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

// updateTemplate godoc
// @Summary Update an invoice template
// @Tags templates
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param template_id path string true "Template ID"
// @Param template body dto.UpdateTemplateRequest true "Fields to update"
// @Success 200 {object} dto.TemplateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/templates/{template_id} [put]
func (h *templateHandler) updateTemplate(c *gin.Context) {
	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	template, err := h.templateService.UpdateTemplate(c.Request.Context(), userID, workspaceID(c), c.Param("template_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update template")
		return
	}
	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

// deleteTemplate godoc
// @Summary Delete an invoice template
// @Tags templates
// @Param workspace_id path string true "Workspace ID"
// @Param template_id path string true "Template ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/templates/{template_id} [delete]
func (h *templateHandler) deleteTemplate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.templateService.DeleteTemplate(c.Request.Context(), userID, workspaceID(c), c.Param("template_id")); err != nil {
		respondError(c, err, "Failed to delete template")
		return
	}
	c.Status(http.StatusNoContent)
}
