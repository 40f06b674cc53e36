package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
)

// clientHandler handles HTTP requests related to clients.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

func newClientHandler(cs portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{clientService: cs}
}

// registerClientRoutes registers client routes under a workspace group.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := newClientHandler(clientService)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:client_id", h.getClient)
		clients.PUT("/:client_id", h.updateClient)
		clients.DELETE("/:client_id", h.deleteClient)
	}
}

// createClient godoc
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	client, err := h.clientService.CreateClient(c.Request.Context(), userID, workspaceID(c), req)
	if err != nil {
		respondError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Description Lists the workspace's clients. Pass forceRefresh=true to bypass the cache.
// @Tags clients
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param forceRefresh query bool false "Bypass the cache"
// @Success 200 {array} dto.ClientResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	clients, err := h.clientService.ListClients(c.Request.Context(), userID, workspaceID(c), forceRefresh(c))
	if err != nil {
		respondError(c, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClientsResponse(clients))
}

// getClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param client_id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/clients/{client_id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	client, err := h.clientService.GetClient(c.Request.Context(), userID, workspaceID(c), c.Param("client_id"))
	if err != nil {
		respondError(c, err, "Failed to fetch client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// updateClient godoc
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param client_id path string true "Client ID"
// @Param client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/clients/{client_id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	client, err := h.clientService.UpdateClient(c.Request.Context(), userID, workspaceID(c), c.Param("client_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// deleteClient godoc
// @Summary Delete a client
// @Tags clients
// @Param workspace_id path string true "Workspace ID"
// @Param client_id path string true "Client ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Client still has projects"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/clients/{client_id} [delete]
func (h *clientHandler) deleteClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.clientService.DeleteClient(c.Request.Context(), userID, workspaceID(c), c.Param("client_id")); err != nil {
		respondError(c, err, "Failed to delete client")
		return
	}
	c.Status(http.StatusNoContent)
}
