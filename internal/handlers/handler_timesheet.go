package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
	"github.com/timekeep-hq/timekeep_app/internal/tracking"
)

// timesheetHandler handles timesheet entries, the live tracking timer,
// and the guided entry flow.
type timesheetHandler struct {
	timesheetService portssvc.TimesheetSvcFacade
	projectService   portssvc.ProjectSvcFacade
	tracker          *tracking.Manager
}

func newTimesheetHandler(ts portssvc.TimesheetSvcFacade, ps portssvc.ProjectSvcFacade, tr *tracking.Manager) *timesheetHandler {
	return &timesheetHandler{timesheetService: ts, projectService: ps, tracker: tr}
}

// registerTimesheetRoutes registers timesheet and tracking routes under a
// workspace group.
func registerTimesheetRoutes(rg *gin.RouterGroup, timesheetService portssvc.TimesheetSvcFacade, projectService portssvc.ProjectSvcFacade, tracker *tracking.Manager) {
	h := newTimesheetHandler(timesheetService, projectService, tracker)

	entries := rg.Group("/timesheet")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
		entries.POST("/guided", h.guidedEntry)
	}

	track := rg.Group("/tracking")
	{
		track.POST("/start", h.startTracking)
		track.POST("/stop", h.stopTracking)
		track.GET("/active", h.activeSession)
		track.GET("/history", h.trackingHistory)
	}
}

// entryRate resolves the hourly rate for an entry's project. A missing
// project does not fail the response, the total just reads zero.
func (h *timesheetHandler) entryRate(c *gin.Context, userID string, e *domain.TimesheetEntry) decimal.Decimal {
	project, err := h.projectService.GetProject(c.Request.Context(), userID, workspaceID(c), e.ProjectID)
	if err != nil {
		return decimal.Zero
	}
	return project.HourlyRate
}

// createEntry godoc
// @Summary Create a timesheet entry
// @Tags timesheet
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param entry body dto.CreateTimesheetEntryRequest true "Entry details"
// @Success 201 {object} dto.TimesheetEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/timesheet [post]
func (h *timesheetHandler) createEntry(c *gin.Context) {
	var req dto.CreateTimesheetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entry, err := h.timesheetService.CreateEntry(c.Request.Context(), userID, workspaceID(c), req)
	if err != nil {
		respondError(c, err, "Failed to create timesheet entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTimesheetEntryResponse(entry, h.entryRate(c, userID, entry)))
}

// listEntries godoc
// @Summary List timesheet entries
// @Tags timesheet
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param forceRefresh query bool false "Bypass the cache"
// @Success 200 {array} dto.TimesheetEntryResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/timesheet [get]
func (h *timesheetHandler) listEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	refresh := forceRefresh(c)
	entries, err := h.timesheetService.ListEntries(c.Request.Context(), userID, workspaceID(c), refresh)
	if err != nil {
		respondError(c, err, "Failed to list timesheet entries")
		return
	}

	// One project lookup for the whole list rather than one per entry.
	rates := map[string]decimal.Decimal{}
	if projects, err := h.projectService.ListProjects(c.Request.Context(), userID, workspaceID(c), refresh); err == nil {
		for _, p := range projects {
			rates[p.ProjectID] = p.HourlyRate
		}
	}

	list := make([]dto.TimesheetEntryResponse, len(entries))
	for i := range entries {
		list[i] = dto.ToTimesheetEntryResponse(&entries[i], rates[entries[i].ProjectID])
	}
	c.JSON(http.StatusOK, list)
}

// getEntry godoc
// @Summary Get a timesheet entry
// @Tags timesheet
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.TimesheetEntryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/timesheet/{entry_id} [get]
func (h *timesheetHandler) getEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entry, err := h.timesheetService.GetEntry(c.Request.Context(), userID, workspaceID(c), c.Param("entry_id"))
	if err != nil {
		respondError(c, err, "Failed to fetch timesheet entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToTimesheetEntryResponse(entry, h.entryRate(c, userID, entry)))
}

// updateEntry godoc
// @Summary Update a timesheet entry
// @Tags timesheet
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param entry_id path string true "Entry ID"
// @Param entry body dto.UpdateTimesheetEntryRequest true "Fields to update"
// @Success 200 {object} dto.TimesheetEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/timesheet/{entry_id} [put]
func (h *timesheetHandler) updateEntry(c *gin.Context) {
	var req dto.UpdateTimesheetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entry, err := h.timesheetService.UpdateEntry(c.Request.Context(), userID, workspaceID(c), c.Param("entry_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update timesheet entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToTimesheetEntryResponse(entry, h.entryRate(c, userID, entry)))
}

// deleteEntry godoc
// @Summary Delete a timesheet entry
// @Tags timesheet
// @Param workspace_id path string true "Workspace ID"
// @Param entry_id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/timesheet/{entry_id} [delete]
func (h *timesheetHandler) deleteEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.timesheetService.DeleteEntry(c.Request.Context(), userID, workspaceID(c), c.Param("entry_id")); err != nil {
		respondError(c, err, "Failed to delete timesheet entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// startTracking godoc
// @Summary Start a tracking session
// @Description Starts the timer for a project. Only one session may run per
// @Description user; starting the same project again is a no-op.
// @Tags tracking
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param session body dto.StartTrackingRequest true "Project to track"
// @Success 200 {object} dto.ActiveSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Another session is already running"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/tracking/start [post]
func (h *timesheetHandler) startTracking(c *gin.Context) {
	var req dto.StartTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	// The project must exist in the workspace before the timer starts.
	project, err := h.projectService.GetProject(c.Request.Context(), userID, workspaceID(c), req.ProjectID)
	if err != nil {
		respondError(c, err, "Failed to start tracking")
		return
	}

	session, err := h.tracker.Start(userID, project.ProjectID, project.Name)
	if err != nil {
		if errors.Is(err, tracking.ErrSessionActive) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		respondError(c, err, "Failed to start tracking")
		return
	}
	c.JSON(http.StatusOK, dto.ToActiveSessionResponse(session))
}

// stopTracking godoc
// @Summary Stop the tracking session
// @Description Stops the running timer, rounds the elapsed time up to the
// @Description minimum billable block, and records a timesheet entry.
// @Tags tracking
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.StoppedSessionResponse
// @Failure 400 {object} ErrorResponse "No active session"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/tracking/stop [post]
func (h *timesheetHandler) stopTracking(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	stopped, err := h.tracker.Stop(userID)
	if err != nil {
		if errors.Is(err, tracking.ErrNoActiveSession) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		respondError(c, err, "Failed to stop tracking")
		return
	}

	day := stopped.StoppedAt.Truncate(24 * time.Hour)
	entry, err := h.timesheetService.CreateEntry(c.Request.Context(), userID, workspaceID(c), dto.CreateTimesheetEntryRequest{
		ProjectID:   stopped.ProjectID,
		Date:        day,
		Hours:       stopped.Hours,
		Description: "Tracked: " + stopped.ProjectName,
		Billable:    true,
	})
	if err != nil {
		respondError(c, err, "Session stopped but the timesheet entry could not be created")
		return
	}
	c.JSON(http.StatusOK, dto.ToStoppedSessionResponse(stopped, entry.EntryID))
}

// activeSession godoc
// @Summary Get the active tracking session
// @Tags tracking
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.ActiveSessionResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/tracking/active [get]
func (h *timesheetHandler) activeSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	session, err := h.tracker.Active(userID)
	if err != nil {
		respondError(c, err, "Failed to read tracking state")
		return
	}
	c.JSON(http.StatusOK, dto.ToActiveSessionResponse(session))
}

// trackingHistory godoc
// @Summary List recent tracking sessions
// @Tags tracking
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {array} dto.StoppedSessionResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/tracking/history [get]
func (h *timesheetHandler) trackingHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	history, err := h.tracker.History(userID)
	if err != nil {
		respondError(c, err, "Failed to read tracking history")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrackingHistoryResponse(history))
}

// guidedEntry godoc
// @Summary Advance the guided timesheet entry flow
// @Description Steps through project, date, hours, description, and billable
// @Description questions one at a time. When the flow confirms, the entry is
// @Description created and its ID is returned.
// @Tags timesheet
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param state body dto.GuidedEntryRequest true "Current step, draft, and answer"
// @Success 200 {object} dto.GuidedEntryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/timesheet/guided [post]
func (h *timesheetHandler) guidedEntry(c *gin.Context) {
	var req dto.GuidedEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	step := req.Step
	if step == "" {
		step = tracking.StepProject
	}
	next, draft, message := tracking.Advance(step, req.Draft, req.Input, time.Now().UTC())

	resp := dto.GuidedEntryResponse{Step: next, Draft: draft, Message: message}
	if next == tracking.StepDone {
		entry, err := h.timesheetService.CreateEntry(c.Request.Context(), userID, workspaceID(c), dto.CreateTimesheetEntryRequest{
			ProjectID:   draft.ProjectID,
			Date:        draft.Date,
			Hours:       draft.Hours,
			Description: draft.Description,
			Billable:    draft.Billable,
		})
		if err != nil {
			respondError(c, err, "Failed to create the confirmed entry")
			return
		}
		resp.EntryID = entry.EntryID
	}
	c.JSON(http.StatusOK, resp)
}
