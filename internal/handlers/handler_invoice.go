package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
)

// invoiceHandler handles invoice generation, lifecycle updates, manual item
// replacement, and document export.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	exportService  portssvc.ExportSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade, es portssvc.ExportSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is, exportService: es}
}

// registerInvoiceRoutes registers invoice routes under a workspace group.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, exportService portssvc.ExportSvcFacade) {
	h := newInvoiceHandler(invoiceService, exportService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoice_id", h.getInvoice)
		invoices.PUT("/:invoice_id", h.updateInvoice)
		invoices.PUT("/:invoice_id/items", h.replaceItems)
		invoices.DELETE("/:invoice_id", h.deleteInvoice)
		invoices.GET("/:invoice_id/export/pdf", h.exportPDF)
		invoices.GET("/:invoice_id/export/excel", h.exportExcel)
	}
}

// createInvoice godoc
// @Summary Generate an invoice
// @Description Aggregates the client's billable hours for the issue month and
// @Description the monthly fees of its fixed projects into line items, applies
// @Description the workspace tax rate, and assigns the next invoice number.
// @Tags invoices
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Nothing to invoice for the month"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	invoice, items, err := h.invoiceService.CreateInvoice(c.Request.Context(), userID, workspaceID(c), req)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice, items))
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param forceRefresh query bool false "Bypass the cache"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), userID, workspaceID(c), forceRefresh(c))
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices))
}

// getInvoice godoc
// @Summary Get an invoice with its line items
// @Tags invoices
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invoices/{invoice_id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	invoice, items, err := h.invoiceService.GetInvoice(c.Request.Context(), userID, workspaceID(c), c.Param("invoice_id"))
	if err != nil {
		respondError(c, err, "Failed to fetch invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, items))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Updates status, due date, template, or notes. Marking an
// @Description invoice paid also records salary credits for the client's
// @Description fixed projects.
// @Tags invoices
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param invoice_id path string true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invoices/{invoice_id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), userID, workspaceID(c), c.Param("invoice_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, nil))
}

// replaceItems godoc
// @Summary Replace the invoice's line items
// @Description Swaps the computed line items for a manually edited set and
// @Description recomputes the totals.
// @Tags invoices
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param invoice_id path string true "Invoice ID"
// @Param items body dto.ReplaceInvoiceItemsRequest true "New line items"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invoices/{invoice_id}/items [put]
func (h *invoiceHandler) replaceItems(c *gin.Context) {
	var req dto.ReplaceInvoiceItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	invoice, items, err := h.invoiceService.ReplaceItems(c.Request.Context(), userID, workspaceID(c), c.Param("invoice_id"), req)
	if err != nil {
		respondError(c, err, "Failed to replace invoice items")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, items))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Tags invoices
// @Param workspace_id path string true "Workspace ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invoices/{invoice_id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), userID, workspaceID(c), c.Param("invoice_id")); err != nil {
		respondError(c, err, "Failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// exportPDF godoc
// @Summary Download the invoice as PDF
// @Tags invoices
// @Produce application/pdf
// @Param workspace_id path string true "Workspace ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invoices/{invoice_id}/export/pdf [get]
func (h *invoiceHandler) exportPDF(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	doc, filename, err := h.exportService.ExportInvoicePDF(c.Request.Context(), userID, workspaceID(c), c.Param("invoice_id"))
	if err != nil {
		respondError(c, err, "Failed to export invoice")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

// exportExcel godoc
// @Summary Download the invoice as an Excel workbook
// @Tags invoices
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param workspace_id path string true "Workspace ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invoices/{invoice_id}/export/excel [get]
func (h *invoiceHandler) exportExcel(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	doc, filename, err := h.exportService.ExportInvoiceExcel(c.Request.Context(), userID, workspaceID(c), c.Param("invoice_id"))
	if err != nil {
		respondError(c, err, "Failed to export invoice")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", doc)
}
