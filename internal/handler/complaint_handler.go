package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmiher/complaint-portal/internal/export"
	"github.com/dmiher/complaint-portal/internal/service"
	appErrors "github.com/dmiher/complaint-portal/pkg/errors"
	"github.com/dmiher/complaint-portal/pkg/response"
)

// ComplaintHandler wires HTTP endpoints to the complaint ledger.
type ComplaintHandler struct {
	service *service.ComplaintService
}

// NewComplaintHandler creates a new handler.
func NewComplaintHandler(svc *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: svc}
}

// List godoc
// @Summary List complaints
// @Description List all complaints newest first, optionally filtered to one student
// @Tags Complaints
// @Produce json
// @Param student_id query string false "Filter by student ID"
// @Success 200 {object} response.Envelope
// @Router /complaints [get]
func (h *ComplaintHandler) List(c *gin.Context) {
	studentID := c.Query("student_id")

	if studentID != "" {
		complaints, err := h.service.ListByStudent(c.Request.Context(), studentID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, complaints)
		return
	}

	complaints, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, complaints)
}

// Submit godoc
// @Summary Submit a complaint
// @Description Record a new complaint with an optional base64 attachment
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body service.SubmitComplaintRequest true "Complaint payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /complaints [post]
func (h *ComplaintHandler) Submit(c *gin.Context) {
	var req service.SubmitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid complaint payload"))
		return
	}

	complaint, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, complaint)
}

// Respond godoc
// @Summary Respond to a complaint
// @Description Apply a partial status/response update to a complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Complaint ID"
// @Param payload body service.RespondRequest true "Partial update"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /complaints/{id} [put]
func (h *ComplaintHandler) Respond(c *gin.Context) {
	var req service.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}

	complaint, err := h.service.Respond(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, complaint)
}

// Delete godoc
// @Summary Delete a complaint
// @Tags Complaints
// @Produce json
// @Security BearerAuth
// @Param id path string true "Complaint ID"
// @Success 204 "No Content"
// @Router /complaints/{id} [delete]
func (h *ComplaintHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export the complaint register
// @Description Download the complaint register as CSV or PDF
// @Tags Complaints
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /complaints/export [get]
func (h *ComplaintHandler) Export(c *gin.Context) {
	complaints, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("complaint-register-%s", time.Now().UTC().Format("2006-01-02"))

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		data, err := export.RegisterCSV(complaints)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Data(http.StatusOK, "text/csv", data)
	case "pdf":
		data, err := export.RegisterPDF(complaints, "Complaint Register")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", filename))
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}
