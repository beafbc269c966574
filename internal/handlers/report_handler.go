package handlers

import (
	"github.com/gin-gonic/gin"

	"suraksha/internal/models"
	"suraksha/internal/services"
	"suraksha/internal/utils"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Submit files a new incident report for the authenticated user.
func (h *ReportHandler) Submit(c *gin.Context) {
	userID, _, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	var request services.SubmitReportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	report, err := h.reportService.Submit(c.Request.Context(), userID, &request)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Report submitted successfully", report)
}

// Get returns a single report, subject to ownership checks.
func (h *ReportHandler) Get(c *gin.Context) {
	reportID, ok := pathObjectID(c)
	if !ok {
		return
	}

	userID, role, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	report, err := h.reportService.Get(c.Request.Context(), reportID, userID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Report retrieved successfully", report)
}

// ListMine returns the caller's own reports, newest first.
func (h *ReportHandler) ListMine(c *gin.Context) {
	userID, _, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	reports, err := h.reportService.ListMine(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Reports retrieved successfully", reports)
}

// ListAll returns every report with submitter identity, admin only.
func (h *ReportHandler) ListAll(c *gin.Context) {
	_, role, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	params := utils.GetPaginationParams(c)

	reports, total, err := h.reportService.ListAll(c.Request.Context(), role, params)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(reports),
	}
	utils.SuccessResponseWithMeta(c, "Reports retrieved successfully", reports, meta)
}

// ListAssigned returns the reports assigned to the calling counsellor.
func (h *ReportHandler) ListAssigned(c *gin.Context) {
	userID, role, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	reports, err := h.reportService.ListAssigned(c.Request.Context(), userID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Assigned reports retrieved successfully", reports)
}

// Delete removes a report, subject to ownership checks.
func (h *ReportHandler) Delete(c *gin.Context) {
	reportID, ok := pathObjectID(c)
	if !ok {
		return
	}

	userID, role, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	if err := h.reportService.Delete(c.Request.Context(), reportID, userID, role); err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Report deleted successfully", nil)
}

// Assign hands a report to a counsellor, admin only.
func (h *ReportHandler) Assign(c *gin.Context) {
	reportID, ok := pathObjectID(c)
	if !ok {
		return
	}

	_, role, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	var request services.AssignRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	report, err := h.reportService.Assign(c.Request.Context(), reportID, &request, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Report assigned successfully", report)
}

type statusRequest struct {
	Status models.ReportStatus `json:"status"`
}

// SetStatus transitions a report to any canonical status, admin only.
func (h *ReportHandler) SetStatus(c *gin.Context) {
	reportID, ok := pathObjectID(c)
	if !ok {
		return
	}

	_, role, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	var request statusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	report, err := h.reportService.SetStatusAdmin(c.Request.Context(), reportID, request.Status, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Report status updated successfully", report)
}

// SetStatusAssigned lets the assigned counsellor move a report into
// counselling or resolve it.
func (h *ReportHandler) SetStatusAssigned(c *gin.Context) {
	reportID, ok := pathObjectID(c)
	if !ok {
		return
	}

	userID, role, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	var request statusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	report, err := h.reportService.SetStatusCounsellor(c.Request.Context(), reportID, request.Status, userID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Report status updated successfully", report)
}
