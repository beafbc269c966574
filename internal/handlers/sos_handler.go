package handlers

import (
	"github.com/gin-gonic/gin"

	"suraksha/internal/services"
	"suraksha/internal/utils"
)

type SOSHandler struct {
	sosService services.SOSService
}

func NewSOSHandler(sosService services.SOSService) *SOSHandler {
	return &SOSHandler{
		sosService: sosService,
	}
}

// Raise records an emergency alert at the caller's location.
func (h *SOSHandler) Raise(c *gin.Context) {
	userID, _, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	var request services.RaiseSOSRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	alert, err := h.sosService.Raise(c.Request.Context(), userID, &request)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "SOS alert raised", alert)
}

// ListAll returns all alerts with sender identity, admin only.
func (h *SOSHandler) ListAll(c *gin.Context) {
	_, role, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	params := utils.GetPaginationParams(c)

	alerts, total, err := h.sosService.ListAll(c.Request.Context(), role, params)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(alerts),
	}
	utils.SuccessResponseWithMeta(c, "SOS alerts retrieved successfully", alerts, meta)
}

// Delete removes a handled alert, admin only.
func (h *SOSHandler) Delete(c *gin.Context) {
	alertID, ok := pathObjectID(c)
	if !ok {
		return
	}

	_, role, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	if err := h.sosService.Delete(c.Request.Context(), role, alertID); err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "SOS alert deleted successfully", nil)
}
