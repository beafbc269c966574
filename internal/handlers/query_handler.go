package handlers

import (
	"github.com/gin-gonic/gin"

	"suraksha/internal/services"
	"suraksha/internal/utils"
)

type QueryHandler struct {
	queryService services.QueryService
}

func NewQueryHandler(queryService services.QueryService) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
	}
}

// Submit accepts an anonymous contact query. No authentication.
func (h *QueryHandler) Submit(c *gin.Context) {
	var request services.SubmitQueryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	query, err := h.queryService.Submit(c.Request.Context(), &request)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Query submitted successfully", query)
}

// ListAll returns every query, admin only.
func (h *QueryHandler) ListAll(c *gin.Context) {
	_, role, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	params := utils.GetPaginationParams(c)

	queries, total, err := h.queryService.ListAll(c.Request.Context(), role, params)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(queries),
	}
	utils.SuccessResponseWithMeta(c, "Queries retrieved successfully", queries, meta)
}

// Delete removes a query, admin only.
func (h *QueryHandler) Delete(c *gin.Context) {
	queryID, ok := pathObjectID(c)
	if !ok {
		return
	}

	_, role, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	if err := h.queryService.Delete(c.Request.Context(), role, queryID); err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Query deleted successfully", nil)
}

// Reply emails an answer to the submitter and marks the query
// answered, admin only.
func (h *QueryHandler) Reply(c *gin.Context) {
	queryID, ok := pathObjectID(c)
	if !ok {
		return
	}

	_, role, ok := callerIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
		return
	}

	var request services.ReplyQueryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	query, err := h.queryService.Reply(c.Request.Context(), role, queryID, &request)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Reply sent successfully", query)
}
