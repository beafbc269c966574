package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"suraksha/internal/models"
	"suraksha/internal/services"
	"suraksha/internal/utils"
)

// callerIdentity pulls the authenticated user out of the gin context
// (set by the auth middleware). The bool result is false when the
// route was wired without AuthRequired, which is a programming error,
// not a client one.
func callerIdentity(c *gin.Context) (primitive.ObjectID, models.Role, bool) {
	rawID, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, "", false
	}
	userID, ok := rawID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, "", false
	}

	rawRole, exists := c.Get("user_role")
	if !exists {
		return primitive.NilObjectID, "", false
	}
	role, ok := rawRole.(models.Role)
	if !ok {
		return primitive.NilObjectID, "", false
	}

	return userID, role, true
}

// pathObjectID parses the :id route parameter.
func pathObjectID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// writeServiceError maps service sentinel errors onto the response
// envelope. Anything unrecognized is a 500.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.ValidationErrorResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.BadRequestResponse(c, utils.ErrInvalidCredentials)
	case errors.Is(err, services.ErrInvalidOTP):
		utils.BadRequestResponse(c, utils.ErrInvalidOrExpired)
	case errors.Is(err, services.ErrConflict):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		utils.BadRequestResponse(c, utils.ErrInvalidStatus)
	case errors.Is(err, services.ErrUnauthorized):
		utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, utils.ErrForbidden)
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "Record")
	default:
		utils.InternalServerErrorResponse(c)
	}
}
