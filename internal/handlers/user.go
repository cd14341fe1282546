// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hardwarehub/storefront-backend/internal/services"
	"github.com/hardwarehub/storefront-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /users/:cognitoId
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("cognitoId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"user": user})
}

// PUT /users/:cognitoId
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}
	req.CognitoID = c.Param("cognitoId")

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("cognitoId"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// POST /users/:cognitoId/favorites/:productId
func (h *UserHandler) AddFavorite(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Valid product ID is required", nil)
		return
	}

	user, err := h.userService.AddFavorite(c.Request.Context(), c.Param("cognitoId"), productID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// DELETE /users/:cognitoId/favorites/:productId
func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Valid product ID is required", nil)
		return
	}

	user, err := h.userService.RemoveFavorite(c.Request.Context(), c.Param("cognitoId"), productID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

func (h *UserHandler) respondError(c *gin.Context, err error) {
	switch err {
	case services.ErrUserNotFound, services.ErrProductNotFound:
		utils.NotFoundResponse(c, err.Error())
	case services.ErrAlreadyFavorite:
		utils.ConflictResponse(c, err.Error())
	default:
		logrus.WithError(err).Error("User operation failed")
		utils.InternalErrorResponse(c, "")
	}
}
