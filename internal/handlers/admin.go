// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hardwarehub/storefront-backend/internal/services"
	"github.com/hardwarehub/storefront-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GET /admins/:cognitoId
func (h *AdminHandler) GetAdmin(c *gin.Context) {
	admin, err := h.adminService.GetAdmin(c.Request.Context(), c.Param("cognitoId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"admin": admin})
}

// POST /admins
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	admin, err := h.adminService.CreateAdmin(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"admin": admin})
}

// PUT /admins/:cognitoId
func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}
	req.CognitoID = c.Param("cognitoId")

	admin, err := h.adminService.UpdateAdmin(c.Request.Context(), c.Param("cognitoId"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"admin": admin})
}

func (h *AdminHandler) respondError(c *gin.Context, err error) {
	switch err {
	case services.ErrAdminNotFound:
		utils.NotFoundResponse(c, err.Error())
	default:
		logrus.WithError(err).Error("Admin operation failed")
		utils.InternalErrorResponse(c, "")
	}
}
