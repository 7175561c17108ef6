package handlers

import (
	"net/http"

	"resto_staff_backend/internal/services"
	"resto_staff_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MenuHandler holds the menu service.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

// GetFullMenu returns the restaurant menu grouped by category.
func (h *MenuHandler) GetFullMenu(c *gin.Context) {
	menu, err := h.menuService.FullMenu()
	if err != nil {
		utils.LogError(err, "GetFullMenu: Error from menuService.FullMenu")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load menu.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu})
}
