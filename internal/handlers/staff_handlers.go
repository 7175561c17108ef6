package handlers

import (
	"errors"
	"net/http"

	"resto_staff_backend/internal/middleware"
	"resto_staff_backend/internal/services"
	"resto_staff_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StaffHandler holds the staff and auth services for employee self-service.
type StaffHandler struct {
	staffService services.StaffService
	authService  services.AuthService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService, as services.AuthService) *StaffHandler {
	return &StaffHandler{staffService: ss, authService: as}
}

// Dashboard is the role-gated landing view. Authentication is handled
// manually: an invalid session redirects back to login with the cookie
// cleared instead of returning a bare 401.
func (h *StaffHandler) Dashboard(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || token == "" {
		h.redirectToLogin(c)
		return
	}
	claims, err := utils.ValidateToken(token)
	if err != nil {
		h.redirectToLogin(c)
		return
	}

	employee, err := h.authService.GetProfile(claims.EmployeeID)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			h.redirectToLogin(c)
			return
		}
		utils.LogError(err, "Dashboard: Error from authService.GetProfile")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load dashboard.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employee":    employee,
		"is_on_shift": employee.IsOnShift,
	})
}

func (h *StaffHandler) redirectToLogin(c *gin.Context) {
	// Clear the cookie so an invalid token cannot cause a redirect loop.
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/staff/login")
}

// ToggleShift flips the authenticated employee's on-shift flag.
func (h *StaffHandler) ToggleShift(c *gin.Context) {
	employeeID, ok := middleware.EmployeeID(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Employee not authenticated.", "Missing employee ID in context"))
		return
	}

	onShift, err := h.staffService.ToggleShift(employeeID)
	if err != nil {
		utils.LogError(err, "ToggleShift: Error from staffService.ToggleShift")
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to toggle shift.", "Internal error"))
		}
		return
	}

	state := "inactive"
	message := "Shift finished"
	if onShift {
		state = "active"
		message = "Shift started"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "state": state, "message": message})
}

// SetPasswordRequest carries the temporary password-provisioning form.
type SetPasswordRequest struct {
	EmployeeID int64  `form:"employee_id" binding:"required"`
	Password   string `form:"password" binding:"required"`
}

// SetPassword stores a bcrypt hash for an employee. Temporary provisioning
// helper until employee management moves to the admin panel.
func (h *StaffHandler) SetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "employee_id and password are required.", err.Error()))
		return
	}

	if err := h.staffService.SetPassword(req.EmployeeID, req.Password); err != nil {
		utils.LogError(err, "SetPassword: Error from staffService.SetPassword")
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to set password.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}
