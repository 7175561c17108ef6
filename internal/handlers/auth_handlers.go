package handlers

import (
	"errors"
	"net/http"

	"resto_staff_backend/internal/middleware"
	"resto_staff_backend/internal/services"
	"resto_staff_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// cookieMaxAge matches the session token lifetime.
const cookieMaxAge = int(utils.SessionTokenTTL / 1e9)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// LoginPage redirects an already authenticated browser to the dashboard.
// An invalid token is bounced back here by the dashboard route.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		c.Redirect(http.StatusSeeOther, "/staff/dashboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Submit phone and password to POST /staff/login"})
}

// Login handles the staff login form: matches the employee by phone digits,
// verifies the password, sets the HTTP-only session cookie and redirects.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.LogError(err, "Login: Failed to bind form")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Phone and password are required.", err.Error()))
		return
	}

	token, _, err := h.authService.Login(req.Phone, req.Password)
	if err != nil {
		utils.LogError(err, "Login: Error from authService.Login")
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Employee not found.", err.Error()))
		} else if errors.Is(err, services.ErrPasswordNotSet) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Password has not been set yet.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Wrong password.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to login.", "Internal error"))
		}
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, cookieMaxAge, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/staff/dashboard")
}

// Logout clears the session cookie and redirects to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/staff/login")
}
