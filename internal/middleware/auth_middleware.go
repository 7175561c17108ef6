package middleware

import (
	"net/http"

	"resto_staff_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the HTTP-only cookie carrying the staff session token.
const SessionCookieName = "staff_access_token"

// Context keys set by the middleware for downstream handlers.
const (
	CtxEmployeeID = "employeeID"
	CtxFullName   = "fullName"
	CtxRoleName   = "roleName"
)

// AuthMiddleware creates a Gin middleware validating the staff session
// cookie. API routes respond with a 401 JSON error; browser-facing routes
// handle redirects themselves.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", "Missing session cookie"))
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired session.", err.Error()))
			return
		}

		// Set employee information in the context for downstream handlers
		c.Set(CtxEmployeeID, claims.EmployeeID)
		c.Set(CtxFullName, claims.FullName)
		c.Set(CtxRoleName, claims.Role)

		c.Next()
	}
}

// EmployeeID extracts the authenticated employee id from the context.
func EmployeeID(c *gin.Context) (int64, bool) {
	raw, exists := c.Get(CtxEmployeeID)
	if !exists {
		return 0, false
	}
	id, ok := raw.(int64)
	return id, ok
}
