package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"resto_staff_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func protectedRouter(t *testing.T) (*gin.Engine, *int64) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seenEmployeeID int64
	engine := gin.New()
	engine.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		id, ok := EmployeeID(c)
		if !ok {
			t.Error("EmployeeID() not set after successful authentication")
		}
		seenEmployeeID = id
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return engine, &seenEmployeeID
}

func TestAuthMiddlewareRejectsMissingCookie(t *testing.T) {
	engine, _ := protectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	engine, _ := protectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-jwt"})
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	engine, seenEmployeeID := protectedRouter(t)

	token, err := utils.GenerateSessionToken(7, "Aidana", "Waiter")
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if *seenEmployeeID != 7 {
		t.Errorf("employee ID in context = %d, want 7", *seenEmployeeID)
	}
}
