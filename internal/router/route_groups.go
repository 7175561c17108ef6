package router

import (
	"resto_staff_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupSessionRoutes sets up login, logout and the dashboard entry point.
// These routes inspect the session cookie themselves.
func SetupSessionRoutes(staffGroup *gin.RouterGroup, authHandler *handlers.AuthHandler, staffHandler *handlers.StaffHandler) {
	staffGroup.GET("/login", authHandler.LoginPage)
	staffGroup.POST("/login", authHandler.Login)
	staffGroup.GET("/logout", authHandler.Logout)
	staffGroup.GET("/dashboard", staffHandler.Dashboard)
	staffGroup.POST("/set_password", staffHandler.SetPassword)
}

// SetupQueueRoutes sets up the work-queue routes.
func SetupQueueRoutes(authenticatedGroup *gin.RouterGroup, queueHandler *handlers.QueueHandler) {
	authenticatedGroup.GET("/data", queueHandler.GetData)
	// Legacy alias kept for older PWA builds that fetch the general list directly.
	authenticatedGroup.GET("/orders", queueHandler.GetOrders)
}

// SetupOrderRoutes sets up the order action and detail routes.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	authenticatedGroup.POST("/action", orderHandler.HandleAction)
	orderRoutes := authenticatedGroup.Group("/order")
	{
		orderRoutes.GET("/:id/details", orderHandler.GetOrderDetails)
		orderRoutes.POST("/status", orderHandler.ChangeStatus)
		orderRoutes.POST("/create", orderHandler.CreateOrder)
	}
	authenticatedGroup.GET("/table/:id/orders", orderHandler.GetTableOrders)
}

// SetupMenuRoutes sets up the menu routes.
func SetupMenuRoutes(authenticatedGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	authenticatedGroup.GET("/menu/full", menuHandler.GetFullMenu)
}

// SetupShiftRoutes sets up the shift toggle route.
func SetupShiftRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	authenticatedGroup.POST("/shift/toggle", staffHandler.ToggleShift)
}
