package router

import (
	"database/sql"

	"resto_staff_backend/internal/handlers"
	"resto_staff_backend/internal/middleware"
	"resto_staff_backend/internal/repositories"
	"resto_staff_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, notifier services.Notifier, statuses services.StatusConfig) {
	// Initialize Repositories
	employeeRepo := repositories.NewEmployeeRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	statusRepo := repositories.NewStatusRepository(db)
	tableRepo := repositories.NewTableRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	cashRepo := repositories.NewCashRepository(db)
	txm := repositories.NewTxManager(db)

	// Initialize Services
	authService := services.NewAuthService(employeeRepo)
	staffService := services.NewStaffService(employeeRepo, txm)
	queueService := services.NewQueueService(employeeRepo, orderRepo, statusRepo, tableRepo)
	menuService := services.NewMenuService(menuRepo)
	actionService := services.NewOrderActionService(employeeRepo, orderRepo, statusRepo, tableRepo, menuRepo, cashRepo, txm, notifier, statuses)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	staffHandler := handlers.NewStaffHandler(staffService, authService)
	queueHandler := handlers.NewQueueHandler(queueService)
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(actionService)

	staff := engine.Group("/staff")

	// Session routes manage the cookie themselves and stay outside AuthMiddleware.
	SetupSessionRoutes(staff, authHandler, staffHandler)

	authenticated := staff.Group("/api")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupQueueRoutes(authenticated, queueHandler)
		SetupOrderRoutes(authenticated, orderHandler)
		SetupMenuRoutes(authenticated, menuHandler)
		SetupShiftRoutes(authenticated, staffHandler)
	}
}
