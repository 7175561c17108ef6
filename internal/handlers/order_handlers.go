package handlers

import (
	"errors"
	"net/http"

	"resto_staff_backend/internal/middleware"
	"resto_staff_backend/internal/services"
	"resto_staff_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order action service.
type OrderHandler struct {
	actionService services.OrderActionService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(as services.OrderActionService) *OrderHandler {
	return &OrderHandler{actionService: as}
}

func authenticatedEmployee(c *gin.Context) (int64, bool) {
	employeeID, ok := middleware.EmployeeID(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Employee not authenticated.", "Missing employee ID in context"))
	}
	return employeeID, ok
}

// respondActionError maps dispatcher errors to API errors.
func respondActionError(c *gin.Context, context string, err error) {
	utils.LogError(err, context)
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
	case errors.Is(err, services.ErrEmployeeNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", err.Error()))
	case errors.Is(err, services.ErrTableNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
	case errors.Is(err, services.ErrAlreadyAccepted):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeConflict, "Order already accepted.", err.Error()))
	case errors.Is(err, services.ErrOrderNotAccepted):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Order has not been accepted.", err.Error()))
	case errors.Is(err, services.ErrStatusNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Target status not found.", err.Error()))
	case errors.Is(err, services.ErrEmptyCart):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Cart has no resolvable items.", err.Error()))
	case errors.Is(err, services.ErrUnknownAction), errors.Is(err, services.ErrUnknownStation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Unknown action.", err.Error()))
	case errors.Is(err, services.ErrActionNotAllowed):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Role does not permit this action.", err.Error()))
	case errors.Is(err, services.ErrNoTerminalStatus):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "No terminal status configured.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Action failed.", "Internal error"))
	}
}

// HandleAction dispatches the generic action envelope.
func (h *OrderHandler) HandleAction(c *gin.Context) {
	employeeID, ok := authenticatedEmployee(c)
	if !ok {
		return
	}

	var req services.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "HandleAction: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.actionService.Dispatch(employeeID, req); err != nil {
		respondActionError(c, "HandleAction: Error from actionService.Dispatch", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ChangeStatus moves an order to an explicit status.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	employeeID, ok := authenticatedEmployee(c)
	if !ok {
		return
	}

	var req services.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "ChangeStatus: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.actionService.ChangeStatus(employeeID, req.OrderID, req.StatusID); err != nil {
		respondActionError(c, "ChangeStatus: Error from actionService.ChangeStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetOrderDetails returns the detail projection with status buttons.
func (h *OrderHandler) GetOrderDetails(c *gin.Context) {
	employeeID, ok := authenticatedEmployee(c)
	if !ok {
		return
	}

	orderID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order ID format.", err.Error()))
		return
	}

	details, err := h.actionService.OrderDetails(employeeID, orderID)
	if err != nil {
		respondActionError(c, "GetOrderDetails: Error from actionService.OrderDetails", err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// CreateOrder creates a dine-in order from a waiter's cart.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	employeeID, ok := authenticatedEmployee(c)
	if !ok {
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateOrder: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	orderID, err := h.actionService.CreateDineInOrder(employeeID, req)
	if err != nil {
		respondActionError(c, "CreateOrder: Error from actionService.CreateDineInOrder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orderId": orderID})
}

// GetTableOrders lists a table's active orders.
func (h *OrderHandler) GetTableOrders(c *gin.Context) {
	if _, ok := authenticatedEmployee(c); !ok {
		return
	}

	tableID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table ID format.", err.Error()))
		return
	}

	cards, err := h.actionService.TableOrders(tableID)
	if err != nil {
		respondActionError(c, "GetTableOrders: Error from actionService.TableOrders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": cards})
}
