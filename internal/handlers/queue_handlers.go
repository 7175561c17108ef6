package handlers

import (
	"errors"
	"net/http"

	"resto_staff_backend/internal/middleware"
	"resto_staff_backend/internal/services"
	"resto_staff_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// QueueHandler holds the queue service.
type QueueHandler struct {
	queueService services.QueueService
}

// NewQueueHandler creates a new QueueHandler.
func NewQueueHandler(qs services.QueueService) *QueueHandler {
	return &QueueHandler{queueService: qs}
}

// GetData is the universal queue endpoint: returns the role-specific queue
// for the requested view.
func (h *QueueHandler) GetData(c *gin.Context) {
	employeeID, ok := middleware.EmployeeID(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Employee not authenticated.", "Missing employee ID in context"))
		return
	}

	view := c.DefaultQuery("view", services.ViewOrders)
	h.respondQueue(c, employeeID, view)
}

// GetOrders is the legacy alias that always returns the general orders queue.
func (h *QueueHandler) GetOrders(c *gin.Context) {
	employeeID, ok := middleware.EmployeeID(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Employee not authenticated.", "Missing employee ID in context"))
		return
	}
	h.respondQueue(c, employeeID, services.ViewOrders)
}

func (h *QueueHandler) respondQueue(c *gin.Context, employeeID int64, view string) {
	queue, err := h.queueService.Select(employeeID, view)
	if err != nil {
		utils.LogError(err, "GetData: Error from queueService.Select")
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch queue.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, queue)
}
