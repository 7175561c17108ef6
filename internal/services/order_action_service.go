package services

import (
	"errors"
	"fmt"

	"resto_staff_backend/internal/models"
	"resto_staff_backend/internal/repositories"
	"resto_staff_backend/pkg/utils"
)

// Custom Errors
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrStatusNotFound    = errors.New("order status not found")
	ErrTableNotFound     = errors.New("table not found")
	ErrAlreadyAccepted   = errors.New("order already accepted by another waiter")
	ErrOrderNotAccepted  = errors.New("order has not been accepted")
	ErrEmptyCart         = errors.New("cart has no resolvable items")
	ErrNoTerminalStatus  = errors.New("no terminal status configured")
	ErrActionNotAllowed  = errors.New("role does not permit this action")
	ErrUnknownAction     = errors.New("unknown action")
	ErrUnknownStation    = errors.New("unknown production station")
)

// Payment methods.
const PaymentCash = "cash"

// Dispatcher action names (the card actions plus pay).
const ActionPayOrder = "pay_order"

// StatusConfig names the canonical statuses resolved at action time.
// Operators define arbitrary status sets, so these are configuration,
// not code.
type StatusConfig struct {
	// New is assigned to freshly created dine-in orders.
	New string
	// Processing is assigned when a waiter accepts an order. Optional:
	// when absent, accept still records the waiter without a transition.
	Processing string
}

// DefaultStatusConfig mirrors the status names the seed data ships with.
func DefaultStatusConfig() StatusConfig {
	return StatusConfig{New: "new", Processing: "processing"}
}

// --- Data Transfer Objects (DTOs) ---

// ActionRequest is the generic action envelope of the staff app.
type ActionRequest struct {
	Action  string `json:"action" binding:"required"`
	OrderID int64  `json:"orderId" binding:"required"`
	Extra   string `json:"extra"`
}

// ChangeStatusRequest moves an order to an explicit status.
type ChangeStatusRequest struct {
	OrderID  int64 `json:"orderId" binding:"required"`
	StatusID int64 `json:"statusId" binding:"required"`
}

// CartItem references a product and a requested quantity.
type CartItem struct {
	ProductID int64 `json:"id"`
	Quantity  int   `json:"qty"`
}

// CreateOrderRequest creates a dine-in order for a table.
type CreateOrderRequest struct {
	TableID int64      `json:"tableId" binding:"required"`
	Cart    []CartItem `json:"cart" binding:"required"`
}

// StatusOption is a status button offered in the details view.
type StatusOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderDetails is the detail projection with the role's legal transitions.
type OrderDetails struct {
	Order             *models.Order  `json:"order"`
	AvailableStatuses []StatusOption `json:"available_statuses"`
}

// OrderActionService validates and applies the state-changing actions of the
// staff app. Every action is one transaction (mutation + audit append);
// notifications go out only after the commit and never fail the action.
type OrderActionService interface {
	Dispatch(employeeID int64, req ActionRequest) error
	ChangeStatus(employeeID, orderID, statusID int64) error
	CreateDineInOrder(employeeID int64, req CreateOrderRequest) (int64, error)
	OrderDetails(employeeID, orderID int64) (*OrderDetails, error)
	TableOrders(tableID int64) ([]OrderCard, error)
}

type orderActionService struct {
	employeeRepo repositories.EmployeeRepository
	orderRepo    repositories.OrderRepository
	statusRepo   repositories.StatusRepository
	tableRepo    repositories.TableRepository
	menuRepo     repositories.MenuRepository
	cashRepo     repositories.CashRepository
	txm          repositories.TxManager
	notifier     Notifier
	statuses     StatusConfig
}

// NewOrderActionService creates a new instance of OrderActionService.
func NewOrderActionService(
	er repositories.EmployeeRepository,
	or repositories.OrderRepository,
	sr repositories.StatusRepository,
	tr repositories.TableRepository,
	mr repositories.MenuRepository,
	cr repositories.CashRepository,
	txm repositories.TxManager,
	notifier Notifier,
	statuses StatusConfig,
) OrderActionService {
	return &orderActionService{
		employeeRepo: er,
		orderRepo:    or,
		statusRepo:   sr,
		tableRepo:    tr,
		menuRepo:     mr,
		cashRepo:     cr,
		txm:          txm,
		notifier:     notifier,
		statuses:     statuses,
	}
}

func (s *orderActionService) employee(employeeID int64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to fetch acting employee: %w", err)
	}
	return employee, nil
}

func (s *orderActionService) Dispatch(employeeID int64, req ActionRequest) error {
	employee, err := s.employee(employeeID)
	if err != nil {
		return err
	}

	switch req.Action {
	case ActionStationReady:
		return s.stationReady(employee, req.OrderID, req.Extra)
	case ActionAcceptOrder:
		return s.acceptOrder(employee, req.OrderID)
	case ActionPayOrder:
		return s.payOrder(employee, req.OrderID, req.Extra)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
}

// stationReady marks a production station's portion of an order finished.
// The station flag is orthogonal to the order status.
func (s *orderActionService) stationReady(employee *models.Employee, orderID int64, station string) error {
	switch station {
	case models.StationKitchen:
		if !employee.Role.CanReceiveKitchenOrders {
			return ErrActionNotAllowed
		}
	case models.StationBar:
		if !employee.Role.CanReceiveBarOrders {
			return ErrActionNotAllowed
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStation, station)
	}

	err := s.txm.WithinTx(func(tx repositories.SQLExecutor) error {
		return s.orderRepo.SetStationDone(tx, orderID, station)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to mark %s done for order ID %d: %w", station, orderID, err)
	}

	if order, err := s.orderRepo.GetByID(orderID); err == nil {
		s.notifier.NotifyStationCompletion(order, station)
	}
	return nil
}

// acceptOrder claims an order for a waiter. The unset-waiter precondition is
// re-validated at write time; losing the race is a legitimate outcome and is
// reported as ErrAlreadyAccepted.
func (s *orderActionService) acceptOrder(employee *models.Employee, orderID int64) error {
	if !employee.Role.CanServeTables {
		return ErrActionNotAllowed
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to fetch order for accept: %w", err)
	}
	if order.AcceptedByWaiterID != nil {
		return ErrAlreadyAccepted
	}
	oldStatus := statusName(order)

	var processing *models.OrderStatus
	if s.statuses.Processing != "" {
		processing, err = s.statusRepo.GetByName(s.statuses.Processing)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to resolve processing status: %w", err)
		}
	}

	err = s.txm.WithinTx(func(tx repositories.SQLExecutor) error {
		if err := s.orderRepo.AcceptOrder(tx, orderID, employee.ID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				// The order existed above, so a concurrent accept won.
				return ErrAlreadyAccepted
			}
			return err
		}
		if processing != nil {
			if err := s.orderRepo.UpdateStatus(tx, orderID, processing.ID); err != nil {
				return err
			}
			return s.orderRepo.AppendHistory(tx, &models.OrderStatusHistory{
				OrderID:   orderID,
				StatusID:  processing.ID,
				ActorInfo: employee.FullName,
			})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyAccepted) {
			return err
		}
		return fmt.Errorf("failed to accept order ID %d: %w", orderID, err)
	}

	if updated, err := s.orderRepo.GetByID(orderID); err == nil {
		s.notifier.NotifyStatusChange(updated, oldStatus, employee.FullName+" (App)")
	}
	return nil
}

// payOrder settles an accepted order: moves it to the canonical terminal
// status, records the payment method, links the order to the employee's
// shift and, for cash, registers the employee's debt to the register.
func (s *orderActionService) payOrder(employee *models.Employee, orderID int64, paymentMethod string) error {
	if !employee.Role.CanServeTables {
		return ErrActionNotAllowed
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to fetch order for payment: %w", err)
	}
	if order.AcceptedByWaiterID == nil {
		return ErrOrderNotAccepted
	}
	oldStatus := statusName(order)

	terminal, err := s.statusRepo.GetTerminal()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNoTerminalStatus
		}
		return fmt.Errorf("failed to resolve terminal status: %w", err)
	}

	err = s.txm.WithinTx(func(tx repositories.SQLExecutor) error {
		if err := s.orderRepo.SetPayment(tx, orderID, terminal.ID, paymentMethod); err != nil {
			return err
		}
		if err := s.cashRepo.LinkOrderToShift(tx, orderID, employee.ID); err != nil {
			return err
		}
		if paymentMethod == PaymentCash {
			if err := s.cashRepo.RegisterEmployeeDebt(tx, orderID, employee.ID, order.TotalPrice); err != nil {
				return err
			}
		}
		return s.orderRepo.AppendHistory(tx, &models.OrderStatusHistory{
			OrderID:   orderID,
			StatusID:  terminal.ID,
			ActorInfo: actorLabel(employee),
		})
	})
	if err != nil {
		return fmt.Errorf("failed to pay order ID %d: %w", orderID, err)
	}

	if updated, err := s.orderRepo.GetByID(orderID); err == nil {
		s.notifier.NotifyStatusChange(updated, oldStatus, actorLabel(employee)+" (App)")
	}
	return nil
}

// ChangeStatus moves an order to an explicit status. The target must be
// visible to the actor's facet; a terminal target triggers the cash-shift
// side effects.
func (s *orderActionService) ChangeStatus(employeeID, orderID, statusID int64) error {
	employee, err := s.employee(employeeID)
	if err != nil {
		return err
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to fetch order for status change: %w", err)
	}
	oldStatus := statusName(order)

	newStatus, err := s.statusRepo.GetByID(statusID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStatusNotFound
		}
		return fmt.Errorf("failed to fetch target status: %w", err)
	}

	role := employee.Role
	switch {
	case role.CanBeAssigned:
		if !newStatus.VisibleToCourier {
			return ErrActionNotAllowed
		}
	case role.CanServeTables:
		if !newStatus.VisibleToWaiter {
			return ErrActionNotAllowed
		}
	default:
		return ErrActionNotAllowed
	}

	err = s.txm.WithinTx(func(tx repositories.SQLExecutor) error {
		if err := s.orderRepo.UpdateStatus(tx, orderID, statusID); err != nil {
			return err
		}
		if newStatus.IsTerminal() {
			if err := s.cashRepo.LinkOrderToShift(tx, orderID, employee.ID); err != nil {
				return err
			}
			if order.PaymentMethod != nil && *order.PaymentMethod == PaymentCash {
				if err := s.cashRepo.RegisterEmployeeDebt(tx, orderID, employee.ID, order.TotalPrice); err != nil {
					return err
				}
			}
		}
		return s.orderRepo.AppendHistory(tx, &models.OrderStatusHistory{
			OrderID:   orderID,
			StatusID:  statusID,
			ActorInfo: actorLabel(employee),
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to change status of order ID %d: %w", orderID, err)
	}

	if updated, err := s.orderRepo.GetByID(orderID); err == nil {
		roleName := ""
		if employee.Role != nil {
			roleName = employee.Role.Name
		}
		s.notifier.NotifyStatusChange(updated, oldStatus, roleName+" (App)")
	}
	return nil
}

// CreateDineInOrder creates an in-house order from a waiter's cart. Cart
// entries with unresolved product ids or non-positive quantities are dropped;
// the total is the sum of current product prices times quantities over the
// effective cart, snapshotted into the items.
func (s *orderActionService) CreateDineInOrder(employeeID int64, req CreateOrderRequest) (int64, error) {
	employee, err := s.employee(employeeID)
	if err != nil {
		return 0, err
	}
	if !employee.Role.CanServeTables {
		return 0, ErrActionNotAllowed
	}

	table, err := s.tableRepo.GetByID(req.TableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrTableNotFound
		}
		return 0, fmt.Errorf("failed to fetch table for order creation: %w", err)
	}

	productIDs := make([]int64, 0, len(req.Cart))
	for _, item := range req.Cart {
		if item.Quantity > 0 {
			productIDs = append(productIDs, item.ProductID)
		}
	}
	products, err := s.menuRepo.GetProductsByIDs(productIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve cart products: %w", err)
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Cart))
	for _, cartItem := range req.Cart {
		if cartItem.Quantity <= 0 {
			continue
		}
		product, ok := products[cartItem.ProductID]
		if !ok {
			continue
		}
		total += product.Price * float64(cartItem.Quantity)
		items = append(items, models.OrderItem{
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        cartItem.Quantity,
			PriceAtMoment:   product.Price,
			PreparationArea: product.PreparationArea,
		})
	}
	if len(items) == 0 {
		return 0, ErrEmptyCart
	}

	statusID := int64(1)
	if st, err := s.statusRepo.GetByName(s.statuses.New); err == nil {
		statusID = st.ID
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return 0, fmt.Errorf("failed to resolve initial status: %w", err)
	}

	order := models.Order{
		StatusID:           statusID,
		TableID:            &table.ID,
		AcceptedByWaiterID: &employee.ID,
		TotalPrice:         total,
		CustomerName:       utils.NewNullString("Table: " + table.Name),
		PhoneNumber:        utils.NewNullString(fmt.Sprintf("table_%d", table.ID)),
		OrderType:          models.OrderTypeInHouse,
		IsDelivery:         false,
		DeliveryTime:       utils.NewNullString("In House"),
	}

	err = s.txm.WithinTx(func(tx repositories.SQLExecutor) error {
		orderID, err := s.orderRepo.Create(tx, &order)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = orderID
			if _, err := s.orderRepo.CreateItem(tx, &items[i]); err != nil {
				return err
			}
		}
		return s.orderRepo.AppendHistory(tx, &models.OrderStatusHistory{
			OrderID:   orderID,
			StatusID:  statusID,
			ActorInfo: employee.FullName,
		})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create dine-in order: %w", err)
	}

	if created, err := s.orderRepo.GetWithItems(order.ID); err == nil {
		s.notifier.NotifyNewOrder(created)
	}
	return order.ID, nil
}

// OrderDetails returns the detail projection plus the status transitions the
// employee's role is offered.
func (s *orderActionService) OrderDetails(employeeID, orderID int64) (*OrderDetails, error) {
	employee, err := s.employee(employeeID)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetWithItems(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order details: %w", err)
	}

	var facet models.StatusFacet
	switch {
	case employee.Role.CanBeAssigned:
		facet = models.FacetCourier
	case employee.Role.CanServeTables:
		facet = models.FacetWaiter
	}

	options := []StatusOption{}
	if facet != "" {
		statuses, err := s.statusRepo.ListVisible(facet)
		if err != nil {
			return nil, fmt.Errorf("failed to list status options: %w", err)
		}
		for _, st := range statuses {
			options = append(options, StatusOption{ID: st.ID, Name: st.Name})
		}
	}

	return &OrderDetails{Order: order, AvailableStatuses: options}, nil
}

// TableOrders lists a table's active orders as detail cards.
func (s *orderActionService) TableOrders(tableID int64) ([]OrderCard, error) {
	if _, err := s.tableRepo.GetByID(tableID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to fetch table: %w", err)
	}

	orders, err := s.orderRepo.ListActiveByTable(tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active orders for table ID %d: %w", tableID, err)
	}

	cards := make([]OrderCard, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		lines := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			lines = append(lines, fmt.Sprintf("%s x%d", item.ProductName, item.Quantity))
		}
		cards = append(cards, OrderCard{
			ID:         o.ID,
			CreatedAt:  o.CreatedAt,
			Title:      orderTarget(o),
			Lines:      lines,
			Status:     statusName(o),
			TotalPrice: o.TotalPrice,
			Action:     CardAction{Name: ActionOpenDetails, Label: "Details"},
		})
	}
	return cards, nil
}

// actorLabel is the audit label written to the status history.
func actorLabel(employee *models.Employee) string {
	if employee.Role != nil {
		return employee.Role.Name + ": " + employee.FullName
	}
	return employee.FullName
}
