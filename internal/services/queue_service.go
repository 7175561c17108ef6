package services

import (
	"errors"
	"fmt"
	"time"

	"resto_staff_backend/internal/models"
	"resto_staff_backend/internal/repositories"
)

// Queue view modes.
const (
	ViewTables     = "tables"
	ViewProduction = "production"
	ViewDelivery   = "delivery"
	ViewOrders     = "orders"
)

// generalQueueLimit caps the unrestricted general listing. Role-filtered
// listings are already bounded and carry no cap.
const generalQueueLimit = 30

// Card action names understood by the client.
const (
	ActionStationReady = "chef_ready"
	ActionAcceptOrder  = "accept_order"
	ActionOpenDetails  = "open_details"
)

// CardAction is the single affordance attached to an order card.
type CardAction struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Extra string `json:"extra,omitempty"`
}

// OrderCard is the structured projection of an order for a role-specific
// queue: fixed header (id, creation time), role-specific body lines and one
// action affordance.
type OrderCard struct {
	ID         int64      `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	Title      string     `json:"title"`
	Lines      []string   `json:"lines"`
	Status     string     `json:"status,omitempty"`
	TotalPrice float64    `json:"total_price,omitempty"`
	Action     CardAction `json:"action"`
}

// TableCard annotates a waiter's table with its active-order load.
type TableCard struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ActiveOrders int    `json:"active_orders"`
	Free         bool   `json:"free"`
}

// QueueResponse is the payload of the universal data endpoint.
type QueueResponse struct {
	View   string      `json:"view"`
	Tables []TableCard `json:"tables,omitempty"`
	Orders []OrderCard `json:"orders"`
}

// QueueService derives role-specific work queues. Read-only.
type QueueService interface {
	// Select returns the queue for the requested view. A view the
	// employee's role does not permit yields an empty queue, not an error.
	Select(employeeID int64, view string) (*QueueResponse, error)
}

type queueService struct {
	employeeRepo repositories.EmployeeRepository
	orderRepo    repositories.OrderRepository
	statusRepo   repositories.StatusRepository
	tableRepo    repositories.TableRepository
}

// NewQueueService creates a new instance of QueueService.
func NewQueueService(
	er repositories.EmployeeRepository,
	or repositories.OrderRepository,
	sr repositories.StatusRepository,
	tr repositories.TableRepository,
) QueueService {
	return &queueService{
		employeeRepo: er,
		orderRepo:    or,
		statusRepo:   sr,
		tableRepo:    tr,
	}
}

func (s *queueService) Select(employeeID int64, view string) (*QueueResponse, error) {
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to fetch employee for queue selection: %w", err)
	}

	resp := &QueueResponse{View: view, Orders: []OrderCard{}}
	role := employee.Role

	switch view {
	case ViewTables:
		if !role.CanServeTables {
			return resp, nil
		}
		tables, err := s.tableCards(employee)
		if err != nil {
			return nil, err
		}
		resp.Tables = tables
	case ViewProduction:
		cards, err := s.productionCards(role)
		if err != nil {
			return nil, err
		}
		resp.Orders = cards
	case ViewDelivery:
		if !role.CanBeAssigned {
			return resp, nil
		}
		cards, err := s.deliveryCards(employee)
		if err != nil {
			return nil, err
		}
		resp.Orders = cards
	case ViewOrders:
		cards, err := s.generalCards(employee)
		if err != nil {
			return nil, err
		}
		resp.Orders = cards
	}
	// Unknown views fall through to the empty response.
	return resp, nil
}

func (s *queueService) tableCards(employee *models.Employee) ([]TableCard, error) {
	tables, err := s.tableRepo.ListByWaiter(employee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables for employee ID %d: %w", employee.ID, err)
	}

	cards := make([]TableCard, 0, len(tables))
	for _, t := range tables {
		count, err := s.orderRepo.CountActiveByTable(t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count active orders for table ID %d: %w", t.ID, err)
		}
		cards = append(cards, TableCard{ID: t.ID, Name: t.Name, ActiveOrders: count, Free: count == 0})
	}
	return cards, nil
}

// productionCards builds the kitchen and bar queues. An employee with both
// capabilities receives both groups concatenated, kitchen first. Orders with
// no items for the station after area filtering are excluded.
func (s *queueService) productionCards(role *models.Role) ([]OrderCard, error) {
	cards := []OrderCard{}
	if role.CanReceiveKitchenOrders {
		station, err := s.stationCards(models.FacetChef, models.StationKitchen)
		if err != nil {
			return nil, err
		}
		cards = append(cards, station...)
	}
	if role.CanReceiveBarOrders {
		station, err := s.stationCards(models.FacetBartender, models.StationBar)
		if err != nil {
			return nil, err
		}
		cards = append(cards, station...)
	}
	return cards, nil
}

func (s *queueService) stationCards(facet models.StatusFacet, station string) ([]OrderCard, error) {
	statuses, err := s.statusRepo.ListVisible(facet)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s-visible statuses: %w", facet, err)
	}
	statusIDs := make([]int64, 0, len(statuses))
	for _, st := range statuses {
		statusIDs = append(statusIDs, st.ID)
	}

	orders, err := s.orderRepo.ListProduction(statusIDs, station)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s production queue: %w", station, err)
	}

	cards := []OrderCard{}
	for i := range orders {
		o := &orders[i]
		lines := []string{}
		for _, item := range o.Items {
			if item.ForStation(station) {
				lines = append(lines, fmt.Sprintf("%s x%d", item.ProductName, item.Quantity))
			}
		}
		if len(lines) == 0 {
			continue
		}
		cards = append(cards, OrderCard{
			ID:        o.ID,
			CreatedAt: o.CreatedAt,
			Title:     orderTarget(o),
			Lines:     lines,
			Status:    statusName(o),
			Action:    CardAction{Name: ActionStationReady, Label: "Ready", Extra: station},
		})
	}
	return cards, nil
}

func (s *queueService) deliveryCards(employee *models.Employee) ([]OrderCard, error) {
	orders, err := s.orderRepo.ListForCourier(employee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courier queue for employee ID %d: %w", employee.ID, err)
	}

	cards := make([]OrderCard, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		lines := []string{}
		if o.Address != nil && *o.Address != "" {
			lines = append(lines, "Address: "+*o.Address)
		}
		if o.PhoneNumber != nil && *o.PhoneNumber != "" {
			lines = append(lines, "Phone: "+*o.PhoneNumber)
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

// generalCards lists active orders. Table-serving employees see only orders
// they accepted or orders at their assigned tables; everyone else gets the
// most recent slice of the general active set.
func (s *queueService) generalCards(employee *models.Employee) ([]OrderCard, error) {
	var orders []models.Order
	var err error
	if employee.Role.CanServeTables {
		orders, err = s.orderRepo.ListForWaiter(employee.ID)
	} else {
		orders, err = s.orderRepo.ListActive(generalQueueLimit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list general queue for employee ID %d: %w", employee.ID, err)
	}

	cards := make([]OrderCard, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		action := CardAction{Name: ActionOpenDetails, Label: "Details"}
		if o.AcceptedByWaiterID == nil && o.OrderType == models.OrderTypeInHouse && employee.Role.CanServeTables {
			action = CardAction{Name: ActionAcceptOrder, Label: "Accept"}
		}
		cards = append(cards, OrderCard{
			ID:         o.ID,
			CreatedAt:  o.CreatedAt,
			Title:      orderTarget(o),
			Lines:      []string{},
			Status:     statusName(o),
			TotalPrice: o.TotalPrice,
			Action:     action,
		})
	}
	return cards, nil
}

// orderTarget names where the order goes: its table, delivery or pickup.
func orderTarget(o *models.Order) string {
	if o.Table != nil && o.Table.Name != "" {
		return o.Table.Name
	}
	if o.IsDelivery {
		return "Delivery"
	}
	return "Pickup"
}

func statusName(o *models.Order) string {
	if o.Status != nil {
		return o.Status.Name
	}
	return ""
}
