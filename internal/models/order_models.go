package models

import "time"

// Order type values.
const (
	OrderTypeInHouse  = "in_house"
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

// Production stations. An item whose preparation area equals AreaBar is
// routed to the bar queue; every other area goes to the kitchen queue.
const (
	StationKitchen = "kitchen"
	StationBar     = "bar"

	AreaBar = "bar"
)

// OrderStatus is an operator-defined status row. The boolean facets drive
// both queue membership and which status buttons each role is offered.
type OrderStatus struct {
	ID                 int64  `json:"id" db:"id"`
	Name               string `json:"name" db:"name"`
	IsCompleted        bool   `json:"is_completed" db:"is_completed"`
	IsCancelled        bool   `json:"is_cancelled" db:"is_cancelled"`
	VisibleToChef      bool   `json:"visible_to_chef" db:"visible_to_chef"`
	VisibleToBartender bool   `json:"visible_to_bartender" db:"visible_to_bartender"`
	VisibleToWaiter    bool   `json:"visible_to_waiter" db:"visible_to_waiter"`
	VisibleToCourier   bool   `json:"visible_to_courier" db:"visible_to_courier"`
}

// IsTerminal reports whether the status excludes an order from active queues.
func (s *OrderStatus) IsTerminal() bool {
	return s.IsCompleted || s.IsCancelled
}

// StatusFacet selects one of the per-role visibility columns of OrderStatus.
type StatusFacet string

const (
	FacetChef      StatusFacet = "chef"
	FacetBartender StatusFacet = "bartender"
	FacetWaiter    StatusFacet = "waiter"
	FacetCourier   StatusFacet = "courier"
)

// Order is the central mutable aggregate.
type Order struct {
	ID                 int64        `json:"id" db:"id"`
	StatusID           int64        `json:"status_id" db:"status_id"`
	TableID            *int64       `json:"table_id,omitempty" db:"table_id"`
	CourierID          *int64       `json:"courier_id,omitempty" db:"courier_id"`
	AcceptedByWaiterID *int64       `json:"accepted_by_waiter_id,omitempty" db:"accepted_by_waiter_id"`
	KitchenDone        bool         `json:"kitchen_done" db:"kitchen_done"`
	BarDone            bool         `json:"bar_done" db:"bar_done"`
	PaymentMethod      *string      `json:"payment_method,omitempty" db:"payment_method"`
	TotalPrice         float64      `json:"total_price" db:"total_price"`
	CustomerName       *string      `json:"customer_name,omitempty" db:"customer_name"`
	PhoneNumber        *string      `json:"phone_number,omitempty" db:"phone_number"`
	Address            *string      `json:"address,omitempty" db:"address"`
	OrderType          string       `json:"order_type" db:"order_type"`
	IsDelivery         bool         `json:"is_delivery" db:"is_delivery"`
	DeliveryTime       *string      `json:"delivery_time,omitempty" db:"delivery_time"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
	Status             *OrderStatus `json:"status,omitempty"` // For joining with OrderStatus details
	Table              *Table       `json:"table,omitempty"`  // For joining with Table details
	Items              []OrderItem  `json:"items,omitempty"`
}

// OrderItem is an immutable snapshot taken at order-creation time.
// Quantity and PriceAtMoment never change afterwards.
type OrderItem struct {
	ID              int64   `json:"id" db:"id"`
	OrderID         int64   `json:"order_id" db:"order_id"`
	ProductID       int64   `json:"product_id" db:"product_id"`
	ProductName     string  `json:"product_name" db:"product_name"`
	Quantity        int     `json:"quantity" db:"quantity"`
	PriceAtMoment   float64 `json:"price_at_moment" db:"price_at_moment"`
	PreparationArea string  `json:"preparation_area" db:"preparation_area"`
}

// ForStation reports whether the item belongs to the given production
// station. Every item with a set area lands in exactly one station.
func (i *OrderItem) ForStation(station string) bool {
	if station == StationBar {
		return i.PreparationArea == AreaBar
	}
	return i.PreparationArea != AreaBar
}

// OrderStatusHistory is an append-only audit entry; this backend only
// writes it, never reads it back.
type OrderStatusHistory struct {
	ID        int64     `json:"id" db:"id"`
	OrderID   int64     `json:"order_id" db:"order_id"`
	StatusID  int64     `json:"status_id" db:"status_id"`
	ActorInfo string    `json:"actor_info" db:"actor_info"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
