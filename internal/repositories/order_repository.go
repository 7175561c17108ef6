package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resto_staff_backend/internal/models"

	"github.com/lib/pq" // For pq.Error and pq.Array
)

// OrderRepository defines the interface for order-related database operations.
// Listing methods eagerly join the current status and table so callers never
// need per-field re-fetches.
type OrderRepository interface {
	GetByID(orderID int64) (*models.Order, error)
	GetWithItems(orderID int64) (*models.Order, error)

	// Queue listings
	ListProduction(statusIDs []int64, station string) ([]models.Order, error)
	ListForCourier(courierID int64) ([]models.Order, error)
	ListForWaiter(waiterID int64) ([]models.Order, error)
	ListActive(limit int) ([]models.Order, error)
	ListActiveByTable(tableID int64) ([]models.Order, error)
	CountActiveByTable(tableID int64) (int, error)

	// Mutations
	Create(executor SQLExecutor, order *models.Order) (int64, error)
	CreateItem(executor SQLExecutor, item *models.OrderItem) (int64, error)
	SetStationDone(executor SQLExecutor, orderID int64, station string) error
	AcceptOrder(executor SQLExecutor, orderID, waiterID int64) error
	UpdateStatus(executor SQLExecutor, orderID, statusID int64) error
	SetPayment(executor SQLExecutor, orderID, statusID int64, paymentMethod string) error
	AppendHistory(executor SQLExecutor, entry *models.OrderStatusHistory) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const joinedOrderSelect = `
	SELECT o.id, o.status_id, o.table_id, o.courier_id, o.accepted_by_waiter_id,
	       o.kitchen_done, o.bar_done, o.payment_method, o.total_price,
	       o.customer_name, o.phone_number, o.address, o.order_type, o.is_delivery,
	       o.delivery_time, o.created_at,
	       s.id, s.name, s.is_completed, s.is_cancelled,
	       s.visible_to_chef, s.visible_to_bartender, s.visible_to_waiter, s.visible_to_courier,
	       t.name AS table_name
	FROM orders o
	JOIN order_statuses s ON o.status_id = s.id
	LEFT JOIN tables t ON o.table_id = t.id`

const activeOrderCondition = `NOT s.is_completed AND NOT s.is_cancelled`

func scanJoinedOrder(s scanner) (*models.Order, error) {
	o := &models.Order{}
	status := &models.OrderStatus{}
	var tableName sql.NullString

	err := s.Scan(
		&o.ID, &o.StatusID, &o.TableID, &o.CourierID, &o.AcceptedByWaiterID,
		&o.KitchenDone, &o.BarDone, &o.PaymentMethod, &o.TotalPrice,
		&o.CustomerName, &o.PhoneNumber, &o.Address, &o.OrderType, &o.IsDelivery,
		&o.DeliveryTime, &o.CreatedAt,
		&status.ID, &status.Name, &status.IsCompleted, &status.IsCancelled,
		&status.VisibleToChef, &status.VisibleToBartender, &status.VisibleToWaiter, &status.VisibleToCourier,
		&tableName,
	)
	if err != nil {
		return nil, err
	}
	o.Status = status
	if o.TableID != nil {
		table := &models.Table{ID: *o.TableID}
		if tableName.Valid {
			table.Name = tableName.String
		}
		o.Table = table
	}
	return o, nil
}

func (r *orderRepository) queryOrders(query string, args ...interface{}) ([]models.Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanJoinedOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, *o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

// attachItems batch-loads the items of the given orders in a single query.
func (r *orderRepository) attachItems(orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	query := `
		SELECT id, order_id, product_id, product_name, quantity, price_at_moment, preparation_area
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id`
	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("%w: querying order items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	byOrder := make(map[int64][]models.OrderItem, len(orders))
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.PriceAtMoment, &item.PreparationArea)
		if err != nil {
			return fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: iterating order item rows: %v", ErrDatabaseError, err)
	}

	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return nil
}

func (r *orderRepository) GetByID(orderID int64) (*models.Order, error) {
	query := joinedOrderSelect + ` WHERE o.id = $1`
	o, err := scanJoinedOrder(r.db.QueryRow(query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return o, nil
}

func (r *orderRepository) GetWithItems(orderID int64) (*models.Order, error) {
	o, err := r.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	orders := []models.Order{*o}
	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// ListProduction returns orders visible to a production station that the
// station has not finished yet, oldest first to preserve FIFO preparation.
func (r *orderRepository) ListProduction(statusIDs []int64, station string) ([]models.Order, error) {
	if len(statusIDs) == 0 {
		return []models.Order{}, nil
	}
	doneColumn := "o.kitchen_done"
	if station == models.StationBar {
		doneColumn = "o.bar_done"
	}

	query := joinedOrderSelect + `
	WHERE o.status_id = ANY($1) AND ` + doneColumn + ` = FALSE
	ORDER BY o.id ASC`

	orders, err := r.queryOrders(query, pq.Array(statusIDs))
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ListForCourier(courierID int64) ([]models.Order, error) {
	query := joinedOrderSelect + `
	WHERE o.courier_id = $1 AND ` + activeOrderCondition + `
	ORDER BY o.id DESC`

	orders, err := r.queryOrders(query, courierID)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListForWaiter returns active orders either already accepted by the waiter
// or placed at one of the waiter's assigned tables. No result cap: the role
// filter already bounds the set.
func (r *orderRepository) ListForWaiter(waiterID int64) ([]models.Order, error) {
	query := joinedOrderSelect + `
	WHERE ` + activeOrderCondition + `
	  AND (o.accepted_by_waiter_id = $1
	       OR o.table_id IN (SELECT table_id FROM table_waiters WHERE employee_id = $1))
	ORDER BY o.id DESC`

	return r.queryOrders(query, waiterID)
}

func (r *orderRepository) ListActive(limit int) ([]models.Order, error) {
	query := joinedOrderSelect + `
	WHERE ` + activeOrderCondition + `
	ORDER BY o.id DESC
	LIMIT $1`

	return r.queryOrders(query, limit)
}

func (r *orderRepository) ListActiveByTable(tableID int64) ([]models.Order, error) {
	query := joinedOrderSelect + `
	WHERE o.table_id = $1 AND ` + activeOrderCondition + `
	ORDER BY o.id DESC`

	orders, err := r.queryOrders(query, tableID)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) CountActiveByTable(tableID int64) (int, error) {
	query := `
		SELECT COUNT(o.id)
		FROM orders o
		JOIN order_statuses s ON o.status_id = s.id
		WHERE o.table_id = $1 AND ` + activeOrderCondition
	var count int
	if err := r.db.QueryRow(query, tableID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting active orders for table ID %d: %v", ErrDatabaseError, tableID, err)
	}
	return count, nil
}

func (r *orderRepository) Create(executor SQLExecutor, order *models.Order) (int64, error) {
	query := `INSERT INTO orders
	            (status_id, table_id, courier_id, accepted_by_waiter_id,
	             kitchen_done, bar_done, payment_method, total_price,
	             customer_name, phone_number, address, order_type, is_delivery,
	             delivery_time, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id`

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		order.StatusID, order.TableID, order.CourierID, order.AcceptedByWaiterID,
		order.KitchenDone, order.BarDone, order.PaymentMethod, order.TotalPrice,
		order.CustomerName, order.PhoneNumber, order.Address, order.OrderType, order.IsDelivery,
		order.DeliveryTime, order.CreatedAt,
	).Scan(&order.ID)

	if err != nil {
		return 0, fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

func (r *orderRepository) CreateItem(executor SQLExecutor, item *models.OrderItem) (int64, error) {
	query := `INSERT INTO order_items
	            (order_id, product_id, product_name, quantity, price_at_moment, preparation_area)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	err := executor.QueryRow(query,
		item.OrderID, item.ProductID, item.ProductName, item.Quantity,
		item.PriceAtMoment, item.PreparationArea,
	).Scan(&item.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, fmt.Errorf("%w: creating order item (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return 0, fmt.Errorf("%w: creating order item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *orderRepository) SetStationDone(executor SQLExecutor, orderID int64, station string) error {
	column := "kitchen_done"
	if station == models.StationBar {
		column = "bar_done"
	}
	query := `UPDATE orders SET ` + column + ` = TRUE WHERE id = $1`
	result, err := executor.Exec(query, orderID)
	if err != nil {
		return fmt.Errorf("%w: marking %s done for order ID %d: %v", ErrDatabaseError, station, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for station flag update ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AcceptOrder assigns the waiter only if nobody has claimed the order yet.
// The precondition is re-validated at write time, so a lost race surfaces
// as zero affected rows.
func (r *orderRepository) AcceptOrder(executor SQLExecutor, orderID, waiterID int64) error {
	query := `UPDATE orders SET accepted_by_waiter_id = $1
	          WHERE id = $2 AND accepted_by_waiter_id IS NULL`
	result, err := executor.Exec(query, waiterID, orderID)
	if err != nil {
		return fmt.Errorf("%w: accepting order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for order accept ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) UpdateStatus(executor SQLExecutor, orderID, statusID int64) error {
	query := `UPDATE orders SET status_id = $1 WHERE id = $2`
	result, err := executor.Exec(query, statusID, orderID)
	if err != nil {
		return fmt.Errorf("%w: updating status for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for order status update ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) SetPayment(executor SQLExecutor, orderID, statusID int64, paymentMethod string) error {
	query := `UPDATE orders SET status_id = $1, payment_method = $2 WHERE id = $3`
	result, err := executor.Exec(query, statusID, paymentMethod, orderID)
	if err != nil {
		return fmt.Errorf("%w: recording payment for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for payment update ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) AppendHistory(executor SQLExecutor, entry *models.OrderStatusHistory) error {
	query := `INSERT INTO order_status_history (order_id, status_id, actor_info, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	err := executor.QueryRow(query, entry.OrderID, entry.StatusID, entry.ActorInfo, entry.CreatedAt).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("%w: appending status history for order ID %d: %v", ErrDatabaseError, entry.OrderID, err)
	}
	return nil
}
