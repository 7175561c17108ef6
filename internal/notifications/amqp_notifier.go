package notifications

import (
	"context"
	"encoding/json"
	"time"

	"resto_staff_backend/internal/models"
	"resto_staff_backend/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName   = "staff.events"
	publishTimeout = 5 * time.Second
)

// Routing keys per event kind.
const (
	keyStatusChanged     = "order.status_changed"
	keyOrderCreated      = "order.created"
	keyStationCompletion = "station.completed"
)

// orderEvent is the wire payload published for every notification.
type orderEvent struct {
	OrderID    int64     `json:"order_id"`
	Status     string    `json:"status,omitempty"`
	OldStatus  string    `json:"old_status,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	Station    string    `json:"station,omitempty"`
	TableID    *int64    `json:"table_id,omitempty"`
	TotalPrice float64   `json:"total_price,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AMQPNotifier publishes order events to a RabbitMQ topic exchange.
// It implements services.Notifier. Publishing is fire-and-forget: failures
// are logged and swallowed so a broker outage never blocks an order action.
type AMQPNotifier struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPNotifier dials the broker and declares the staff events exchange.
func NewAMQPNotifier(url string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	err = ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPNotifier{conn: conn, ch: ch}, nil
}

// Close releases the channel and connection.
func (n *AMQPNotifier) Close() {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		_ = n.conn.Close()
	}
}

func (n *AMQPNotifier) publish(routingKey string, event orderEvent) {
	event.OccurredAt = time.Now().UTC()
	body, err := json.Marshal(event)
	if err != nil {
		utils.LogError(err, "notifications: failed to marshal event "+routingKey)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = n.ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    utils.Int64ToStr(event.OrderID),
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		utils.LogError(err, "notifications: failed to publish event "+routingKey)
	}
}

func (n *AMQPNotifier) NotifyStatusChange(order *models.Order, oldStatus string, actor string) {
	event := orderEvent{
		OrderID:    order.ID,
		OldStatus:  oldStatus,
		Actor:      actor,
		TableID:    order.TableID,
		TotalPrice: order.TotalPrice,
	}
	if order.Status != nil {
		event.Status = order.Status.Name
	}
	n.publish(keyStatusChanged, event)
}

func (n *AMQPNotifier) NotifyNewOrder(order *models.Order) {
	event := orderEvent{
		OrderID:    order.ID,
		TableID:    order.TableID,
		TotalPrice: order.TotalPrice,
	}
	if order.Status != nil {
		event.Status = order.Status.Name
	}
	n.publish(keyOrderCreated, event)
}

func (n *AMQPNotifier) NotifyStationCompletion(order *models.Order, station string) {
	n.publish(keyStationCompletion, orderEvent{
		OrderID: order.ID,
		Station: station,
		TableID: order.TableID,
	})
}
