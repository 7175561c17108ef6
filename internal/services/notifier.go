package services

import "resto_staff_backend/internal/models"

// Notifier fans out order events to interested parties (admin channels,
// client channels, station displays). It is fire-and-forget: implementations
// must never fail the calling action, and the dispatcher only invokes it
// after the state mutation has been committed.
type Notifier interface {
	NotifyStatusChange(order *models.Order, oldStatus string, actor string)
	NotifyNewOrder(order *models.Order)
	NotifyStationCompletion(order *models.Order, station string)
}

// NopNotifier discards every notification. Used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) NotifyStatusChange(order *models.Order, oldStatus string, actor string) {}

func (NopNotifier) NotifyNewOrder(order *models.Order) {}

func (NopNotifier) NotifyStationCompletion(order *models.Order, station string) {}
