package models

import "testing"

func TestOrderItemForStation(t *testing.T) {
	tests := []struct {
		name    string
		area    string
		station string
		want    bool
	}{
		{name: "barItemGoesToBar", area: "bar", station: StationBar, want: true},
		{name: "barItemNotInKitchen", area: "bar", station: StationKitchen, want: false},
		{name: "kitchenItemGoesToKitchen", area: "kitchen", station: StationKitchen, want: true},
		{name: "unknownAreaDefaultsToKitchen", area: "grill", station: StationKitchen, want: true},
		{name: "unknownAreaNotInBar", area: "grill", station: StationBar, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &OrderItem{PreparationArea: tt.area}
			if got := item.ForStation(tt.station); got != tt.want {
				t.Errorf("ForStation(%q) with area %q = %v, want %v", tt.station, tt.area, got, tt.want)
			}
		})
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status OrderStatus
		want   bool
	}{
		{name: "completed", status: OrderStatus{IsCompleted: true}, want: true},
		{name: "cancelled", status: OrderStatus{IsCancelled: true}, want: true},
		{name: "active", status: OrderStatus{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}
