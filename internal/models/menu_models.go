package models

// Category groups menu products. Read-only from this backend's perspective.
type Category struct {
	ID               int64  `json:"id" db:"id"`
	Name             string `json:"name" db:"name"`
	SortOrder        int    `json:"sort_order" db:"sort_order"`
	ShowInRestaurant bool   `json:"show_in_restaurant" db:"show_in_restaurant"`
}

// Product is a sellable menu position. Its current price is snapshotted
// into OrderItem.PriceAtMoment at order creation.
type Product struct {
	ID              int64   `json:"id" db:"id"`
	CategoryID      int64   `json:"category_id" db:"category_id"`
	Name            string  `json:"name" db:"name"`
	Price           float64 `json:"price" db:"price"`
	IsActive        bool    `json:"is_active" db:"is_active"`
	PreparationArea string  `json:"preparation_area" db:"preparation_area"`
}
