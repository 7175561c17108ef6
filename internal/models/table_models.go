package models

// Table is a named dine-in location. Visibility is scoped through the
// table_waiters many-to-many assignment.
type Table struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
