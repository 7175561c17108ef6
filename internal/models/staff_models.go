package models

// Role is a named bundle of boolean capabilities shared by many employees.
// Any combination of flags is valid; an employee can be both chef- and
// bartender-capable.
type Role struct {
	ID                      int64  `json:"id" db:"id"`
	Name                    string `json:"name" db:"name"`
	CanServeTables          bool   `json:"can_serve_tables" db:"can_serve_tables"`
	CanReceiveKitchenOrders bool   `json:"can_receive_kitchen_orders" db:"can_receive_kitchen_orders"`
	CanReceiveBarOrders     bool   `json:"can_receive_bar_orders" db:"can_receive_bar_orders"`
	CanBeAssigned           bool   `json:"can_be_assigned" db:"can_be_assigned"`
}

// Employee represents a staff member who can log into the app.
type Employee struct {
	ID           int64   `json:"id" db:"id"`
	FullName     string  `json:"full_name" db:"full_name"`
	PhoneNumber  string  `json:"phone_number" db:"phone_number"`
	PasswordHash *string `json:"-" db:"password_hash"` // nil until a password is set
	RoleID       int64   `json:"role_id" db:"role_id"`
	IsOnShift    bool    `json:"is_on_shift" db:"is_on_shift"`
	Role         *Role   `json:"role,omitempty"` // For joining with Role details
}
