package entity

import (
	"time"
)

// Order statuses as the backend reports them.
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

type OrderItem struct {
	ProductName string  `json:"product_name"`
	Qty         int     `json:"qty"`
	UnitJOD     float64 `json:"unit_jod,omitempty"`
}

type StatusChange struct {
	To     string    `json:"to"`
	ByName string    `json:"by_name"`
	At     time.Time `json:"at"`
}

// CustomerDetails carries the credentials a buyer supplied for manual
// delivery (existing_account / new_account product types).
type CustomerDetails struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type Order struct {
	ID            string           `json:"id"`
	OrderNumber   string           `json:"order_number"`
	Status        string           `json:"status"` // pending, paid, processing, delivered, cancelled, refunded
	Items         []OrderItem      `json:"items"`
	TotalJOD      float64          `json:"total_jod"`
	UserName      string           `json:"user_name,omitempty"`
	UserEmail     string           `json:"user_email,omitempty"`
	StatusHistory []StatusChange   `json:"status_history,omitempty"`
	Customer      *CustomerDetails `json:"customer_details,omitempty"`
	ProductType   string           `json:"product_type,omitempty"` // digital_code, existing_account, new_account
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
