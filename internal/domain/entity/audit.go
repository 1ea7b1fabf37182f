package entity

import (
	"time"
)

// AuditLog entries are immutable; the client lists them and nothing else.
type AuditLog struct {
	ID       string                 `json:"id"`
	Action   string                 `json:"action"`
	UserName string                 `json:"user_name"`
	UserRole string                 `json:"user_role"`
	Changes  map[string]interface{} `json:"changes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type AnalyticsOverview struct {
	TotalOrders     int     `json:"total_orders"`
	TotalRevenueJOD float64 `json:"total_revenue_jod"`
	TotalUsers      int     `json:"total_users"`
	OpenDisputes    int     `json:"open_disputes"`
	ActiveProducts  int     `json:"active_products"`

	TopProducts []TopProduct `json:"top_products,omitempty"`
}

type TopProduct struct {
	ProductName string  `json:"product_name"`
	SoldCount   int     `json:"sold_count"`
	RevenueJOD  float64 `json:"revenue_jod"`
}
