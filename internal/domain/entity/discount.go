package entity

import (
	"time"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

type Discount struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`          // unique, stored upper-cased
	DiscountType  string  `json:"discount_type"` // percentage, fixed
	DiscountValue float64 `json:"discount_value"`
	MinPurchase   float64 `json:"min_purchase,omitempty"`
	// nil means unlimited uses.
	MaxUses *int `json:"max_uses"`
	// Server-owned counter; the client never computes it locally.
	UsedCount int  `json:"used_count"`
	IsActive  bool `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
