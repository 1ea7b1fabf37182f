package entity

import (
	"time"
)

// Product types supported by the storefront.
const (
	ProductTypeDigitalCode     = "digital_code"
	ProductTypeExistingAccount = "existing_account"
	ProductTypeNewAccount      = "new_account"
)

type Variant struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration string  `json:"duration,omitempty"` // e.g. "1 month", "12 months"
	PriceJOD float64 `json:"price_jod"`
	PriceUSD float64 `json:"price_usd,omitempty"`
	Stock    int     `json:"stock"`
	SKU      string  `json:"sku,omitempty"`
	IsActive bool    `json:"is_active"`
}

type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NameEN     string `json:"name_en,omitempty"`
	Slug       string `json:"slug"`
	CategoryID string `json:"category_id"`

	PriceJOD float64 `json:"price_jod"`
	PriceUSD float64 `json:"price_usd"`
	// A non-nil original price means the product is on sale.
	OriginalPriceJOD *float64 `json:"original_price_jod,omitempty"`
	OriginalPriceUSD *float64 `json:"original_price_usd,omitempty"`

	ProductType string    `json:"product_type"` // digital_code, existing_account, new_account
	HasVariants bool      `json:"has_variants"`
	Variants    []Variant `json:"variants,omitempty"`

	// Seeded from ProductType at creation time but independently togglable.
	RequiresEmail    bool `json:"requires_email"`
	RequiresPassword bool `json:"requires_password"`
	RequiresPhone    bool `json:"requires_phone"`

	StockCount int  `json:"stock_count"`
	IsActive   bool `json:"is_active"`
	IsFeatured bool `json:"is_featured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NameEN    string    `json:"name_en,omitempty"`
	Slug      string    `json:"slug"`
	Icon      string    `json:"icon,omitempty"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
