package usecase

import (
	"fmt"

	"github.com/google/uuid"

	"dukkan/internal/domain/entity"
	"dukkan/pkg/errors"
	"dukkan/pkg/utils"
)

// ProductDraft is the dialog-local copy of a product being created or
// edited. Numeric fields stay strings until submission so the form can hold
// partial input; Payload coerces them. The draft, including its variant
// rows, never aliases the entity held in the list collection, and variant
// edits are committed only when the parent draft is submitted.
type ProductDraft struct {
	Name       string `validate:"required"`
	NameEN     string
	Slug       string `validate:"required"`
	CategoryID string `validate:"required"`

	PriceJOD         string `validate:"required"`
	PriceUSD         string
	OriginalPriceJOD string
	OriginalPriceUSD string

	ProductType string `validate:"required,oneof=digital_code existing_account new_account"`
	HasVariants bool
	Variants    []VariantDraft

	RequiresEmail    bool
	RequiresPassword bool
	RequiresPhone    bool

	StockCount string
	IsActive   bool
	IsFeatured bool
}

type VariantDraft struct {
	ID       string // empty for rows added in this dialog
	Name     string
	Duration string
	PriceJOD string
	Stock    string
	SKU      string
	IsActive bool
}

// NewProductDraft seeds a create dialog.
func NewProductDraft() *ProductDraft {
	return &ProductDraft{
		ProductType: entity.ProductTypeDigitalCode,
		IsActive:    true,
	}
}

// EditProductDraft seeds an edit dialog from the selected product. The
// draft never aliases the held entity; variant rows are copied one by one.
func EditProductDraft(p entity.Product) *ProductDraft {
	d := &ProductDraft{
		Name:             p.Name,
		NameEN:           p.NameEN,
		Slug:             p.Slug,
		CategoryID:       p.CategoryID,
		PriceJOD:         utils.FormatAmount(p.PriceJOD),
		PriceUSD:         utils.FormatAmount(p.PriceUSD),
		ProductType:      p.ProductType,
		HasVariants:      p.HasVariants,
		RequiresEmail:    p.RequiresEmail,
		RequiresPassword: p.RequiresPassword,
		RequiresPhone:    p.RequiresPhone,
		StockCount:       utils.FormatCount(p.StockCount),
		IsActive:         p.IsActive,
		IsFeatured:       p.IsFeatured,
	}
	if p.OriginalPriceJOD != nil {
		d.OriginalPriceJOD = utils.FormatAmount(*p.OriginalPriceJOD)
	}
	if p.OriginalPriceUSD != nil {
		d.OriginalPriceUSD = utils.FormatAmount(*p.OriginalPriceUSD)
	}
	d.Variants = make([]VariantDraft, len(p.Variants))
	for i, v := range p.Variants {
		d.Variants[i] = VariantDraft{
			ID:       v.ID,
			Name:     v.Name,
			Duration: v.Duration,
			PriceJOD: utils.FormatAmount(v.PriceJOD),
			Stock:    utils.FormatCount(v.Stock),
			SKU:      v.SKU,
			IsActive: v.IsActive,
		}
	}
	return d
}

// SetProductType changes the type and re-seeds the requires_* flags.
// The flags stay independently togglable afterwards.
func (d *ProductDraft) SetProductType(productType string) {
	d.ProductType = productType
	switch productType {
	case entity.ProductTypeExistingAccount:
		d.RequiresEmail = true
		d.RequiresPassword = true
		d.RequiresPhone = false
	case entity.ProductTypeNewAccount:
		d.RequiresEmail = true
		d.RequiresPassword = false
		d.RequiresPhone = true
	default:
		d.RequiresEmail = false
		d.RequiresPassword = false
		d.RequiresPhone = false
	}
}

// AddVariant appends an empty row to the draft's variant list.
func (d *ProductDraft) AddVariant() {
	d.Variants = append(d.Variants, VariantDraft{IsActive: true})
}

// RemoveVariant splices a row out by index. There is no mark-for-deletion;
// an unsubmitted dialog loses variant edits together with the rest of the
// draft.
func (d *ProductDraft) RemoveVariant(i int) {
	if i < 0 || i >= len(d.Variants) {
		return
	}
	d.Variants = append(d.Variants[:i], d.Variants[i+1:]...)
}

type variantPayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration string  `json:"duration,omitempty"`
	PriceJOD float64 `json:"price_jod"`
	Stock    int     `json:"stock"`
	SKU      string  `json:"sku,omitempty"`
	IsActive bool    `json:"is_active"`
}

type productPayload struct {
	Name       string `json:"name"`
	NameEN     string `json:"name_en,omitempty"`
	Slug       string `json:"slug"`
	CategoryID string `json:"category_id"`

	PriceJOD         float64  `json:"price_jod"`
	PriceUSD         float64  `json:"price_usd"`
	OriginalPriceJOD *float64 `json:"original_price_jod"`
	OriginalPriceUSD *float64 `json:"original_price_usd"`

	ProductType string           `json:"product_type"`
	HasVariants bool             `json:"has_variants"`
	Variants    []variantPayload `json:"variants,omitempty"`

	RequiresEmail    bool `json:"requires_email"`
	RequiresPassword bool `json:"requires_password"`
	RequiresPhone    bool `json:"requires_phone"`

	StockCount int  `json:"stock_count"`
	IsActive   bool `json:"is_active"`
	IsFeatured bool `json:"is_featured"`
}

// Payload validates the draft and translates it into the wire shape: slug
// normalized, numeric strings coerced, absent optional prices sent as null,
// and ids synthesized for variant rows added in this dialog.
func (d *ProductDraft) Payload() (*productPayload, error) {
	if err := utils.CheckDraft(d); err != nil {
		return nil, err
	}

	priceJOD, err := utils.ParseAmount("price_jod", d.PriceJOD)
	if err != nil {
		return nil, err
	}
	priceUSD, err := utils.ParseAmount("price_usd", orZero(d.PriceUSD))
	if err != nil {
		return nil, err
	}
	originalJOD, err := utils.ParseOptionalAmount("original_price_jod", d.OriginalPriceJOD)
	if err != nil {
		return nil, err
	}
	originalUSD, err := utils.ParseOptionalAmount("original_price_usd", d.OriginalPriceUSD)
	if err != nil {
		return nil, err
	}
	stock, err := utils.ParseCount("stock_count", orZero(d.StockCount))
	if err != nil {
		return nil, err
	}

	p := &productPayload{
		Name:             d.Name,
		NameEN:           d.NameEN,
		Slug:             utils.Slugify(d.Slug),
		CategoryID:       d.CategoryID,
		PriceJOD:         priceJOD,
		PriceUSD:         priceUSD,
		OriginalPriceJOD: originalJOD,
		OriginalPriceUSD: originalUSD,
		ProductType:      d.ProductType,
		HasVariants:      d.HasVariants,
		RequiresEmail:    d.RequiresEmail,
		RequiresPassword: d.RequiresPassword,
		RequiresPhone:    d.RequiresPhone,
		StockCount:       stock,
		IsActive:         d.IsActive,
		IsFeatured:       d.IsFeatured,
	}

	if d.HasVariants {
		for i, v := range d.Variants {
			vp, err := v.payload(i)
			if err != nil {
				return nil, err
			}
			p.Variants = append(p.Variants, vp)
		}
	}

	return p, nil
}

func (v VariantDraft) payload(i int) (variantPayload, error) {
	if v.Name == "" {
		return variantPayload{}, errors.Validation(fmt.Sprintf("variant %d: name is required", i+1))
	}
	price, err := utils.ParseAmount("price_jod", v.PriceJOD)
	if err != nil {
		return variantPayload{}, errors.Validation(fmt.Sprintf("variant %d: %s", i+1, err.Error()))
	}
	stock, err := utils.ParseCount("stock", orZero(v.Stock))
	if err != nil {
		return variantPayload{}, errors.Validation(fmt.Sprintf("variant %d: %s", i+1, err.Error()))
	}

	id := v.ID
	if id == "" {
		// The backend expects client-assigned ids for new variant rows.
		id = uuid.New().String()
	}

	return variantPayload{
		ID:       id,
		Name:     v.Name,
		Duration: v.Duration,
		PriceJOD: price,
		Stock:    stock,
		SKU:      v.SKU,
		IsActive: v.IsActive,
	}, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
