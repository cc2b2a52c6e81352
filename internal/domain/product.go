package domain

import "time"

// ProductPricing holds the rental rate tiers for a product, in cents.
// A zero value for a tier means the tier is not offered.
type ProductPricing struct {
	HourlyCents          int64 `json:"hourly_cents"`
	DailyCents           int64 `json:"daily_cents"`
	WeeklyCents          int64 `json:"weekly_cents"`
	MonthlyCents         int64 `json:"monthly_cents"`
	SecurityDepositCents int64 `json:"security_deposit_cents"`
}

// ProductInventory tracks stock counters for a product.
// Invariant: 0 <= AvailableQuantity <= TotalQuantity.
type ProductInventory struct {
	TotalQuantity     int32 `json:"total_quantity"`
	AvailableQuantity int32 `json:"available_quantity"`
}

type Product struct {
	ID          int32            `json:"id"`
	VendorID    int32            `json:"vendor_id"`
	CompanyID   int32            `json:"company_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Pricing     ProductPricing   `json:"pricing"`
	Inventory   ProductInventory `json:"inventory"`
	IsActive    bool             `json:"is_active"`
	CreatedOn   time.Time        `json:"created_on"`
	UpdatedOn   time.Time        `json:"updated_on"`
}
