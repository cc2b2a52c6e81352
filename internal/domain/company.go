package domain

import "time"

// CompanySettings carries per-tenant configuration.
// TaxRateBps is in basis points: 1000 = 10%. Zero means "use the
// deployment default".
type CompanySettings struct {
	TaxRateBps int32  `json:"tax_rate_bps"`
	Currency   string `json:"currency"`
}

type Company struct {
	ID        int32           `json:"id"`
	Name      string          `json:"name"`
	Settings  CompanySettings `json:"settings"`
	CreatedOn time.Time       `json:"created_on"`
}
