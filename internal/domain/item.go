package domain

import "time"

// Item is read-only reference data for the lifecycle engine.
type Item struct {
	ID                 string    `json:"id"`
	OwnerID            string    `json:"owner_id"`
	Title              string    `json:"title"`
	PricePerDayCents   int64     `json:"price_per_day_cents"`
	DepositAmountCents int64     `json:"deposit_amount_cents"`
	ImageURLs          []string  `json:"image_urls,omitempty"`
	CreatedOn          time.Time `json:"created_on"`
}
