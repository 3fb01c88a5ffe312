package models

import "time"

type Organization struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	// Price steps are NUMERIC columns kept as decimal strings.
	PriceIncreaseStep *string `json:"priceIncreaseStep" db:"price_increase_step"`
	PriceDecreaseStep *string `json:"priceDecreaseStep" db:"price_decrease_step"`
}
