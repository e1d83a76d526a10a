package domain

import "time"

// Product mirrors the catalog record served by the backend API. Prices are
// integer paise.
type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	PricePaise  int64     `json:"price"`
	Description string    `json:"description,omitempty"`
	Category    Category  `json:"category"`
	Images      []string  `json:"images,omitempty"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FirstImage returns the primary image URL, or "" when none is set.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
