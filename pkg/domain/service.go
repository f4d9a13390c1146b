package domain

// Service is a billable clinic service.
type Service struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	CategoryID int64   `json:"category_id,omitempty"`
	Category   string  `json:"category,omitempty"`
	Price      float64 `json:"price"`
	Active     bool    `json:"active"`
}
