package domain

// Service is a bookable photography package as served by the catalog.
// Immutable once fetched; selecting one copies its price fields into the draft.
type Service struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	BasePrice     int64    `json:"base_price"`
	DiscountValue int64    `json:"discount_value"`
	IsActive      bool     `json:"is_active"`
	Badge         string   `json:"badge,omitempty"`
	Benefits      []string `json:"benefits,omitempty"`
}

type Addon struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	IsActive bool   `json:"is_active"`
}
