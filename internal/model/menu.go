package model

// MenuItem is a dish or drink offered by the resort restaurant and room service.
type MenuItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Price       Money  `json:"price"`
	Available   bool   `json:"available"`
	ImageURL    string `json:"imageUrl,omitempty"`
}
