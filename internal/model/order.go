package model

// Order is a food or room-service order placed from the cart.
type Order struct {
	ID         int64       `json:"id"`
	Items      []OrderLine `json:"items"`
	Total      Money       `json:"total"`
	Status     string      `json:"status,omitempty"`
	RoomNumber string      `json:"roomNumber,omitempty"`
	CreatedAt  string      `json:"createdAt,omitempty"`
}

// OrderLine is one menu item in an order.
type OrderLine struct {
	MenuItemID int64  `json:"menuItemId"`
	Name       string `json:"name,omitempty"`
	Quantity   int    `json:"quantity"`
	Price      Money  `json:"price"`
}

// OrderRequest is the body of POST /api/orders.
type OrderRequest struct {
	Items      []OrderLine `json:"items"`
	RoomNumber string      `json:"roomNumber,omitempty"`
	Notes      string      `json:"notes,omitempty"`
}

// CartItem is a menu item held in a guest's cart.
type CartItem struct {
	MenuItemID int64  `json:"menuItemId"`
	Name       string `json:"name"`
	Price      Money  `json:"price"`
	Quantity   int    `json:"quantity"`
}
