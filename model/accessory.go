package model

// Accessory is a catalog entry.
type Accessory struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
	Accent      string  `json:"accent,omitempty"`
}

// InventoryItem is an accessory as seen from the admin panel.
type InventoryItem struct {
	Accessory
	Stock int `json:"stock"`
}
