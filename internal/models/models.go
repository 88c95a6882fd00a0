package models

// Rating is display data synthesized by the catalog client, not an
// authoritative score.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product comes from the external catalog and is never mutated after the
// fetch. Price is already converted and rounded by the catalog client.
type Product struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Price       int    `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Rating      Rating `json:"rating"`
}

// CartItem is a product line in the cart. Quantity stays >= 1; a decrement
// to 0 removes the line entirely.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

// KeyValue backs the durable auth keys (isAuthenticated, userId).
type KeyValue struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null"   json:"value"`
}
