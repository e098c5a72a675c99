package models

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// DefaultCategories are seeded at startup.
var DefaultCategories = []string{
	"Electronics", "Clothing", "Accessories", "Documents",
	"Jewelry", "Keys", "Bags", "Books", "Cash",
}
