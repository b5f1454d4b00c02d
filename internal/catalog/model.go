package catalog

import "time"

type Category string

const (
	CategoryPizza    Category = "pizza"
	CategoryBurger   Category = "burger"
	CategoryBeverage Category = "beverage"
	CategorySide     Category = "side"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPizza, CategoryBurger, CategoryBeverage, CategorySide:
		return true
	}
	return false
}

// MenuItem is immutable after seeding; customers only ever read it.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	// Price in guaraníes (smallest currency unit, no fractional part)
	Price       int64     `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	PrepMinutes int       `json:"preparation_time"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}
