package catalog

import "context"

// Defaults returns the starter menu. IDs are fixed literals: the seed upsert
// keys on them, which is what makes EnsureSeeded safe to call on every boot.
func Defaults() []MenuItem {
	return []MenuItem{
		{
			ID:          "a1f4c9e2-0d31-4a7e-9b6d-1b2f8c4d5e01",
			Name:        "Pizza Margherita",
			Description: "Clásica pizza con tomate, mozzarella y albahaca fresca",
			Category:    CategoryPizza,
			Price:       75000,
			ImageURL:    "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38",
			PrepMinutes: 15,
			Available:   true,
		},
		{
			ID:          "a1f4c9e2-0d31-4a7e-9b6d-1b2f8c4d5e02",
			Name:        "Pizza Pepperoni",
			Description: "Pizza con pepperoni, mozzarella y salsa de tomate",
			Category:    CategoryPizza,
			Price:       85000,
			ImageURL:    "https://images.unsplash.com/photo-1534308983496-4fabb1a015ee",
			PrepMinutes: 15,
			Available:   true,
		},
		{
			ID:          "a1f4c9e2-0d31-4a7e-9b6d-1b2f8c4d5e03",
			Name:        "Pizza Hawaiana",
			Description: "Pizza con jamón, piña, mozzarella y salsa de tomate",
			Category:    CategoryPizza,
			Price:       80000,
			ImageURL:    "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38",
			PrepMinutes: 15,
			Available:   true,
		},
		{
			ID:          "a1f4c9e2-0d31-4a7e-9b6d-1b2f8c4d5e04",
			Name:        "Hamburguesa Clásica",
			Description: "Carne de res, lechuga, tomate, cebolla y salsa especial",
			Category:    CategoryBurger,
			Price:       45000,
			ImageURL:    "https://images.pexels.com/photos/3023476/pexels-photo-3023476.jpeg",
			PrepMinutes: 12,
			Available:   true,
		},
		{
			ID:          "a1f4c9e2-0d31-4a7e-9b6d-1b2f8c4d5e05",
			Name:        "Hamburguesa Doble",
			Description: "Doble carne, doble queso cheddar y panceta",
			Category:    CategoryBurger,
			Price:       55000,
			ImageURL:    "https://images.pexels.com/photos/3023476/pexels-photo-3023476.jpeg",
			PrepMinutes: 14,
			Available:   true,
		},
		{
			ID:          "a1f4c9e2-0d31-4a7e-9b6d-1b2f8c4d5e06",
			Name:        "Coca Cola 500ml",
			Description: "Bebida gaseosa Coca Cola",
			Category:    CategoryBeverage,
			Price:       8000,
			ImageURL:    "https://images.pexels.com/photos/3023476/pexels-photo-3023476.jpeg",
			PrepMinutes: 1,
			Available:   true,
		},
		{
			ID:          "a1f4c9e2-0d31-4a7e-9b6d-1b2f8c4d5e07",
			Name:        "Limonada",
			Description: "Limonada natural con menta",
			Category:    CategoryBeverage,
			Price:       10000,
			ImageURL:    "https://images.pexels.com/photos/3023476/pexels-photo-3023476.jpeg",
			PrepMinutes: 2,
			Available:   true,
		},
		{
			ID:          "a1f4c9e2-0d31-4a7e-9b6d-1b2f8c4d5e08",
			Name:        "Papas Fritas",
			Description: "Papas fritas crujientes con sal",
			Category:    CategorySide,
			Price:       15000,
			ImageURL:    "https://images.pexels.com/photos/3023476/pexels-photo-3023476.jpeg",
			PrepMinutes: 8,
			Available:   true,
		},
	}
}

// EnsureSeeded populates an empty catalog with the starter menu. Already
// seeded catalogs are left untouched. Because SeedDefaults upserts on stable
// IDs, even two racing calls cannot duplicate items.
func EnsureSeeded(ctx context.Context, repo Repository) error {
	items, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return nil
	}
	return repo.SeedDefaults(ctx, Defaults())
}
