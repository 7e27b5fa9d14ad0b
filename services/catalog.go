package services

import (
	"context"
	"fmt"

	"swiftdine/db"
	"swiftdine/models"
)

// Catalog is the read-only set of restaurants a session can order from.
// It is fixed at startup; nothing mutates it afterwards.
type Catalog struct {
	restaurants []models.Restaurant
}

func NewCatalog(restaurants []models.Restaurant) *Catalog {
	return &Catalog{restaurants: restaurants}
}

// DefaultCatalog returns the built-in seed data.
func DefaultCatalog() *Catalog {
	return NewCatalog(builtinRestaurants())
}

func (c *Catalog) List() []models.Restaurant {
	out := make([]models.Restaurant, len(c.restaurants))
	copy(out, c.restaurants)
	return out
}

func (c *Catalog) Get(id int64) (models.Restaurant, bool) {
	for _, r := range c.restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return models.Restaurant{}, false
}

// FilterByType returns restaurants matching the dietary classification.
// An empty type returns everything.
func (c *Catalog) FilterByType(t models.DietaryType) []models.Restaurant {
	if t == "" {
		return c.List()
	}
	var out []models.Restaurant
	for _, r := range c.restaurants {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// LoadCatalog reads the restaurant set from Postgres. The seed migration
// populates the same data as the built-in catalog.
func LoadCatalog(ctx context.Context) (*Catalog, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, subtitle, rating, estimated_time, dietary_type
		FROM restaurants
		ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("load restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []models.Restaurant
	for rows.Next() {
		var r models.Restaurant
		var dietary string
		if err := rows.Scan(&r.ID, &r.Name, &r.Subtitle, &r.Rating, &r.EstimatedTime, &dietary); err != nil {
			return nil, err
		}
		r.Type = models.DietaryType(dietary)
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range restaurants {
		menu, err := loadMenu(ctx, restaurants[i].ID)
		if err != nil {
			return nil, err
		}
		restaurants[i].Menu = menu
	}
	return NewCatalog(restaurants), nil
}

func loadMenu(ctx context.Context, restaurantID int64) ([]models.MenuItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, price, description, dietary_type
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY id`,
		restaurantID,
	)
	if err != nil {
		return nil, fmt.Errorf("load menu for restaurant %d: %w", restaurantID, err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var it models.MenuItem
		var dietary string
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Description, &dietary); err != nil {
			return nil, err
		}
		it.Type = models.DietaryType(dietary)
		items = append(items, it)
	}
	return items, rows.Err()
}

func builtinRestaurants() []models.Restaurant {
	return []models.Restaurant{
		{
			ID: 1, Name: "South Indian Veg", Subtitle: "Annapoorna Pure Veg",
			Rating: 4.8, EstimatedTime: "20-30 mins", Type: models.DietaryVeg,
			Menu: []models.MenuItem{
				{ID: 101, Name: "Mini Sambar Idli", Price: 120, Description: "Soft idlis soaked in savory sambar.", Type: models.DietaryVeg},
				{ID: 102, Name: "Paneer Butter Masala", Price: 210, Description: "Creamy paneer curry with soft butter naan.", Type: models.DietaryVeg},
				{ID: 103, Name: "Ghee Roast Dosa", Price: 100, Description: "Crispy dosa roasted in ghee.", Type: models.DietaryVeg},
			},
		},
		{
			ID: 2, Name: "Chicken Biryani Special", Subtitle: "Al Faisal Biryani House",
			Rating: 4.5, EstimatedTime: "25-35 mins", Type: models.DietaryNonVeg,
			Menu: []models.MenuItem{
				{ID: 201, Name: "Chicken Biryani", Price: 280, Description: "Classic Ambur style biryani, served with raita.", Type: models.DietaryNonVeg},
				{ID: 202, Name: "Mutton Chukka", Price: 350, Description: "Spicy dry mutton fry.", Type: models.DietaryNonVeg},
				{ID: 203, Name: "Gobi 65", Price: 150, Description: "Crispy fried cauliflower starter.", Type: models.DietaryVeg},
			},
		},
		{
			ID: 3, Name: "North Indian Eats", Subtitle: "Modern Chapati & Grills",
			Rating: 4.2, EstimatedTime: "30-40 mins", Type: models.DietaryVeg,
			Menu: []models.MenuItem{
				{ID: 301, Name: "Tandoori Chicken", Price: 450, Description: "Marinated chicken grilled in a tandoor.", Type: models.DietaryNonVeg},
				{ID: 302, Name: "Paneer Tikka Masala", Price: 240, Description: "Smoked paneer in a rich tomato gravy.", Type: models.DietaryVeg},
				{ID: 303, Name: "Butter Naan", Price: 60, Description: "Soft, buttery leavened bread.", Type: models.DietaryVeg},
			},
		},
		{
			ID: 4, Name: "Shawarma Wraps", Subtitle: "Global Shawarma Spot",
			Rating: 4.6, EstimatedTime: "25-35 mins", Type: models.DietaryNonVeg,
			Menu: []models.MenuItem{
				{ID: 401, Name: "Chicken Shawarma Roll", Price: 200, Description: "Classic chicken shawarma with garlic sauce.", Type: models.DietaryNonVeg},
				{ID: 402, Name: "Falafel Wrap", Price: 180, Description: "Crispy falafel with hummus and fresh veggies.", Type: models.DietaryVeg},
				{ID: 403, Name: "Mixed Grill Platter", Price: 400, Description: "Assortment of grilled meats.", Type: models.DietaryNonVeg},
			},
		},
	}
}
