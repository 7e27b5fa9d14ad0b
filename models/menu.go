package models

type DietaryType string

const (
	DietaryVeg    DietaryType = "Veg"
	DietaryNonVeg DietaryType = "Non-Veg"
)

type MenuItem struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Price       float64     `json:"price"`
	Description string      `json:"description"`
	Type        DietaryType `json:"type"`
}

// Restaurant-level Type classifies the restaurant as a whole; individual
// menu items carry their own dietary type independently.
type Restaurant struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Subtitle      string      `json:"subtitle"`
	Rating        float64     `json:"rating"`
	EstimatedTime string      `json:"estimated_time"`
	Type          DietaryType `json:"type"`
	Menu          []MenuItem  `json:"menu"`
}

// FindItem resolves a menu item by id within this restaurant's menu.
func (r Restaurant) FindItem(id int64) (MenuItem, bool) {
	for _, it := range r.Menu {
		if it.ID == id {
			return it, true
		}
	}
	return MenuItem{}, false
}
