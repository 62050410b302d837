package inventory

import "github.com/pantryrank/backend/internal/domain"

// SamplePantry returns the demo pantry used when a request carries no inventory
func SamplePantry() []domain.InventoryItem {
	return []domain.InventoryItem{
		{Name: "Chicken Breast", Category: "Protein", Vendor: "Pantry"},
		{Name: "Green Onions", Category: "Vegetables", Vendor: "Pantry"},
		{Name: "Bell Peppers", Category: "Vegetables", Vendor: "Pantry"},
		{Name: "Olive Oil", Category: "Oils", Vendor: "Pantry"},
		{Name: "Sea Salt", Category: "Seasonings", Vendor: "Pantry"},
		{Name: "Black Pepper", Category: "Seasonings", Vendor: "Pantry"},
		{Name: "Ground Beef", Category: "Protein", Vendor: "Pantry"},
		{Name: "Sweet Potatoes", Category: "Vegetables", Vendor: "Pantry"},
		{Name: "Avocados", Category: "Vegetables", Vendor: "Pantry"},
		{Name: "Coconut Oil", Category: "Oils", Vendor: "Pantry"},
	}
}

// SampleCommissary returns the demo commissary list
func SampleCommissary() []domain.InventoryItem {
	return []domain.InventoryItem{
		{Name: "Turkey Mince", Category: "Protein", Vendor: "Commissary"},
		{Name: "Zucchini", Category: "Vegetables", Vendor: "Commissary"},
		{Name: "Carrots", Category: "Vegetables", Vendor: "Commissary"},
		{Name: "Broccoli", Category: "Vegetables", Vendor: "Commissary"},
		{Name: "Spinach", Category: "Vegetables", Vendor: "Commissary"},
		{Name: "Cauliflower", Category: "Vegetables", Vendor: "Commissary"},
		{Name: "Garlic", Category: "Seasonings", Vendor: "Commissary"},
		{Name: "Onions", Category: "Vegetables", Vendor: "Commissary"},
		{Name: "Tomatoes", Category: "Vegetables", Vendor: "Commissary"},
		{Name: "Cucumbers", Category: "Vegetables", Vendor: "Commissary"},
	}
}

// SampleInventory bundles both sample lists
func SampleInventory() domain.Inventory {
	return domain.Inventory{Pantry: SamplePantry(), Commissary: SampleCommissary()}
}
