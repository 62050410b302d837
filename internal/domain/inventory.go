package domain

import "strings"

// Tier identifies where an ingredient comes from
type Tier string

const (
	TierPantry     Tier = "pantry"     // Highest priority owned stock
	TierCommissary Tier = "commissary" // Secondary owned stock
	TierStore      Tier = "store"      // Must be purchased
)

// Owned reports whether t is one of the owned inventory tiers
func (t Tier) Owned() bool {
	return t == TierPantry || t == TierCommissary
}

// InventoryItem represents one ingredient a kitchen has available
type InventoryItem struct {
	Name     string `json:"item"`
	Category string `json:"category,omitempty"`
	Vendor   string `json:"vendor,omitempty"`
}

// Blank reports whether the item has no usable name
func (i InventoryItem) Blank() bool {
	return strings.TrimSpace(i.Name) == ""
}

// PoolItem is an inventory item tagged with the list it came from
type PoolItem struct {
	InventoryItem
	Tier Tier `json:"tier"`
}

// Inventory holds the two owned ingredient lists for a kitchen
type Inventory struct {
	Pantry     []InventoryItem `json:"pantry"`
	Commissary []InventoryItem `json:"commissary"`
}

// Empty reports whether neither list has any item
func (inv Inventory) Empty() bool {
	return len(inv.Pantry) == 0 && len(inv.Commissary) == 0
}
