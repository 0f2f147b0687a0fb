package model

import "time"

// ItemCategory classifies inventory items
type ItemCategory string

const (
	ItemCategoryCamera     ItemCategory = "camera"
	ItemCategoryLight      ItemCategory = "light"
	ItemCategorySound      ItemCategory = "sound"
	ItemCategoryStabilizer ItemCategory = "stabilizer"
	ItemCategoryAccessory  ItemCategory = "accessory"
	ItemCategoryLens       ItemCategory = "lens"
)

// ValidItemCategory reports whether c is a known category.
func ValidItemCategory(c ItemCategory) bool {
	switch c {
	case ItemCategoryCamera, ItemCategoryLight, ItemCategorySound,
		ItemCategoryStabilizer, ItemCategoryAccessory, ItemCategoryLens:
		return true
	}
	return false
}

// HasTechFields reports whether battery/memory-card condition fields apply
// to the category.
func (c ItemCategory) HasTechFields() bool {
	return c == ItemCategoryCamera || c == ItemCategoryStabilizer
}

// OwnerType identifies who owns a piece of inventory
type OwnerType string

const (
	OwnerTypeStudio         OwnerType = "studio"
	OwnerTypeProducerCenter OwnerType = "producer_center"
	OwnerTypePersonal       OwnerType = "personal" // OwnerName names the individual
)

// ItemStatus is the availability state of an inventory item
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusBusy      ItemStatus = "busy"
	ItemStatusOnShoot   ItemStatus = "on_shoot"
	ItemStatusRepair    ItemStatus = "repair"
	ItemStatusBroken    ItemStatus = "broken"
)

// CheckedOut reports whether the status implies an external holder, which is
// the only case in which renter details are meaningful.
func (s ItemStatus) CheckedOut() bool {
	return s == ItemStatusBusy || s == ItemStatusOnShoot
}

// RenterInfo holds contact details for whoever currently holds an item.
type RenterInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	VK       string `json:"vk,omitempty"`
	Telegram string `json:"telegram,omitempty"`
}

// ItemHistory is one audit entry embedded in an inventory item record.
type ItemHistory struct {
	Date     time.Time `json:"date"`
	Action   string    `json:"action"`
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name"`
}

// InventoryItem represents a tracked piece of studio equipment.
//
// Invariant: Renter is non-nil only while Status.CheckedOut() holds.
type InventoryItem struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Category         ItemCategory  `json:"category"`
	SerialNumber     string        `json:"serial_number"`
	Quantity         int           `json:"quantity"`
	OwnerType        OwnerType     `json:"owner_type"`
	OwnerName        *string       `json:"owner_name,omitempty"`
	Location         string        `json:"location"`
	Status           ItemStatus    `json:"status"`
	Description      *string       `json:"description,omitempty"`
	BatteryLevel     *string       `json:"battery_level,omitempty"`      // full | low | empty | missing
	MemoryCardStatus *string       `json:"memory_card_status,omitempty"` // empty | full | missing
	Renter           *RenterInfo   `json:"renter,omitempty"`
	History          []ItemHistory `json:"history"`
	CreatedOn        time.Time     `json:"created_on"`
	UpdatedOn        time.Time     `json:"updated_on"`
}
