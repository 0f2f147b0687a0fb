package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studiohub/api/internal/database"
	"github.com/studiohub/api/internal/model"
)

// InventoryRepository handles inventory item data access
type InventoryRepository struct {
	db database.Database
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db database.Database) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Create creates a new inventory item
func (r *InventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	query := `
		CREATE inventory_item CONTENT {
			name: $name,
			category: $category,
			serial_number: $serial_number,
			quantity: $quantity,
			owner_type: $owner_type,
			owner_name: $owner_name,
			location: $location,
			status: $status,
			description: $description,
			battery_level: $battery_level,
			memory_card_status: $memory_card_status,
			renter: $renter,
			history: $history,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"name":               item.Name,
		"category":           item.Category,
		"serial_number":      item.SerialNumber,
		"quantity":           item.Quantity,
		"owner_type":         item.OwnerType,
		"owner_name":         ptrToNone(item.OwnerName),
		"location":           item.Location,
		"status":             item.Status,
		"description":        ptrToNone(item.Description),
		"battery_level":      ptrToNone(item.BatteryLevel),
		"memory_card_status": ptrToNone(item.MemoryCardStatus),
		"renter":             encodeRenter(item.Renter),
		"history":            encodeHistory(item.History),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return fmt.Errorf("failed to extract created inventory item: %w", err)
	}

	item.ID = created.ID
	item.CreatedOn = created.CreatedOn
	item.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves an inventory item by ID
func (r *InventoryRepository) GetByID(ctx context.Context, id string) (*model.InventoryItem, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errBadResultFormat
	}
	return parseInventoryItem(data), nil
}

// List retrieves all inventory items ordered by name
func (r *InventoryRepository) List(ctx context.Context) ([]*model.InventoryItem, error) {
	query := `SELECT * FROM inventory_item ORDER BY name ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}

	items := make([]*model.InventoryItem, 0)
	for _, data := range unwrapRecords(result) {
		items = append(items, parseInventoryItem(data))
	}
	return items, nil
}

// Update replaces an inventory item's fields, including its embedded
// renter and history documents.
func (r *InventoryRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	query := `
		UPDATE type::record($id) SET
			name = $name,
			category = $category,
			serial_number = $serial_number,
			quantity = $quantity,
			owner_type = $owner_type,
			owner_name = $owner_name,
			location = $location,
			status = $status,
			description = $description,
			battery_level = $battery_level,
			memory_card_status = $memory_card_status,
			renter = $renter,
			history = $history,
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"id":                 item.ID,
		"name":               item.Name,
		"category":           item.Category,
		"serial_number":      item.SerialNumber,
		"quantity":           item.Quantity,
		"owner_type":         item.OwnerType,
		"owner_name":         ptrToNone(item.OwnerName),
		"location":           item.Location,
		"status":             item.Status,
		"description":        ptrToNone(item.Description),
		"battery_level":      ptrToNone(item.BatteryLevel),
		"memory_card_status": ptrToNone(item.MemoryCardStatus),
		"renter":             encodeRenter(item.Renter),
		"history":            encodeHistory(item.History),
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete deletes an inventory item
func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

// Codec

func encodeRenter(renter *model.RenterInfo) interface{} {
	if renter == nil {
		return nil
	}
	return map[string]interface{}{
		"name":     renter.Name,
		"phone":    renter.Phone,
		"vk":       renter.VK,
		"telegram": renter.Telegram,
	}
}

func parseRenter(data map[string]interface{}) *model.RenterInfo {
	if data == nil {
		return nil
	}
	return &model.RenterInfo{
		Name:     getString(data, "name"),
		Phone:    getString(data, "phone"),
		VK:       getString(data, "vk"),
		Telegram: getString(data, "telegram"),
	}
}

func encodeHistory(history []model.ItemHistory) []map[string]interface{} {
	encoded := make([]map[string]interface{}, 0, len(history))
	for _, entry := range history {
		encoded = append(encoded, map[string]interface{}{
			"date":      entry.Date.Format(time.RFC3339),
			"action":    entry.Action,
			"user":      entry.UserID,
			"user_name": entry.UserName,
		})
	}
	return encoded
}

func parseHistory(entries []map[string]interface{}) []model.ItemHistory {
	history := make([]model.ItemHistory, 0, len(entries))
	for _, data := range entries {
		entry := model.ItemHistory{
			Action:   getString(data, "action"),
			UserID:   convertSurrealID(data["user"]),
			UserName: getString(data, "user_name"),
		}
		if t := getTime(data, "date"); t != nil {
			entry.Date = *t
		}
		history = append(history, entry)
	}
	return history
}

func parseInventoryItem(data map[string]interface{}) *model.InventoryItem {
	item := &model.InventoryItem{
		ID:               convertSurrealID(data["id"]),
		Name:             getString(data, "name"),
		Category:         model.ItemCategory(getString(data, "category")),
		SerialNumber:     getString(data, "serial_number"),
		Quantity:         getInt(data, "quantity"),
		OwnerType:        model.OwnerType(getString(data, "owner_type")),
		OwnerName:        getStringPtr(data, "owner_name"),
		Location:         getString(data, "location"),
		Status:           model.ItemStatus(getString(data, "status")),
		Description:      getStringPtr(data, "description"),
		BatteryLevel:     getStringPtr(data, "battery_level"),
		MemoryCardStatus: getStringPtr(data, "memory_card_status"),
		Renter:           parseRenter(getMap(data, "renter")),
		History:          parseHistory(getMapSlice(data, "history")),
	}

	if t := getTime(data, "created_on"); t != nil {
		item.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		item.UpdatedOn = *t
	}

	return item
}
