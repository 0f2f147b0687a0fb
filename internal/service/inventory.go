package service

import (
	"context"
	"strings"
	"time"

	"github.com/studiohub/api/internal/model"
)

// InventoryRepository defines the interface for inventory storage
type InventoryRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	GetByID(ctx context.Context, id string) (*model.InventoryItem, error)
	List(ctx context.Context) ([]*model.InventoryItem, error)
	Update(ctx context.Context, item *model.InventoryItem) error
	Delete(ctx context.Context, id string) error
}

// InventoryService manages the equipment tracker
type InventoryService struct {
	itemRepo InventoryRepository
	access   *AccessService
}

// InventoryServiceConfig holds configuration for the inventory service
type InventoryServiceConfig struct {
	ItemRepo InventoryRepository
	Access   *AccessService
}

// NewInventoryService creates a new inventory service
func NewInventoryService(cfg InventoryServiceConfig) *InventoryService {
	return &InventoryService{
		itemRepo: cfg.ItemRepo,
		access:   cfg.Access,
	}
}

// CreateItemRequest represents an inventory item creation request
type CreateItemRequest struct {
	Name             string
	Category         model.ItemCategory
	SerialNumber     string
	Quantity         int
	OwnerType        model.OwnerType
	OwnerName        *string
	Location         string
	Status           model.ItemStatus
	Description      *string
	BatteryLevel     *string
	MemoryCardStatus *string
	Renter           *model.RenterInfo
}

// CreateItem creates an inventory item; privileged only
func (s *InventoryService) CreateItem(ctx context.Context, actor *model.User, req CreateItemRequest) (*model.InventoryItem, error) {
	if !s.access.IsPrivileged(actor) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrItemNameRequired
	}
	if !model.ValidItemCategory(req.Category) {
		return nil, ErrInvalidItemCategory
	}
	status := req.Status
	if status == "" {
		status = model.ItemStatusAvailable
	}
	if !validItemStatus(status) {
		return nil, ErrInvalidItemStatus
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	item := &model.InventoryItem{
		Name:         strings.TrimSpace(req.Name),
		Category:     req.Category,
		SerialNumber: req.SerialNumber,
		Quantity:     req.Quantity,
		OwnerType:    req.OwnerType,
		OwnerName:    req.OwnerName,
		Location:     req.Location,
		Status:       status,
		Description:  req.Description,
		History: []model.ItemHistory{{
			Date:     time.Now(),
			Action:   "created",
			UserID:   actor.ID,
			UserName: actor.Name,
		}},
	}

	// Battery and memory-card condition only apply to camera-class gear
	if req.Category.HasTechFields() {
		item.BatteryLevel = req.BatteryLevel
		item.MemoryCardStatus = req.MemoryCardStatus
	}

	// Renter is only meaningful while the item is checked out
	if status.CheckedOut() {
		item.Renter = req.Renter
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves an inventory item by ID
func (s *InventoryService) GetItem(ctx context.Context, id string) (*model.InventoryItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// ListItems retrieves all inventory items
func (s *InventoryService) ListItems(ctx context.Context) ([]*model.InventoryItem, error) {
	return s.itemRepo.List(ctx)
}

// UpdateItemRequest represents an inventory item mutation request
type UpdateItemRequest struct {
	Name             *string
	Category         *model.ItemCategory
	SerialNumber     *string
	Quantity         *int
	OwnerType        *model.OwnerType
	OwnerName        *string
	Location         *string
	Status           *model.ItemStatus
	Description      *string
	BatteryLevel     *string
	MemoryCardStatus *string
	Renter           *model.RenterInfo
}

// UpdateItem mutates an inventory item; privileged only. A status transition
// away from a checked-out state clears the renter, and every mutation
// appends a history entry.
func (s *InventoryService) UpdateItem(ctx context.Context, actor *model.User, id string, req UpdateItemRequest) (*model.InventoryItem, error) {
	if !s.access.IsPrivileged(actor) {
		return nil, ErrForbidden
	}

	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrItemNameRequired
		}
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		if !model.ValidItemCategory(*req.Category) {
			return nil, ErrInvalidItemCategory
		}
		item.Category = *req.Category
	}
	if req.SerialNumber != nil {
		item.SerialNumber = *req.SerialNumber
	}
	if req.Quantity != nil && *req.Quantity > 0 {
		item.Quantity = *req.Quantity
	}
	if req.OwnerType != nil {
		item.OwnerType = *req.OwnerType
	}
	if req.OwnerName != nil {
		item.OwnerName = req.OwnerName
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.Status != nil {
		if !validItemStatus(*req.Status) {
			return nil, ErrInvalidItemStatus
		}
		item.Status = *req.Status
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Renter != nil {
		item.Renter = req.Renter
	}

	if item.Category.HasTechFields() {
		if req.BatteryLevel != nil {
			item.BatteryLevel = req.BatteryLevel
		}
		if req.MemoryCardStatus != nil {
			item.MemoryCardStatus = req.MemoryCardStatus
		}
	} else {
		item.BatteryLevel = nil
		item.MemoryCardStatus = nil
	}

	if !item.Status.CheckedOut() {
		item.Renter = nil
	}

	item.History = append(item.History, model.ItemHistory{
		Date:     time.Now(),
		Action:   "updated",
		UserID:   actor.ID,
		UserName: actor.Name,
	})

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an inventory item; privileged only
func (s *InventoryService) DeleteItem(ctx context.Context, actor *model.User, id string) error {
	if !s.access.IsPrivileged(actor) {
		return ErrForbidden
	}
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

func validItemStatus(s model.ItemStatus) bool {
	switch s {
	case model.ItemStatusAvailable, model.ItemStatusBusy, model.ItemStatusOnShoot,
		model.ItemStatusRepair, model.ItemStatusBroken:
		return true
	}
	return false
}
