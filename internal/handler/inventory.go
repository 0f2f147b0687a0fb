package handler

import (
	"net/http"

	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/internal/service"
)

// InventoryHandler handles inventory HTTP requests
type InventoryHandler struct {
	svc   *service.InventoryService
	users UserLoader
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(svc *service.InventoryService, users UserLoader) *InventoryHandler {
	return &InventoryHandler{svc: svc, users: users}
}

// CreateItemRequest represents an inventory item creation request
type CreateItemRequest struct {
	Name             string            `json:"name"`
	Category         string            `json:"category"`
	SerialNumber     string            `json:"serial_number"`
	Quantity         int               `json:"quantity"`
	OwnerType        string            `json:"owner_type"`
	OwnerName        *string           `json:"owner_name,omitempty"`
	Location         string            `json:"location"`
	Status           string            `json:"status"`
	Description      *string           `json:"description,omitempty"`
	BatteryLevel     *string           `json:"battery_level,omitempty"`
	MemoryCardStatus *string           `json:"memory_card_status,omitempty"`
	Renter           *model.RenterInfo `json:"renter,omitempty"`
}

// UpdateItemRequest represents a partial inventory item update
type UpdateItemRequest struct {
	Name             *string           `json:"name,omitempty"`
	Category         *string           `json:"category,omitempty"`
	SerialNumber     *string           `json:"serial_number,omitempty"`
	Quantity         *int              `json:"quantity,omitempty"`
	OwnerType        *string           `json:"owner_type,omitempty"`
	OwnerName        *string           `json:"owner_name,omitempty"`
	Location         *string           `json:"location,omitempty"`
	Status           *string           `json:"status,omitempty"`
	Description      *string           `json:"description,omitempty"`
	BatteryLevel     *string           `json:"battery_level,omitempty"`
	MemoryCardStatus *string           `json:"memory_card_status,omitempty"`
	Renter           *model.RenterInfo `json:"renter,omitempty"`
}

// Create handles POST /v1/inventory
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req CreateItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	item, err := h.svc.CreateItem(r.Context(), actor, service.CreateItemRequest{
		Name:             req.Name,
		Category:         model.ItemCategory(req.Category),
		SerialNumber:     req.SerialNumber,
		Quantity:         req.Quantity,
		OwnerType:        model.OwnerType(req.OwnerType),
		OwnerName:        req.OwnerName,
		Location:         req.Location,
		Status:           model.ItemStatus(req.Status),
		Description:      req.Description,
		BatteryLevel:     req.BatteryLevel,
		MemoryCardStatus: req.MemoryCardStatus,
		Renter:           req.Renter,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, item, map[string]string{
		"self": "/v1/inventory/" + item.ID,
	})
}

// List handles GET /v1/inventory
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteCollection(w, http.StatusOK, items, nil, nil)
}

// GetByID handles GET /v1/inventory/{id}
func (h *InventoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, item, nil)
}

// Update handles PATCH /v1/inventory/{id}
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req UpdateItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	update := service.UpdateItemRequest{
		Name:             req.Name,
		SerialNumber:     req.SerialNumber,
		Quantity:         req.Quantity,
		OwnerName:        req.OwnerName,
		Location:         req.Location,
		Description:      req.Description,
		BatteryLevel:     req.BatteryLevel,
		MemoryCardStatus: req.MemoryCardStatus,
		Renter:           req.Renter,
	}
	if req.Category != nil {
		category := model.ItemCategory(*req.Category)
		update.Category = &category
	}
	if req.OwnerType != nil {
		ownerType := model.OwnerType(*req.OwnerType)
		update.OwnerType = &ownerType
	}
	if req.Status != nil {
		status := model.ItemStatus(*req.Status)
		update.Status = &status
	}

	item, err := h.svc.UpdateItem(r.Context(), actor, r.PathValue("id"), update)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, item, nil)
}

// Delete handles DELETE /v1/inventory/{id}
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	if err := h.svc.DeleteItem(r.Context(), actor, r.PathValue("id")); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}
