package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
	"propertydesk-backend/internal/service"
)

type PropertyHandler struct {
	properties service.PropertyService
}

func NewPropertyHandler(properties service.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

type propertyRequest struct {
	Name        string              `json:"name"`
	Address     string              `json:"address"`
	Type        domain.PropertyType `json:"property_type"`
	OwnerID     uuid.UUID           `json:"owner_id"`
	Description string              `json:"description"`

	BasePrice   *decimal.Decimal `json:"base_price"`
	CleaningFee *decimal.Decimal `json:"cleaning_fee"`
	MaxGuests   *int             `json:"max_guests"`
	MinStayDays *int             `json:"min_stay_days"`
	MaxStayDays *int             `json:"max_stay_days"`

	MonthlyRent *decimal.Decimal `json:"monthly_rent"`
	TenantID    *uuid.UUID       `json:"tenant_id"`
	IsRented    *bool            `json:"is_rented"`
}

func (req *propertyRequest) toInput() service.PropertyInput {
	return service.PropertyInput{
		Name:        req.Name,
		Address:     req.Address,
		Type:        req.Type,
		OwnerID:     req.OwnerID,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		CleaningFee: req.CleaningFee,
		MaxGuests:   req.MaxGuests,
		MinStayDays: req.MinStayDays,
		MaxStayDays: req.MaxStayDays,
		MonthlyRent: req.MonthlyRent,
		TenantID:    req.TenantID,
		IsRented:    req.IsRented,
	}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	var req propertyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Type == "" || req.OwnerID == uuid.Nil {
		writeBadRequest(w, "name, property_type and owner_id are required")
		return
	}

	property, err := h.properties.CreateProperty(r.Context(), scope, req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, property)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid property id")
		return
	}

	property, err := h.properties.GetProperty(r.Context(), scope, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid property id")
		return
	}

	var req propertyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	property, err := h.properties.UpdateProperty(r.Context(), scope, id, req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid property id")
		return
	}

	if err := h.properties.DeleteProperty(r.Context(), scope, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	filter := repository.PropertyFilter{
		Type:   domain.PropertyType(r.URL.Query().Get("property_type")),
		Search: r.URL.Query().Get("search"),
	}
	if ownerRaw := r.URL.Query().Get("owner_id"); ownerRaw != "" {
		ownerID, err := uuid.Parse(ownerRaw)
		if err != nil {
			writeBadRequest(w, "invalid owner_id")
			return
		}
		filter.OwnerID = &ownerID
	}
	page, pageSize := pageParams(r)

	properties, total, err := h.properties.ListProperties(r.Context(), scope, filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paginated{Items: properties, Total: total, Page: page, PageSize: pageSize})
}
