package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PropertyType string

const (
	PropertyTypeMaintenance PropertyType = "maintenance"
	PropertyTypeShortTerm   PropertyType = "short_term"
	PropertyTypeLongTerm    PropertyType = "long_term"
)

// Property is a managed unit. The pricing and stay-limit fields are only
// meaningful when Type is short_term; the rental fields only for long_term.
type Property struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Type        PropertyType `json:"property_type"`
	OwnerID     uuid.UUID    `json:"owner_id"`
	Description string       `json:"description,omitempty"`
	IsActive    bool         `json:"is_active"`

	// Short-term rental rules.
	BasePrice   *decimal.Decimal `json:"base_price,omitempty"`
	CleaningFee *decimal.Decimal `json:"cleaning_fee,omitempty"`
	MaxGuests   *int             `json:"max_guests,omitempty"`
	MinStayDays *int             `json:"min_stay_days,omitempty"`
	MaxStayDays *int             `json:"max_stay_days,omitempty"`

	// Long-term rental state.
	MonthlyRent *decimal.Decimal `json:"monthly_rent,omitempty"`
	TenantID    *uuid.UUID       `json:"tenant_id,omitempty"`
	IsRented    bool             `json:"is_rented"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
