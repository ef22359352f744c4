package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
	"propertydesk-backend/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type paymentRequest struct {
	Amount      decimal.Decimal      `json:"amount"`
	PaymentDate string               `json:"payment_date"`
	Method      domain.PaymentMethod `json:"payment_method"`
	Type        domain.PaymentType   `json:"payment_type"`
	Status      domain.PaymentState  `json:"status"`

	BookingID  *uuid.UUID `json:"booking_id"`
	PropertyID *uuid.UUID `json:"property_id"`
	PayerID    *uuid.UUID `json:"payer_id"`
	ReceiverID *uuid.UUID `json:"receiver_id"`

	Description     string `json:"description"`
	ReferenceNumber string `json:"reference_number"`
	Category        string `json:"category"`

	IsForRenovation bool             `json:"is_for_renovation"`
	IsCommission    bool             `json:"is_commission"`
	CommissionRate  *decimal.Decimal `json:"commission_rate"`
}

func (req *paymentRequest) toInput(w http.ResponseWriter) (service.PaymentInput, bool) {
	input := service.PaymentInput{
		Amount:          req.Amount,
		Method:          req.Method,
		Type:            req.Type,
		Status:          req.Status,
		BookingID:       req.BookingID,
		PropertyID:      req.PropertyID,
		PayerID:         req.PayerID,
		ReceiverID:      req.ReceiverID,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		Category:        req.Category,
		IsForRenovation: req.IsForRenovation,
		IsCommission:    req.IsCommission,
		CommissionRate:  req.CommissionRate,
	}
	if req.PaymentDate != "" {
		date, ok := parseDate(req.PaymentDate)
		if !ok {
			writeBadRequest(w, "payment_date must be formatted YYYY-MM-DD")
			return service.PaymentInput{}, false
		}
		input.PaymentDate = date
	}
	return input, true
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	var req paymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Type == "" {
		writeBadRequest(w, "payment_type is required")
		return
	}
	input, ok := req.toInput(w)
	if !ok {
		return
	}

	payment, err := h.payments.CreatePayment(r.Context(), scope, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid payment id")
		return
	}

	payment, err := h.payments.GetPayment(r.Context(), scope, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid payment id")
		return
	}

	var req paymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	input, ok := req.toInput(w)
	if !ok {
		return
	}

	payment, err := h.payments.UpdatePayment(r.Context(), scope, id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid payment id")
		return
	}

	if err := h.payments.DeletePayment(r.Context(), scope, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	filter := repository.PaymentFilter{
		Type:   domain.PaymentType(r.URL.Query().Get("payment_type")),
		Status: domain.PaymentState(r.URL.Query().Get("status")),
	}
	for name, dst := range map[string]**uuid.UUID{
		"booking_id":  &filter.BookingID,
		"property_id": &filter.PropertyID,
		"payer_id":    &filter.PayerID,
		"receiver_id": &filter.ReceiverID,
	} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			writeBadRequest(w, "invalid "+name)
			return
		}
		*dst = &id
	}
	var err error
	if filter.From, err = dateParam(r, "from"); err != nil {
		writeBadRequest(w, "from must be formatted YYYY-MM-DD")
		return
	}
	if filter.To, err = dateParam(r, "to"); err != nil {
		writeBadRequest(w, "to must be formatted YYYY-MM-DD")
		return
	}
	page, pageSize := pageParams(r)

	payments, total, err := h.payments.ListPayments(r.Context(), scope, filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paginated{Items: payments, Total: total, Page: page, PageSize: pageSize})
}

func (h *PaymentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	from, err := dateParam(r, "from")
	if err != nil {
		writeBadRequest(w, "from must be formatted YYYY-MM-DD")
		return
	}
	to, err := dateParam(r, "to")
	if err != nil {
		writeBadRequest(w, "to must be formatted YYYY-MM-DD")
		return
	}

	stats, err := h.payments.GetPaymentStats(r.Context(), scope, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
