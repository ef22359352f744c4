package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
	"propertydesk-backend/internal/service"
)

type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingRequest struct {
	PropertyID     uuid.UUID `json:"property_id"`
	GuestName      string    `json:"guest_name"`
	GuestEmail     string    `json:"guest_email"`
	GuestPhone     string    `json:"guest_phone"`
	NumberOfGuests int       `json:"number_of_guests"`
	CheckInDate    string    `json:"check_in_date"`
	CheckOutDate   string    `json:"check_out_date"`

	ExtraFees decimal.Decimal `json:"extra_fees"`
	Discount  decimal.Decimal `json:"discount"`

	BookingSource     string `json:"booking_source"`
	ExternalBookingID string `json:"external_booking_id"`
	SpecialRequests   string `json:"special_requests"`
	GuestNotes        string `json:"guest_notes"`
	InternalNotes     string `json:"internal_notes"`
}

func parseDate(raw string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", raw)
	return t, err == nil
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	var req createBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PropertyID == uuid.Nil || req.GuestName == "" {
		writeBadRequest(w, "property_id and guest_name are required")
		return
	}
	checkIn, ok := parseDate(req.CheckInDate)
	if !ok {
		writeBadRequest(w, "check_in_date must be formatted YYYY-MM-DD")
		return
	}
	checkOut, ok := parseDate(req.CheckOutDate)
	if !ok {
		writeBadRequest(w, "check_out_date must be formatted YYYY-MM-DD")
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), scope, service.CreateBookingInput{
		PropertyID:        req.PropertyID,
		GuestName:         req.GuestName,
		GuestEmail:        req.GuestEmail,
		GuestPhone:        req.GuestPhone,
		NumberOfGuests:    req.NumberOfGuests,
		CheckInDate:       checkIn,
		CheckOutDate:      checkOut,
		ExtraFees:         req.ExtraFees,
		Discount:          req.Discount,
		BookingSource:     req.BookingSource,
		ExternalBookingID: req.ExternalBookingID,
		SpecialRequests:   req.SpecialRequests,
		GuestNotes:        req.GuestNotes,
		InternalNotes:     req.InternalNotes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid booking id")
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), scope, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type updateBookingRequest struct {
	GuestName      *string          `json:"guest_name"`
	GuestEmail     *string          `json:"guest_email"`
	GuestPhone     *string          `json:"guest_phone"`
	NumberOfGuests *int             `json:"number_of_guests"`
	CheckInDate    *string          `json:"check_in_date"`
	CheckOutDate   *string          `json:"check_out_date"`
	ExtraFees      *decimal.Decimal `json:"extra_fees"`
	Discount       *decimal.Decimal `json:"discount"`

	SpecialRequests *string `json:"special_requests"`
	GuestNotes      *string `json:"guest_notes"`
	InternalNotes   *string `json:"internal_notes"`
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid booking id")
		return
	}

	var req updateBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := service.UpdateBookingInput{
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		NumberOfGuests:  req.NumberOfGuests,
		ExtraFees:       req.ExtraFees,
		Discount:        req.Discount,
		SpecialRequests: req.SpecialRequests,
		GuestNotes:      req.GuestNotes,
		InternalNotes:   req.InternalNotes,
	}
	if req.CheckInDate != nil {
		checkIn, ok := parseDate(*req.CheckInDate)
		if !ok {
			writeBadRequest(w, "check_in_date must be formatted YYYY-MM-DD")
			return
		}
		input.CheckInDate = &checkIn
	}
	if req.CheckOutDate != nil {
		checkOut, ok := parseDate(*req.CheckOutDate)
		if !ok {
			writeBadRequest(w, "check_out_date must be formatted YYYY-MM-DD")
			return
		}
		input.CheckOutDate = &checkOut
	}

	booking, err := h.bookings.UpdateBooking(r.Context(), scope, id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// statusAction builds a handler for the one-word status transitions.
func (h *BookingHandler) statusAction(action func(r *http.Request, scope domain.Scope, id uuid.UUID) (*domain.Booking, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFrom(r)
		if !ok {
			writeError(w, domain.ErrUnauthorized)
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			writeBadRequest(w, "invalid booking id")
			return
		}

		booking, err := action(r, scope, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.statusAction(func(r *http.Request, scope domain.Scope, id uuid.UUID) (*domain.Booking, error) {
		return h.bookings.ConfirmBooking(r.Context(), scope, id)
	})(w, r)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid booking id")
		return
	}

	var req cancelRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	booking, err := h.bookings.CancelBooking(r.Context(), scope, id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.statusAction(func(r *http.Request, scope domain.Scope, id uuid.UUID) (*domain.Booking, error) {
		return h.bookings.CheckInBooking(r.Context(), scope, id)
	})(w, r)
}

func (h *BookingHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.statusAction(func(r *http.Request, scope domain.Scope, id uuid.UUID) (*domain.Booking, error) {
		return h.bookings.CheckOutBooking(r.Context(), scope, id)
	})(w, r)
}

func (h *BookingHandler) NoShow(w http.ResponseWriter, r *http.Request) {
	h.statusAction(func(r *http.Request, scope domain.Scope, id uuid.UUID) (*domain.Booking, error) {
		return h.bookings.MarkNoShow(r.Context(), scope, id)
	})(w, r)
}

type recordPaymentRequest struct {
	Amount          decimal.Decimal      `json:"amount"`
	Method          domain.PaymentMethod `json:"payment_method"`
	PaymentDate     string               `json:"payment_date"`
	Description     string               `json:"description"`
	ReferenceNumber string               `json:"reference_number"`
}

func (h *BookingHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid booking id")
		return
	}

	var req recordPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := service.RecordBookingPaymentInput{
		Amount:          req.Amount,
		Method:          req.Method,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
	}
	if req.PaymentDate != "" {
		date, ok := parseDate(req.PaymentDate)
		if !ok {
			writeBadRequest(w, "payment_date must be formatted YYYY-MM-DD")
			return
		}
		input.PaymentDate = date
	}

	booking, err := h.bookings.RecordPayment(r.Context(), scope, id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	propertyID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid property id")
		return
	}

	checkIn, ok := parseDate(r.URL.Query().Get("check_in_date"))
	if !ok {
		writeBadRequest(w, "check_in_date must be formatted YYYY-MM-DD")
		return
	}
	checkOut, ok := parseDate(r.URL.Query().Get("check_out_date"))
	if !ok {
		writeBadRequest(w, "check_out_date must be formatted YYYY-MM-DD")
		return
	}

	var excludeID *uuid.UUID
	if raw := r.URL.Query().Get("exclude_booking_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeBadRequest(w, "invalid exclude_booking_id")
			return
		}
		excludeID = &id
	}

	availability, err := h.bookings.CheckAvailability(r.Context(), scope, propertyID, checkIn, checkOut, excludeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	filter := repository.BookingFilter{
		Status:        domain.BookingStatus(r.URL.Query().Get("status")),
		PaymentStatus: domain.PaymentStatus(r.URL.Query().Get("payment_status")),
	}
	if raw := r.URL.Query().Get("property_id"); raw != "" {
		propertyID, err := uuid.Parse(raw)
		if err != nil {
			writeBadRequest(w, "invalid property_id")
			return
		}
		filter.PropertyID = &propertyID
	}
	var err error
	if filter.CheckInFrom, err = dateParam(r, "check_in_from"); err != nil {
		writeBadRequest(w, "check_in_from must be formatted YYYY-MM-DD")
		return
	}
	if filter.CheckInTo, err = dateParam(r, "check_in_to"); err != nil {
		writeBadRequest(w, "check_in_to must be formatted YYYY-MM-DD")
		return
	}
	page, pageSize := pageParams(r)

	bookings, total, err := h.bookings.ListBookings(r.Context(), scope, filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paginated{Items: bookings, Total: total, Page: page, PageSize: pageSize})
}

func (h *BookingHandler) Stats(w http.ResponseWriter, r *http.Request) {
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

	stats, err := h.bookings.GetBookingStats(r.Context(), scope, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
