package http

import (
	"net/http"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/service"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) OwnerBalance(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	ownerID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid owner id")
		return
	}

	balance, err := h.reports.GetOwnerBalance(r.Context(), scope, ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

func (h *ReportHandler) OwnerFinancial(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	ownerID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid owner id")
		return
	}
	period, ok := periodParams(w, r)
	if !ok {
		return
	}

	report, err := h.reports.GetOwnerFinancialReport(r.Context(), scope, ownerID, period)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) PropertyPerformance(w http.ResponseWriter, r *http.Request) {
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
	period, ok := periodParams(w, r)
	if !ok {
		return
	}

	report, err := h.reports.GetPropertyPerformanceReport(r.Context(), scope, propertyID, period)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) SystemSummary(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	period, ok := periodParams(w, r)
	if !ok {
		return
	}

	report, err := h.reports.GetSystemSummaryReport(r.Context(), scope, period)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
