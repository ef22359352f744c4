package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// paginated wraps list responses with their page metadata.
type paginated struct {
	Items    interface{} `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("response encoding failed", "error", err)
		}
	}
}

// statusForCode maps stable domain error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "ACCESS_DENIED":
		return http.StatusForbidden
	case "UNAUTHORIZED", "INVALID_CREDENTIALS":
		return http.StatusUnauthorized
	case "TOO_MANY_LOGIN_ATTEMPTS":
		return http.StatusTooManyRequests
	case "DATES_UNAVAILABLE", "INVALID_STATE_TRANSITION", "BOOKING_NOT_EDITABLE", "EMAIL_TAKEN":
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func writeError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		writeJSON(w, statusForCode(de.Code), errorResponse{Error: errorBody{Code: de.Code, Message: de.Message}})
		return
	}

	logger.Error("internal error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: errorBody{Code: "INTERNAL_ERROR", Message: "an unexpected error occurred"},
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{Code: "BAD_REQUEST", Message: message}})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeBadRequest(w, "invalid request body")
		return false
	}
	return true
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// dateParam parses an optional YYYY-MM-DD query parameter.
func dateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func periodParams(w http.ResponseWriter, r *http.Request) (domain.DateRange, bool) {
	start, err := dateParam(r, "start_date")
	if err != nil {
		writeBadRequest(w, "start_date must be formatted YYYY-MM-DD")
		return domain.DateRange{}, false
	}
	end, err := dateParam(r, "end_date")
	if err != nil {
		writeBadRequest(w, "end_date must be formatted YYYY-MM-DD")
		return domain.DateRange{}, false
	}
	return domain.DateRange{Start: start, End: end}, true
}
