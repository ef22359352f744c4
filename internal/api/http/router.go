package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"propertydesk-backend/internal/security"
)

// Handlers bundles the resource handlers the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Properties *PropertyHandler
	Bookings   *BookingHandler
	Payments   *PaymentHandler
	Reports    *ReportHandler
}

// NewRouter mounts all routes under /api. Everything except registration,
// login and the health probe sits behind token authentication.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	router.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	router.HandleFunc("/api/auth/register", h.Auth.Register).Methods("POST")
	router.HandleFunc("/api/auth/login", h.Auth.Login).Methods("POST")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/auth/me", h.Users.Me).Methods("GET")

	api.HandleFunc("/users", h.Users.List).Methods("GET")
	api.HandleFunc("/users/{id}", h.Users.Get).Methods("GET")
	api.HandleFunc("/users/{id}", h.Users.Update).Methods("PUT")
	api.HandleFunc("/users/{id}/active", h.Users.SetActive).Methods("PUT")

	api.HandleFunc("/properties", h.Properties.Create).Methods("POST")
	api.HandleFunc("/properties", h.Properties.List).Methods("GET")
	api.HandleFunc("/properties/{id}", h.Properties.Get).Methods("GET")
	api.HandleFunc("/properties/{id}", h.Properties.Update).Methods("PUT")
	api.HandleFunc("/properties/{id}", h.Properties.Delete).Methods("DELETE")
	api.HandleFunc("/properties/{id}/availability", h.Bookings.CheckAvailability).Methods("GET")

	api.HandleFunc("/bookings", h.Bookings.Create).Methods("POST")
	api.HandleFunc("/bookings", h.Bookings.List).Methods("GET")
	api.HandleFunc("/bookings/stats", h.Bookings.Stats).Methods("GET")
	api.HandleFunc("/bookings/{id}", h.Bookings.Get).Methods("GET")
	api.HandleFunc("/bookings/{id}", h.Bookings.Update).Methods("PUT")
	api.HandleFunc("/bookings/{id}/confirm", h.Bookings.Confirm).Methods("POST")
	api.HandleFunc("/bookings/{id}/cancel", h.Bookings.Cancel).Methods("POST")
	api.HandleFunc("/bookings/{id}/check-in", h.Bookings.CheckIn).Methods("POST")
	api.HandleFunc("/bookings/{id}/check-out", h.Bookings.CheckOut).Methods("POST")
	api.HandleFunc("/bookings/{id}/no-show", h.Bookings.NoShow).Methods("POST")
	api.HandleFunc("/bookings/{id}/payment", h.Bookings.RecordPayment).Methods("POST")

	api.HandleFunc("/payments", h.Payments.Create).Methods("POST")
	api.HandleFunc("/payments", h.Payments.List).Methods("GET")
	api.HandleFunc("/payments/stats", h.Payments.Stats).Methods("GET")
	api.HandleFunc("/payments/owner-balance/{id}", h.Reports.OwnerBalance).Methods("GET")
	api.HandleFunc("/payments/{id}", h.Payments.Get).Methods("GET")
	api.HandleFunc("/payments/{id}", h.Payments.Update).Methods("PUT")
	api.HandleFunc("/payments/{id}", h.Payments.Delete).Methods("DELETE")

	api.HandleFunc("/reports/owner/{id}/financial", h.Reports.OwnerFinancial).Methods("GET")
	api.HandleFunc("/reports/property/{id}/performance", h.Reports.PropertyPerformance).Methods("GET")
	api.HandleFunc("/reports/system/summary", h.Reports.SystemSummary).Methods("GET")

	return router
}
