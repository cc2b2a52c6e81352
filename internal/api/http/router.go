package http

import (
	"net/http"

	"gearmarket-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires the HTTP surface. Auth and availability checks are public;
// everything else sits behind the bearer-token middleware.
func NewRouter(
	tokens security.TokenManager,
	authHandler *AuthHandler,
	productHandler *ProductHandler,
	orderHandler *OrderHandler,
	invoiceHandler *InvoiceHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/otp/request", authHandler.RequestOTP).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/otp/verify", authHandler.VerifyOTP).Methods(http.MethodPost)

	r.HandleFunc("/api/products/{id:[0-9]+}/check-availability", productHandler.CheckAvailability).Methods(http.MethodPost)

	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(AuthMiddleware(tokens))

	authed.HandleFunc("/products", productHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/products/{id:[0-9]+}", productHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/products/{id:[0-9]+}", productHandler.Update).Methods(http.MethodPut)

	authed.HandleFunc("/orders", orderHandler.Checkout).Methods(http.MethodPost)
	authed.HandleFunc("/orders", orderHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id:[0-9]+}", orderHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id:[0-9]+}/status", orderHandler.UpdateStatus).Methods(http.MethodPut)
	authed.HandleFunc("/orders/{id:[0-9]+}/cancel", orderHandler.Cancel).Methods(http.MethodPut)

	authed.HandleFunc("/invoices", invoiceHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/invoices/{id:[0-9]+}", invoiceHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/invoices/{id:[0-9]+}/pay", invoiceHandler.Pay).Methods(http.MethodPost)

	return r
}
