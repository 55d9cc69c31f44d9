package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every handler onto the /api tree.
func NewRouter(rental *RentalHandler, catalog *CatalogHandler, customer *CustomerHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Quotes and rentals
	api.HandleFunc("/quotes", rental.Quote).Methods("POST")
	api.HandleFunc("/rentals", rental.Create).Methods("POST")
	api.HandleFunc("/rentals/{code}", rental.Get).Methods("GET")
	api.HandleFunc("/rentals/{code}/deposit", rental.PayDeposit).Methods("POST")
	api.HandleFunc("/rentals/{code}/pickup", rental.CheckIn).Methods("POST")
	api.HandleFunc("/rentals/{code}/return", rental.CheckOut).Methods("POST")
	api.HandleFunc("/rentals/{code}/settlement", rental.Settle).Methods("POST")
	api.HandleFunc("/rentals/{code}/cancel", rental.Cancel).Methods("POST")
	api.HandleFunc("/rentals/{code}/transactions", rental.Transactions).Methods("GET")

	// Stations and vehicles
	api.HandleFunc("/stations", catalog.ListStations).Methods("GET")
	api.HandleFunc("/stations", catalog.AddStation).Methods("POST")
	api.HandleFunc("/stations/{id}", catalog.GetStation).Methods("GET")
	api.HandleFunc("/stations/{id}/vehicles", catalog.ListVehicles).Methods("GET")
	api.HandleFunc("/stations/{id}/rentals", rental.ListByStation).Methods("GET")
	api.HandleFunc("/vehicles", catalog.AddVehicle).Methods("POST")
	api.HandleFunc("/vehicles/{id}", catalog.GetVehicle).Methods("GET")
	api.HandleFunc("/vehicles/{id}", catalog.UpdateVehicle).Methods("PUT")
	api.HandleFunc("/vehicles/{id}/status", catalog.SetVehicleStatus).Methods("PUT")

	// Customers
	api.HandleFunc("/customers", customer.Register).Methods("POST")
	api.HandleFunc("/customers/{id}", customer.Get).Methods("GET")
	api.HandleFunc("/customers/{id}/rentals", rental.ListByCustomer).Methods("GET")
	api.HandleFunc("/customers/{id}/ledger", customer.LedgerSummary).Methods("GET")
	api.HandleFunc("/customers/{id}/transactions", customer.Transactions).Methods("GET")
	api.HandleFunc("/customers/{id}/notifications", customer.Notifications).Methods("GET")
	api.HandleFunc("/customers/{id}/notifications/{note_id}/read", customer.MarkNotificationRead).Methods("POST")

	return r
}
