package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/service"

	"github.com/gorilla/mux"
)

type RentalHandler struct {
	rentalSvc service.RentalService
	ledgerSvc service.LedgerService
}

func NewRentalHandler(rentalSvc service.RentalService, ledgerSvc service.LedgerService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc, ledgerSvc: ledgerSvc}
}

type quoteRequest struct {
	VehicleID  int32     `json:"vehicle_id"`
	RentalType string    `json:"rental_type"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	Insurance  bool      `json:"insurance"`
}

func (q quoteRequest) toServiceRequest() service.QuoteRequest {
	return service.QuoteRequest{
		VehicleID:  q.VehicleID,
		RentalType: domain.RentalType(q.RentalType),
		StartAt:    q.StartAt,
		EndAt:      q.EndAt,
		Insurance:  q.Insurance,
	}
}

func (h *RentalHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	quote, err := h.rentalSvc.QuoteRental(r.Context(), req.toServiceRequest(), time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

type createRentalRequest struct {
	quoteRequest
	CustomerID int32 `json:"customer_id"`
}

type createRentalResponse struct {
	Rental     *domain.Rental `json:"rental"`
	PaymentURL string         `json:"payment_url"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rental, payURL, err := h.rentalSvc.CreateRental(r.Context(), req.CustomerID, req.toServiceRequest(), time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createRentalResponse{Rental: rental, PaymentURL: payURL})
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	rental, err := h.rentalSvc.GetRental(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type payDepositRequest struct {
	Amount  int64 `json:"amount"`
	Version int32 `json:"version"`
}

func (h *RentalHandler) PayDeposit(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req payDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rental, err := h.rentalSvc.PayDeposit(r.Context(), code, req.Amount, req.Version, time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type checkInRequest struct {
	OdoKm   int32    `json:"odo_km"`
	SoC     float64  `json:"soc"`
	Photos  []string `json:"photos"`
	Version int32    `json:"version"`
}

func (h *RentalHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	pickup := domain.PickupInfo{OdoKm: req.OdoKm, SoC: req.SoC, Photos: req.Photos}
	rental, err := h.rentalSvc.CheckIn(r.Context(), code, pickup, req.Version, time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type checkOutRequest struct {
	OdoKm     int32             `json:"odo_km"`
	SoC       float64           `json:"soc"`
	Photos    []string          `json:"photos"`
	ExtraFees []domain.ExtraFee `json:"extra_fees"`
	Version   int32             `json:"version"`
}

func (h *RentalHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req checkOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	ret := domain.ReturnInfo{OdoKm: req.OdoKm, SoC: req.SoC, Photos: req.Photos, ExtraFees: req.ExtraFees}
	rental, err := h.rentalSvc.CheckOut(r.Context(), code, ret, req.Version, time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type versionRequest struct {
	Version int32 `json:"version"`
}

func (h *RentalHandler) Settle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req versionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rental, err := h.rentalSvc.SettleRental(r.Context(), code, req.Version, time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req versionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rental, err := h.rentalSvc.CancelRental(r.Context(), code, req.Version, time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type rentalListResponse struct {
	Rentals []domain.Rental `json:"rentals"`
	Total   int32           `json:"total"`
}

func (h *RentalHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid customer id"})
		return
	}
	state := r.URL.Query().Get("state")
	page, pageSize := pagination(r)

	rentals, total, err := h.rentalSvc.ListRentals(r.Context(), customerID, state, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalListResponse{Rentals: rentals, Total: total})
}

func (h *RentalHandler) ListByStation(w http.ResponseWriter, r *http.Request) {
	stationID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid station id"})
		return
	}
	state := r.URL.Query().Get("state")
	page, pageSize := pagination(r)

	rentals, total, err := h.rentalSvc.ListStationRentals(r.Context(), stationID, state, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalListResponse{Rentals: rentals, Total: total})
}

func (h *RentalHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	rental, err := h.rentalSvc.GetRental(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}

	txs, err := h.ledgerSvc.GetRentalTransactions(r.Context(), rental.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	return int32(id), err
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 {
		pageSize = int32(v)
	}
	return page, pageSize
}
