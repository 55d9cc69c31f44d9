package http

import (
	"encoding/json"
	"net/http"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/service"
)

type CustomerHandler struct {
	customerSvc service.CustomerService
	ledgerSvc   service.LedgerService
	noteSvc     service.NotificationService
}

func NewCustomerHandler(customerSvc service.CustomerService, ledgerSvc service.LedgerService, noteSvc service.NotificationService) *CustomerHandler {
	return &CustomerHandler{customerSvc: customerSvc, ledgerSvc: ledgerSvc, noteSvc: noteSvc}
}

func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var customer domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if customer.Email == "" || customer.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name and email are required"})
		return
	}
	if err := h.customerSvc.Register(r.Context(), &customer); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid customer id"})
		return
	}
	customer, err := h.customerSvc.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) LedgerSummary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid customer id"})
		return
	}
	summary, err := h.ledgerSvc.GetLedgerSummary(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type transactionListResponse struct {
	Transactions []domain.LedgerTransaction `json:"transactions"`
	Total        int32                      `json:"total"`
}

func (h *CustomerHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid customer id"})
		return
	}
	page, pageSize := pagination(r)

	txs, total, err := h.ledgerSvc.GetTransactions(r.Context(), id, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionListResponse{Transactions: txs, Total: total})
}

type notificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int32                 `json:"total"`
}

func (h *CustomerHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid customer id"})
		return
	}
	page, pageSize := pagination(r)

	notes, total, err := h.noteSvc.GetNotifications(r.Context(), id, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Notifications: notes, Total: total})
}

func (h *CustomerHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid customer id"})
		return
	}
	noteID, err := pathID(r, "note_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid notification id"})
		return
	}
	if err := h.noteSvc.MarkAsRead(r.Context(), customerID, noteID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
