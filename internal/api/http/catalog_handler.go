package http

import (
	"encoding/json"
	"net/http"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/service"
)

type CatalogHandler struct {
	catalogSvc service.CatalogService
}

func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

func (h *CatalogHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.catalogSvc.ListStations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stations)
}

func (h *CatalogHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid station id"})
		return
	}
	station, err := h.catalogSvc.GetStation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, station)
}

func (h *CatalogHandler) AddStation(w http.ResponseWriter, r *http.Request) {
	var station domain.Station
	if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.catalogSvc.AddStation(r.Context(), &station); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, station)
}

func (h *CatalogHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	stationID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid station id"})
		return
	}
	status := domain.VehicleStatus(r.URL.Query().Get("status"))

	vehicles, err := h.catalogSvc.ListVehicles(r.Context(), stationID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *CatalogHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid vehicle id"})
		return
	}
	vehicle, err := h.catalogSvc.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *CatalogHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.catalogSvc.AddVehicle(r.Context(), &vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *CatalogHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid vehicle id"})
		return
	}
	var vehicle domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	vehicle.ID = id
	if err := h.catalogSvc.UpdateVehicle(r.Context(), &vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

type vehicleStatusRequest struct {
	Status string `json:"status"`
}

func (h *CatalogHandler) SetVehicleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid vehicle id"})
		return
	}
	var req vehicleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.catalogSvc.SetVehicleStatus(r.Context(), id, domain.VehicleStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
