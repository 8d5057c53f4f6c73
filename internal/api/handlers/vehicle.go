package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"github.com/Jarecamang/ParkingPassport/internal/service"
	"github.com/go-chi/chi/v5"
)

type VehicleHandler struct {
	vehicleService *service.VehicleService
}

func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

type CreateVehicleRequest struct {
	PlateNumber string `json:"plateNumber"`
	Apartment   string `json:"apartment"`
	OwnerName   string `json:"ownerName"`
	Notes       string `json:"notes"`
}

// UpdateVehicleRequest is a partial update; absent fields are untouched.
type UpdateVehicleRequest struct {
	PlateNumber *string `json:"plateNumber"`
	Apartment   *string `json:"apartment"`
	OwnerName   *string `json:"ownerName"`
	Notes       *string `json:"notes"`
}

type LookupResponse struct {
	Allowed bool            `json:"allowed"`
	Vehicle *domain.Vehicle `json:"vehicle,omitempty"`
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicleService.GetAll(r.Context())
	if err != nil {
		log.Printf("ERROR [VehicleHandler.List] %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to get vehicles")
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.GetByID(r.Context(), id)
	if err != nil {
		h.respondVehicleError(w, "Get", err, "Failed to get vehicle")
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vehicle, err := h.vehicleService.Create(r.Context(), service.CreateVehicleInput{
		PlateNumber: req.PlateNumber,
		Apartment:   req.Apartment,
		OwnerName:   req.OwnerName,
		Notes:       req.Notes,
	})
	if err != nil {
		h.respondVehicleError(w, "Create", err, "Failed to create vehicle")
		return
	}

	respondJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vehicle, err := h.vehicleService.Update(r.Context(), id, service.UpdateVehicleInput{
		PlateNumber: req.PlateNumber,
		Apartment:   req.Apartment,
		OwnerName:   req.OwnerName,
		Notes:       req.Notes,
	})
	if err != nil {
		h.respondVehicleError(w, "Update", err, "Failed to update vehicle")
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.vehicleService.Delete(r.Context(), id); err != nil {
		log.Printf("ERROR [VehicleHandler.Delete] %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Lookup is the unauthenticated resident-facing check. Every call writes one
// audit entry whether or not the plate is allowed.
func (h *VehicleHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	plate := chi.URLParam(r, "plate")

	result, err := h.vehicleService.Lookup(r.Context(), plate)
	if err != nil {
		if errors.Is(err, domain.ErrPlateRequired) {
			respondError(w, http.StatusBadRequest, "Plate number is required")
			return
		}
		log.Printf("ERROR [VehicleHandler.Lookup] %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to check plate number")
		return
	}

	respondJSON(w, http.StatusOK, LookupResponse{
		Allowed: result.Allowed,
		Vehicle: result.Vehicle,
	})
}

func (h *VehicleHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.vehicleService.History(r.Context(), limit)
	if err != nil {
		log.Printf("ERROR [VehicleHandler.History] %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to get search history")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

func (h *VehicleHandler) respondVehicleError(w http.ResponseWriter, op string, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrPlateRequired), errors.Is(err, domain.ErrApartmentRequired):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicatePlate):
		respondError(w, http.StatusConflict, "A vehicle with this plate number already exists")
	case errors.Is(err, domain.ErrVehicleNotFound):
		respondError(w, http.StatusNotFound, "Vehicle not found")
	default:
		log.Printf("ERROR [VehicleHandler.%s] %v", op, err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return 0, false
	}
	return uint(id), true
}
