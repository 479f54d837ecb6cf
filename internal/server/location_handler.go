package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/waypost/waypost/internal/observability"
	"github.com/waypost/waypost/internal/store"
)

// locationRequest is the create payload. Coordinates must arrive as JSON
// numbers; anything else is rejected with 400 rather than coerced, so a
// malformed report can never persist NaN or garbage.
type locationRequest struct {
	Latitude  json.Number `json:"latitude" validate:"required,numeric"`
	Longitude json.Number `json:"longitude" validate:"required,numeric"`
}

// locationResponse mirrors the stored record on the wire. Coordinates are
// emitted as JSON numbers carrying the exact decimal text.
type locationResponse struct {
	ID        int64       `json:"id"`
	Latitude  json.Number `json:"latitude"`
	Longitude json.Number `json:"longitude"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type errorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

// LocationHandler serves the /api/location resource: POST records a
// position, GET answers with the latest one. Create is the only mutating
// operation; reads are idempotent.
type LocationHandler struct {
	store    store.LocationStore
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewLocationHandler creates the handler over the given store.
func NewLocationHandler(locationStore store.LocationStore, logger zerolog.Logger) *LocationHandler {
	return &LocationHandler{
		store:    locationStore,
		validate: validator.New(),
		logger:   logger,
	}
}

// ServeHTTP dispatches by method and records request metrics.
func (h *LocationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	switch r.Method {
	case http.MethodPost:
		h.handleCreate(rw, r)
	case http.MethodGet:
		h.handleReadLatest(rw, r)
	default:
		rw.Header().Set("Allow", "GET, POST")
		writeJSON(rw, http.StatusMethodNotAllowed, errorResponse{Error: "Method Not Allowed"})
	}

	observability.ObserveRequestLatency(start)
	observability.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rw.status)).Inc()
	h.logger.Info().
		Str("method", r.Method).
		Int("status", rw.status).
		Dur("duration", time.Since(start)).
		Msg("Handled location request")
}

// handleCreate validates the payload and inserts a new immutable record.
func (h *LocationHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body", Message: err.Error()})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body", Message: err.Error()})
		return
	}

	latitude, longitude, err := parseCoordinates(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body", Message: err.Error()})
		return
	}

	record, err := h.store.CreateLocation(r.Context(), latitude, longitude)
	if err != nil {
		observability.StoreErrors.Inc()
		h.logger.Error().Err(err).Msg("Failed to insert location record")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to update location", Message: err.Error()})
		return
	}

	observability.LocationsCreated.Inc()
	writeJSON(w, http.StatusCreated, locationResponse{
		ID:        record.ID,
		Latitude:  json.Number(record.Latitude.String()),
		Longitude: json.Number(record.Longitude.String()),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	})
}

// handleReadLatest answers with the newest record, or 404 when the store is
// still empty.
func (h *LocationHandler) handleReadLatest(w http.ResponseWriter, r *http.Request) {
	record, err := h.store.LatestLocation(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNoLocation) {
			writeJSON(w, http.StatusNotFound, errorResponse{Message: "No location found"})
			return
		}
		observability.StoreErrors.Inc()
		h.logger.Error().Err(err).Msg("Failed to query latest location")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch location", Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, locationResponse{
		ID:        record.ID,
		Latitude:  json.Number(record.Latitude.String()),
		Longitude: json.Number(record.Longitude.String()),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	})
}

// parseCoordinates converts the validated payload to exact decimals and
// checks geographic bounds.
func parseCoordinates(req locationRequest) (decimal.Decimal, decimal.Decimal, error) {
	latitude, err := decimal.NewFromString(req.Latitude.String())
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("latitude is not numeric: %w", err)
	}
	longitude, err := decimal.NewFromString(req.Longitude.String())
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("longitude is not numeric: %w", err)
	}

	if latitude.Abs().GreaterThan(maxLatitude) {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("latitude %s out of range [-90, 90]", latitude)
	}
	if longitude.Abs().GreaterThan(maxLongitude) {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("longitude %s out of range [-180, 180]", longitude)
	}

	return latitude, longitude, nil
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
