package httpapi

import (
	"errors"
	"net/http"

	"coaching-calendar/internal/agenda"
	"coaching-calendar/internal/calls"
	"coaching-calendar/internal/clients"
	"coaching-calendar/internal/schedule"
	"coaching-calendar/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, map the
// error taxonomy to status codes.

type Handlers struct {
	Calls   *calls.Service
	Clients clients.Directory
	Agenda  *agenda.Service
}

// --- Slots ---

type slotResponse struct {
	Time    string `json:"time"`
	Display string `json:"display"`
}

// ListSlots returns the ordered daily grid of bookable start times.
func (h Handlers) ListSlots(c *gin.Context) {
	grid := schedule.Slots()
	out := make([]slotResponse, len(grid))
	for i, s := range grid {
		out[i] = slotResponse{Time: s, Display: schedule.FormatClock(s)}
	}
	c.JSON(http.StatusOK, gin.H{"slots": out})
}

// --- Calls ---

// ListCalls returns the effective calls for a date: one-time calls booked on
// it plus weekly recurring calls whose weekday matches.
func (h Handlers) ListCalls(c *gin.Context) {
	date := c.Query("date")
	if !calls.ValidDate(date) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	day, err := h.Calls.ForDate(c.Request.Context(), date)
	if err != nil {
		logger.FromGin(c).Error("list calls failed", "date", date, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "list calls failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"calls": day})
}

type bookCallRequest struct {
	ClientID string `json:"client_id"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// BookCall places a new call. Conflicts return 409 with the list of
// conflicting calls so the UI can name them.
func (h Handlers) BookCall(c *gin.Context) {
	var req bookCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.ClientID == "" || req.Type == "" || req.Date == "" || req.Time == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "client_id, type, date, time required"})
		return
	}

	booked, err := h.Calls.Book(c.Request.Context(), calls.BookingRequest{
		ClientID: req.ClientID,
		Type:     schedule.CallType(req.Type),
		Date:     req.Date,
		Time:     req.Time,
	})
	if err != nil {
		h.bookingError(c, err)
		return
	}

	h.Agenda.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"call": booked})
}

func (h Handlers) bookingError(c *gin.Context, err error) {
	var conflict *calls.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":             "slot not available",
			"conflicting_calls": conflict.Conflicts,
		})
	case errors.Is(err, calls.ErrBookingBusy):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "another booking is in progress, retry"})
	case errors.Is(err, calls.ErrInvalidSlot):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "time is not a bookable slot"})
	case errors.Is(err, calls.ErrInvalidDate):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
	case errors.Is(err, schedule.ErrUnknownCallType):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "type must be onboarding or followup"})
	case errors.Is(err, clients.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "client not found"})
	default:
		logger.FromGin(c).Error("booking failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "booking failed"})
	}
}

// DeleteCall removes a call by id. Deletes are idempotent, so unknown ids
// still return 204.
func (h Handlers) DeleteCall(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}
	if err := h.Calls.Delete(c.Request.Context(), id); err != nil {
		logger.FromGin(c).Error("delete call failed", "id", id, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	h.Agenda.Invalidate(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// --- Agenda ---

// GetAgenda returns the per-slot day view with the daily summary.
func (h Handlers) GetAgenda(c *gin.Context) {
	date := c.Query("date")
	if !calls.ValidDate(date) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	view, err := h.Agenda.Day(c.Request.Context(), date)
	if err != nil {
		logger.FromGin(c).Error("agenda failed", "date", date, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "agenda failed"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// --- Clients ---

func (h Handlers) ListClients(c *gin.Context) {
	list, err := h.Clients.List(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("list clients failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "list clients failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": list})
}
