package api

import (
	"net/http"
	"time"

	reqdto "parish-reserve/internal/handler/dto/request"
	resdto "parish-reserve/internal/handler/dto/response"
	"parish-reserve/internal/handler/httperr"
	"parish-reserve/internal/pkg/errs"
	"parish-reserve/internal/usecase/commands"
	"parish-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Reserve a resource for a time window, optionally expanding a recurrence rule into a series
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking"
// @Success 201 {object} resdto.BookingSeriesResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	params, err := req.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid recurrence rule", nil)
		return
	}

	result, err := h.bookingCommands.CreateBooking(c.Request.Context(), params)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrResourceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
		case errs.Is(err, errs.ErrResourceRetired):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Resource is retired", nil)
		case errs.Is(err, errs.ErrCapacityExceeded):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Attendee count exceeds resource capacity", nil)
		case errs.Is(err, errs.ErrQuantityExhausted):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "All units of the resource are taken for that window", nil)
		case errs.Is(err, errs.ErrBookingConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking overlaps an existing reservation", nil)
		case errs.Is(err, errs.ErrInvalidInterval), errs.Is(err, errs.ErrInvalidRecurrence):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking window", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	views := make([]*queries.BookingView, len(result.Bookings))
	for i, b := range result.Bookings {
		views[i] = queries.NewBookingView(b)
	}
	c.JSON(http.StatusCreated, resdto.FromBookingViews(views))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings for a resource
// @Tags bookings
// @Produce json
// @Param resource_id query string true "Resource ID"
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Success 200 {array} resdto.BookingResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Query("resource_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "resource_id query parameter is required", nil)
		return
	}

	filters := queries.BookingFilters{ResourceID: resourceID}
	if raw := c.Query("from"); raw != "" {
		from, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, parseErr, "Invalid from timestamp", nil)
			return
		}
		filters.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, parseErr, "Invalid to timestamp", nil)
			return
		}
		filters.To = to
	}

	views, err := h.bookingQueries.ListByResource(c.Request.Context(), filters)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	out := make([]*resdto.BookingResponse, len(views))
	for i, v := range views {
		out[i] = resdto.FromBookingView(v)
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Update booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Fields to update"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id} [patch]
func (h *BookingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.UpdateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	updated, err := h.bookingCommands.UpdateBooking(c.Request.Context(), id, req.ToParams())
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errs.Is(err, errs.ErrBookingCancelled):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Booking is cancelled", nil)
		case errs.Is(err, errs.ErrQuantityExhausted):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "All units of the resource are taken for that window", nil)
		case errs.Is(err, errs.ErrBookingConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking overlaps an existing reservation", nil)
		case errs.Is(err, errs.ErrInvalidInterval):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking window", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(queries.NewBookingView(updated)))
}

// @Summary Cancel booking
// @Description Mark the booking cancelled and release its conflict links
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	cancelled, err := h.bookingCommands.CancelBooking(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errs.Is(err, errs.ErrBookingCancelled):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Booking is already cancelled", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(queries.NewBookingView(cancelled)))
}
