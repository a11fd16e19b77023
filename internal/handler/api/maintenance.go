package api

import (
	"net/http"

	reqdto "parish-reserve/internal/handler/dto/request"
	resdto "parish-reserve/internal/handler/dto/response"
	"parish-reserve/internal/handler/httperr"
	"parish-reserve/internal/pkg/clock"
	"parish-reserve/internal/pkg/errs"
	"parish-reserve/internal/usecase/commands"
	"parish-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MaintenanceHandler struct {
	maintenanceCommands commands.MaintenanceCommands
	maintenanceQueries  queries.MaintenanceQueries
	alertQueries        queries.AlertQueries
	clock               clock.Clock
}

func NewMaintenanceHandler(
	maintenanceCommands commands.MaintenanceCommands,
	maintenanceQueries queries.MaintenanceQueries,
	alertQueries queries.AlertQueries,
	clock clock.Clock,
) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceCommands: maintenanceCommands,
		maintenanceQueries:  maintenanceQueries,
		alertQueries:        alertQueries,
		clock:               clock,
	}
}

// @Summary Create maintenance schedule
// @Tags maintenance
// @Accept json
// @Produce json
// @Param request body reqdto.CreateScheduleRequest true "Schedule"
// @Success 201 {object} resdto.ScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /maintenance [post]
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req reqdto.CreateScheduleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	created, err := h.maintenanceCommands.CreateSchedule(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrResourceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
		case errs.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Schedule validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromScheduleView(queries.NewScheduleView(created, h.clock.Now())))
}

// @Summary List maintenance schedules
// @Tags maintenance
// @Produce json
// @Param resource_id query string false "Filter by resource"
// @Success 200 {array} resdto.ScheduleResponse
// @Router /maintenance [get]
func (h *MaintenanceHandler) List(c *gin.Context) {
	var resourceID *uuid.UUID
	if raw := c.Query("resource_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource_id format", nil)
			return
		}
		resourceID = &id
	}

	views, err := h.maintenanceQueries.List(c.Request.Context(), resourceID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	out := make([]*resdto.ScheduleResponse, len(views))
	for i, v := range views {
		out[i] = resdto.FromScheduleView(v)
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Complete a maintenance task
// @Description Record completion and advance the next due date by one frequency period
// @Tags maintenance
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 404 {object} map[string]string
// @Router /maintenance/{id}/complete [post]
func (h *MaintenanceHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid schedule ID format", nil)
		return
	}

	completed, err := h.maintenanceCommands.CompleteMaintenance(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrScheduleNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Maintenance schedule not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromScheduleView(queries.NewScheduleView(completed, h.clock.Now())))
}

// @Summary List maintenance alerts
// @Description Overdue and due-soon tasks, highest priority first
// @Tags maintenance
// @Produce json
// @Success 200 {array} resdto.AlertResponse
// @Router /maintenance/alerts [get]
func (h *MaintenanceHandler) Alerts(c *gin.Context) {
	views, err := h.alertQueries.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	out := make([]resdto.AlertResponse, len(views))
	for i, v := range views {
		out[i] = resdto.FromAlertView(v)
	}
	c.JSON(http.StatusOK, out)
}
