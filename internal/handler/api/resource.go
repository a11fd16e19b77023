package api

import (
	"net/http"

	"parish-reserve/internal/domain/resource"
	reqdto "parish-reserve/internal/handler/dto/request"
	resdto "parish-reserve/internal/handler/dto/response"
	"parish-reserve/internal/handler/httperr"
	"parish-reserve/internal/pkg/errs"
	"parish-reserve/internal/usecase/commands"
	"parish-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResourceHandler struct {
	resourceCommands commands.ResourceCommands
	resourceQueries  queries.ResourceQueries
}

func NewResourceHandler(resourceCommands commands.ResourceCommands, resourceQueries queries.ResourceQueries) *ResourceHandler {
	return &ResourceHandler{
		resourceCommands: resourceCommands,
		resourceQueries:  resourceQueries,
	}
}

// @Summary Create resource
// @Description Register a bookable asset in the catalog
// @Tags resources
// @Accept json
// @Produce json
// @Param request body reqdto.CreateResourceRequest true "Resource"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	var req reqdto.CreateResourceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	created, err := h.resourceCommands.CreateResource(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Resource validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromResourceView(queries.NewResourceView(created)))
}

// @Summary Get resource
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.resourceQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrResourceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromResourceView(view))
}

// @Summary List resources
// @Tags resources
// @Produce json
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Success 200 {array} resdto.ResourceResponse
// @Router /resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	var filters queries.ResourceFilters
	if raw := c.Query("category"); raw != "" {
		category := resource.Category(raw)
		if !category.IsValid() {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.Newf("unknown category %q", raw), "Invalid category filter", nil)
			return
		}
		filters.Category = &category
	}
	if raw := c.Query("status"); raw != "" {
		status := resource.Status(raw)
		if !status.IsValid() {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.Newf("unknown status %q", raw), "Invalid status filter", nil)
			return
		}
		filters.Status = &status
	}

	views, err := h.resourceQueries.List(c.Request.Context(), filters)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	out := make([]*resdto.ResourceResponse, len(views))
	for i, v := range views {
		out[i] = resdto.FromResourceView(v)
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Update resource
// @Tags resources
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateResourceRequest true "Fields to update"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [patch]
func (h *ResourceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.UpdateResourceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	updated, err := h.resourceCommands.UpdateResource(c.Request.Context(), id, req.ToParams())
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrResourceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
		case errs.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Resource validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromResourceView(queries.NewResourceView(updated)))
}

// @Summary Delete resource
// @Description Delete a resource; its bookings and maintenance schedules are removed with it
// @Tags resources
// @Param id path string true "Resource ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	if err := h.resourceCommands.DeleteResource(c.Request.Context(), id); err != nil {
		switch {
		case errs.Is(err, errs.ErrResourceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
