package flight

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"airport/internal/pkg/pagination"
	"airport/internal/pkg/response"
	"airport/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects rg to be authenticated and admin-guarded for writes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	flights := rg.Group("/flights")
	{
		flights.GET("", h.List)
		flights.GET("/:id", h.Get)
		flights.POST("", h.Create)
		flights.PUT("/:id", h.Update)
		flights.PATCH("/:id", h.Patch)
		flights.DELETE("/:id", h.Delete)
	}
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid flight ID")
		return 0, false
	}
	return id, true
}

func bind(c *gin.Context, req *FlightRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", errs)
		return false
	}
	return true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Flight not found")
	case errors.Is(err, ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", err.Error())
	case errors.Is(err, ErrInvalidSchedule):
		response.Error(c, http.StatusBadRequest, "INVALID_SCHEDULE", err.Error())
	case errors.Is(err, ErrHasTickets):
		response.Error(c, http.StatusConflict, "FLIGHT_HAS_TICKETS", err.Error())
	case errors.Is(err, ErrUnknownReference), errors.Is(err, ErrUnknownCrew):
		response.Error(c, http.StatusBadRequest, "INVALID_REFERENCE", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// List handles GET /api/v1/flights?from=&to=&date=YYYY-MM-DD&page=&page_size=
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "Invalid query parameters")
		return
	}
	p := pagination.FromQuery(c)

	items, total, err := h.service.List(c.Request.Context(), q, p)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, items, p.Meta(total))
}

// Get handles GET /api/v1/flights/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) Create(c *gin.Context) {
	var req FlightRequest
	if !bind(c, &req) {
		return
	}
	d, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, d)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req FlightRequest
	if !bind(c, &req) {
		return
	}
	d, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) Patch(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req FlightPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", errs)
		return
	}
	d, err := h.service.Patch(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
