package fleet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

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
	rg.GET("/airplane-types", h.ListAirplaneTypes)
	rg.POST("/airplane-types", h.CreateAirplaneType)

	rg.GET("/seat-classes", h.ListSeatClasses)
	rg.POST("/seat-classes", h.CreateSeatClass)

	rg.GET("/cabins", h.ListCabins)
	rg.POST("/cabins", h.CreateCabin)

	rg.GET("/airplanes", h.ListAirplanes)
	rg.GET("/airplanes/:id", h.GetAirplane)
	rg.POST("/airplanes", h.CreateAirplane)

	rg.GET("/crew", h.ListCrew)
	rg.POST("/crew", h.CreateCrew)
}

// bind decodes and validates the JSON body, writing the 400 itself on failure.
func bind(c *gin.Context, req any) bool {
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

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

func (h *Handler) ListAirplaneTypes(c *gin.Context) {
	items, err := h.service.ListAirplaneTypes(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) CreateAirplaneType(c *gin.Context) {
	var req NameRequest
	if !bind(c, &req) {
		return
	}
	item, err := h.service.CreateAirplaneType(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

func (h *Handler) ListSeatClasses(c *gin.Context) {
	items, err := h.service.ListSeatClasses(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) CreateSeatClass(c *gin.Context) {
	var req NameRequest
	if !bind(c, &req) {
		return
	}
	item, err := h.service.CreateSeatClass(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

func (h *Handler) ListCabins(c *gin.Context) {
	items, err := h.service.ListCabins(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) CreateCabin(c *gin.Context) {
	var req CreateCabinRequest
	if !bind(c, &req) {
		return
	}
	item, err := h.service.CreateCabin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUnknownSeatClass) {
			response.Error(c, http.StatusBadRequest, "INVALID_SEAT_CLASS", err.Error())
			return
		}
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

func (h *Handler) ListAirplanes(c *gin.Context) {
	items, err := h.service.ListAirplanes(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GetAirplane handles GET /api/v1/airplanes/:id
func (h *Handler) GetAirplane(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid airplane ID")
		return
	}
	item, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Airplane not found")
			return
		}
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *Handler) CreateAirplane(c *gin.Context) {
	var req CreateAirplaneRequest
	if !bind(c, &req) {
		return
	}
	item, err := h.service.CreateAirplane(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownCabin):
			response.Error(c, http.StatusBadRequest, "INVALID_CABIN", err.Error())
		case errors.Is(err, ErrUnknownType):
			response.Error(c, http.StatusBadRequest, "INVALID_AIRPLANE_TYPE", err.Error())
		default:
			internalError(c, err)
		}
		return
	}
	response.Success(c, http.StatusCreated, item)
}

func (h *Handler) ListCrew(c *gin.Context) {
	items, err := h.service.ListCrew(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) CreateCrew(c *gin.Context) {
	var req CreateCrewRequest
	if !bind(c, &req) {
		return
	}
	item, err := h.service.CreateCrew(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}
