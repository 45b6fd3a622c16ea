package network

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"airport/internal/middleware"
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
	rg.GET("/countries", h.ListCountries)
	rg.POST("/countries", h.CreateCountry)
	rg.POST("/countries/:id/upload-image", middleware.AdminOnly(), h.UploadCountryImage)

	rg.GET("/airports", h.ListAirports)
	rg.POST("/airports", h.CreateAirport)

	rg.GET("/routes", h.ListRoutes)
	rg.GET("/routes/:id", h.GetRoute)
	rg.POST("/routes", h.CreateRoute)
}

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

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

func (h *Handler) ListCountries(c *gin.Context) {
	items, err := h.service.ListCountries(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) CreateCountry(c *gin.Context) {
	var req CreateCountryRequest
	if !bind(c, &req) {
		return
	}
	item, err := h.service.CreateCountry(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// UploadCountryImage handles POST /api/v1/countries/:id/upload-image (multipart field "image").
func (h *Handler) UploadCountryImage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "Image file is required")
		return
	}

	item, err := h.service.UploadCountryImage(c.Request.Context(), id, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Country not found")
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File size exceeds 5 MB limit")
		case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, "INVALID_FORMAT", err.Error())
		default:
			internalError(c, err)
		}
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *Handler) ListAirports(c *gin.Context) {
	items, err := h.service.ListAirports(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) CreateAirport(c *gin.Context) {
	var req CreateAirportRequest
	if !bind(c, &req) {
		return
	}
	item, err := h.service.CreateAirport(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUnknownCountry) {
			response.Error(c, http.StatusBadRequest, "INVALID_COUNTRY", err.Error())
			return
		}
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

func (h *Handler) ListRoutes(c *gin.Context) {
	items, err := h.service.ListRoutes(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) GetRoute(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
			return
		}
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *Handler) CreateRoute(c *gin.Context) {
	var req CreateRouteRequest
	if !bind(c, &req) {
		return
	}
	item, err := h.service.CreateRoute(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSameAirport):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrUnknownAirport):
			response.Error(c, http.StatusBadRequest, "INVALID_AIRPORT", err.Error())
		default:
			internalError(c, err)
		}
		return
	}
	response.Success(c, http.StatusCreated, item)
}
