package order

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"airport/internal/domain"
	"airport/internal/middleware"
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

// RegisterRoutes expects rg to be authenticated.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
	}
}

// fail attaches the offending ticket index when the error carries one.
func fail(c *gin.Context, status int, code, message string, err error) {
	var te *TicketError
	if errors.As(err, &te) {
		response.ErrorWithDetails(c, status, code, message, map[string]string{"ticket": strconv.Itoa(te.Index)})
		return
	}
	response.Error(c, status, code, message)
}

func writeError(c *gin.Context, err error) {
	var invalidCabin *domain.InvalidCabinError
	var outOfRange *domain.SeatOutOfRangeError
	var duplicate *domain.DuplicateSeatError

	switch {
	case errors.As(err, &invalidCabin):
		fail(c, http.StatusBadRequest, "INVALID_CABIN", invalidCabin.Error(), err)
	case errors.As(err, &outOfRange):
		fail(c, http.StatusBadRequest, "SEAT_OUT_OF_RANGE", outOfRange.Error(), err)
	case errors.As(err, &duplicate):
		fail(c, http.StatusConflict, "DUPLICATE_SEAT", duplicate.Error(), err)
	case errors.Is(err, ErrUnknownFlight), errors.Is(err, domain.ErrFlightNotFound):
		fail(c, http.StatusBadRequest, "INVALID_FLIGHT", ErrUnknownFlight.Error(), err)
	case errors.Is(err, ErrUnknownCabin), errors.Is(err, domain.ErrCabinNotFound):
		fail(c, http.StatusBadRequest, "INVALID_CABIN", ErrUnknownCabin.Error(), err)
	case errors.Is(err, ErrNoTickets):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// Create handles POST /api/v1/orders
func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", errs)
		return
	}

	resp, err := h.service.CreateOrder(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

// List handles GET /api/v1/orders?page=&page_size=
func (h *Handler) List(c *gin.Context) {
	p := pagination.FromQuery(c)
	items, total, err := h.service.ListOrders(c.Request.Context(), middleware.UserID(c), p)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, items, p.Meta(total))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", fmt.Sprintf("Invalid order ID %q", c.Param("id")))
		return
	}
	item, err := h.service.GetOrder(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}
