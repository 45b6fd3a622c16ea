package seatfeed

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"airport/internal/middleware"
	"airport/internal/modules/flight"
	"airport/internal/pkg/response"
)

type Handler struct {
	hub      *Hub
	tokens   middleware.TokenValidator
	source   AvailabilitySource
	upgrader websocket.Upgrader
}

// NewHandler builds the websocket endpoint. allowOrigin decides cross-origin
// upgrades; nil accepts every origin.
func NewHandler(hub *Hub, tokens middleware.TokenValidator, source AvailabilitySource, allowOrigin func(origin string) bool) *Handler {
	return &Handler{
		hub:    hub,
		tokens: tokens,
		source: source,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowOrigin == nil || allowOrigin(origin)
			},
		},
	}
}

// RegisterRoutes mounts the feed on a group without header auth;
// browsers cannot set Authorization on websocket requests.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/flights/:id/seats/ws", h.Serve)
}

// Serve handles GET /api/v1/flights/:id/seats/ws?token=JWT
func (h *Handler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}
	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	flightID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || flightID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid flight ID")
		return
	}

	available, err := h.source.TicketsAvailable(c.Request.Context(), flightID)
	if err != nil {
		if errors.Is(err, flight.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Flight not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("seatfeed_upgrade_failed flight_id=%d user_id=%d error=%q", flightID, claims.UserID, err.Error())
		return
	}

	h.hub.ServeWS(conn, flightID, Event{
		Type:             EventSeatsUpdated,
		FlightID:         flightID,
		TicketsAvailable: available,
	})
}
