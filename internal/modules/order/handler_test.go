package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"airport/internal/domain"
	"airport/internal/middleware"
	"airport/internal/pkg/pagination"
	"airport/internal/repository"
	"airport/internal/testutil"
)

type recordingNotifier struct {
	mu      sync.Mutex
	flights []int64
}

func (n *recordingNotifier) SeatsChanged(_ context.Context, flightIDs ...int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.flights = append(n.flights, flightIDs...)
}

func (n *recordingNotifier) calls() []int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]int64(nil), n.flights...)
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	fleet    *testutil.Fleet
	notifier *recordingNotifier
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	f := testutil.SeedFleet(t, db)
	n := &recordingNotifier{}
	svc := NewService(
		repository.NewOrderRepository(db),
		repository.NewFlightRepository(db),
		repository.NewFleetRepository(db),
		n,
	)
	h := NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		id, _ := strconv.ParseInt(c.GetHeader("X-Test-User"), 10, 64)
		middleware.SetUser(c, id, string(domain.RoleCustomer))
		c.Next()
	})
	h.RegisterRoutes(r.Group("/api/v1"))

	return &testEnv{router: r, db: db, fleet: f, notifier: n}
}

func (e *testEnv) do(method, path string, body any, userID int64) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", strconv.FormatInt(userID, 10))
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) ticket(cabin int64, seat int) map[string]any {
	return map[string]any{"flight": e.fleet.Flight.ID, "cabin": cabin, "seat": seat}
}

func (e *testEnv) order(userID int64, tickets ...map[string]any) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, "/api/v1/orders", map[string]any{"tickets": tickets}, userID)
}

type errorBody struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var out errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

type listEnvelope struct {
	Data struct {
		Items      []OrderListItem `json:"items"`
		Pagination pagination.Meta `json:"pagination"`
	} `json:"data"`
}

func (e *testEnv) list(t *testing.T, userID int64, query string) listEnvelope {
	t.Helper()
	rr := e.do(http.MethodGet, "/api/v1/orders"+query, nil, userID)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var out listEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func (e *testEnv) ticketCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&domain.Ticket{}).Count(&n).Error)
	return n
}

func TestCreateOrder_TwoSeatsReduceAvailability(t *testing.T) {
	e := setupTestRouter(t)
	user := e.fleet.User.ID

	rr := e.order(user, e.ticket(e.fleet.EconomyA.ID, 1), e.ticket(e.fleet.EconomyA.ID, 2))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		Data OrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotZero(t, created.Data.ID)
	require.Len(t, created.Data.Tickets, 2)
	assert.Equal(t, 2, created.Data.Tickets[1].Seat)

	orders := e.list(t, user, "")
	require.Len(t, orders.Data.Items, 1)
	tickets := orders.Data.Items[0].Tickets
	require.Len(t, tickets, 2)
	assert.Equal(t, "Economy", tickets[0].Cabin)
	assert.Equal(t, "Boryspil-Balice", tickets[0].Flight.Route)
	assert.Equal(t, 28, tickets[0].Flight.TicketsAvailable)

	assert.Equal(t, []int64{e.fleet.Flight.ID}, e.notifier.calls())
}

func TestCreateOrder_SecondSeatAlreadySold(t *testing.T) {
	e := setupTestRouter(t)
	user := e.fleet.User.ID

	require.Equal(t, http.StatusCreated, e.order(user, e.ticket(e.fleet.EconomyA.ID, 5)).Code)

	rr := e.order(user, e.ticket(e.fleet.EconomyA.ID, 6), e.ticket(e.fleet.EconomyA.ID, 5))
	require.Equal(t, http.StatusConflict, rr.Code, rr.Body.String())
	body := decodeError(t, rr)
	assert.Equal(t, "DUPLICATE_SEAT", body.Error.Code)
	assert.Equal(t, "1", body.Error.Details["ticket"])

	assert.Equal(t, int64(1), e.ticketCount(t))
	var orders int64
	require.NoError(t, e.db.Model(&domain.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(1), orders)

	// seat 6 was rolled back and is still for sale
	require.Equal(t, http.StatusCreated, e.order(user, e.ticket(e.fleet.EconomyA.ID, 6)).Code)
	assert.Equal(t, []int64{e.fleet.Flight.ID, e.fleet.Flight.ID}, e.notifier.calls())
}

func TestCreateOrder_ValidationErrors(t *testing.T) {
	e := setupTestRouter(t)
	user := e.fleet.User.ID

	tests := []struct {
		name        string
		tickets     []map[string]any
		wantStatus  int
		wantCode    string
		wantMessage string
		wantTicket  string
	}{
		{
			name:        "cabin not on airplane",
			tickets:     []map[string]any{e.ticket(e.fleet.BusinessA.ID, 1)},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "INVALID_CABIN",
			wantMessage: "Airplane has no cabin 'Business A'",
			wantTicket:  "0",
		},
		{
			name:        "seat past cabin size",
			tickets:     []map[string]any{e.ticket(e.fleet.EconomyA.ID, 30), e.ticket(e.fleet.EconomyA.ID, 31)},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "SEAT_OUT_OF_RANGE",
			wantMessage: "Seat number must be in range (1, 30)",
			wantTicket:  "1",
		},
		{
			name:        "seat zero",
			tickets:     []map[string]any{e.ticket(e.fleet.EconomyA.ID, 0)},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "SEAT_OUT_OF_RANGE",
			wantMessage: "Seat number must be in range (1, 30)",
			wantTicket:  "0",
		},
		{
			name:       "unknown flight",
			tickets:    []map[string]any{{"flight": 999, "cabin": e.fleet.EconomyA.ID, "seat": 1}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_FLIGHT",
			wantTicket: "0",
		},
		{
			name:       "unknown cabin",
			tickets:    []map[string]any{e.ticket(999, 1)},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_CABIN",
			wantTicket: "0",
		},
		{
			name:       "empty order",
			tickets:    []map[string]any{},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := e.order(user, tt.tickets...)
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())

			body := decodeError(t, rr)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body.Error.Message)
			}
			if tt.wantTicket != "" {
				assert.Equal(t, tt.wantTicket, body.Error.Details["ticket"])
			}
		})
	}

	assert.Zero(t, e.ticketCount(t))
	assert.Empty(t, e.notifier.calls())
}

func TestCreateOrder_InvalidJSON(t *testing.T) {
	e := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_JSON", decodeError(t, rr).Error.Code)
}

func TestOrders_ScopedToCurrentUser(t *testing.T) {
	e := setupTestRouter(t)
	customer, admin := e.fleet.User.ID, e.fleet.Admin.ID

	for seat := 1; seat <= 3; seat++ {
		require.Equal(t, http.StatusCreated, e.order(customer, e.ticket(e.fleet.EconomyA.ID, seat)).Code)
	}
	rr := e.order(admin, e.ticket(e.fleet.EconomyA.ID, 20))
	require.Equal(t, http.StatusCreated, rr.Code)
	var adminOrder struct {
		Data OrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &adminOrder))

	page := e.list(t, customer, "?page=1&page_size=2")
	assert.Len(t, page.Data.Items, 2)
	assert.Equal(t, int64(3), page.Data.Pagination.Total)
	assert.Equal(t, 2, page.Data.Pagination.TotalPages)

	page2 := e.list(t, customer, "?page=2&page_size=2")
	require.Len(t, page2.Data.Items, 1)
	assert.Equal(t, 1, page2.Data.Items[0].Tickets[0].Seat)

	for _, o := range append(page.Data.Items, page2.Data.Items...) {
		assert.NotEqual(t, adminOrder.Data.ID, o.ID)
	}

	adminList := e.list(t, admin, "")
	require.Len(t, adminList.Data.Items, 1)
	assert.Equal(t, 20, adminList.Data.Items[0].Tickets[0].Seat)
	assert.Equal(t, 26, adminList.Data.Items[0].Tickets[0].Flight.TicketsAvailable)

	path := fmt.Sprintf("/api/v1/orders/%d", adminOrder.Data.ID)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, path, nil, customer).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, path, nil, admin).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodGet, "/api/v1/orders/abc", nil, admin).Code)
}
