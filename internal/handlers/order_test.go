package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticksy/internal/config"
	"ticksy/internal/kafka"
	"ticksy/internal/logger"
	"ticksy/internal/middleware"
	"ticksy/internal/models"
	"ticksy/internal/services"
	"ticksy/internal/storage"
)

type orderTestEnv struct {
	router *gin.Engine
	store  *storage.InMemoryStore
	token  string
	ticket *models.Ticket
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	t.Setenv("LOG_DIR", t.TempDir())
	log := logger.NewLogger()
	t.Cleanup(log.Close)
	ctx := context.Background()

	store := storage.NewInMemoryStore()
	producer, err := kafka.NewProducer(nil, true, log)
	require.NoError(t, err)

	authService := services.NewAuthService(store, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}, log)
	orderService := services.NewOrderService(store, producer, log)
	orderHandler := NewOrderHandler(orderService)

	resp, err := authService.Signup(ctx, &models.SignupRequest{
		FirstName: "Brian",
		LastName:  "Otieno",
		Email:     "attendee@example.com",
		Phone:     "254700000002",
		Password:  "secret123",
	})
	require.NoError(t, err)

	event := &models.Event{
		Title:       "Nairobi Jazz Night",
		StartTime:   time.Now().Add(48 * time.Hour),
		EndTime:     time.Now().Add(52 * time.Hour),
		IsApproved:  true,
		Status:      models.EventActive,
		OrganizerID: 99,
	}
	require.NoError(t, store.CreateEvent(ctx, event))

	ticket := &models.Ticket{
		EventID:  event.ID,
		Type:     "Regular",
		Price:    decimal.NewFromInt(2000),
		Quantity: 5,
	}
	require.NoError(t, store.CreateTicket(ctx, ticket))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	orders := router.Group("/orders", middleware.RequireAuth(authService, store, log), middleware.RequireRole(models.RoleAttendee))
	{
		orders.POST("", orderHandler.PlaceOrder)
		orders.GET("/:id", orderHandler.GetOrder)
	}

	return &orderTestEnv{
		router: router,
		store:  store,
		token:  resp.AccessToken,
		ticket: ticket,
	}
}

func (env *orderTestEnv) placeOrder(t *testing.T, ticketID int64, quantity int) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(models.PlaceOrderRequest{TicketID: ticketID, Quantity: quantity})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+env.token)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderEndpoint(t *testing.T) {
	env := newOrderTestEnv(t)

	w := env.placeOrder(t, env.ticket.ID, 2)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}

func TestPlaceOrderEndpointInsufficient(t *testing.T) {
	env := newOrderTestEnv(t)

	w := env.placeOrder(t, env.ticket.ID, 6)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough tickets available")
}

func TestPlaceOrderEndpointUnknownTicket(t *testing.T) {
	env := newOrderTestEnv(t)

	w := env.placeOrder(t, 999, 1)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaceOrderEndpointRejectsZeroQuantity(t *testing.T) {
	env := newOrderTestEnv(t)

	// binding gt=0 rejects before the service runs
	w := env.placeOrder(t, env.ticket.ID, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderEndpointNotFoundForStranger(t *testing.T) {
	env := newOrderTestEnv(t)

	w := env.placeOrder(t, env.ticket.ID, 1)
	require.Equal(t, http.StatusCreated, w.Code)

	// Order id 1 belongs to the only attendee; fetch it
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d", 1), nil)
	req.Header.Set("Authorization", "Bearer "+env.token)
	got := httptest.NewRecorder()
	env.router.ServeHTTP(got, req)
	assert.Equal(t, http.StatusOK, got.Code)

	// A missing order id is a plain 404
	req = httptest.NewRequest(http.MethodGet, "/orders/42", nil)
	req.Header.Set("Authorization", "Bearer "+env.token)
	missing := httptest.NewRecorder()
	env.router.ServeHTTP(missing, req)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
