package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"hotel/constants"
	"hotel/models"
	"hotel/repositories"
	"hotel/services"
	"hotel/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code  int             `json:"code"`
	Mess  string          `json:"mess"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	room   *models.Room
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	log := logger.Nop{}

	auth := services.NewAuthService(services.AuthServiceOptions{
		Store:    store,
		Logger:   log,
		Tokens:   services.NewTokenService("test-secret", time.Hour),
		HashCost: bcrypt.MinCost,
	})
	hashed, err := auth.HashPassword("adminpass")
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(ctx, &models.User{Name: "Admin", Email: "admin@hotel.com", Password: hashed, Role: models.RoleAdmin}))

	room := &models.Room{RoomNumber: "101", Type: "Standard", Price: 100.00, Available: true}
	require.NoError(t, store.Rooms().Create(ctx, room))

	rooms := services.NewRoomService(services.RoomServiceOptions{Store: store, Logger: log})
	svc := Services{
		Auth:    auth,
		Users:   services.NewUserService(services.UserServiceOptions{Store: store, Logger: log, Auth: auth}),
		Rooms:   rooms,
		Ledger:  services.NewBookingService(services.BookingServiceOptions{Store: store, Logger: log}),
		Chatbot: services.NewChatbotService(services.ChatbotServiceOptions{Rooms: rooms, Logger: log}),
	}

	router := gin.New()
	SetupRoutes(router, svc, nil)
	return &testServer{t: t, router: router, room: room}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "text/plain; charset=utf-8" {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func (s *testServer) signIn(email, password string) string {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/api/auth/signin", "", gin.H{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, status, env.Mess)

	var data struct {
		AccessToken string `json:"accessToken"`
		TokenType   string `json:"tokenType"`
		Role        string `json:"role"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	require.Equal(s.t, "Bearer", data.TokenType)
	return data.AccessToken
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(http.MethodPost, "/api/auth/signup", "", gin.H{"name": "Guest", "email": "guest@hotel.com", "password": "secret123"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User registered successfully", env.Mess)
	assert.NotContains(t, string(env.Data), "password")

	status, env = s.do(http.MethodPost, "/api/auth/signup", "", gin.H{"name": "Again", "email": "GUEST@hotel.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_ALREADY_REGISTERED", env.Error)

	status, env = s.do(http.MethodPost, "/api/auth/signup", "", gin.H{"name": "Bad", "email": "not-an-email", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)

	status, env = s.do(http.MethodPost, "/api/auth/signin", "", gin.H{"email": "guest@hotel.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error)

	status, env = s.do(http.MethodPost, "/api/auth/signin", "", gin.H{"email": "nobody@hotel.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "USER_NOT_FOUND", env.Error)

	token := s.signIn("guest@hotel.com", "secret123")
	status, env = s.do(http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "ROLE_CUSTOMER")

	status, env = s.do(http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Error)
}

func TestRoomRoutesRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	admin := s.signIn("admin@hotel.com", "adminpass")
	s.do(http.MethodPost, "/api/auth/signup", "", gin.H{"name": "Guest", "email": "guest@hotel.com", "password": "secret123"})
	customer := s.signIn("guest@hotel.com", "secret123")

	newRoom := gin.H{"roomNumber": "201", "type": "Deluxe", "price": 150.0, "amenities": []string{"WiFi"}}

	status, _ := s.do(http.MethodPost, "/api/rooms", "", newRoom)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := s.do(http.MethodPost, "/api/rooms", customer, newRoom)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Error)

	status, _ = s.do(http.MethodPost, "/api/rooms", admin, newRoom)
	require.Equal(t, http.StatusCreated, status)

	status, env = s.do(http.MethodPost, "/api/rooms", admin, newRoom)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ROOM_NUMBER_EXISTS", env.Error)

	for _, invalid := range []gin.H{
		{"roomNumber": "301", "type": "Suite"},
		{"roomNumber": "302", "type": "Suite", "price": -1.0},
		{"roomNumber": "303", "type": "Suite", "price": 1e9},
	} {
		status, env = s.do(http.MethodPost, "/api/rooms", admin, invalid)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION_ERROR", env.Error)
	}

	status, env = s.do(http.MethodGet, "/api/rooms", "", nil)
	require.Equal(t, http.StatusOK, status)
	var rooms []models.Room
	require.NoError(t, json.Unmarshal(env.Data, &rooms))
	assert.Len(t, rooms, 2)

	status, env = s.do(http.MethodGet, "/api/rooms/999", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ROOM_NOT_FOUND", env.Error)

	status, env = s.do(http.MethodGet, "/api/rooms/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)
}

func TestBookingLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := s.signIn("admin@hotel.com", "adminpass")
	s.do(http.MethodPost, "/api/auth/signup", "", gin.H{"name": "A", "email": "a@hotel.com", "password": "secret123"})
	s.do(http.MethodPost, "/api/auth/signup", "", gin.H{"name": "B", "email": "b@hotel.com", "password": "secret123"})
	userA := s.signIn("a@hotel.com", "secret123")
	userB := s.signIn("b@hotel.com", "secret123")

	status, env := s.do(http.MethodPost, "/api/bookings", userA, gin.H{"roomId": s.room.ID, "checkInDate": "2024-01-03", "checkOutDate": "2024-01-01"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)

	status, env = s.do(http.MethodPost, "/api/bookings", userA, gin.H{"roomId": s.room.ID, "checkInDate": "2024-01-01", "checkOutDate": "2024-01-03"})
	require.Equal(t, http.StatusCreated, status, env.Mess)
	var booking struct {
		ID           uint   `json:"id"`
		CheckInDate  string `json:"checkInDate"`
		CheckOutDate string `json:"checkOutDate"`
		Nights       int    `json:"nights"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, "2024-01-01", booking.CheckInDate)
	assert.Equal(t, 2, booking.Nights)

	status, env = s.do(http.MethodPost, "/api/bookings", userB, gin.H{"roomId": s.room.ID, "checkInDate": "2024-02-01", "checkOutDate": "2024-02-03"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ROOM_UNAVAILABLE", env.Error)

	status, env = s.do(http.MethodGet, "/api/rooms/available", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(env.Data))

	status, _ = s.do(http.MethodDelete, "/api/rooms/"+itoa(s.room.ID), admin, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, env = s.do(http.MethodGet, "/api/bookings", userA, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, env = s.do(http.MethodGet, "/api/bookings", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"nights":2`)

	status, env = s.do(http.MethodDelete, "/api/bookings/999", userA, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "BOOKING_NOT_FOUND", env.Error)

	path := "/api/bookings/" + itoa(booking.ID)
	status, env = s.do(http.MethodDelete, path, userB, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(http.MethodDelete, path, userA, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = s.do(http.MethodGet, "/api/bookings/my-bookings", userA, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(env.Data))

	status, env = s.do(http.MethodGet, "/api/rooms/available", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"roomNumber":"101"`)
}

func TestChatbotAndMiscRoutes(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(http.MethodPost, "/api/chatbot", "", gin.H{"message": "How many rooms are available?"})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "1 rooms available out of 1")

	status, env = s.do(http.MethodPost, "/api/chatbot", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)

	status, env = s.do(http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "pong", w.Body.String())
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
