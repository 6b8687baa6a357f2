package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rakesh3649/Fitness/configs"
	"github.com/rakesh3649/Fitness/middlewares"
	"github.com/rakesh3649/Fitness/models"
	"github.com/rakesh3649/Fitness/repository"
	"github.com/rakesh3649/Fitness/repository/memrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingNotifier struct {
	mu        sync.Mutex
	contacts  []models.Contact
	callbacks []models.Callback
}

func (n *recordingNotifier) ContactSubmitted(c models.Contact) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contacts = append(n.contacts, c)
}

func (n *recordingNotifier) CallbackRequested(cb models.Callback) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.callbacks = append(n.callbacks, cb)
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Count      *int            `json:"count"`
	Pagination *struct {
		Page       int64 `json:"page"`
		Limit      int64 `json:"limit"`
		TotalPages int64 `json:"totalPages"`
		Total      int64 `json:"total"`
	} `json:"pagination"`
}

type harness struct {
	t        *testing.T
	app      *fiber.App
	store    *repository.Store
	notifier *recordingNotifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memrepo.New()
	notifier := &recordingNotifier{}
	cfg := configs.Config{
		Env:        configs.EnvDevelopment,
		Store:      configs.StoreMemory,
		JWTSecret:  "test-secret",
		JWTExpire:  time.Hour,
		CORSOrigin: "http://localhost:3000",
	}
	a := New(Options{
		Config:   cfg,
		Store:    store,
		Notifier: notifier,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return &harness{t: t, app: a, store: store, notifier: notifier}
}

func (h *harness) do(method, path, token string, body any) (int, envelope) {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	require.NoError(h.t, json.Unmarshal(raw, &env), "body: %s", raw)
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type authData struct {
	Token string         `json:"token"`
	User  models.Account `json:"user"`
}

func (h *harness) register(name, email string) authData {
	h.t.Helper()
	status, env := h.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(h.t, http.StatusCreated, status, env.Message)
	return decode[authData](h.t, env.Data)
}

func (h *harness) admin() authData {
	h.t.Helper()
	a := h.register("Admin", "admin@fitnessgym.test")
	require.NoError(h.t, h.store.Accounts.SetRole(context.Background(), a.User.Email, models.RoleAdmin))
	return a
}

func orderBody(total float64) map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"productId": 7, "name": "Whey Protein", "price": 2900, "quantity": 1},
		},
		"totalAmount": total,
		"shippingAddress": map[string]string{
			"fullName": "Asha Rao", "phone": "9876543210", "street": "12 MG Road",
			"city": "Pune", "state": "MH", "country": "India", "zipCode": "411001",
		},
		"paymentMethod": "card",
	}
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "FitnessGym Backend is running", body["message"])
	assert.Equal(t, "development", body["environment"])
	assert.Equal(t, "connected", body["database"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestUnknownRoute(t *testing.T) {
	h := newHarness(t)
	status, env := h.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Route /api/nope not found", env.Message)
}

func TestCORSAllowsLocalhostInDevelopment(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORSConfig(t *testing.T) {
	dev := corsConfig(configs.Config{Env: configs.EnvDevelopment, CORSOrigin: "https://fitnessgym.example/"})
	assert.Empty(t, dev.AllowOrigins)
	require.NotNil(t, dev.AllowOriginsFunc)
	assert.True(t, dev.AllowOriginsFunc("https://FitnessGym.example"))
	assert.True(t, dev.AllowOriginsFunc("http://127.0.0.1:8080"))
	assert.False(t, dev.AllowOriginsFunc("https://evil.example"))

	prod := corsConfig(configs.Config{Env: configs.EnvProduction, CORSOrigin: "*"})
	assert.Equal(t, "http://localhost:3000", prod.AllowOrigins)
	assert.Nil(t, prod.AllowOriginsFunc)
}

func TestRegisterLoginAndProfile(t *testing.T) {
	h := newHarness(t)

	a := h.register("Ravi", "Ravi@Example.com")
	assert.NotEmpty(t, a.Token)
	assert.Equal(t, "ravi@example.com", a.User.Email)
	assert.Equal(t, models.RoleUser, a.User.Role)
	assert.Empty(t, a.User.Password)

	status, env := h.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ravi again", "email": "ravi@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User with same email already exists", env.Message)

	status, env = h.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Short", "email": "short@example.com", "password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Password must be at least 6 characters", env.Message)

	status, env = h.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Long", "email": "long@example.com", "password": strings.Repeat("p", 80),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Password cannot be more than 72 bytes", env.Message)

	// 72 bytes of multi-byte runes is still accepted.
	status, env = h.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Edge", "email": "edge@example.com", "password": strings.Repeat("é", 36),
	})
	assert.Equal(t, http.StatusCreated, status, env.Message)

	status, env = h.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ravi@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", env.Message)

	status, env = h.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "RAVI@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	login := decode[authData](t, env.Data)

	status, env = h.do(http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[models.Account](t, env.Data)
	assert.Equal(t, a.User.Id, me.Id)

	status, env = h.do(http.MethodPut, "/api/auth/update-profile", login.Token, map[string]string{
		"name": "Ravi Kumar", "phone": "9876543210",
	})
	require.Equal(t, http.StatusOK, status)
	updated := decode[models.Account](t, env.Data)
	assert.Equal(t, "Ravi Kumar", updated.Name)
	assert.Equal(t, "9876543210", updated.Phone)

	status, env = h.do(http.MethodPut, "/api/auth/update-profile", login.Token, map[string]string{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name cannot be empty", env.Message)
}

func TestUnsetSecretCannotBeGuessed(t *testing.T) {
	for _, k := range []string{"APP_ENV", "JWT_SECRET"} {
		t.Setenv(k, "")
	}
	t.Setenv("STORE", configs.StoreMemory)
	cfg, err := configs.FromEnv()
	require.NoError(t, err)

	store := memrepo.New()
	a := New(Options{Config: cfg, Store: store, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	admin := &models.Account{Name: "Admin", Email: "admin@fitnessgym.test", Password: "hash", Role: models.RoleAdmin}
	require.NoError(t, store.Accounts.Create(context.Background(), admin))

	for _, guess := range []string{"development-secret", "", "secret"} {
		token, err := middlewares.IssueToken([]byte(guess), admin.Id.Hex(), time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := a.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, guess)
	}
}

func TestAuthGate(t *testing.T) {
	h := newHarness(t)

	status, env := h.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Please login to access this resource", env.Message)

	status, env = h.do(http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", env.Message)

	status, _ = h.do(http.MethodPost, "/api/orders", "", orderBody(2999))
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestContactSubmission(t *testing.T) {
	h := newHarness(t)

	status, env := h.do(http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Meera", "email": "Meera@Example.com", "subject": "Membership", "message": "What are the timings?",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Your message has been sent successfully!", env.Message)

	receipt := decode[map[string]any](t, env.Data)
	assert.Equal(t, "meera@example.com", receipt["email"])
	assert.Equal(t, "pending", receipt["status"])
	assert.NotContains(t, receipt, "message")

	h.notifier.mu.Lock()
	require.Len(t, h.notifier.contacts, 1)
	assert.Equal(t, "Membership", h.notifier.contacts[0].Subject)
	h.notifier.mu.Unlock()

	status, env = h.do(http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Meera", "email": "meera@example.com", "subject": "Membership",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please provide all required fields: name, email, subject, message", env.Message)

	stored, err := h.store.Contacts.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestContactAdministration(t *testing.T) {
	h := newHarness(t)
	admin := h.admin()
	user := h.register("Member", "member@example.com")

	for _, subject := range []string{"First", "Second"} {
		status, _ := h.do(http.MethodPost, "/api/contact", "", map[string]string{
			"name": "Meera", "email": "meera@example.com", "subject": subject, "message": "hello",
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, _ := h.do(http.MethodGet, "/api/contact", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := h.do(http.MethodGet, "/api/contact", user.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "User role 'user' is not authorized to access this resource", env.Message)

	status, env = h.do(http.MethodGet, "/api/contact", admin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
	contacts := decode[[]models.Contact](t, env.Data)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Second", contacts[0].Subject)
	assert.Equal(t, "First", contacts[1].Subject)

	id := contacts[0].ID.Hex()

	status, env = h.do(http.MethodPut, "/api/contact/"+id, admin.Token, map[string]string{"status": "shelved"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid status. Must be one of: pending, read, replied, archived", env.Message)
	stored, err := h.store.Contacts.FindByID(context.Background(), contacts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactPending, stored.Status)

	status, env = h.do(http.MethodPut, "/api/contact/"+id, admin.Token, map[string]string{"status": "read"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Contact status updated", env.Message)
	assert.Equal(t, models.ContactRead, decode[models.Contact](t, env.Data).Status)

	status, env = h.do(http.MethodPut, "/api/contact/"+id, admin.Token, map[string]string{})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.ContactRead, decode[models.Contact](t, env.Data).Status)

	status, env = h.do(http.MethodPut, "/api/contact/64b7f0c2a1b2c3d4e5f60718", admin.Token, map[string]string{"status": "read"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Contact not found", env.Message)

	status, _ = h.do(http.MethodPut, "/api/contact/not-an-id", admin.Token, map[string]string{"status": "read"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCallbackRequests(t *testing.T) {
	h := newHarness(t)
	admin := h.admin()

	status, env := h.do(http.MethodPost, "/api/callback", "", map[string]string{"name": "Asha", "phone": "9876543210"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Callback request submitted successfully! We will contact you within 30 minutes.", env.Message)
	cb := decode[models.Callback](t, env.Data)
	assert.Equal(t, "Asha", cb.Name)
	assert.Equal(t, models.CallbackPending, cb.Status)

	h.notifier.mu.Lock()
	assert.Len(t, h.notifier.callbacks, 1)
	h.notifier.mu.Unlock()

	status, env = h.do(http.MethodPost, "/api/callback", "", map[string]string{"name": "Asha"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please provide both name and phone number", env.Message)

	status, env = h.do(http.MethodGet, "/api/callback", admin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, *env.Count)

	long := make([]byte, models.MaxCallbackNotes+1)
	for i := range long {
		long[i] = 'x'
	}
	status, _ = h.do(http.MethodPut, "/api/callback/"+cb.ID.Hex(), admin.Token, map[string]string{"notes": string(long)})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = h.do(http.MethodPut, "/api/callback/"+cb.ID.Hex(), admin.Token, map[string]string{"status": "later"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = h.do(http.MethodPut, "/api/callback/"+cb.ID.Hex(), admin.Token, map[string]string{
		"status": "contacted", "notes": "Called, wants a trial session",
	})
	require.Equal(t, http.StatusOK, status)
	updated := decode[models.Callback](t, env.Data)
	assert.Equal(t, models.CallbackContacted, updated.Status)
	assert.Equal(t, "Called, wants a trial session", updated.Notes)

	status, env = h.do(http.MethodPut, "/api/callback/64b7f0c2a1b2c3d4e5f60718", admin.Token, map[string]string{"status": "contacted"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Callback request not found", env.Message)
}

func TestCreateOrder(t *testing.T) {
	h := newHarness(t)
	user := h.register("Asha", "asha@example.com")

	status, env := h.do(http.MethodPost, "/api/orders", user.Token, orderBody(2999))
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.Equal(t, "Order created successfully!", env.Message)

	order := decode[models.Order](t, env.Data)
	assert.Equal(t, 2999.0, order.TotalAmount)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, models.OrderPending, order.OrderStatus)
	assert.Equal(t, models.DefaultOrderNotes, order.OrderNotes)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "7", order.Items[0].ProductID)
	assert.Equal(t, models.DefaultProductImage, order.Items[0].Image)
	require.NotNil(t, order.User)
	assert.Equal(t, "asha@example.com", order.User.Email)

	stored, err := h.store.Orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 2999.0, stored.TotalAmount)
	assert.Equal(t, user.User.Id, stored.UserID)

	body := orderBody(2999)
	body["items"] = []map[string]any{}
	status, env = h.do(http.MethodPost, "/api/orders", user.Token, body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please provide order items", env.Message)

	status, env = h.do(http.MethodPost, "/api/orders", user.Token, orderBody(0))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please provide valid total amount", env.Message)

	body = orderBody(2999)
	body["items"] = []map[string]any{{"productId": "p-1", "price": 10, "quantity": 0}}
	status, env = h.do(http.MethodPost, "/api/orders", user.Token, body)
	require.Equal(t, http.StatusCreated, status)
	order = decode[models.Order](t, env.Data)
	assert.Equal(t, "Product p-1", order.Items[0].Name)
	assert.Equal(t, 1, order.Items[0].Quantity)
}

func TestOrderVisibility(t *testing.T) {
	h := newHarness(t)
	admin := h.admin()
	owner := h.register("Owner", "owner@example.com")
	other := h.register("Other", "other@example.com")

	var ids []string
	for _, total := range []float64{1000, 2000} {
		status, env := h.do(http.MethodPost, "/api/orders", owner.Token, orderBody(total))
		require.Equal(t, http.StatusCreated, status)
		ids = append(ids, decode[models.Order](t, env.Data).ID.Hex())
	}

	status, env := h.do(http.MethodGet, "/api/orders/my-orders", owner.Token, nil)
	require.Equal(t, http.StatusOK, status)
	mine := decode[[]models.Order](t, env.Data)
	require.Len(t, mine, 2)
	assert.Equal(t, 2000.0, mine[0].TotalAmount)
	assert.Equal(t, 1000.0, mine[1].TotalAmount)

	status, env = h.do(http.MethodGet, "/api/orders/my-orders", other.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, *env.Count)

	status, env = h.do(http.MethodGet, "/api/orders/"+ids[0], other.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Not authorized to access this order", env.Message)

	status, env = h.do(http.MethodGet, "/api/orders/"+ids[0], owner.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "owner@example.com", decode[models.Order](t, env.Data).User.Email)

	status, _ = h.do(http.MethodGet, "/api/orders/"+ids[0], admin.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = h.do(http.MethodGet, "/api/orders/64b7f0c2a1b2c3d4e5f60718", admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = h.do(http.MethodGet, "/api/orders", owner.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = h.do(http.MethodGet, "/api/orders", admin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	all := decode[[]models.Order](t, env.Data)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].User)
	assert.Equal(t, "owner@example.com", all[0].User.Email)
}

func TestOrderStatusIsAdminOnly(t *testing.T) {
	h := newHarness(t)
	admin := h.admin()
	user := h.register("Asha", "asha@example.com")

	status, env := h.do(http.MethodPost, "/api/orders", user.Token, orderBody(2999))
	require.Equal(t, http.StatusCreated, status)
	id := decode[models.Order](t, env.Data).ID.Hex()

	status, _ = h.do(http.MethodPut, "/api/orders/"+id+"/status", user.Token, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = h.do(http.MethodPut, "/api/orders/"+id+"/status", admin.Token, map[string]string{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "Invalid status")
	oid, err := primitive.ObjectIDFromHex(id)
	require.NoError(t, err)
	stored, err := h.store.Orders.FindByID(context.Background(), oid)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, stored.OrderStatus)

	status, env = h.do(http.MethodPut, "/api/orders/"+id+"/status", admin.Token, map[string]string{"status": "shipped"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.OrderShipped, decode[models.Order](t, env.Data).OrderStatus)
}

func TestPaymentUpdate(t *testing.T) {
	h := newHarness(t)
	admin := h.admin()
	owner := h.register("Owner", "owner@example.com")
	other := h.register("Other", "other@example.com")

	status, env := h.do(http.MethodPost, "/api/orders", owner.Token, orderBody(2999))
	require.Equal(t, http.StatusCreated, status)
	order := decode[models.Order](t, env.Data)
	path := "/api/orders/" + order.ID.Hex() + "/payment"

	status, env = h.do(http.MethodPut, path, other.Token, map[string]string{"paymentStatus": "completed"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Not authorized to update this order", env.Message)

	status, _ = h.do(http.MethodPut, path, owner.Token, map[string]string{"paymentStatus": "bogus"})
	assert.Equal(t, http.StatusBadRequest, status)
	stored, err := h.store.Orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, stored.PaymentStatus)

	status, env = h.do(http.MethodPut, path, owner.Token, map[string]string{
		"paymentStatus": "completed", "orderStatus": "confirmed",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Payment status updated", env.Message)
	updated := decode[models.Order](t, env.Data)
	assert.Equal(t, models.PaymentCompleted, updated.PaymentStatus)
	assert.Equal(t, models.OrderConfirmed, updated.OrderStatus)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	status, _ = h.do(http.MethodPut, path, admin.Token, map[string]string{"paymentStatus": "failed"})
	assert.Equal(t, http.StatusOK, status)

	status, _ = h.do(http.MethodPut, "/api/orders/64b7f0c2a1b2c3d4e5f60718/payment", owner.Token, map[string]string{"paymentStatus": "completed"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProducts(t *testing.T) {
	h := newHarness(t)
	admin := h.admin()
	user := h.register("Asha", "asha@example.com")

	product := map[string]any{"name": "Whey Protein", "price": 2900, "category": "supplements", "stock": 5}

	status, _ := h.do(http.MethodPost, "/api/products", user.Token, product)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := h.do(http.MethodPost, "/api/products", admin.Token, map[string]any{"name": "Free", "price": 0, "category": "x"})
	assert.Equal(t, http.StatusBadRequest, status)

	var created models.Product
	for _, name := range []string{"Whey Protein", "Yoga Mat", "Whey Isolate"} {
		product["name"] = name
		status, env = h.do(http.MethodPost, "/api/products", admin.Token, product)
		require.Equal(t, http.StatusCreated, status, env.Message)
		created = decode[models.Product](t, env.Data)
	}
	assert.Equal(t, models.DefaultProductImage, created.Image)

	status, env = h.do(http.MethodGet, "/api/products?q=whey&limit=1", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(2), env.Pagination.Total)
	assert.Equal(t, int64(2), env.Pagination.TotalPages)
	assert.Len(t, decode[[]models.Product](t, env.Data), 1)

	status, env = h.do(http.MethodGet, "/api/products/"+created.ID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Whey Isolate", decode[models.Product](t, env.Data).Name)

	status, env = h.do(http.MethodPut, "/api/products/"+created.ID.Hex(), admin.Token, map[string]any{"stock": 0})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, decode[models.Product](t, env.Data).Stock)

	status, _ = h.do(http.MethodDelete, "/api/products/"+created.ID.Hex(), admin.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = h.do(http.MethodGet, "/api/products/"+created.ID.Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
