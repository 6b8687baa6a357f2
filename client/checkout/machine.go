// Package checkout drives the client side of placing an order: choosing a
// shipping address from the device address book, picking a payment method
// and submitting the order to the API.
//
// Submitting is two calls. The order is created pending/pending, then for
// any method but cash on delivery the client simulates payment and reports
// it with a second call. The second call's outcome is logged and otherwise
// ignored, so a created order can stay pending after a confirmed checkout.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rakesh3649/Fitness/client/apiclient"
	"github.com/rakesh3649/Fitness/client/appstate"
	"github.com/rakesh3649/Fitness/client/devicestore"
	"github.com/rakesh3649/Fitness/models"
)

type State string

const (
	BrowsingAddress  State = "browsing-address"
	AddressAdded     State = "address-added"
	PaymentSelection State = "payment-selection"
	Submitting       State = "submitting"
	Confirmed        State = "confirmed"

	// Failed is only ever an outcome. A failed submit returns the machine
	// to PaymentSelection so the shopper can retry.
	Failed State = "failed"
)

// ShippingFee is added to every order.
const ShippingFee = 99.0

const (
	defaultPaymentDelay  = 2 * time.Second
	defaultRedirectDelay = 2 * time.Second
	loginPath            = "/login"
)

// Messages shown to the shopper.
const (
	MsgSelectAddress  = "Please select or add a shipping address"
	MsgLoginRequired  = "Please login to complete your purchase. Redirecting to login page..."
	MsgEmptyCart      = "Your cart is empty!"
	MsgNoValidItems   = "No valid items in cart"
	MsgSessionExpired = "Session expired. Please login again."
	MsgNetwork        = "Network error. Please check your connection and try again."
	MsgGenericFailure = "Failed to process order. Please try again."
)

var (
	ErrInvalidTransition = errors.New("checkout: not allowed in the current state")
	ErrUnknownAddress    = errors.New("checkout: no saved address with that id")
)

// UserError carries the message to show the shopper.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }
func (e *UserError) Unwrap() error { return e.Err }

// API is the part of the REST client checkout needs.
type API interface {
	CreateOrder(ctx context.Context, token string, r apiclient.CreateOrderRequest) (*models.Order, error)
	UpdatePayment(ctx context.Context, token, orderID string, u apiclient.PaymentUpdate) (*models.Order, error)
}

type Config struct {
	API     API
	Store   *appstate.Store
	Storage devicestore.Storage

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// PaymentDelay is the simulated payment time. Defaults to 2s.
	PaymentDelay time.Duration

	// RedirectDelay is how long a failure message stays up before the
	// shopper is sent to the login page. Defaults to 2s.
	RedirectDelay time.Duration

	// Navigate moves the UI to path. May be nil.
	Navigate func(path string)

	// Now defaults to time.Now.
	Now func() time.Time

	// NewTransactionID defaults to TransactionID(Now()).
	NewTransactionID func() string
}

// LastOrder is what the confirmation screen shows, stored under
// devicestore.KeyLastOrder.
type LastOrder struct {
	OrderID       string               `json:"orderId"`
	Total         float64              `json:"total"`
	Date          string               `json:"date"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	TransactionID string               `json:"transactionId"`
}

// Snapshot is a read-only view of the machine.
type Snapshot struct {
	State   State
	// Outcome is Confirmed or Failed once a submit has finished.
	Outcome State

	Addresses     []Address
	Selected      *Address
	PaymentMethod models.PaymentMethod
	Error         string
	Order         *models.Order
	LastOrder     *LastOrder
}

type Machine struct {
	cfg Config

	mu        sync.Mutex
	state     State
	outcome   State
	addresses []Address
	selected  string
	method    models.PaymentMethod
	lastErr   string
	order     *models.Order
	lastOrder *LastOrder
	redirect  *time.Timer
}

// New loads the saved address book and preselects its default entry.
func New(cfg Config) (*Machine, error) {
	if cfg.API == nil || cfg.Store == nil || cfg.Storage == nil {
		return nil, errors.New("checkout: API, Store and Storage are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.PaymentDelay == 0 {
		cfg.PaymentDelay = defaultPaymentDelay
	}
	if cfg.RedirectDelay == 0 {
		cfg.RedirectDelay = defaultRedirectDelay
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewTransactionID == nil {
		now := cfg.Now
		cfg.NewTransactionID = func() string { return TransactionID(now()) }
	}

	m := &Machine{cfg: cfg, state: BrowsingAddress, method: models.PaymentCard}

	var saved []Address
	err := devicestore.GetJSON(cfg.Storage, devicestore.KeySavedAddresses, &saved)
	if err != nil && !errors.Is(err, devicestore.ErrNotFound) {
		cfg.Logger.Warn("ignoring unreadable address book", "error", err)
	}
	m.addresses = saved
	if len(saved) > 0 {
		m.selected = saved[0].ID
		for _, a := range saved {
			if a.IsDefault {
				m.selected = a.ID
				break
			}
		}
		m.state = AddressAdded
	}
	return m, nil
}

// TransactionID is the client correlation token: TXN, the time in unix
// milliseconds and nine random characters.
func TransactionID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("TXN%d%s", now.UnixMilli(), random[:9])
}

func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		State:         m.state,
		Outcome:       m.outcome,
		Addresses:     append([]Address(nil), m.addresses...),
		PaymentMethod: m.method,
		Error:         m.lastErr,
	}
	if a := m.find(m.selected); a != nil {
		sel := *a
		s.Selected = &sel
	}
	if m.order != nil {
		o := *m.order
		s.Order = &o
	}
	if m.lastOrder != nil {
		lo := *m.lastOrder
		s.LastOrder = &lo
	}
	return s
}

// AddAddress validates a, saves it to the address book and selects it. The
// first address saved becomes the default.
func (m *Machine) AddAddress(a models.ShippingAddress) (Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.editable() {
		return Address{}, ErrInvalidTransition
	}

	clean, err := ValidateAddress(a)
	if err != nil {
		return Address{}, err
	}
	entry := Address{
		ID:              uuid.NewString(),
		ShippingAddress: clean,
		IsDefault:       len(m.addresses) == 0,
	}
	book := append(append([]Address(nil), m.addresses...), entry)
	if err := devicestore.SetJSON(m.cfg.Storage, devicestore.KeySavedAddresses, book); err != nil {
		return Address{}, err
	}

	m.addresses = book
	m.selected = entry.ID
	m.lastErr = ""
	if m.state == BrowsingAddress {
		m.state = AddressAdded
	}
	return entry, nil
}

func (m *Machine) SelectAddress(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.editable() {
		return ErrInvalidTransition
	}
	if m.find(id) == nil {
		return ErrUnknownAddress
	}
	m.selected = id
	if m.state == BrowsingAddress {
		m.state = AddressAdded
	}
	return nil
}

// ProceedToPayment moves to payment selection once an address is chosen.
func (m *Machine) ProceedToPayment() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.editable() {
		return ErrInvalidTransition
	}
	if m.find(m.selected) == nil {
		m.lastErr = MsgSelectAddress
		return &UserError{Message: MsgSelectAddress}
	}
	m.lastErr = ""
	m.state = PaymentSelection
	return nil
}

func (m *Machine) SelectPaymentMethod(method models.PaymentMethod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.editable() {
		return ErrInvalidTransition
	}
	if !method.Valid() {
		return errors.Errorf("checkout: unknown payment method %q", method)
	}
	m.method = method
	return nil
}

// Submit places the order. On success the cart is emptied, the last order
// is written to device storage and the machine is Confirmed. Any failure
// returns to PaymentSelection with a message and a Failed outcome. A
// rejected session or an unreachable server also clears the stored
// credentials and schedules a redirect to the login page.
func (m *Machine) Submit(ctx context.Context) (*LastOrder, error) {
	m.mu.Lock()
	if m.state != PaymentSelection {
		m.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	addr := m.find(m.selected)
	if addr == nil {
		m.lastErr = MsgSelectAddress
		m.mu.Unlock()
		return nil, &UserError{Message: MsgSelectAddress}
	}
	shipping := addr.ShippingAddress
	method := m.method

	app := m.cfg.Store.State()
	if !app.Authenticated() {
		m.lastErr = MsgLoginRequired
		m.mu.Unlock()
		m.navigate(loginPath)
		return nil, &UserError{Message: MsgLoginRequired}
	}
	if app.Cart.Empty() {
		m.lastErr = MsgEmptyCart
		m.mu.Unlock()
		return nil, &UserError{Message: MsgEmptyCart}
	}
	m.state = Submitting
	m.outcome = ""
	m.lastErr = ""
	if m.redirect != nil {
		m.redirect.Stop()
		m.redirect = nil
	}
	m.mu.Unlock()

	items := orderItems(app.Cart)
	if len(items) == 0 {
		return nil, m.settle(&UserError{Message: MsgNoValidItems})
	}

	subtotal := app.Cart.Subtotal()
	total := subtotal + ShippingFee
	now := m.cfg.Now()
	txn := m.cfg.NewTransactionID()
	token := app.Session.Token

	order, err := m.cfg.API.CreateOrder(ctx, token, apiclient.CreateOrderRequest{
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: shipping,
		PaymentMethod:   method,
		OrderNotes:      models.DefaultOrderNotes,
		TransactionID:   txn,
		PaymentDetails: map[string]string{
			"method":    string(method),
			"timestamp": now.UTC().Format(time.RFC3339),
			"amount":    strconv.FormatFloat(total, 'f', -1, 64),
		},
	})
	if err != nil {
		return nil, m.settle(err)
	}

	if method != models.PaymentCOD {
		m.completePayment(ctx, token, order)
	}

	m.cfg.Store.Dispatch(appstate.CartReset{})

	orderID := txn
	if !order.ID.IsZero() {
		orderID = order.ID.Hex()
	}
	last := &LastOrder{
		OrderID:       orderID,
		Total:         total,
		Date:          now.Format("2006-01-02"),
		PaymentMethod: method,
		TransactionID: txn,
	}
	if err := devicestore.SetJSON(m.cfg.Storage, devicestore.KeyLastOrder, last); err != nil {
		m.cfg.Logger.Warn("saving last order failed", "order_id", orderID, "error", err)
	}

	m.cfg.Logger.Info("order placed", "order_id", orderID, "units", app.Cart.Count(), "total", total)

	m.mu.Lock()
	m.state = Confirmed
	m.outcome = Confirmed
	m.order = order
	m.lastOrder = last
	m.mu.Unlock()

	out := *last
	return &out, nil
}

// completePayment waits out the simulated payment and reports it. Failure
// leaves the order pending on the server; checkout goes on regardless.
func (m *Machine) completePayment(ctx context.Context, token string, order *models.Order) {
	timer := time.NewTimer(m.cfg.PaymentDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		m.cfg.Logger.Warn("payment update skipped, order left pending",
			"order_id", order.ID.Hex(), "error", ctx.Err())
		return
	}

	_, err := m.cfg.API.UpdatePayment(ctx, token, order.ID.Hex(), apiclient.PaymentUpdate{
		PaymentStatus: models.PaymentCompleted,
		OrderStatus:   models.OrderConfirmed,
	})
	if err != nil {
		m.cfg.Logger.Warn("payment update failed, order left pending",
			"order_id", order.ID.Hex(), "error", err)
	}
}

// settle records a failed submit and returns to PaymentSelection.
func (m *Machine) settle(err error) error {
	var msg string
	var expired bool
	var userErr *UserError
	var apiErr *apiclient.APIError

	switch {
	case apiclient.IsUnauthorized(err):
		msg, expired = MsgSessionExpired, true
	case apiclient.IsTransport(err):
		msg, expired = MsgNetwork, true
	case errors.As(err, &userErr):
		msg = userErr.Message
	case errors.As(err, &apiErr) && apiErr.Message != "":
		msg = apiErr.Message
	default:
		msg = MsgGenericFailure
	}

	if expired {
		m.cfg.Store.Dispatch(appstate.LoggedOut{})
	}

	m.mu.Lock()
	m.lastErr = msg
	m.state = PaymentSelection
	m.outcome = Failed
	if expired && m.cfg.Navigate != nil {
		m.redirect = time.AfterFunc(m.cfg.RedirectDelay, func() { m.navigate(loginPath) })
	}
	m.mu.Unlock()

	m.cfg.Logger.Warn("checkout failed", "error", err, "message", msg)
	if userErr != nil {
		return userErr
	}
	return &UserError{Message: msg, Err: err}
}

// Close cancels a pending login redirect.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.redirect != nil {
		m.redirect.Stop()
		m.redirect = nil
	}
}

func (m *Machine) navigate(path string) {
	if m.cfg.Navigate != nil {
		m.cfg.Navigate(path)
	}
}

func (m *Machine) editable() bool {
	switch m.state {
	case BrowsingAddress, AddressAdded, PaymentSelection:
		return true
	}
	return false
}

func (m *Machine) find(id string) *Address {
	if id == "" {
		return nil
	}
	for i := range m.addresses {
		if m.addresses[i].ID == id {
			return &m.addresses[i]
		}
	}
	return nil
}

func orderItems(cart appstate.Cart) []apiclient.OrderItem {
	items := make([]apiclient.OrderItem, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		if l.Quantity <= 0 {
			continue
		}
		items = append(items, apiclient.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Image:     l.Image,
		})
	}
	return items
}
