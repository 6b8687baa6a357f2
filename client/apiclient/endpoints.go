package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rakesh3649/Fitness/models"
)

type AuthResult struct {
	Token string         `json:"token"`
	User  models.Account `json:"user"`
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
	Phone           string `json:"phone,omitempty"`
}

func (c *Client) Register(ctx context.Context, r RegisterRequest) (*AuthResult, error) {
	var out AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/auth/register", "", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"email": email, "password": password}
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context, token string) (*models.Account, error) {
	var out models.Account
	if _, err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactReceipt is the server's acknowledgement of a contact message.
type ContactReceipt struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Subject   string               `json:"subject"`
	Status    models.ContactStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}

// SubmitContact returns the receipt and the confirmation message to show.
func (c *Client) SubmitContact(ctx context.Context, r ContactRequest) (*ContactReceipt, string, error) {
	var out ContactReceipt
	msg, err := c.do(ctx, http.MethodPost, "/contact", "", r, &out)
	if err != nil {
		return nil, msg, err
	}
	return &out, msg, nil
}

func (c *Client) RequestCallback(ctx context.Context, name, phone string) (*models.Callback, string, error) {
	var out models.Callback
	body := map[string]string{"name": name, "phone": phone}
	msg, err := c.do(ctx, http.MethodPost, "/callback", "", body, &out)
	if err != nil {
		return nil, msg, err
	}
	return &out, msg, nil
}

// OrderItem is a cart line as sent at checkout. ProductID is sent as a
// number when it looks like one, matching the site catalog.
type OrderItem struct {
	ProductID string  `json:"-"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

func (i OrderItem) MarshalJSON() ([]byte, error) {
	type plain OrderItem
	var id any = i.ProductID
	if n, err := strconv.ParseInt(i.ProductID, 10, 64); err == nil {
		id = n
	}
	return json.Marshal(struct {
		ProductID any `json:"productId"`
		plain
	}{id, plain(i)})
}

type CreateOrderRequest struct {
	Items           []OrderItem            `json:"items"`
	TotalAmount     float64                `json:"totalAmount"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod"`
	OrderNotes      string                 `json:"orderNotes,omitempty"`
	TransactionID   string                 `json:"transactionId,omitempty"`
	PaymentDetails  map[string]string      `json:"paymentDetails,omitempty"`
}

func (c *Client) CreateOrder(ctx context.Context, token string, r CreateOrderRequest) (*models.Order, error) {
	var out models.Order
	if _, err := c.do(ctx, http.MethodPost, "/orders", token, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type PaymentUpdate struct {
	PaymentStatus  models.PaymentStatus `json:"paymentStatus,omitempty"`
	OrderStatus    models.OrderStatus   `json:"orderStatus,omitempty"`
	TransactionID  string               `json:"transactionId,omitempty"`
	PaymentDetails map[string]string    `json:"paymentDetails,omitempty"`
}

func (c *Client) UpdatePayment(ctx context.Context, token, orderID string, u PaymentUpdate) (*models.Order, error) {
	var out models.Order
	path := fmt.Sprintf("/orders/%s/payment", url.PathEscape(orderID))
	if _, err := c.do(ctx, http.MethodPut, path, token, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyOrders(ctx context.Context, token string) ([]models.Order, error) {
	var out []models.Order
	if _, err := c.do(ctx, http.MethodGet, "/orders/my-orders", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*models.Order, error) {
	var out models.Order
	if _, err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ProductQuery struct {
	Search string
	Page   int
	Limit  int
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	path := "/products"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var out []models.Product
	if _, err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type Health struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
	Timestamp   string `json:"timestamp"`
}

// Health is not wrapped in the data envelope, so it is decoded directly.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	var out Health
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("apiclient: decode health: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &out, &APIError{Status: resp.StatusCode, Message: out.Message}
	}
	return &out, nil
}
