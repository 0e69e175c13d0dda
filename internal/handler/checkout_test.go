package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"razorpay-checkout-demo/internal/config"
	"razorpay-checkout-demo/internal/dto"
	"razorpay-checkout-demo/internal/identity"
	"razorpay-checkout-demo/internal/middleware"
	"razorpay-checkout-demo/internal/model"
	"razorpay-checkout-demo/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCheckoutService implements service.CheckoutService for testing
type MockCheckoutService struct {
	StartResp  *dto.CheckoutResponse
	StartErr   error
	ResumeErr  error
	LastResult service.GatewayResult
	Paid       bool
	Status     model.FlowStatus
	Message    string
}

func (m *MockCheckoutService) StartCheckout(_ context.Context, _ *identity.Identity, _ int) (*dto.CheckoutResponse, error) {
	return m.StartResp, m.StartErr
}

func (m *MockCheckoutService) ResumeCheckout(_ context.Context, _ *identity.Identity, result service.GatewayResult) error {
	m.LastResult = result
	return m.ResumeErr
}

func (m *MockCheckoutService) RefreshEntitlement(_ context.Context, _ string) bool {
	return m.Paid
}

func (m *MockCheckoutService) Entitled(_ string) bool {
	return m.Paid
}

func (m *MockCheckoutService) FlowState(_ string) (model.FlowStatus, string) {
	return m.Status, m.Message
}

func (m *MockCheckoutService) Close() {}

func handlerTestConfig() *config.Config {
	return &config.Config{
		Razorpay: config.Razorpay{Currency: "INR"},
		Product: config.Product{
			Name:          "Wireless Bluetooth Headphones",
			DisplayPrice:  2999,
			OriginalPrice: 3999,
			Rating:        4.5,
			Reviews:       128,
		},
	}
}

func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.UserContextKey, &identity.Identity{ID: "user-a", DisplayName: "Customer Name"})

	return c, rec
}

func TestGetProduct(t *testing.T) {
	h := NewCheckoutHandler(&MockCheckoutService{}, handlerTestConfig())
	c, rec := newContext(t, http.MethodGet, "/api/product", "")

	require.NoError(t, h.GetProduct(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Wireless Bluetooth Headphones", resp.Name)
	assert.Equal(t, int64(2999), resp.Price)
	assert.Equal(t, "INR", resp.Currency)
}

func TestCreateOrder_ReturnsInvocation(t *testing.T) {
	svc := &MockCheckoutService{
		StartResp: &dto.CheckoutResponse{OrderID: "o1", Amount: 299900, Currency: "INR"},
	}
	h := NewCheckoutHandler(svc, handlerTestConfig())
	c, rec := newContext(t, http.MethodPost, "/api/checkout/order", `{"quantity":1}`)

	require.NoError(t, h.CreateOrder(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "o1", resp.OrderID)
}

func TestCreateOrder_AlreadyEntitled(t *testing.T) {
	h := NewCheckoutHandler(&MockCheckoutService{StartErr: service.ErrAlreadyEntitled}, handlerTestConfig())
	c, _ := newContext(t, http.MethodPost, "/api/checkout/order", `{"quantity":1}`)

	err := h.CreateOrder(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestCreateOrder_OrderCreationFailure(t *testing.T) {
	h := NewCheckoutHandler(&MockCheckoutService{StartErr: service.ErrOrderCreation}, handlerTestConfig())
	c, _ := newContext(t, http.MethodPost, "/api/checkout/order", `{"quantity":1}`)

	err := h.CreateOrder(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
}

func TestVerifyPayment_Success(t *testing.T) {
	h := NewCheckoutHandler(&MockCheckoutService{}, handlerTestConfig())
	c, rec := newContext(t, http.MethodPost, "/api/payment/verify",
		`{"razorpay_order_id":"o1","razorpay_payment_id":"p1","razorpay_signature":"s1"}`)

	require.NoError(t, h.VerifyPayment(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestVerifyPayment_FailureCarriesFlowMessage(t *testing.T) {
	svc := &MockCheckoutService{
		ResumeErr: service.ErrEntitlementWrite,
		Status:    model.FlowStatusFailed,
		Message:   "Payment verified but failed to update your status. Please contact support.",
	}
	h := NewCheckoutHandler(svc, handlerTestConfig())
	c, rec := newContext(t, http.MethodPost, "/api/payment/verify",
		`{"razorpay_order_id":"o1","razorpay_payment_id":"p1","razorpay_signature":"s1"}`)

	require.NoError(t, h.VerifyPayment(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "contact support")
}

func TestCancelCheckout_NoPending(t *testing.T) {
	h := NewCheckoutHandler(&MockCheckoutService{ResumeErr: service.ErrNoPendingCheckout}, handlerTestConfig())
	c, _ := newContext(t, http.MethodPost, "/api/checkout/cancel", "")

	err := h.CancelCheckout(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestGetEntitlement(t *testing.T) {
	svc := &MockCheckoutService{Paid: true, Status: model.FlowStatusSucceeded}
	h := NewCheckoutHandler(svc, handlerTestConfig())
	c, rec := newContext(t, http.MethodGet, "/api/entitlement", "")

	require.NoError(t, h.GetEntitlement(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.EntitlementResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Paid)
	assert.Equal(t, "SUCCEEDED", resp.FlowStatus)
}
