package client

import (
	"context"
	"fmt"
	"razorpay-checkout-demo/internal/config"
	"razorpay-checkout-demo/internal/model"
	"strings"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

type RazorpayClient interface {
	CreateOrder(ctx context.Context) (*model.Order, error)
	VerifyPaymentSignature(confirmation *model.PaymentConfirmation) bool
}

type razorpayClientImpl struct {
	sdk         *razorpay.Client
	keySecret   string
	orderAmount int64
	currency    string
}

func NewRazorpayClient(razorpayCfg *config.Razorpay) RazorpayClient {
	return &razorpayClientImpl{
		sdk:         razorpay.NewClient(razorpayCfg.KeyID, razorpayCfg.KeySecret),
		keySecret:   razorpayCfg.KeySecret,
		orderAmount: razorpayCfg.OrderAmount,
		currency:    razorpayCfg.Currency,
	}
}

// newReceipt builds a unique order receipt. Razorpay caps the receipt field
// at 40 characters, so the uuid is used without hyphens.
func newReceipt() string {
	return "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CreateOrder creates a gateway order with the server-configured amount. No
// client input is trusted for pricing. Each call creates a distinct order.
func (c *razorpayClientImpl) CreateOrder(_ context.Context) (*model.Order, error) {
	receipt := newReceipt()

	payload := map[string]interface{}{
		"amount":   c.orderAmount,
		"currency": c.currency,
		"receipt":  receipt,
	}

	resp, err := c.sdk.Order.Create(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay api create order: %w", err)
	}

	orderID, ok := resp["id"].(string)
	if !ok || orderID == "" {
		return nil, fmt.Errorf("razorpay create order: missing order id in response")
	}

	order := &model.Order{
		ID:       orderID,
		Amount:   c.orderAmount,
		Currency: c.currency,
		Receipt:  receipt,
	}

	// Razorpay echoes amount/currency back; prefer the gateway's values when present.
	if amount, ok := resp["amount"].(float64); ok {
		order.Amount = int64(amount)
	}
	if currency, ok := resp["currency"].(string); ok && currency != "" {
		order.Currency = currency
	}

	return order, nil
}

// VerifyPaymentSignature checks the HMAC signature the gateway attached to a
// completed payment against the key secret.
func (c *razorpayClientImpl) VerifyPaymentSignature(confirmation *model.PaymentConfirmation) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   confirmation.OrderID,
		"razorpay_payment_id": confirmation.PaymentID,
	}

	return utils.VerifyPaymentSignature(params, confirmation.Signature, c.keySecret)
}
