package dto

type SignInRequest struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar_url"`
}

type SignInResponse struct {
	Token       string `json:"token"`
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

type CheckoutRequest struct {
	Quantity int `json:"quantity"`
}

type GatewayPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact,omitempty"`
}

type GatewayNotes struct {
	ProductName string `json:"product_name"`
	Quantity    string `json:"quantity"`
}

type GatewayTheme struct {
	Color string `json:"color"`
}

// CheckoutResponse carries everything the gateway checkout surface needs to
// open: the order plus descriptive metadata and prefill.
type CheckoutResponse struct {
	Key         string         `json:"key"`
	Amount      int64          `json:"amount"`
	Currency    string         `json:"currency"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	OrderID     string         `json:"order_id"`
	Prefill     GatewayPrefill `json:"prefill"`
	Notes       GatewayNotes   `json:"notes"`
	Theme       GatewayTheme   `json:"theme"`
}

type VerifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type VerifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type EntitlementResponse struct {
	Paid       bool   `json:"paid"`
	FlowStatus string `json:"flow_status"`
	Message    string `json:"message,omitempty"`
}

type ProductResponse struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	Price         int64   `json:"price"`
	OriginalPrice int64   `json:"original_price"`
	Currency      string  `json:"currency"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
}
