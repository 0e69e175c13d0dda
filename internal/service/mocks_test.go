package service

import (
	"context"
	"razorpay-checkout-demo/internal/model"
)

// MockGateway implements client.RazorpayClient for testing
type MockGateway struct {
	Order        *model.Order
	CreateErr    error
	CreateCalls  int
	VerifyResult bool
	VerifyCalls  int
}

func (m *MockGateway) CreateOrder(_ context.Context) (*model.Order, error) {
	m.CreateCalls++
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	order := *m.Order
	return &order, nil
}

func (m *MockGateway) VerifyPaymentSignature(_ *model.PaymentConfirmation) bool {
	m.VerifyCalls++
	return m.VerifyResult
}

// MockEntitlementRepo implements repository.EntitlementRepository for testing
type MockEntitlementRepo struct {
	Records     map[string]*model.Entitlement
	FindErr     error
	UpsertErr   error
	UpsertCalls int
}

func NewMockEntitlementRepo() *MockEntitlementRepo {
	return &MockEntitlementRepo{
		Records: make(map[string]*model.Entitlement),
	}
}

func (m *MockEntitlementRepo) Upsert(_ context.Context, entitlement *model.Entitlement) error {
	m.UpsertCalls++
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.Records[entitlement.UserID] = entitlement
	return nil
}

func (m *MockEntitlementRepo) Find(_ context.Context, userID string) (*model.Entitlement, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	return m.Records[userID], nil
}
