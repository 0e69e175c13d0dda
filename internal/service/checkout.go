package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"razorpay-checkout-demo/internal/client"
	"razorpay-checkout-demo/internal/config"
	"razorpay-checkout-demo/internal/dto"
	"razorpay-checkout-demo/internal/identity"
	"razorpay-checkout-demo/internal/metrics"
	"razorpay-checkout-demo/internal/model"
	"razorpay-checkout-demo/internal/repository"
)

// GatewayResult is the single outcome of one gateway interaction: the user
// either completed payment or dismissed the checkout without paying.
type GatewayResult struct {
	confirmation *model.PaymentConfirmation
}

func Completed(confirmation *model.PaymentConfirmation) GatewayResult {
	return GatewayResult{confirmation: confirmation}
}

func Cancelled() GatewayResult {
	return GatewayResult{}
}

type CheckoutService interface {
	// StartCheckout creates a gateway order for the user and returns the
	// parameters the checkout surface needs to open. At most one attempt per
	// user may be in flight.
	StartCheckout(ctx context.Context, user *identity.Identity, quantity int) (*dto.CheckoutResponse, error)
	// ResumeCheckout consumes the gateway outcome for the pending attempt:
	// verify and persist on completion, return to idle on dismissal.
	ResumeCheckout(ctx context.Context, user *identity.Identity, result GatewayResult) error
	// RefreshEntitlement re-reads the persisted paid record. Missing records
	// and read errors both resolve to unpaid.
	RefreshEntitlement(ctx context.Context, userID string) bool
	Entitled(userID string) bool
	FlowState(userID string) (model.FlowStatus, string)
	Close()
}

type flowState struct {
	status   model.FlowStatus
	message  string
	quantity int
	order    *model.Order
}

type checkoutServiceImpl struct {
	gateway      client.RazorpayClient
	entitlements repository.EntitlementRepository
	razorpayCfg  config.Razorpay
	merchantCfg  config.Merchant
	productCfg   config.Product
	metrics      *metrics.CheckoutMetrics
	unsubscribe  func()

	mu       sync.Mutex
	flows    map[string]*flowState
	entitled map[string]bool
}

func NewCheckoutService(
	gateway client.RazorpayClient,
	entitlements repository.EntitlementRepository,
	identityService identity.Service,
	cfg *config.Config,
	checkoutMetrics *metrics.CheckoutMetrics,
) CheckoutService {
	s := &checkoutServiceImpl{
		gateway:      gateway,
		entitlements: entitlements,
		razorpayCfg:  cfg.Razorpay,
		merchantCfg:  cfg.Merchant,
		productCfg:   cfg.Product,
		metrics:      checkoutMetrics,
		flows:        make(map[string]*flowState),
		entitled:     make(map[string]bool),
	}

	s.unsubscribe = identityService.Subscribe(s.identityChanged)

	return s
}

func (s *checkoutServiceImpl) StartCheckout(ctx context.Context, user *identity.Identity, quantity int) (*dto.CheckoutResponse, error) {
	if user == nil || user.ID == "" {
		return nil, identity.ErrNotSignedIn
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	s.mu.Lock()
	if s.entitled[user.ID] {
		s.mu.Unlock()
		s.metrics.Attempts.WithLabelValues(metrics.OutcomeAlreadyEntitled).Inc()
		return nil, ErrAlreadyEntitled
	}

	flow := s.flow(user.ID)
	if flow.status.InFlight() {
		s.mu.Unlock()
		s.metrics.Attempts.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, ErrCheckoutInFlight
	}

	// Reserve the attempt before the order call so a concurrent start is
	// rejected instead of creating a second order.
	flow.status = model.FlowStatusAwaiting
	flow.message = ""
	flow.quantity = quantity
	flow.order = nil
	s.mu.Unlock()

	order, err := s.gateway.CreateOrder(ctx)
	if err != nil {
		s.fail(user.ID, msgOrderFailed)
		s.metrics.Attempts.WithLabelValues(metrics.OutcomeOrderError).Inc()
		return nil, fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}

	s.mu.Lock()
	flow.order = order
	s.mu.Unlock()

	s.metrics.Attempts.WithLabelValues(metrics.OutcomeStarted).Inc()

	return &dto.CheckoutResponse{
		Key:         s.razorpayCfg.KeyID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Name:        s.merchantCfg.Name,
		Description: s.productCfg.Name,
		Image:       s.productCfg.Image,
		OrderID:     order.ID,
		Prefill: dto.GatewayPrefill{
			Name:  user.DisplayName,
			Email: user.Email,
		},
		Notes: dto.GatewayNotes{
			ProductName: s.productCfg.Name,
			Quantity:    strconv.Itoa(quantity),
		},
		Theme: dto.GatewayTheme{
			Color: s.merchantCfg.ThemeColor,
		},
	}, nil
}

func (s *checkoutServiceImpl) ResumeCheckout(ctx context.Context, user *identity.Identity, result GatewayResult) error {
	if user == nil || user.ID == "" {
		return identity.ErrNotSignedIn
	}

	s.mu.Lock()
	flow := s.flow(user.ID)
	if flow.status != model.FlowStatusAwaiting || flow.order == nil {
		s.mu.Unlock()
		return ErrNoPendingCheckout
	}

	if result.confirmation == nil {
		// Dismissal is normal abandonment, not an error.
		flow.status = model.FlowStatusIdle
		flow.message = ""
		flow.order = nil
		s.mu.Unlock()
		s.metrics.Attempts.WithLabelValues(metrics.OutcomeCancelled).Inc()
		return nil
	}

	order := flow.order
	flow.status = model.FlowStatusVerifying
	flow.order = nil // the confirmation is consumed exactly once
	s.mu.Unlock()

	confirmation := result.confirmation
	if confirmation.OrderID != order.ID || !s.gateway.VerifyPaymentSignature(confirmation) {
		s.fail(user.ID, msgVerifyFailed)
		s.metrics.Verifications.WithLabelValues("invalid").Inc()
		s.metrics.Attempts.WithLabelValues(metrics.OutcomeVerifyFailed).Inc()
		return ErrVerificationFailed
	}
	s.metrics.Verifications.WithLabelValues("valid").Inc()

	record := &model.Entitlement{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		PaymentID:   confirmation.PaymentID,
		OrderID:     confirmation.OrderID,
		// The gateway order's amount is authoritative, never a client price.
		Amount:   order.Amount,
		Currency: order.Currency,
		Status:   model.EntitlementStatusPaid,
		PaidAt:   time.Now(),
	}

	if err := s.entitlements.Upsert(ctx, record); err != nil {
		// Funds are captured but the record is missing: surface this apart
		// from generic failure so an operator can reconcile.
		log.Printf("entitlement write failed after verified payment %s for user %s: %v",
			confirmation.PaymentID, user.ID, err)
		s.fail(user.ID, msgWriteFailed)
		s.metrics.Attempts.WithLabelValues(metrics.OutcomeWriteFailed).Inc()
		return fmt.Errorf("%w: %v", ErrEntitlementWrite, err)
	}

	s.mu.Lock()
	flow.status = model.FlowStatusSucceeded
	flow.message = msgSucceeded
	s.entitled[user.ID] = true
	s.mu.Unlock()
	s.metrics.Attempts.WithLabelValues(metrics.OutcomeSucceeded).Inc()

	// Re-read so downstream consumers see the persisted state, not the cache.
	s.RefreshEntitlement(ctx, user.ID)

	return nil
}

func (s *checkoutServiceImpl) RefreshEntitlement(ctx context.Context, userID string) bool {
	paid := false

	record, err := s.entitlements.Find(ctx, userID)
	if err != nil {
		// Fail closed: an ambiguous read never grants entitlement.
		log.Printf("entitlement read for user %s: %v", userID, err)
	} else if record.IsPaid() {
		paid = true
	}

	s.mu.Lock()
	s.entitled[userID] = paid
	s.mu.Unlock()

	return paid
}

func (s *checkoutServiceImpl) Entitled(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entitled[userID]
}

func (s *checkoutServiceImpl) FlowState(userID string) (model.FlowStatus, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[userID]
	if !ok {
		return model.FlowStatusIdle, ""
	}
	return flow.status, flow.message
}

func (s *checkoutServiceImpl) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// fail lands the user's attempt in the Failed state with a user-facing
// message. Failed is stable: a fresh StartCheckout may follow.
func (s *checkoutServiceImpl) fail(userID, message string) {
	s.mu.Lock()
	flow := s.flow(userID)
	flow.status = model.FlowStatusFailed
	flow.message = message
	flow.order = nil
	s.mu.Unlock()
}

// identityChanged keeps the cached entitlement in step with the session: a
// sign-in re-reads the store, a sign-out clears everything for the user.
func (s *checkoutServiceImpl) identityChanged(userID string, id *identity.Identity) {
	if id == nil {
		s.mu.Lock()
		delete(s.entitled, userID)
		delete(s.flows, userID)
		s.mu.Unlock()
		return
	}

	s.RefreshEntitlement(context.Background(), userID)
}

// flow returns the user's flow state, creating an idle one if absent. Caller
// must hold s.mu.
func (s *checkoutServiceImpl) flow(userID string) *flowState {
	flow, ok := s.flows[userID]
	if !ok {
		flow = &flowState{status: model.FlowStatusIdle}
		s.flows[userID] = flow
	}
	return flow
}
