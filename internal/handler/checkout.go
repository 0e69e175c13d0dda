package handler

import (
	"errors"
	"net/http"
	"razorpay-checkout-demo/internal/config"
	"razorpay-checkout-demo/internal/dto"
	"razorpay-checkout-demo/internal/middleware"
	"razorpay-checkout-demo/internal/model"
	"razorpay-checkout-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	productCfg      config.Product
	currency        string
}

func NewCheckoutHandler(checkoutService service.CheckoutService, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		productCfg:      cfg.Product,
		currency:        cfg.Razorpay.Currency,
	}
}

func (h *CheckoutHandler) GetProduct(c echo.Context) error {
	return c.JSON(http.StatusOK, &dto.ProductResponse{
		Name:          h.productCfg.Name,
		Description:   h.productCfg.Description,
		Image:         h.productCfg.Image,
		Price:         h.productCfg.DisplayPrice,
		OriginalPrice: h.productCfg.OriginalPrice,
		Currency:      h.currency,
		Rating:        h.productCfg.Rating,
		Reviews:       h.productCfg.Reviews,
	})
}

func (h *CheckoutHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := middleware.UserFromContext(c)
	if err != nil {
		return err
	}

	req := dto.CheckoutRequest{Quantity: 1}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.checkoutService.StartCheckout(ctx, user, req.Quantity)
	switch {
	case errors.Is(err, service.ErrAlreadyEntitled):
		return echo.NewHTTPError(http.StatusConflict, "already entitled")
	case errors.Is(err, service.ErrCheckoutInFlight):
		return echo.NewHTTPError(http.StatusConflict, "checkout already in progress")
	case errors.Is(err, service.ErrOrderCreation):
		return echo.NewHTTPError(http.StatusBadGateway, "failed to create order, please try again")
	case err != nil:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := middleware.UserFromContext(c)
	if err != nil {
		return err
	}

	var req dto.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	confirmation := &model.PaymentConfirmation{
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
	}

	err = h.checkoutService.ResumeCheckout(ctx, user, service.Completed(confirmation))
	switch {
	case errors.Is(err, service.ErrNoPendingCheckout):
		return echo.NewHTTPError(http.StatusConflict, "no checkout awaiting completion")
	case err != nil:
		// The flow state carries the user-facing message, including the
		// "contact support" variant for a verified-but-unrecorded payment.
		_, message := h.checkoutService.FlowState(user.ID)
		return c.JSON(http.StatusOK, &dto.VerifyResponse{
			Success: false,
			Message: message,
		})
	}

	return c.JSON(http.StatusOK, &dto.VerifyResponse{Success: true})
}

func (h *CheckoutHandler) CancelCheckout(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := middleware.UserFromContext(c)
	if err != nil {
		return err
	}

	err = h.checkoutService.ResumeCheckout(ctx, user, service.Cancelled())
	if errors.Is(err, service.ErrNoPendingCheckout) {
		return echo.NewHTTPError(http.StatusConflict, "no checkout awaiting completion")
	}
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CheckoutHandler) GetEntitlement(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := middleware.UserFromContext(c)
	if err != nil {
		return err
	}

	paid := h.checkoutService.RefreshEntitlement(ctx, user.ID)
	status, message := h.checkoutService.FlowState(user.ID)

	return c.JSON(http.StatusOK, &dto.EntitlementResponse{
		Paid:       paid,
		FlowStatus: status.String(),
		Message:    message,
	})
}
