package server

import (
	"net/http"
	"razorpay-checkout-demo/internal/handler"
	"razorpay-checkout-demo/internal/identity"
	"razorpay-checkout-demo/internal/metrics"
	custommiddleware "razorpay-checkout-demo/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	authHandler     *handler.AuthHandler
	checkoutHandler *handler.CheckoutHandler
	tokens          *identity.TokenManager
	checkoutMetrics *metrics.CheckoutMetrics
}

func NewServer(
	authHandler *handler.AuthHandler,
	checkoutHandler *handler.CheckoutHandler,
	tokens *identity.TokenManager,
	checkoutMetrics *metrics.CheckoutMetrics,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		authHandler:     authHandler,
		checkoutHandler: checkoutHandler,
		tokens:          tokens,
		checkoutMetrics: checkoutMetrics,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(s.checkoutMetrics.Handler()))

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api.GET("/product", s.checkoutHandler.GetProduct)
	api.POST("/auth/signin", s.authHandler.SignIn)

	// -------- authenticated --------
	authed := api.Group("", custommiddleware.Auth(s.tokens))
	authed.POST("/auth/signout", s.authHandler.SignOut)
	authed.POST("/checkout/order", s.checkoutHandler.CreateOrder)
	authed.POST("/payment/verify", s.checkoutHandler.VerifyPayment)
	authed.POST("/checkout/cancel", s.checkoutHandler.CancelCheckout)
	authed.GET("/entitlement", s.checkoutHandler.GetEntitlement)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
