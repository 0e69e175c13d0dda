package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"razorpay-checkout-demo/internal/client"
	"razorpay-checkout-demo/internal/config"
	"razorpay-checkout-demo/internal/handler"
	"razorpay-checkout-demo/internal/identity"
	"razorpay-checkout-demo/internal/metrics"
	"razorpay-checkout-demo/internal/repository"
	"razorpay-checkout-demo/internal/server"
	"razorpay-checkout-demo/internal/service"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabaseDSN)
	razorpayClient := client.NewRazorpayClient(&cfg.Razorpay)

	entitlementRepo := repository.NewEntitlementRepository(db)

	tokens := identity.NewTokenManager(&cfg.Session)
	identityService := identity.NewIdentityService(tokens)

	checkoutMetrics := metrics.NewCheckoutMetrics()

	checkoutService := service.NewCheckoutService(
		razorpayClient,
		entitlementRepo,
		identityService,
		cfg,
		checkoutMetrics,
	)
	defer checkoutService.Close()

	authHandler := handler.NewAuthHandler(identityService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, cfg)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(authHandler, checkoutHandler, tokens, checkoutMetrics)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
