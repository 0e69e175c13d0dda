package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"checkout.db"`

	Razorpay Razorpay `envPrefix:"RAZORPAY_"`
	Session  Session  `envPrefix:"SESSION_"`
	Merchant Merchant `envPrefix:"MERCHANT_"`
	Product  Product  `envPrefix:"PRODUCT_"`
}

type Razorpay struct {
	KeyID     string `env:"KEY_ID"`
	KeySecret string `env:"KEY_SECRET"`
	// Order amount in the minor currency unit. The server decides price;
	// the product's display price below is metadata only.
	OrderAmount int64  `env:"ORDER_AMOUNT" envDefault:"299900"`
	Currency    string `env:"CURRENCY" envDefault:"INR"`
}

type Session struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

type Merchant struct {
	Name       string `env:"NAME" envDefault:"Acme Corp"`
	ThemeColor string `env:"THEME_COLOR" envDefault:"#3399cc"`
}

type Product struct {
	Name          string  `env:"NAME" envDefault:"Wireless Bluetooth Headphones"`
	Description   string  `env:"DESCRIPTION" envDefault:"Premium quality wireless headphones with noise cancellation"`
	Image         string  `env:"IMAGE" envDefault:"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=300&fit=crop&crop=center"`
	DisplayPrice  int64   `env:"DISPLAY_PRICE" envDefault:"2999"`
	OriginalPrice int64   `env:"ORIGINAL_PRICE" envDefault:"3999"`
	Rating        float64 `env:"RATING" envDefault:"4.5"`
	Reviews       int     `env:"REVIEWS" envDefault:"128"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
