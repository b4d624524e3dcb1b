package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Gateway  *Gateway
	Auth     *Auth
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel    string `env:"LOG_LEVEL"`
	Mode        string
	ShippingFee string `env:"SHIPPING_FEE"`
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Gateway struct {
	PIXBaseURL     string `env:"PIX_GATEWAY_URL"`
	PIXAPIKey      string `env:"PIX_GATEWAY_KEY"`
	CardBaseURL    string `env:"CARD_GATEWAY_URL"`
	CardAPIKey     string `env:"CARD_GATEWAY_KEY"`
	TimeoutSeconds int    `env:"GATEWAY_TIMEOUT"`
	PollWorkers    int    `env:"PAYMENT_POLL_WORKERS"`
}

type Auth struct {
	// Hex-encoded 32-byte key shared with the token issuer. Empty generates
	// an ephemeral key, only useful for local runs.
	SymmetricKeyHex string `env:"AUTH_TOKEN_KEY"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var gateway Gateway
	var auth Auth
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&gateway.PIXBaseURL, "pix", "", "PIX gateway base URL")
	flag.StringVar(&gateway.CardBaseURL, "card", "", "Card gateway base URL")
	flag.IntVar(&gateway.TimeoutSeconds, "t", 5, "Gateway call timeout, seconds")
	flag.IntVar(&gateway.PollWorkers, "w", 5, "Payment poll workers")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.StringVar(&app.ShippingFee, "s", `19.90`, "Flat shipping fee for physical orders")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&gateway)
	if err != nil {
		return nil, fmt.Errorf("error parsing gateway config: %w", err)
	}
	err = env.Parse(&auth)
	if err != nil {
		return nil, fmt.Errorf("error parsing auth config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Gateway:  &gateway,
		Auth:     &auth,
		App:      &app,
	}

	return &config, nil
}
