package main

import (
	"context"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/api"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/domain/certificate"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/logger"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/qrgen"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/render"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/store"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/tracing"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// .env is a convenience for local runs; absence is not an error.
	_ = godotenv.Load()

	if err := logger.Init(env("LOG_LEVEL", "info")); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Log.Sync()

	samplingRate, _ := strconv.ParseFloat(env("OTEL_SAMPLING_RATE", "1.0"), 64)
	shutdownTracer, err := tracing.InitTracer(tracing.Config{
		ServiceName:    "certigen-api",
		ServiceVersion: env("SERVICE_VERSION", "dev"),
		Environment:    env("ENVIRONMENT", "development"),
		CollectorURL:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		SamplingRate:   samplingRate,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracing", logger.Field("error", err))
	}
	defer shutdownTracer(context.Background())

	// The store is optional: without DB_HOST the service runs stateless
	// and verification answers on id format alone.
	var certStore *store.PostgresStore
	if host := os.Getenv("DB_HOST"); host != "" {
		certStore, err = store.NewPostgresStore(
			host,
			env("DB_PORT", "5432"),
			env("DB_NAME", "certigen"),
			env("DB_USER", "certigen"),
			os.Getenv("DB_PASSWORD"),
		)
		if err != nil {
			logger.Fatal("Failed to connect to certificate store", logger.Field("error", err))
		}
		defer certStore.Close()
		logger.Info("Certificate store connected", logger.Field("host", host))
	} else {
		logger.Info("DB_HOST not set, running stateless")
	}

	issuer := render.DefaultIssuer()
	if name := os.Getenv("ISSUER_NAME"); name != "" {
		issuer.Name = name
	}
	if logo := os.Getenv("ISSUER_LOGO_PATH"); logo != "" {
		issuer.LogoPath = logo
	}

	baseURL := env("CERTIGEN_BASE_URL", "https://certigen.example.com")
	var opts []render.Option
	if fontPath := os.Getenv("CERTIGEN_FONT_PATH"); fontPath != "" {
		opts = append(opts, render.WithUnicodeFont(fontPath))
	}
	engine := render.NewEngine(qrgen.NewPNGEncoder(), issuer, baseURL, opts...)
	logger.Info("Render engine ready", logger.Field("base_url", baseURL))

	var svcStore certificate.Store
	var pinger api.Pinger
	if certStore != nil {
		svcStore = certStore
		pinger = certStore
	}
	service := certificate.NewService(engine, svcStore)

	handlers := api.NewHandlers(service, pinger)
	server := api.NewServer(handlers, os.Getenv("CERTIGEN_ADMIN_TOKEN"))
	server.SetupRoutes()

	addr := ":" + env("PORT", "8080")
	logger.Info("Starting server", logger.Field("address", addr))
	if err := server.Start(addr); err != nil {
		logger.Fatal("Failed to start server", logger.Field("error", err))
	}
}
