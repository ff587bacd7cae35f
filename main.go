package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"consent-backend/config"
	"consent-backend/middlewares"
	"consent-backend/models"
	"consent-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	// ---- Consent configuration (env / .env)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if domains := os.Getenv("CONSENT_DOMAINS"); domains != "" {
		list := strings.Split(domains, ",")
		for i := range list {
			list[i] = strings.TrimSpace(list[i])
		}
		cfg.SetDomainLoader(func() []string { return list })
	}

	// ---- Category registry (append-only here, read-only once serving)
	registry := models.NewRegistry()
	if err := registry.RegisterStandard(); err != nil {
		log.Fatal(err)
	}

	// ---- Limits (configurable via env)
	// Fiber default BodyLimit is 4 * 1024 * 1024 bytes if unset (per docs).
	// The consent payload is a short name list, so the default is generous.
	bodyLimitBytes := envInt("BODY_LIMIT_BYTES", 0)
	if bodyLimitBytes <= 0 {
		bodyLimitBytes = envInt("BODY_LIMIT_MB", 4) * 1024 * 1024
	}

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    bodyLimitBytes,
	})

	// ---- CORS
	// The cross-domain flow sends credentialed requests from every sibling
	// domain, so origins must be listed explicitly ("*" is rejected by
	// browsers when credentials are on).
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		origins := make([]string, 0, len(cfg.Domains()))
		for _, d := range cfg.Domains() {
			origins = append(origins, "https://"+d)
		}
		allowedOrigins = strings.Join(origins, ", ")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
	}))

	// ---- Global rate limiter (applies to all routes; tune via env)
	rlMax := envInt("RATE_LIMIT_MAX", 60)                                            // default 60 reqs
	rlWindow := time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second // default 60s window
	app.Use(limiter.New(limiter.Config{
		Max:        rlMax,
		Expiration: rlWindow,
		// Default KeyGenerator = client IP; default 429 handler is fine.
	}))

	// ---- Routes
	routes.Register(app, cfg, registry)

	// ---- Start
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("consent endpoint %s for primary domain %s, serving on port %s", cfg.Path, cfg.PrimaryDomain, port)
	if err := app.Listen(":" + port); err != nil {
		panic(err)
	}
}
