package api

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/david/rfp-finder/internal/auth"
	"github.com/david/rfp-finder/internal/ingest"
	"github.com/david/rfp-finder/internal/rfp"
	"github.com/david/rfp-finder/internal/store"
)

type Server struct {
	Echo        *echo.Echo
	Rfps        *rfp.Service
	Store       store.Store
	Ingestor    *ingest.Ingestor
	Fetcher     *ingest.DocumentFetcher
	AuthService *auth.Service
	DB          *pgxpool.Pool
}

var (
	adminSecretOnce    sync.Once
	adminSecretRuntime string
	adminSecretErr     error
)

// NewServer wires the HTTP surface. A nil pool runs the server in
// memory-only mode: auth and saved-RFP routes are not registered.
func NewServer(st store.Store, ingestor *ingest.Ingestor, pool *pgxpool.Pool) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// CORS: allow frontend origins from env or default to localhost
	allowedOrigins := []string{"http://localhost:4200"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				allowedOrigins = append(allowedOrigins, o)
			}
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Admin-Secret"},
	}))

	s := &Server{
		Echo:     e,
		Rfps:     rfp.NewService(st),
		Store:    st,
		Ingestor: ingestor,
		Fetcher:  ingest.NewDocumentFetcher(),
		DB:       pool,
	}
	if pool != nil {
		s.AuthService = auth.NewService(pool)
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)

	api := s.Echo.Group("/api")
	api.GET("/rfps", s.handleListRfps)
	api.GET("/rfps/stats/technologies", s.handleTechnologyCounts)
	api.GET("/rfps/stats/live", s.handleLiveSummary)
	api.GET("/rfps/:id", s.handleGetRfp)
	api.POST("/rfps/:id/download", s.handleDownloadDocument)
	api.POST("/rfps/:id/contact", s.handleContact)

	// Admin routes (ingest & seed)
	admin := api.Group("")
	admin.Use(s.adminMiddleware)
	admin.POST("/ingest", s.handleTriggerIngest)
	admin.POST("/seed", s.handleSeed)

	if s.DB == nil {
		return
	}

	// Auth routes
	api.POST("/auth/signup", s.handleSignup)
	api.POST("/auth/login", s.handleLogin)

	// Protected routes (saved RFPs)
	saved := api.Group("/saved")
	saved.Use(auth.Middleware)
	saved.POST("/:id", s.handleSaveRfp)
	saved.DELETE("/:id", s.handleUnsaveRfp)
	saved.GET("", s.handleGetSavedRfps)
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

func (s *Server) adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret, err := adminSecret()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server admin configuration error"})
		}

		// Check X-Admin-Secret header or Bearer token
		authHeader := c.Request().Header.Get("Authorization")
		adminHeader := c.Request().Header.Get("X-Admin-Secret")

		if adminHeader == secret {
			return next(c)
		}
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok && token == secret {
			return next(c)
		}

		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized admin access"})
	}
}

func adminSecret() (string, error) {
	adminSecretOnce.Do(func() {
		secret := strings.TrimSpace(os.Getenv("ADMIN_SECRET"))
		if secret != "" {
			adminSecretRuntime = secret
			return
		}

		buf := make([]byte, 48)
		if _, err := rand.Read(buf); err != nil {
			adminSecretErr = fmt.Errorf("failed to generate ADMIN_SECRET fallback: %w", err)
			return
		}

		adminSecretRuntime = base64.RawURLEncoding.EncodeToString(buf)
		log.Print("ADMIN_SECRET is not set; using ephemeral in-memory fallback secret")
	})

	if adminSecretErr != nil {
		return "", adminSecretErr
	}
	if adminSecretRuntime == "" {
		return "", fmt.Errorf("admin secret unavailable")
	}

	return adminSecretRuntime, nil
}
