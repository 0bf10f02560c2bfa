// Package server provides the HTTP REST API for the job board.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/queue"
	"github.com/jonathan/jobboard/internal/report"
	"github.com/jonathan/jobboard/internal/server/middleware"
	"github.com/jonathan/jobboard/internal/server/ratelimit"
	"github.com/jonathan/jobboard/internal/storage"
)

// reportDispatcher fans the weekly report out to every recruiter.
type reportDispatcher interface {
	DispatchWeekly(ctx context.Context) (int, error)
}

// reportLocator finds the most recent report artifact for a recruiter.
type reportLocator interface {
	Latest(ctx context.Context, recruiterID uuid.UUID) (*report.Artifact, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       storage.Store
	pool        *queue.Pool
	poolCancel  context.CancelFunc
	dispatcher  reportDispatcher
	locator     reportLocator
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	validator   *validator.Validate
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	storageConfig, err := config.NewStorageConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create storage config: %w", err)
	}
	store, err := storage.New(storageConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}

	s := &Server{
		db:        database,
		store:     store,
		validator: validator.New(),
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	// Report pipeline: generator behind a worker pool, scheduler in front
	queueConfig, err := config.NewQueueConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create queue config: %w", err)
	}
	generator := report.NewGenerator(database, database, store)
	s.pool = queue.NewPool(queueConfig.Workers, queueConfig.BufferSize, func(ctx context.Context, task queue.Task) error {
		return generator.Execute(ctx, task.RecruiterID)
	})
	s.dispatcher = report.NewScheduler(database, s.pool)
	s.locator = report.NewLocator(store)

	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Auth endpoints
	mux.HandleFunc("POST /v1/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", s.authHandler.Login)
	mux.Handle("PUT /v1/auth/password", auth(http.HandlerFunc(s.handleUpdatePassword)))

	// User profile endpoint
	mux.Handle("GET /v1/users/me", auth(http.HandlerFunc(s.handleGetMe)))

	// Job offer endpoints
	mux.HandleFunc("GET /v1/job-offers", s.handleListJobOffers)
	mux.HandleFunc("GET /v1/job-offers/{id}", s.handleGetJobOffer)
	mux.Handle("POST /v1/job-offers", auth(http.HandlerFunc(s.handleCreateJobOffer)))
	mux.Handle("PUT /v1/job-offers/{id}", auth(http.HandlerFunc(s.handleUpdateJobOffer)))
	mux.Handle("DELETE /v1/job-offers/{id}", auth(http.HandlerFunc(s.handleDeleteJobOffer)))

	// Application endpoints
	mux.Handle("POST /v1/job-offers/{id}/applications", auth(http.HandlerFunc(s.handleCreateApplication)))
	mux.Handle("GET /v1/job-offers/{id}/applications", auth(http.HandlerFunc(s.handleListOfferApplications)))
	mux.Handle("GET /v1/applications/mine", auth(http.HandlerFunc(s.handleListMyApplications)))
	mux.Handle("PUT /v1/applications/{id}/status", auth(http.HandlerFunc(s.handleUpdateApplicationStatus)))

	// Resume endpoints
	mux.Handle("POST /v1/resumes", auth(http.HandlerFunc(s.handleUploadResume)))
	mux.Handle("GET /v1/resumes", auth(http.HandlerFunc(s.handleListResumes)))
	mux.Handle("GET /v1/resumes/{id}/download", auth(http.HandlerFunc(s.handleDownloadResume)))
	mux.Handle("DELETE /v1/resumes/{id}", auth(http.HandlerFunc(s.handleDeleteResume)))

	// Export endpoint
	mux.Handle("GET /v1/exports/applications.csv", auth(http.HandlerFunc(s.handleExportApplications)))

	// Report endpoints
	mux.Handle("POST /v1/reports/dispatch", auth(http.HandlerFunc(s.handleDispatchReports)))
	mux.Handle("GET /v1/reports/weekly/latest", auth(http.HandlerFunc(s.handleLatestReport)))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for report downloads
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Report workers run for the life of the server
	poolCtx, cancel := context.WithCancel(context.Background())
	s.poolCancel = cancel
	s.pool.Start(poolCtx)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop accepting report tasks and drain in-flight jobs
	s.pool.Stop()
	s.poolCancel()

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract client identifier (IP address)
		clientID := s.extractClientID(r)

		// Check rate limit
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			// Set rate limit headers
			s.setRateLimitHeaders(w, info)
			// Return 429 Too Many Requests
			s.rateLimitResponse(w, info)
			return
		}

		// Set rate limit headers for successful requests
		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpdatePassword updates the authenticated user's password.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	// Log rate limit hit
	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
