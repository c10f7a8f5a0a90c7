// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roomeo-app/roomeo-backend/internal/auth"
	"github.com/roomeo-app/roomeo-backend/internal/common/database"
	"github.com/roomeo-app/roomeo-backend/internal/config"
	"github.com/roomeo-app/roomeo-backend/internal/enrichment"
	"github.com/roomeo-app/roomeo-backend/internal/matching"
	notifications "github.com/roomeo-app/roomeo-backend/internal/notification"
	"github.com/roomeo-app/roomeo-backend/internal/survey"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Roomeo Roommate Matching API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load and validate configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed: ", err)
	}
	log.Println("✅ Configuration loaded and valid")

	// 3. Connect to PostgreSQL
	log.Println("\n🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL: ", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 4. Connect to Redis (optional)
	log.Println("\n📮 Step 4: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without cache", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 5. Run database migrations
	log.Println("\n🔨 Step 5: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 6. Initialize Auth system
	log.Println("\n🔐 Step 6: Initializing authentication system...")
	authRepo := auth.NewPostgresRepository(db)
	authService := auth.NewService(authRepo, &auth.Config{
		JWTSecret:         cfg.JWTSecret,
		AccessTokenExpiry: cfg.AccessTokenExpiry,
		BCryptCost:        cfg.BCryptCost,
	})
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(authService)
	log.Println("✅ Authentication system initialized")

	// 7. Initialize Notifications module
	log.Println("\n🔔 Step 7: Initializing Notifications module...")

	var emailProvider notifications.EmailProvider
	switch cfg.EmailProvider {
	case "sendgrid":
		emailProvider = notifications.NewSendGridEmailProvider(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName)
		log.Println("   ✅ Using SendGrid for emails")
	default:
		emailProvider = notifications.NewMockEmailProvider()
		log.Println("   ⚠️  Using mock email provider (development mode)")
	}

	var smsProvider notifications.SMSProvider
	switch cfg.SMSProvider {
	case "twilio":
		smsProvider = notifications.NewTwilioSMSProvider(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
		log.Println("   ✅ Using Twilio for SMS")
	default:
		smsProvider = notifications.NewMockSMSProvider()
		log.Println("   ⚠️  Using mock SMS provider (development mode)")
	}

	hub := notifications.NewHub()
	go hub.Run()
	log.Println("   ✅ WebSocket hub started")

	notificationService := notifications.NewService(authRepo, emailProvider, smsProvider, hub, notifications.Config{
		ScoreThreshold: cfg.NotifyScoreThreshold,
		SMSEnabled:     cfg.EnableSMSNotifications,
	})
	notificationHandler := notifications.NewHandler(hub, authService)
	log.Println("✅ Notifications module initialized")

	// 8. Initialize Enrichment module
	log.Println("\n🤖 Step 8: Initializing AI enrichment...")
	matchingRepo := matching.NewPostgresRepository(db)

	var reportGenerator enrichment.Generator
	if cfg.EnableEnrichment && cfg.GeminiAPIKey != "" {
		reportGenerator, err = enrichment.NewGeminiGenerator(cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("⚠️  Gemini unavailable (%v), using local reports", err)
			reportGenerator = enrichment.NewLocalGenerator()
		} else {
			log.Println("   ✅ Using Gemini for match reports")
		}
	} else {
		reportGenerator = enrichment.NewLocalGenerator()
		log.Println("   ⚠️  Using local match reports (no Gemini key)")
	}
	defer reportGenerator.Close()

	enricher := enrichment.NewEnricher(matchingRepo, reportGenerator)
	log.Println("✅ Enrichment module initialized")

	// 9. Initialize Matching module
	log.Println("\n💘 Step 9: Initializing Matching module...")

	observers := []matching.MatchObserver{enricher}
	if cfg.EnableEmailNotifications {
		observers = append(observers, notificationService)
	}

	engine := matching.NewEngine()
	generator := matching.NewGenerator(matchingRepo, engine, observers...)
	matchingCache := matching.NewCache(redisClient, cfg.StatsCacheTTL)
	matchingService := matching.NewService(matchingRepo, generator, matchingCache, cfg.MatchBatchTimeBudget)
	matchingHandler := matching.NewHandler(matchingService)
	log.Println("✅ Matching module initialized")

	// 10. Initialize Survey module
	log.Println("\n📝 Step 10: Initializing Survey module...")
	surveyService := survey.NewService(matchingRepo, matchingService)
	surveyHandler := survey.NewHandler(surveyService)
	log.Println("✅ Survey module initialized")

	// 11. Setup routes
	log.Println("\n🛣️  Step 11: Setting up routes...")
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	auth.RegisterRoutes(router, authHandler, authMiddleware)
	log.Println("   ✅ Auth routes registered")

	survey.RegisterRoutes(router, surveyHandler, authMiddleware)
	log.Println("   ✅ Survey routes registered")

	matching.RegisterRoutes(router, matchingHandler, authMiddleware)
	log.Println("   ✅ Matching routes registered")

	notifications.RegisterRoutes(router, notificationHandler)
	log.Println("   ✅ Notification routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 12. Start the daily batch scheduler
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()

	if cfg.EnableDailyBatch {
		scheduler := matching.NewScheduler(matchingService, cfg.MatchBatchHour)
		scheduler.Start(schedulerCtx)
		log.Printf("   ✅ Daily match batch scheduled for %02d:00 UTC", cfg.MatchBatchHour)
	}

	// 13. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	stopScheduler()
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown: ", err)
	}

	log.Println("✅ Server exited gracefully")
}

var startTime = time.Now()

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","uptime":"%s"}`, time.Since(startTime).Round(time.Second))
}

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
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

// runMigrations executes database migrations
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(100) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			display_name VARCHAR(120) NOT NULL,
			phone VARCHAR(20),
			role VARCHAR(20) NOT NULL DEFAULT 'member',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS roommate_profiles (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			display_name VARCHAR(120) NOT NULL,
			sleep_schedule VARCHAR(20),
			sleep_level INT,
			cleanliness INT,
			cleanliness_pref VARCHAR(20),
			noise_level INT,
			noise_tolerance INT,
			study_habits VARCHAR(20),
			social_level INT,
			social_pref VARCHAR(20),
			guest_frequency INT,
			guest_policy VARCHAR(20),
			temperature INT,
			smoking BOOLEAN NOT NULL DEFAULT FALSE,
			drinking VARCHAR(20) NOT NULL DEFAULT '',
			has_pets BOOLEAN NOT NULL DEFAULT FALSE,
			pet_types TEXT[] NOT NULL DEFAULT '{}',
			dietary_restrictions TEXT[] NOT NULL DEFAULT '{}',
			interests TEXT[] NOT NULL DEFAULT '{}',
			work_schedule VARCHAR(20) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT roommate_profiles_user_unique UNIQUE (user_id)
		)`,

		// user1_id < user2_id always holds; the unique constraint makes
		// concurrent generation of the same pair collapse into one row.
		`CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			user1_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			user2_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category_scores JSONB NOT NULL DEFAULT '{}',
			overall_score INT NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			report TEXT,
			icebreakers TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT matches_pair_unique UNIQUE (user1_id, user2_id),
			CONSTRAINT matches_pair_ordered CHECK (user1_id < user2_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_matches_user1 ON matches(user1_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_user2 ON matches(user2_id)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_user ON roommate_profiles(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
