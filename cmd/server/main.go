package main

import (
	"net/http"

	"prompt-app/internal/api/handlers"
	"prompt-app/internal/auth"
	"prompt-app/internal/config"
	"prompt-app/internal/logger"
	"prompt-app/internal/repository/file"
	"prompt-app/internal/service/analytics"
	"prompt-app/internal/service/chat"
	"prompt-app/internal/service/llm"
)

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func main() {
	// Load configuration
	appConfig, err := config.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize flat-file storage
	store, err := file.NewFileStore(appConfig.Storage)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize storage")
	}

	// Seed demo user
	if err := file.SeedDemoUser(store); err != nil {
		logger.Log.WithError(err).Fatal("Failed to seed demo user")
	}

	// Wire services
	analyticsService := analytics.NewAnalyticsService(store)
	provider := llm.NewOpenRouterProvider(&appConfig.LLM)
	chatService := chat.NewChatService(analyticsService, provider)

	authService := auth.NewAuth(store, &appConfig.Auth)
	promptHandlers := handlers.NewPromptHandlers(chatService, analyticsService, store)

	// Create new ServeMux to use Go 1.22+ routing features
	mux := http.NewServeMux()

	// CORS preflight handler for OPTIONS requests
	corsHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.WriteHeader(http.StatusOK)
	}

	// Public routes
	mux.HandleFunc("POST /api/login", enableCORS(authService.LoginHandler))
	mux.HandleFunc("OPTIONS /api/login", corsHandler)
	mux.HandleFunc("POST /api/register", enableCORS(authService.RegisterHandler))
	mux.HandleFunc("OPTIONS /api/register", corsHandler)
	mux.HandleFunc("GET /api/health", enableCORS(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))
	mux.HandleFunc("OPTIONS /api/health", corsHandler)

	// Protected routes
	mux.HandleFunc("POST /api/generate", enableCORS(authService.Middleware(promptHandlers.GenerateHandler)))
	mux.HandleFunc("OPTIONS /api/generate", corsHandler)
	mux.HandleFunc("GET /api/history", enableCORS(authService.Middleware(promptHandlers.HistoryHandler)))
	mux.HandleFunc("OPTIONS /api/history", corsHandler)
	mux.HandleFunc("GET /api/history/export", enableCORS(authService.Middleware(promptHandlers.ExportHandler)))
	mux.HandleFunc("OPTIONS /api/history/export", corsHandler)
	mux.HandleFunc("GET /api/analytics", enableCORS(authService.Middleware(promptHandlers.AnalyticsHandler)))
	mux.HandleFunc("OPTIONS /api/analytics", corsHandler)
	mux.HandleFunc("GET /api/activity", enableCORS(authService.Middleware(promptHandlers.ActivityHandler)))
	mux.HandleFunc("OPTIONS /api/activity", corsHandler)

	logger.Log.WithField("port", appConfig.Server.Port).Info("Server starting")

	if err := http.ListenAndServe(":"+appConfig.Server.Port, mux); err != nil {
		logger.Log.WithError(err).Fatal("Server failed to start")
	}
}
