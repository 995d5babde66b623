package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"gather/config"
	"gather/internal/api"
	"gather/internal/auth"
	"gather/internal/category"
	"gather/internal/database"
	"gather/internal/di"
	"gather/internal/user"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if !cfg.SkipAutoMigrate {
		if err := db.Migrate(); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	app, err := di.InitializeApp(cfg, db)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer func() { _ = app.Logger.Sync() }()

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
	}).Methods(http.MethodGet)

	authMW := auth.Middleware(app.Tokens, app.Logger)
	auth.SetupAuthRoutes(r, app.AuthHandler)
	user.SetupUserRoutes(r, app.UserHandler, authMW)
	category.SetupCategoryRoutes(r, app.CategoryHandler, authMW)

	r.PathPrefix("/assets/").Handler(
		http.StripPrefix("/assets/", http.FileServer(http.Dir("assets"))),
	)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	var handler http.Handler = r
	handler = app.Guard.Middleware(handler)
	handler = api.RateLimit(100)(handler)
	handler = api.Logger(app.Logger)(handler)
	handler = corsHandler.Handler(handler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	app.Logger.Info("starting server", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := server.ListenAndServe(); err != nil {
		app.Logger.Fatal("server stopped", zap.Error(err))
	}
}
