package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/hearthhq/hearth/internal/auth"
	"github.com/hearthhq/hearth/internal/config"
	"github.com/hearthhq/hearth/internal/docstore"
	"github.com/hearthhq/hearth/internal/middleware"
	"github.com/hearthhq/hearth/internal/service"
	"github.com/hearthhq/hearth/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level)

	if cfg.Auth.JWTSecret == "" {
		slog.Error("Auth secret is required, set HEARTH_AUTH_JWT_SECRET")
		os.Exit(1)
	}

	store, err := docstore.NewSQLite(cfg.Store.Path)
	if err != nil {
		slog.Error("Failed to initialize document store", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Document store initialized", "database", cfg.Store.Path)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(auth.NewDocUserStorage(store))
	authService := service.NewAuthService(authenticator, jwtManager)

	// Everything under /api requires a session except register and login,
	// whose more specific patterns take precedence on the outer mux.
	api := http.NewServeMux()
	authService.RegisterProtected(api)
	service.NewExpenseService(store).Register(api)
	service.NewPaymentService(store).Register(api)
	service.NewHouseholdService(store).Register(api)
	service.NewStreamService(store).Register(api)

	mux := http.NewServeMux()
	authService.RegisterPublic(mux)
	mux.Handle("/api/", middleware.RequireAuth(jwtManager)(api))
	mux.Handle("GET /metrics", middleware.MetricsHandler())

	staticDir, err := filepath.Abs(cfg.Server.StaticPath)
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	slog.Info("Serving static files", "path", staticDir)

	// Serve the frontend for all non-API routes, falling back to index.html
	// for SPA client-side routing.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	})

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
