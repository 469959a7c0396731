package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/psahay/classwork/internal/auth"
	"github.com/psahay/classwork/internal/config"
	"github.com/psahay/classwork/internal/httpapi"
	"github.com/psahay/classwork/internal/service"
	"github.com/psahay/classwork/internal/storage"
	"github.com/psahay/classwork/internal/storage/memory"
	"github.com/psahay/classwork/internal/storage/sqlite"
	"github.com/psahay/classwork/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()

	var store storage.Store
	if cfg.DBPath == "memory" {
		store = memory.New()
		slog.Info("Storage initialized", "backend", "memory")
	} else {
		s, err := sqlite.New(cfg.DBPath)
		if err != nil {
			slog.Error("Failed to initialize storage", "error", err)
			os.Exit(1)
		}
		store = s
		slog.Info("Storage initialized", "backend", "sqlite", "database", cfg.DBPath)
	}
	defer store.Close()

	locks := service.NewScopeLocks()
	roster := service.NewRosterService(store)
	groups := service.NewGroupService(store, locks)
	submissions := service.NewSubmissionService(store, locks)
	grades := service.NewGradeService(store)
	projects := service.NewProjectService(store)

	gate, err := auth.NewGate(roster, cfg.TeacherUsername, cfg.TeacherSecret)
	if err != nil {
		slog.Error("Failed to initialize login gate", "error", err)
		os.Exit(1)
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)

	server := httpapi.NewServer(gate, jwtManager, roster, groups, submissions, grades, projects)
	router := server.Router(cfg.AllowedOrigins)

	// h2c lets the dashboards use HTTP/2 without TLS in development.
	handler := h2c.NewHandler(router, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
