package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/apiclient"
	"github.com/lifesteward/internal/config"
	"github.com/lifesteward/internal/db"
	"github.com/lifesteward/internal/handler"
	"github.com/lifesteward/internal/localstore"
	"github.com/lifesteward/internal/router"
	"github.com/lifesteward/internal/service"
	"github.com/lifesteward/internal/session"
	"github.com/lifesteward/internal/view"
	"github.com/spf13/cobra"
)

const (
	sweepInterval   = 10 * time.Minute
	shutdownTimeout = 5 * time.Second
)

func addServe(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动网页前端与提醒投递",
		Example: `
steward serve
STEWARD_PORT=9000 STEWARD_API_BASE_URL=http://localhost:8000/api steward serve
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	topLevel.AddCommand(cmd)
}

func serve(parent context.Context, cfg config.AppConfig) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		return err
	}

	renderer, err := view.New()
	if err != nil {
		return err
	}

	hub := service.NewNotificationHub()
	dispatcher := service.NewReminderDispatcher(db.DB, hub)
	registry := session.NewRegistry(cfg.SessionTTL)
	planner := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)

	api := handler.NewAPI(handler.Deps{
		Planner:          planner,
		Store:            localstore.Open(cfg.LocalStoreDir),
		Dispatcher:       dispatcher,
		Hub:              hub,
		Registry:         registry,
		UserID:           cfg.UserID,
		DashboardRefresh: cfg.DashboardRefresh,
	})

	go dispatcher.Run(ctx, cfg.ReminderPollInterval)
	go sweepWorkspaces(ctx, registry)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router.SetupRouter(api, renderer, cfg.SessionSecret),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] listening on %s, api %s, user %d", cfg.ListenAddr, planner.BaseURL(), cfg.UserID)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Printf("[SERVER] stopped")
	return nil
}

func sweepWorkspaces(ctx context.Context, registry *session.Registry) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := registry.Sweep(); n > 0 {
				log.Printf("[SESSION] evicted %d idle workspaces", n)
			}
		}
	}
}
