package commands

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freshcheck/api-go/cache"
	"github.com/freshcheck/api-go/config"
	"github.com/freshcheck/api-go/controllers"
	"github.com/freshcheck/api-go/routes"
	"github.com/freshcheck/api-go/services"
	"github.com/freshcheck/api-go/stores"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Serve flags
	port      string
	noMigrate bool
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if port != "" {
			cfg.Port = port
		}
		if err := cfg.ValidateServe(); err != nil {
			return err
		}
		return runServer(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides PORT)")
	serveCmd.Flags().BoolVar(&noMigrate, "no-migrate", false, "Skip schema migration at startup")
	rootCmd.AddCommand(serveCmd)
}

func runServer(ctx context.Context, cfg *config.Config) error {
	// Initialize database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return err
	}
	if !noMigrate {
		if err := config.Migrate(db); err != nil {
			return err
		}
	}
	if cfg.SeedAdminPassword != "" {
		if _, err := config.SeedAdmin(ctx, db, cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.SeedAdminName); err != nil {
			log.Printf("Admin seed skipped: %v", err)
		}
	}

	summarizer, closeCache, err := newSummarizer(ctx, cfg.AI)
	if err != nil {
		return err
	}
	defer closeCache()

	var storage services.EvidenceStorage
	if cfg.Storage.Enabled() {
		storage = services.NewR2Storage(services.R2Options{
			AccountID:       cfg.Storage.AccountID,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			BucketName:      cfg.Storage.BucketName,
			PublicURL:       cfg.Storage.PublicURL,
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			PresignExpiry:   cfg.Storage.PresignExpiry,
		})
	} else {
		log.Println("R2 storage not configured, evidence uploads disabled")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.LoggerWithWriter(os.Stdout), gin.Recovery())
	routes.SetupRoutes(r, newControllers(db, cfg, summarizer, storage), []byte(cfg.JWTSecret))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newControllers(db *gorm.DB, cfg *config.Config, summarizer services.Summarizer, storage services.EvidenceStorage) *routes.Controllers {
	users := &stores.GormUserStore{DB: db}
	refreshTokens := &stores.GormRefreshTokenStore{DB: db}
	forms := &stores.GormFormStore{DB: db}
	guidelines := &stores.GormGuidelineStore{DB: db}
	reports := &stores.GormReportStore{DB: db}
	stats := &stores.GormStatsStore{DB: db}

	return &routes.Controllers{
		Auth:       controllers.NewAuthController(users, refreshTokens, []byte(cfg.JWTSecret), cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Users:      controllers.NewUserController(users),
		Forms:      controllers.NewFormController(forms),
		Guidelines: controllers.NewGuidelineController(guidelines),
		Reports:    controllers.NewReportController(reports, forms, summarizer),
		Uploads:    controllers.NewUploadController(reports, storage, int(cfg.Storage.PresignExpiry.Seconds())),
		Stats:      controllers.NewStatsController(stats),
	}
}

// newSummarizer wires the generative client and the optional badger cache. The
// returned func closes the cache.
func newSummarizer(ctx context.Context, cfg config.AIConfig) (*services.GenerativeSummarizer, func(), error) {
	summarizer := &services.GenerativeSummarizer{
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	}
	noop := func() {}

	if !cfg.Enabled() {
		log.Println("Generative AI not configured, summaries use the fallback scorer")
		return summarizer, noop, nil
	}

	client, err := config.NewGenerativeClient(ctx, cfg)
	if err != nil {
		return nil, noop, err
	}
	summarizer.Client = client

	if cfg.CacheDir == "" {
		return summarizer, noop, nil
	}
	summaryCache, err := cache.Open(cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		return nil, noop, err
	}
	summarizer.Cache = summaryCache
	return summarizer, func() {
		if err := summaryCache.Close(); err != nil {
			log.Printf("Failed to close summary cache: %v", err)
		}
	}, nil
}
