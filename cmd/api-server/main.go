package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"animehub/database"
	"animehub/internal/config"
	"animehub/internal/http-api/handler"
	"animehub/internal/http-api/middleware"
	"animehub/internal/http-api/repository"
	"animehub/internal/http-api/service"
	"animehub/internal/imagehost"
	"animehub/internal/ingestion/jikan"
	"animehub/internal/mailer"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("failed to close database", "error", err)
		}
	}()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	animeRepo := repository.NewAnimeRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	seasonRepo := repository.NewSeasonRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)
	verifyRepo := repository.NewVerificationTokenRepository(db)
	resetRepo := repository.NewResetTokenRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// External collaborators
	metaClient := jikan.NewClient(cfg.JikanAPIURL)
	imageClient := imagehost.NewClient(cfg.ImageHostAPIURL, cfg.ImageHostAPIKey)
	mailClient := mailer.NewClient(cfg.MailerAPIURL, cfg.MailerAPIKey, cfg.MailerFrom)

	// Services
	authService := service.NewAuthService(userRepo, verifyRepo, resetRepo, mailClient, log, cfg)
	animeService := service.NewAnimeService(animeRepo, genreRepo, seasonRepo, imageClient, metaClient, log)
	reviewService := service.NewReviewService(reviewRepo, animeRepo)
	libraryService := service.NewLibraryService(libraryRepo, seasonRepo)
	genreService := service.NewGenreService(genreRepo)
	statsService := service.NewStatsService(statsRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	animeHandler := handler.NewAnimeHandler(animeService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	libraryHandler := handler.NewLibraryHandler(libraryService)
	genreHandler := handler.NewGenreHandler(genreService)
	statsHandler := handler.NewStatsHandler(statsService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireSession := middleware.AuthMiddleware(authService, userRepo)

	api := r.Group("/api")
	{
		authPublic := api.Group("/auth")
		authSession := api.Group("/auth")
		authSession.Use(requireSession)
		authHandler.RegisterRoutes(authPublic, authSession)

		animes := api.Group("/animes")
		animesSession := api.Group("/animes")
		animesSession.Use(requireSession)

		admin := api.Group("/admin")
		admin.Use(requireSession, middleware.RequireAdmin())

		animeHandler.RegisterRoutes(animes, animesSession, sessionGroup(api, "/metadata", requireSession), admin)
		reviewHandler.RegisterRoutes(animes, sessionGroup(api, "/reviews", requireSession))
		libraryHandler.RegisterRoutes(sessionGroup(api, "/library", requireSession))

		genres := api.Group("/genres")
		genreHandler.RegisterRoutes(genres, admin)

		statsHandler.RegisterRoutes(admin)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		log.Info("api server listening", "port", cfg.HTTPPort, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Block until interrupted, then drain in-flight requests
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func sessionGroup(api *gin.RouterGroup, path string, requireSession gin.HandlerFunc) *gin.RouterGroup {
	g := api.Group(path)
	g.Use(requireSession)
	return g
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
