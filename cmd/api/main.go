package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/AaSu9/Aamcare/internal/config"
	"github.com/AaSu9/Aamcare/internal/handler"
	accountHandler "github.com/AaSu9/Aamcare/internal/handler/account"
	checkupHandler "github.com/AaSu9/Aamcare/internal/handler/checkup"
	contentHandler "github.com/AaSu9/Aamcare/internal/handler/content"
	notificationHandler "github.com/AaSu9/Aamcare/internal/handler/notification"
	profileHandler "github.com/AaSu9/Aamcare/internal/handler/profile"
	vaccinationHandler "github.com/AaSu9/Aamcare/internal/handler/vaccination"
	"github.com/AaSu9/Aamcare/internal/middleware"
	"github.com/AaSu9/Aamcare/internal/repository/postgres"
	"github.com/AaSu9/Aamcare/internal/router"
	accountService "github.com/AaSu9/Aamcare/internal/service/account"
	checkupService "github.com/AaSu9/Aamcare/internal/service/checkup"
	contentService "github.com/AaSu9/Aamcare/internal/service/content"
	notificationService "github.com/AaSu9/Aamcare/internal/service/notification"
	profileService "github.com/AaSu9/Aamcare/internal/service/profile"
	recommendationService "github.com/AaSu9/Aamcare/internal/service/recommendation"
	vaccinationService "github.com/AaSu9/Aamcare/internal/service/vaccination"
	"github.com/AaSu9/Aamcare/pkg/auth"
	"github.com/AaSu9/Aamcare/pkg/clock"
	"github.com/AaSu9/Aamcare/pkg/logger"
	"github.com/AaSu9/Aamcare/pkg/security"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	clk := clock.System()

	// Repositories
	accountRepo := postgres.NewAccountRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	vaccinationRepo := postgres.NewVaccinationRepository(db)
	checkupRepo := postgres.NewCheckupRepository(db)
	recommendationRepo := postgres.NewRecommendationRepository(db)
	contentRepo := postgres.NewContentRepository(db)
	notificationLogRepo := postgres.NewNotificationLogRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(12)
	accountSvc := accountService.NewService(accountRepo, hasher, jwtSvc, cfg.JWT.ExpiryHours*3600)
	vaccinationSvc := vaccinationService.NewService(vaccinationRepo, clk)
	profileSvc := profileService.NewService(profileRepo, vaccinationRepo, vaccinationSvc, log)
	recommendationSvc := recommendationService.NewService(recommendationRepo, clk)
	checkupSvc := checkupService.NewService(checkupRepo, recommendationSvc, log)
	contentCacheTTL := time.Duration(cfg.Content.CacheTTLMinutes) * time.Minute
	if contentCacheTTL == 0 {
		contentCacheTTL = 15 * time.Minute
	}
	contentSvc := contentService.NewService(contentRepo, contentCacheTTL, clk)
	notificationSvc := notificationService.NewService(nil, notificationLogRepo, nil, log, clk)

	// Handlers
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	h := handler.NewHandler(db)
	accountH := accountHandler.NewHandler(accountSvc)
	profileH := profileHandler.NewHandler(profileSvc)
	vaccinationH := vaccinationHandler.NewHandler(vaccinationSvc, profileSvc)
	checkupH := checkupHandler.NewHandler(checkupSvc, profileSvc)
	contentH := contentHandler.NewHandler(contentSvc, profileSvc)
	notificationH := notificationHandler.NewHandler(notificationSvc, profileSvc)

	r := router.NewRouter(
		log,
		authMiddleware,
		accountH,
		profileH,
		vaccinationH,
		checkupH,
		contentH,
		notificationH,
		h,
		router.Config{
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			TimeoutSeconds:   cfg.Server.TimeoutSeconds,
			CORSConfig:       middleware.DefaultCORSConfig(),
			MetricsPrefix:    "aamcare_api",
			ContentCacheSecs: int(contentCacheTTL.Seconds()),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.ZL.Info().Int("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
