package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/AaSu9/Aamcare/internal/config"
	"github.com/AaSu9/Aamcare/internal/repository/postgres"
	notificationService "github.com/AaSu9/Aamcare/internal/service/notification"
	vaccinationService "github.com/AaSu9/Aamcare/internal/service/vaccination"
	"github.com/AaSu9/Aamcare/internal/worker"
	"github.com/AaSu9/Aamcare/pkg/clock"
	"github.com/AaSu9/Aamcare/pkg/logger"
	"github.com/AaSu9/Aamcare/pkg/messaging"
	"github.com/AaSu9/Aamcare/pkg/messaging/redis"
	"github.com/AaSu9/Aamcare/pkg/metrics"
)

func main() {
	once := flag.Bool("once", false, "run a single batch pass and exit")
	flag.Parse()

	logg := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		logg.Fatal(err, "failed to load configuration")
	}

	twilioCfg, err := config.LoadTwilioConfig()
	if err != nil {
		logg.Fatal(err, "failed to load twilio configuration")
	}
	smtpCfg, err := config.LoadSMTPConfig()
	if err != nil {
		logg.Fatal(err, "failed to load smtp configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		logg.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), &log.Logger)
		if err != nil {
			logg.Fatal(err, "failed to connect to Redis")
		}
		defer broker.Close()
	}

	clk := clock.System()

	profileRepo := postgres.NewProfileRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	vaccinationRepo := postgres.NewVaccinationRepository(db)
	notificationLogRepo := postgres.NewNotificationLogRepository(db)

	vaccinationSvc := vaccinationService.NewService(vaccinationRepo, clk)

	// WhatsApp first, SMS fallback, email last.
	senders := []notificationService.Sender{
		notificationService.NewWhatsAppSender(twilioCfg),
		notificationService.NewSMSSender(twilioCfg),
	}
	if smtpCfg.Host != "" {
		senders = append(senders, notificationService.NewEmailSender(smtpCfg))
	}
	notificationSvc := notificationService.NewService(senders, notificationLogRepo, broker, logg, clk)

	batch := worker.NewDailyBatch(
		profileRepo,
		accountRepo,
		vaccinationSvc,
		notificationSvc,
		logg,
		metrics.New("aamcare_notifier"),
		clk,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logg.Info("shutting down...")
		cancel()
	}()

	if *once {
		if err := batch.Run(ctx); err != nil {
			logg.Fatal(err, "batch failed")
		}
		return
	}

	setupMetricsServer(logg, cfg.Notifier.MetricsPort)
	runScheduled(ctx, batch, cfg.Notifier, logg)
}

// runScheduled fires the batch at the configured local time every day. When
// interval_minutes is set the batch runs on that fixed cadence instead,
// which is what the staging environment uses.
func runScheduled(ctx context.Context, batch *worker.DailyBatch, cfg config.NotifierConfig, logg *logger.Logger) {
	if cfg.IntervalMinutes > 0 {
		ticker := time.NewTicker(time.Duration(cfg.IntervalMinutes) * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := batch.Run(ctx); err != nil {
					logg.Error(err, "batch failed")
				}
			}
		}
	}

	for {
		next := nextRunAt(time.Now(), cfg.Hour, cfg.Minute)
		logg.ZL.Info().Time("next_run", next).Msg("waiting for next scheduled run")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := batch.Run(ctx); err != nil {
				logg.Error(err, "batch failed")
			}
		}
	}
}

// nextRunAt returns the next occurrence of hour:minute after now.
func nextRunAt(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func setupMetricsServer(logg *logger.Logger, port int) {
	if port == 0 {
		port = 9091
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			logg.Error(err, "metrics server failed")
		}
	}()
}
