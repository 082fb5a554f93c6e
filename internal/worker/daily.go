package worker

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/internal/repository"
	"github.com/AaSu9/Aamcare/internal/service/notification"
	"github.com/AaSu9/Aamcare/internal/service/vaccination"
	"github.com/AaSu9/Aamcare/pkg/clock"
	"github.com/AaSu9/Aamcare/pkg/logger"
	"github.com/AaSu9/Aamcare/pkg/metrics"
)

// DailyBatch walks every profile once per run: refresh overdue vaccination
// statuses, compose the daily message, dispatch it, log the outcome. One
// profile failing never stops the batch.
type DailyBatch struct {
	profileRepo repository.ProfileRepository
	accountRepo repository.AccountRepository
	vaccSvc     *vaccination.Service
	notifSvc    *notification.Service
	logger      *logger.Logger
	metrics     *metrics.Metrics
	clk         clock.Clock
}

func NewDailyBatch(
	profileRepo repository.ProfileRepository,
	accountRepo repository.AccountRepository,
	vaccSvc *vaccination.Service,
	notifSvc *notification.Service,
	logger *logger.Logger,
	m *metrics.Metrics,
	clk clock.Clock,
) *DailyBatch {
	return &DailyBatch{
		profileRepo: profileRepo,
		accountRepo: accountRepo,
		vaccSvc:     vaccSvc,
		notifSvc:    notifSvc,
		logger:      logger,
		metrics:     m,
		clk:         clk,
	}
}

// Run executes one full pass over all profiles.
func (b *DailyBatch) Run(ctx context.Context) error {
	timer := prometheus.NewTimer(b.metrics.BatchDuration)
	defer timer.ObserveDuration()

	b.logger.ZL.Info().Time("today", clock.Today(b.clk)).Msg("daily batch starting")

	expectant, err := b.profileRepo.ListExpectant(ctx)
	if err != nil {
		return fmt.Errorf("failed to list expectant profiles: %w", err)
	}
	for _, p := range expectant {
		b.processProfile(ctx, model.NewExpectantProfileRef(p))
	}

	postpartum, err := b.profileRepo.ListPostpartum(ctx)
	if err != nil {
		return fmt.Errorf("failed to list postpartum profiles: %w", err)
	}
	for _, p := range postpartum {
		b.processProfile(ctx, model.NewPostpartumProfileRef(p))
	}

	b.logger.ZL.Info().
		Int("expectant", len(expectant)).
		Int("postpartum", len(postpartum)).
		Msg("daily batch finished")
	return nil
}

func (b *DailyBatch) processProfile(ctx context.Context, profile *model.Profile) {
	log := b.logger.ZL.With().Str("profile_id", profile.ID().String()).Logger()

	refreshed, err := b.vaccSvc.RefreshForProfile(ctx, profile.ID())
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh vaccination statuses")
		return
	}
	b.metrics.StatusesRefreshed.Add(float64(refreshed))

	if profile.Phone() == "" {
		b.metrics.ProfilesSkipped.Inc()
		log.Warn().Msg("skipping profile, no phone number on file")
		return
	}

	records, err := b.vaccSvc.ListForProfile(ctx, profile.ID())
	if err != nil {
		log.Error().Err(err).Msg("failed to load schedule")
		return
	}

	due := notification.DueVaccinations(records, clock.Today(b.clk))
	message := notification.Compose(profile, due)

	rcpt := notification.Recipient{Phone: profile.Phone()}
	if account, err := b.accountRepo.Get(ctx, profile.AccountID()); err == nil {
		rcpt.Email = account.Email
	}

	channel, err := b.notifSvc.Dispatch(ctx, profile, rcpt, message, due)
	if err != nil {
		b.metrics.MessagesFailed.WithLabelValues("all").Inc()
		log.Error().Err(err).Msg("failed to deliver daily message")
		return
	}

	b.metrics.ProfilesProcessed.Inc()
	b.metrics.MessagesSent.WithLabelValues(string(channel)).Inc()
	log.Info().
		Str("channel", string(channel)).
		Int("due_vaccinations", len(due)).
		Msg("daily message delivered")
}
