package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/internal/repository"
	"github.com/AaSu9/Aamcare/pkg/clock"
	"github.com/AaSu9/Aamcare/pkg/logger"
	"github.com/AaSu9/Aamcare/pkg/messaging"
)

// EventChannel is the broker channel notification events are published on.
const EventChannel = "notifications"

var ErrAllChannelsFailed = errors.New("all notification channels failed")

// Service dispatches composed messages. Senders are tried in the order given;
// the first success wins and every attempt is logged. A nil broker disables
// event publishing.
type Service struct {
	senders []Sender
	logRepo repository.NotificationLogRepository
	broker  messaging.Broker
	logger  *logger.Logger
	clk     clock.Clock
}

func NewService(senders []Sender, logRepo repository.NotificationLogRepository, broker messaging.Broker, logger *logger.Logger, clk clock.Clock) *Service {
	return &Service{
		senders: senders,
		logRepo: logRepo,
		broker:  broker,
		logger:  logger,
		clk:     clk,
	}
}

// Dispatch sends the message to the recipient, falling through the sender
// list on failure; senders whose channel has no address are skipped. It
// returns the channel that succeeded. Log rows are written per due
// vaccination record so the delivery history lines up with the schedule,
// plus one row when no records were due.
func (s *Service) Dispatch(ctx context.Context, profile *model.Profile, rcpt Recipient, message string, due []*model.VaccinationRecord) (model.NotificationChannel, error) {
	var lastErr error
	attempted := false
	for _, sender := range s.senders {
		to := sender.Address(rcpt)
		if to == "" {
			continue
		}
		attempted = true

		err := sender.Send(ctx, to, message)
		if err == nil {
			s.log(ctx, profile, sender.Channel(), model.NotificationSuccess, message, due)
			s.publish(ctx, profile, sender.Channel(), model.NotificationSuccess)
			return sender.Channel(), nil
		}

		lastErr = err
		s.logger.ZL.Warn().
			Err(err).
			Str("profile_id", profile.ID().String()).
			Str("channel", string(sender.Channel())).
			Msg("notification delivery failed, trying next channel")
		s.log(ctx, profile, sender.Channel(), model.NotificationFailure, message, due)
		s.publish(ctx, profile, sender.Channel(), model.NotificationFailure)
	}

	if !attempted {
		return "", fmt.Errorf("profile %s has no reachable address", profile.ID())
	}
	return "", fmt.Errorf("%w: %v", ErrAllChannelsFailed, lastErr)
}

// History returns the profile's delivery log, newest first.
func (s *Service) History(ctx context.Context, profileID uuid.UUID) ([]*model.NotificationLog, error) {
	logs, err := s.logRepo.ListForProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load notification history: %w", err)
	}
	return logs, nil
}

func (s *Service) log(ctx context.Context, profile *model.Profile, channel model.NotificationChannel, outcome model.NotificationOutcome, message string, due []*model.VaccinationRecord) {
	now := s.clk.Now()

	rows := []*model.NotificationLog{}
	if len(due) == 0 {
		rows = append(rows, &model.NotificationLog{
			ID:          uuid.New(),
			ProfileID:   profile.ID(),
			ProfileKind: profile.Kind,
			Channel:     channel,
			Status:      outcome,
			Message:     message,
			SentAt:      now,
		})
	}
	for _, rec := range due {
		recID := rec.ID
		rows = append(rows, &model.NotificationLog{
			ID:                  uuid.New(),
			ProfileID:           profile.ID(),
			ProfileKind:         profile.Kind,
			VaccinationRecordID: &recID,
			Channel:             channel,
			Status:              outcome,
			Message:             message,
			SentAt:              now,
		})
	}

	for _, row := range rows {
		if err := s.logRepo.Create(ctx, row); err != nil {
			s.logger.ZL.Error().Err(err).Str("profile_id", profile.ID().String()).Msg("failed to write notification log")
		}
	}
}

func (s *Service) publish(ctx context.Context, profile *model.Profile, channel model.NotificationChannel, outcome model.NotificationOutcome) {
	if s.broker == nil {
		return
	}

	event := messaging.Message{
		Type: "notification.sent",
		Payload: model.NotificationEvent{
			ID:          uuid.New(),
			ProfileID:   profile.ID(),
			ProfileKind: profile.Kind,
			Channel:     channel,
			Status:      outcome,
			SentAt:      s.clk.Now(),
		},
	}
	if err := s.broker.Publish(ctx, EventChannel, event); err != nil {
		s.logger.ZL.Warn().Err(err).Msg("failed to publish notification event")
	}
}
