package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/pkg/clock"
	"github.com/AaSu9/Aamcare/pkg/logger"
)

type fakeLogRepo struct {
	logs []*model.NotificationLog
}

func (f *fakeLogRepo) Create(_ context.Context, log *model.NotificationLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeLogRepo) ListForProfile(_ context.Context, profileID uuid.UUID) ([]*model.NotificationLog, error) {
	var out []*model.NotificationLog
	for _, l := range f.logs {
		if l.ProfileID == profileID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeSender struct {
	channel model.NotificationChannel
	fail    bool
	sentTo  []string
}

func (f *fakeSender) Channel() model.NotificationChannel { return f.channel }

func (f *fakeSender) Address(r Recipient) string {
	if f.channel == model.ChannelEmail {
		return r.Email
	}
	return r.Phone
}

func (f *fakeSender) Send(_ context.Context, to, _ string) error {
	if f.fail {
		return errors.New("provider unavailable")
	}
	f.sentTo = append(f.sentTo, to)
	return nil
}

var dispatchToday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func dispatchProfile() *model.Profile {
	return model.NewPostpartumProfileRef(&model.PostpartumProfile{
		Base:           model.Base{ID: uuid.New()},
		AccountID:      uuid.New(),
		Name:           "Gita",
		ChildBirthDate: dispatchToday.AddDate(0, 0, -30),
		Phone:          "+9779800000000",
	})
}

func newDispatchService(senders []Sender, repo *fakeLogRepo) *Service {
	return NewService(senders, repo, nil, logger.NewLogger(nil), clock.Fixed(dispatchToday))
}

func TestDispatchFirstChannelWins(t *testing.T) {
	whatsapp := &fakeSender{channel: model.ChannelWhatsApp}
	sms := &fakeSender{channel: model.ChannelSMS}
	repo := &fakeLogRepo{}
	svc := newDispatchService([]Sender{whatsapp, sms}, repo)

	profile := dispatchProfile()
	rcpt := Recipient{Phone: profile.Phone()}

	channel, err := svc.Dispatch(context.Background(), profile, rcpt, "hello", nil)
	require.NoError(t, err)

	assert.Equal(t, model.ChannelWhatsApp, channel)
	assert.Equal(t, []string{"+9779800000000"}, whatsapp.sentTo)
	assert.Empty(t, sms.sentTo, "fallback channel stays untouched")
}

func TestDispatchFallsBackToNextChannel(t *testing.T) {
	whatsapp := &fakeSender{channel: model.ChannelWhatsApp, fail: true}
	sms := &fakeSender{channel: model.ChannelSMS}
	repo := &fakeLogRepo{}
	svc := newDispatchService([]Sender{whatsapp, sms}, repo)

	profile := dispatchProfile()
	rcpt := Recipient{Phone: profile.Phone()}

	channel, err := svc.Dispatch(context.Background(), profile, rcpt, "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, model.ChannelSMS, channel)

	// Both the failed and the successful attempt are on record.
	logs, err := svc.History(context.Background(), profile.ID())
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.NotificationFailure, logs[0].Status)
	assert.Equal(t, model.ChannelWhatsApp, logs[0].Channel)
	assert.Equal(t, model.NotificationSuccess, logs[1].Status)
	assert.Equal(t, model.ChannelSMS, logs[1].Channel)
}

func TestDispatchSkipsChannelsWithoutAddress(t *testing.T) {
	whatsapp := &fakeSender{channel: model.ChannelWhatsApp, fail: true}
	sms := &fakeSender{channel: model.ChannelSMS, fail: true}
	email := &fakeSender{channel: model.ChannelEmail}
	repo := &fakeLogRepo{}
	svc := newDispatchService([]Sender{whatsapp, sms, email}, repo)

	profile := dispatchProfile()
	rcpt := Recipient{Phone: profile.Phone(), Email: "gita@example.np"}

	channel, err := svc.Dispatch(context.Background(), profile, rcpt, "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, model.ChannelEmail, channel)
	assert.Equal(t, []string{"gita@example.np"}, email.sentTo)

	// Without an email on file the last fallback is skipped entirely.
	_, err = svc.Dispatch(context.Background(), profile, Recipient{Phone: profile.Phone()}, "hello", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllChannelsFailed)
	assert.Len(t, email.sentTo, 1)
}

func TestDispatchAllChannelsFailed(t *testing.T) {
	whatsapp := &fakeSender{channel: model.ChannelWhatsApp, fail: true}
	repo := &fakeLogRepo{}
	svc := newDispatchService([]Sender{whatsapp}, repo)

	profile := dispatchProfile()

	_, err := svc.Dispatch(context.Background(), profile, Recipient{Phone: profile.Phone()}, "hello", nil)
	assert.ErrorIs(t, err, ErrAllChannelsFailed)
}

func TestDispatchNoReachableAddress(t *testing.T) {
	whatsapp := &fakeSender{channel: model.ChannelWhatsApp}
	svc := newDispatchService([]Sender{whatsapp}, &fakeLogRepo{})

	profile := dispatchProfile()
	profile.Postpartum.Phone = ""

	_, err := svc.Dispatch(context.Background(), profile, Recipient{}, "hello", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAllChannelsFailed)
	assert.Empty(t, whatsapp.sentTo)
}

func TestDispatchLogsPerDueRecord(t *testing.T) {
	whatsapp := &fakeSender{channel: model.ChannelWhatsApp}
	repo := &fakeLogRepo{}
	svc := newDispatchService([]Sender{whatsapp}, repo)

	profile := dispatchProfile()
	due := []*model.VaccinationRecord{
		{Base: model.Base{ID: uuid.New()}, ProfileID: profile.ID(), VaccineCode: "bcg"},
		{Base: model.Base{ID: uuid.New()}, ProfileID: profile.ID(), VaccineCode: "opv1"},
	}

	_, err := svc.Dispatch(context.Background(), profile, Recipient{Phone: profile.Phone()}, "hello", due)
	require.NoError(t, err)

	logs, err := svc.History(context.Background(), profile.ID())
	require.NoError(t, err)
	require.Len(t, logs, 2, "one log row per due record")
	require.NotNil(t, logs[0].VaccinationRecordID)
	assert.Equal(t, due[0].ID, *logs[0].VaccinationRecordID)
	require.NotNil(t, logs[1].VaccinationRecordID)
	assert.Equal(t, due[1].ID, *logs[1].VaccinationRecordID)
}
