package notification

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/AaSu9/Aamcare/internal/config"
	"github.com/AaSu9/Aamcare/internal/model"
)

// TwilioSender sends over the Twilio messaging API. The same client serves
// both WhatsApp and SMS; WhatsApp addresses carry the "whatsapp:" prefix.
type TwilioSender struct {
	client  *twilio.RestClient
	from    string
	channel model.NotificationChannel
}

func newTwilioClient(cfg *config.TwilioConfig) *twilio.RestClient {
	return twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
}

func NewWhatsAppSender(cfg *config.TwilioConfig) *TwilioSender {
	return &TwilioSender{
		client:  newTwilioClient(cfg),
		from:    cfg.FromWhatsApp,
		channel: model.ChannelWhatsApp,
	}
}

func NewSMSSender(cfg *config.TwilioConfig) *TwilioSender {
	return &TwilioSender{
		client:  newTwilioClient(cfg),
		from:    cfg.FromSMS,
		channel: model.ChannelSMS,
	}
}

func (s *TwilioSender) Channel() model.NotificationChannel {
	return s.channel
}

func (s *TwilioSender) Address(r Recipient) string {
	return r.Phone
}

func (s *TwilioSender) Send(_ context.Context, to, message string) error {
	if s.channel == model.ChannelWhatsApp {
		to = "whatsapp:" + to
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send %s message: %w", s.channel, err)
	}
	return nil
}
