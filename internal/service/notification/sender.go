package notification

import (
	"context"

	"github.com/AaSu9/Aamcare/internal/model"
)

// Recipient carries the destination addresses for one profile. Phone comes
// from the profile, email from the owning account.
type Recipient struct {
	Phone string
	Email string
}

// Sender delivers one message over one channel. The dispatcher tries senders
// in order and stops at the first success.
type Sender interface {
	Channel() model.NotificationChannel
	// Address picks this channel's destination from the recipient; empty
	// means the recipient cannot be reached on this channel.
	Address(r Recipient) string
	Send(ctx context.Context, to, message string) error
}
