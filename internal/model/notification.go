package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationChannel string

const (
	ChannelWhatsApp NotificationChannel = "whatsapp"
	ChannelSMS      NotificationChannel = "sms"
	ChannelEmail    NotificationChannel = "email"
)

type NotificationOutcome string

const (
	NotificationSuccess NotificationOutcome = "success"
	NotificationFailure NotificationOutcome = "failure"
)

// NotificationLog records one delivery attempt. Failures are logged and never
// retried automatically.
type NotificationLog struct {
	ID                  uuid.UUID           `db:"id" json:"id"`
	ProfileID           uuid.UUID           `db:"profile_id" json:"profile_id"`
	ProfileKind         ProfileKind         `db:"profile_kind" json:"profile_kind"`
	VaccinationRecordID *uuid.UUID          `db:"vaccination_record_id" json:"vaccination_record_id,omitempty"`
	Channel             NotificationChannel `db:"channel" json:"channel"`
	Status              NotificationOutcome `db:"status" json:"status"`
	Message             string              `db:"message" json:"message"`
	SentAt              time.Time           `db:"sent_at" json:"sent_at"`
}

// NotificationEvent is published on the broker so other consumers (dashboard,
// audit) can observe outbound messages.
type NotificationEvent struct {
	ID          uuid.UUID           `json:"id"`
	ProfileID   uuid.UUID           `json:"profile_id"`
	ProfileKind ProfileKind         `json:"profile_kind"`
	Channel     NotificationChannel `json:"channel"`
	Status      NotificationOutcome `json:"status"`
	SentAt      time.Time           `json:"sent_at"`
}
