package model

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryMethod is the channel an OTP or confirmation is sent through.
type DeliveryMethod string

const (
	DeliverySMS      DeliveryMethod = "sms"
	DeliveryWhatsApp DeliveryMethod = "whatsapp"
)

// ParseDeliveryMethod normalises a wire value; empty defaults to SMS.
func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(s) {
	case DeliverySMS, DeliveryWhatsApp:
		return DeliveryMethod(s), nil
	case "":
		return DeliverySMS, nil
	default:
		return "", NewDomainError(ErrCodeValidation, "Unsupported delivery method")
	}
}

// PhoneVerification is one OTP attempt bound to a phone number and channel.
// Expiry is derived from CreatedAt; it is not stored.
type PhoneVerification struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	PhoneNumber    string         `json:"phone_number" db:"phone_number"`
	DeliveryMethod DeliveryMethod `json:"delivery_method" db:"delivery_method"`
	OTP            string         `json:"-" db:"otp"`
	Verified       bool           `json:"verified" db:"is_verified"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// Expired reports whether the code is past its validity window.
func (v *PhoneVerification) Expired(ttl time.Duration, now time.Time) bool {
	return now.After(v.CreatedAt.Add(ttl))
}
