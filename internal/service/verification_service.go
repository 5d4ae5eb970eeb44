package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"book-bazaar/internal/model"
	"book-bazaar/internal/notify"
	"book-bazaar/internal/repository"
	"book-bazaar/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// verificationService implements VerificationService.
type verificationService struct {
	verificationRepo repository.VerificationRepository
	sender           notify.OTPSender
	sessions         session.Store
	otpDigits        int
	otpTTL           time.Duration
	logger           zerolog.Logger
	now              func() time.Time
}

// NewVerificationService creates a new phone verification service.
func NewVerificationService(
	verificationRepo repository.VerificationRepository,
	sender notify.OTPSender,
	sessions session.Store,
	otpDigits int,
	otpTTL time.Duration,
	logger zerolog.Logger,
) VerificationService {
	return &verificationService{
		verificationRepo: verificationRepo,
		sender:           sender,
		sessions:         sessions,
		otpDigits:        otpDigits,
		otpTTL:           otpTTL,
		logger:           logger.With().Str("service", "verification").Logger(),
		now:              time.Now,
	}
}

// NormalizePhone validates and canonicalises a phone number for OTP
// dispatch. Numbers without a country code get +91 prepended.
func NormalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)

	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 10 {
		return "", model.ErrInvalidPhone
	}

	if !strings.HasPrefix(phone, "+") {
		phone = "+91" + phone
	}

	return phone, nil
}

func (s *verificationService) generateCode() (string, error) {
	var b strings.Builder
	for i := 0; i < s.otpDigits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate OTP: %w", err)
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

// RequestOTP normalises the phone, stores a verification record and sends
// the code. A record whose code could not be delivered is removed so it can
// never be verified against.
func (s *verificationService) RequestOTP(ctx context.Context, phone string, method model.DeliveryMethod) (*model.PhoneVerification, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, err
	}

	v := &model.PhoneVerification{
		ID:             uuid.New(),
		PhoneNumber:    normalized,
		DeliveryMethod: method,
		OTP:            code,
		CreatedAt:      s.now(),
	}

	if err := s.verificationRepo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to store verification: %w", err)
	}

	if err := s.sender.SendOTP(ctx, normalized, code, method); err != nil {
		s.logger.Warn().
			Err(err).
			Str("verification_id", v.ID.String()).
			Str("method", string(method)).
			Msg("OTP dispatch failed, removing verification record")

		if delErr := s.verificationRepo.Delete(ctx, v.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("verification_id", v.ID.String()).Msg("failed to remove undeliverable verification")
		}

		return nil, model.NewDomainError(model.ErrCodeDeliveryFailure, "Failed to send OTP. Please try again.")
	}

	s.logger.Info().
		Str("verification_id", v.ID.String()).
		Str("method", string(method)).
		Msg("OTP dispatched")

	return v, nil
}

// VerifyOTP checks a submitted code against the stored record.
func (s *verificationService) VerifyOTP(ctx context.Context, sid string, id uuid.UUID, code string) error {
	v, err := s.verificationRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load verification: %w", err)
	}
	if v == nil {
		return model.ErrVerificationNotFound
	}

	if v.Expired(s.otpTTL, s.now()) {
		// Expired codes are gone for good; the customer must start over.
		if delErr := s.verificationRepo.Delete(ctx, v.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("verification_id", v.ID.String()).Msg("failed to remove expired verification")
		}
		return model.ErrOTPExpired
	}

	if strings.TrimSpace(code) != v.OTP {
		// Wrong guesses keep the record so the customer can retry.
		return model.ErrOTPMismatch
	}

	if err := s.verificationRepo.MarkVerified(ctx, v.ID); err != nil {
		return fmt.Errorf("failed to mark verification: %w", err)
	}

	st, err := s.sessions.CheckoutState(ctx, sid)
	if err != nil {
		return fmt.Errorf("failed to load checkout state: %w", err)
	}
	st.VerifiedPhone = v.PhoneNumber
	st.VerificationID = v.ID.String()
	if err := s.sessions.SaveCheckoutState(ctx, sid, st); err != nil {
		return fmt.Errorf("failed to save checkout state: %w", err)
	}

	s.logger.Info().Str("verification_id", v.ID.String()).Msg("phone verified")

	return nil
}

// ResendOTP regenerates the code on an existing record and dispatches it.
// The record keeps its identity; only the code and its clock reset.
func (s *verificationService) ResendOTP(ctx context.Context, id uuid.UUID) error {
	v, err := s.verificationRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load verification: %w", err)
	}
	if v == nil {
		return model.ErrVerificationNotFound
	}

	code, err := s.generateCode()
	if err != nil {
		return err
	}

	if err := s.verificationRepo.UpdateCode(ctx, v.ID, code, s.now()); err != nil {
		return fmt.Errorf("failed to update verification code: %w", err)
	}

	if err := s.sender.SendOTP(ctx, v.PhoneNumber, code, v.DeliveryMethod); err != nil {
		s.logger.Warn().Err(err).Str("verification_id", v.ID.String()).Msg("OTP resend dispatch failed")
		return model.NewDomainError(model.ErrCodeDeliveryFailure, "Failed to send OTP. Please try again.")
	}

	s.logger.Info().Str("verification_id", v.ID.String()).Msg("OTP resent")

	return nil
}
