package repository

import (
	"context"
	"fmt"
	"time"

	"book-bazaar/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// verificationRepository implements VerificationRepository using PostgreSQL.
type verificationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVerificationRepository creates a new PostgreSQL-backed verification repository.
func NewVerificationRepository(pool *pgxpool.Pool, logger zerolog.Logger) VerificationRepository {
	return &verificationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "verification").Logger(),
	}
}

// Create inserts a new verification record.
func (r *verificationRepository) Create(ctx context.Context, v *model.PhoneVerification) error {
	query := `
		INSERT INTO phone_verifications (id, phone_number, delivery_method, otp, is_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, v.ID, v.PhoneNumber, v.DeliveryMethod, v.OTP, v.Verified, v.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("verification_id", v.ID.String()).Msg("failed to create verification")
		return fmt.Errorf("failed to create verification: %w", err)
	}

	r.logger.Debug().Str("verification_id", v.ID.String()).Msg("verification created")

	return nil
}

// GetByID retrieves a verification record by its ID.
func (r *verificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PhoneVerification, error) {
	query := `
		SELECT id, phone_number, delivery_method, otp, is_verified, created_at
		FROM phone_verifications
		WHERE id = $1
	`

	var v model.PhoneVerification
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.PhoneNumber, &v.DeliveryMethod, &v.OTP, &v.Verified, &v.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("verification_id", id.String()).Msg("verification not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("verification_id", id.String()).Msg("failed to query verification")
		return nil, fmt.Errorf("failed to query verification: %w", err)
	}

	return &v, nil
}

// UpdateCode overwrites the code and creation time on an existing record.
func (r *verificationRepository) UpdateCode(ctx context.Context, id uuid.UUID, otp string, createdAt time.Time) error {
	query := `
		UPDATE phone_verifications
		SET otp = $2, created_at = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, otp, createdAt)
	if err != nil {
		r.logger.Error().Err(err).Str("verification_id", id.String()).Msg("failed to update verification code")
		return fmt.Errorf("failed to update verification code: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrVerificationNotFound
	}

	return nil
}

// MarkVerified flips the verified flag.
func (r *verificationRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE phone_verifications
		SET is_verified = TRUE
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("verification_id", id.String()).Msg("failed to mark verification")
		return fmt.Errorf("failed to mark verification: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrVerificationNotFound
	}

	return nil
}

// Delete removes a verification record.
func (r *verificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM phone_verifications WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("verification_id", id.String()).Msg("failed to delete verification")
		return fmt.Errorf("failed to delete verification: %w", err)
	}

	return nil
}

// LatestByPhone returns the most recently created record for a phone number.
func (r *verificationRepository) LatestByPhone(ctx context.Context, phone string) (*model.PhoneVerification, error) {
	query := `
		SELECT id, phone_number, delivery_method, otp, is_verified, created_at
		FROM phone_verifications
		WHERE phone_number = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var v model.PhoneVerification
	err := r.pool.QueryRow(ctx, query, phone).Scan(
		&v.ID, &v.PhoneNumber, &v.DeliveryMethod, &v.OTP, &v.Verified, &v.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("phone", phone).Msg("failed to query latest verification")
		return nil, fmt.Errorf("failed to query latest verification: %w", err)
	}

	return &v, nil
}
