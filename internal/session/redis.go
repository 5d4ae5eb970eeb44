package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"book-bazaar/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisStore keeps each session key as its own JSON value so cart writes do
// not race add-on writes within the same session.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed session store. Every write refreshes
// the key's TTL, so active sessions never expire mid-checkout.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger zerolog.Logger) Store {
	return &redisStore{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "session-store").Logger(),
	}
}

func sessionKey(sid, key string) string {
	return fmt.Sprintf("session:%s:%s", sid, key)
}

func (s *redisStore) get(ctx context.Context, sid, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, sessionKey(sid, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("unmarshal session value failed: %w", err)
	}

	return true, nil
}

func (s *redisStore) set(ctx context.Context, sid, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal session value failed: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sid, key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// Cart retrieves the session cart.
func (s *redisStore) Cart(ctx context.Context, sid string) (model.Cart, error) {
	cart := model.Cart{}
	if _, err := s.get(ctx, sid, keyCart, &cart); err != nil {
		s.logger.Error().Err(err).Str("session_id", sid).Msg("failed to load cart")
		return nil, err
	}
	return cart, nil
}

// SaveCart persists the cart back to the session.
func (s *redisStore) SaveCart(ctx context.Context, sid string, cart model.Cart) error {
	if err := s.set(ctx, sid, keyCart, cart); err != nil {
		s.logger.Error().Err(err).Str("session_id", sid).Msg("failed to save cart")
		return err
	}
	return nil
}

// Addons retrieves the add-on selection.
func (s *redisStore) Addons(ctx context.Context, sid string) (model.AddonSelection, error) {
	sel := model.AddonSelection{}
	if _, err := s.get(ctx, sid, keyAddons, &sel); err != nil {
		s.logger.Error().Err(err).Str("session_id", sid).Msg("failed to load addons")
		return nil, err
	}
	return sel, nil
}

// SaveAddons persists the add-on selection.
func (s *redisStore) SaveAddons(ctx context.Context, sid string, sel model.AddonSelection) error {
	if err := s.set(ctx, sid, keyAddons, sel); err != nil {
		s.logger.Error().Err(err).Str("session_id", sid).Msg("failed to save addons")
		return err
	}
	return nil
}

// CheckoutState retrieves the checkout state.
func (s *redisStore) CheckoutState(ctx context.Context, sid string) (Checkout, error) {
	var st Checkout
	if _, err := s.get(ctx, sid, keyCheckout, &st); err != nil {
		s.logger.Error().Err(err).Str("session_id", sid).Msg("failed to load checkout state")
		return Checkout{}, err
	}
	return st, nil
}

// SaveCheckoutState persists the checkout state.
func (s *redisStore) SaveCheckoutState(ctx context.Context, sid string, st Checkout) error {
	if err := s.set(ctx, sid, keyCheckout, st); err != nil {
		s.logger.Error().Err(err).Str("session_id", sid).Msg("failed to save checkout state")
		return err
	}
	return nil
}

// ClearCheckout removes cart, add-ons and checkout state in one go.
func (s *redisStore) ClearCheckout(ctx context.Context, sid string) error {
	keys := []string{
		sessionKey(sid, keyCart),
		sessionKey(sid, keyAddons),
		sessionKey(sid, keyCheckout),
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error().Err(err).Str("session_id", sid).Msg("failed to clear checkout session")
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}
