package session

import (
	"context"
	"encoding/json"
	"sync"

	"book-bazaar/internal/model"
)

// memoryStore is an in-process Store used by tests and local development.
// Values are stored as JSON to keep the serialisation behaviour identical
// to the Redis store.
type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() Store {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) get(sid, key string, dest any) error {
	s.mu.RLock()
	data, ok := s.data[sessionKey(sid, key)]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return json.Unmarshal(data, dest)
}

func (s *memoryStore) set(sid, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[sessionKey(sid, key)] = data
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Cart(_ context.Context, sid string) (model.Cart, error) {
	cart := model.Cart{}
	if err := s.get(sid, keyCart, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *memoryStore) SaveCart(_ context.Context, sid string, cart model.Cart) error {
	return s.set(sid, keyCart, cart)
}

func (s *memoryStore) Addons(_ context.Context, sid string) (model.AddonSelection, error) {
	sel := model.AddonSelection{}
	if err := s.get(sid, keyAddons, &sel); err != nil {
		return nil, err
	}
	return sel, nil
}

func (s *memoryStore) SaveAddons(_ context.Context, sid string, sel model.AddonSelection) error {
	return s.set(sid, keyAddons, sel)
}

func (s *memoryStore) CheckoutState(_ context.Context, sid string) (Checkout, error) {
	var st Checkout
	if err := s.get(sid, keyCheckout, &st); err != nil {
		return Checkout{}, err
	}
	return st, nil
}

func (s *memoryStore) SaveCheckoutState(_ context.Context, sid string, st Checkout) error {
	return s.set(sid, keyCheckout, st)
}

func (s *memoryStore) ClearCheckout(_ context.Context, sid string) error {
	s.mu.Lock()
	delete(s.data, sessionKey(sid, keyCart))
	delete(s.data, sessionKey(sid, keyAddons))
	delete(s.data, sessionKey(sid, keyCheckout))
	s.mu.Unlock()
	return nil
}
