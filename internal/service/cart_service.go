package service

import (
	"context"
	"fmt"
	"sort"

	"book-bazaar/internal/addon"
	"book-bazaar/internal/model"
	"book-bazaar/internal/repository"
	"book-bazaar/internal/session"

	"github.com/rs/zerolog"
)

// cartService implements CartService on top of the session store.
type cartService struct {
	sessions    session.Store
	catalogRepo repository.CatalogRepository
	addons      *addon.Catalog
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	sessions session.Store,
	catalogRepo repository.CatalogRepository,
	addons *addon.Catalog,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		sessions:    sessions,
		catalogRepo: catalogRepo,
		addons:      addons,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

func summary(cart model.Cart) *model.CartSummary {
	return &model.CartSummary{
		Success:   true,
		CartCount: cart.Count(),
		Total:     cart.Total(),
	}
}

// Add puts an item in the cart or increments its quantity.
func (s *cartService) Add(ctx context.Context, sid string, req *model.AddToCartRequest) (*model.CartSummary, error) {
	itemType, err := model.ParseItemType(req.Type)
	if err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Unknown item type")
	}
	if req.Price < 0 {
		return nil, model.ErrInvalidPrice
	}

	cart, err := s.sessions.Cart(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	key := model.LineKey(itemType, req.ID)
	if line, ok := cart[key]; ok {
		line.Quantity++
		cart[key] = line
	} else {
		cart[key] = model.CartLine{
			ID:       req.ID,
			Type:     itemType,
			Title:    req.Title,
			Price:    req.Price,
			Image:    req.Image,
			Quantity: 1,
		}
	}

	if err := s.sessions.SaveCart(ctx, sid, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Debug().Str("item", key).Int("cart_count", cart.Count()).Msg("item added to cart")

	return summary(cart), nil
}

// UpdateQuantity sets an item's quantity; zero or below removes it and an
// absent item leaves the cart unchanged.
func (s *cartService) UpdateQuantity(ctx context.Context, sid string, itemType model.ItemType, itemID int64, quantity int) (*model.CartSummary, error) {
	cart, err := s.sessions.Cart(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	key := model.LineKey(itemType, itemID)
	line, ok := cart[key]
	if !ok {
		// Absent lines are a no-op, same as remove.
		return summary(cart), nil
	}

	if quantity <= 0 {
		delete(cart, key)
	} else {
		line.Quantity = quantity
		cart[key] = line
	}

	if err := s.sessions.SaveCart(ctx, sid, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return summary(cart), nil
}

// Remove deletes an item regardless of quantity.
func (s *cartService) Remove(ctx context.Context, sid string, itemType model.ItemType, itemID int64) (*model.CartSummary, error) {
	cart, err := s.sessions.Cart(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	delete(cart, model.LineKey(itemType, itemID))

	if err := s.sessions.SaveCart(ctx, sid, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return summary(cart), nil
}

// Clear empties the cart.
func (s *cartService) Clear(ctx context.Context, sid string) (*model.CartSummary, error) {
	cart := model.Cart{}
	if err := s.sessions.SaveCart(ctx, sid, cart); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	return summary(cart), nil
}

// List returns the full cart with the add-on total folded in. Lines come
// back in a stable order so the storefront renders deterministically.
func (s *cartService) List(ctx context.Context, sid string) (*model.CartView, error) {
	cart, err := s.sessions.Cart(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	sel, err := s.sessions.Addons(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to load addons: %w", err)
	}

	keys := make([]string, 0, len(cart))
	for key := range cart {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	items := make([]model.CartLine, 0, len(cart))
	for _, key := range keys {
		items = append(items, cart[key])
	}

	addonTotal := s.addons.Total(sel)

	return &model.CartView{
		CartCount:  cart.Count(),
		Items:      items,
		AddonTotal: addonTotal,
		Total:      cart.Total() + addonTotal,
	}, nil
}

// BuyNow replaces the cart with a single copy of one book.
func (s *cartService) BuyNow(ctx context.Context, sid string, bookID int64) (*model.CartSummary, error) {
	book, err := s.catalogRepo.BookByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve book: %w", err)
	}
	if book == nil {
		return nil, model.ErrBookNotFound
	}

	cart := model.Cart{
		model.LineKey(model.ItemTypeBook, book.ID): {
			ID:       book.ID,
			Type:     model.ItemTypeBook,
			Title:    book.Title,
			Price:    model.Price(book.Price),
			Image:    book.ImageURL,
			Quantity: 1,
		},
	}

	if err := s.sessions.SaveCart(ctx, sid, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Debug().Int64("book_id", bookID).Msg("buy-now cart created")

	return summary(cart), nil
}

// UpdateAddons replaces the add-on selection.
func (s *cartService) UpdateAddons(ctx context.Context, sid string, sel model.AddonSelection) (*model.CartView, error) {
	sel = s.addons.Normalize(sel)

	if err := s.sessions.SaveAddons(ctx, sid, sel); err != nil {
		return nil, fmt.Errorf("failed to save addons: %w", err)
	}

	return s.List(ctx, sid)
}

// Addons returns the current selection and its total.
func (s *cartService) Addons(ctx context.Context, sid string) (model.AddonSelection, float64, error) {
	sel, err := s.sessions.Addons(ctx, sid)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load addons: %w", err)
	}
	return sel, s.addons.Total(sel), nil
}
