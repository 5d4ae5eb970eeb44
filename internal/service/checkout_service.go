package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"book-bazaar/internal/addon"
	"book-bazaar/internal/model"
	"book-bazaar/internal/payu"
	"book-bazaar/internal/repository"
	"book-bazaar/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// shippingCharge is the flat delivery fee applied to every order.
const shippingCharge = 49.00

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo        repository.OrderRepository
	verificationRepo repository.VerificationRepository
	sessions         session.Store
	addons           *addon.Catalog
	payuConfig       payu.Config
	logger           zerolog.Logger
	now              func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	verificationRepo repository.VerificationRepository,
	sessions session.Store,
	addons *addon.Catalog,
	payuConfig payu.Config,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo:        orderRepo,
		verificationRepo: verificationRepo,
		sessions:         sessions,
		addons:           addons,
		payuConfig:       payuConfig,
		logger:           logger.With().Str("service", "checkout").Logger(),
		now:              time.Now,
	}
}

func validateCustomer(req *model.CheckoutRequest) error {
	fields := []string{
		req.FullName, req.Email, req.Address, req.City,
		req.State, req.Pin, req.Delivery, req.PaymentMethod,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return model.ErrMissingCustomerField
		}
	}
	return nil
}

// localPhone strips the +91 prefix and whitespace; the remainder must be
// exactly ten digits for the gateway to accept it.
func localPhone(phone string) (string, error) {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+91")
	phone = strings.ReplaceAll(phone, " ", "")

	if len(phone) != 10 {
		return "", model.ErrPhoneNotTenDigits
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return "", model.ErrPhoneNotTenDigits
		}
	}
	return phone, nil
}

// firstName extracts the gateway's firstname field from the customer's full
// name. The gateway caps the field at 50 characters.
func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return clip(fields[0], 50)
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// Initiate validates the session, persists a pending order with its line
// items and returns the signed gateway parameter set.
func (s *checkoutService) Initiate(ctx context.Context, sid string, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	st, err := s.sessions.CheckoutState(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout state: %w", err)
	}
	if st.VerifiedPhone == "" || st.VerificationID == "" {
		return nil, model.ErrPhoneNotVerified
	}

	verificationID, err := uuid.Parse(st.VerificationID)
	if err != nil {
		return nil, model.ErrPhoneNotVerified
	}
	verification, err := s.verificationRepo.GetByID(ctx, verificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load verification: %w", err)
	}
	if verification == nil || !verification.Verified || verification.PhoneNumber != st.VerifiedPhone {
		return nil, model.ErrPhoneNotVerified
	}

	cart, err := s.sessions.Cart(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cart) == 0 {
		return nil, model.ErrEmptyCart
	}

	if err := validateCustomer(req); err != nil {
		return nil, err
	}

	phone, err := localPhone(st.VerifiedPhone)
	if err != nil {
		return nil, err
	}

	sel, err := s.sessions.Addons(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to load addons: %w", err)
	}

	subtotal := cart.Total()
	addonTotal := s.addons.Total(sel)
	total := subtotal + shippingCharge + addonTotal

	now := s.now()
	order := &model.Order{
		PhoneNumber:   st.VerifiedPhone,
		FullName:      strings.TrimSpace(req.FullName),
		Email:         strings.TrimSpace(req.Email),
		Address:       strings.TrimSpace(req.Address),
		City:          strings.TrimSpace(req.City),
		State:         strings.TrimSpace(req.State),
		PinCode:       strings.TrimSpace(req.Pin),
		DeliveryType:  req.Delivery,
		PaymentMethod: req.PaymentMethod,
		Subtotal:      subtotal,
		Shipping:      shippingCharge,
		Total:         total,
		Status:        model.OrderPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]model.OrderItem, 0, len(cart)+3)
	for _, line := range cart {
		items = append(items, model.OrderItem{
			ID:       uuid.New(),
			OrderID:  order.ID,
			ItemType: line.Type,
			ItemID:   line.ID,
			Title:    line.Title,
			Price:    float64(line.Price),
			Quantity: line.Quantity,
			ImageURL: line.Image,
		})
	}
	for _, a := range s.addons.All() {
		if !sel[a.Key] {
			continue
		}
		items = append(items, model.OrderItem{
			ID:       uuid.New(),
			OrderID:  order.ID,
			ItemType: model.ItemTypeAddon,
			Title:    a.Name,
			Price:    a.Price,
			Quantity: 1,
		})
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	payuReq := payu.Request{
		TxnID:       payu.NewTransactionID(),
		Amount:      payu.FormatAmount(total),
		ProductInfo: fmt.Sprintf("Book Order %d", order.ID),
		FirstName:   firstName(order.FullName),
		Email:       clip(order.Email, 50),
		Phone:       phone,
		UDF:         [5]string{strconv.FormatInt(order.ID, 10)},
	}

	st.TxnID = payuReq.TxnID
	if err := s.sessions.SaveCheckoutState(ctx, sid, st); err != nil {
		return nil, fmt.Errorf("failed to save checkout state: %w", err)
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Str("txnid", payuReq.TxnID).
		Float64("total", total).
		Msg("checkout initiated")

	return &model.CheckoutResponse{
		Success:    true,
		PayuURL:    s.payuConfig.GatewayURL,
		PayuParams: payu.Values(s.payuConfig, payuReq),
	}, nil
}
