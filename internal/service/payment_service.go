package service

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"book-bazaar/internal/model"
	"book-bazaar/internal/notify"
	"book-bazaar/internal/payu"
	"book-bazaar/internal/repository"
	"book-bazaar/internal/session"

	"github.com/rs/zerolog"
)

// notifyTimeout bounds the post-payment notification fan-out.
const notifyTimeout = 30 * time.Second

// paymentService implements PaymentService.
type paymentService struct {
	orderRepo        repository.OrderRepository
	verificationRepo repository.VerificationRepository
	sessions         session.Store
	notifier         notify.OrderNotifier
	payuConfig       payu.Config
	logger           zerolog.Logger
}

// NewPaymentService creates a new payment callback service.
func NewPaymentService(
	orderRepo repository.OrderRepository,
	verificationRepo repository.VerificationRepository,
	sessions session.Store,
	notifier notify.OrderNotifier,
	payuConfig payu.Config,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		orderRepo:        orderRepo,
		verificationRepo: verificationRepo,
		sessions:         sessions,
		notifier:         notifier,
		payuConfig:       payuConfig,
		logger:           logger.With().Str("service", "payment").Logger(),
	}
}

func orderIDFromForm(form url.Values) (int64, bool) {
	id, err := strconv.ParseInt(form.Get("udf1"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HandleSuccess verifies the callback signature, then either promotes the
// order to processing or removes it when the gateway reports anything other
// than success. A bad signature leaves the order untouched.
func (s *paymentService) HandleSuccess(ctx context.Context, sid string, form url.Values) (*model.PaymentResult, error) {
	if !payu.VerifyResponse(s.payuConfig, form) {
		s.logger.Warn().
			Str("txnid", form.Get("txnid")).
			Str("udf1", form.Get("udf1")).
			Msg("payment callback hash mismatch")
		return nil, model.ErrHashMismatch
	}

	orderID, ok := orderIDFromForm(form)
	if !ok {
		return nil, model.ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	status := form.Get("status")
	if status != "success" {
		// Authentic callback, but the gateway did not confirm payment.
		s.logger.Info().
			Int64("order_id", orderID).
			Str("status", status).
			Msg("payment not confirmed, discarding order")

		if err := s.orderRepo.Delete(ctx, orderID); err != nil {
			return nil, err
		}

		return &model.PaymentResult{
			Succeeded: false,
			OrderID:   orderID,
			Status:    status,
			Message:   "Payment was not completed",
		}, nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderProcessing); err != nil {
		return nil, err
	}

	items, err := s.orderRepo.ItemsByOrder(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to load order items for notification")
		items = nil
	}

	s.dispatchNotifications(order, items)

	if err := s.sessions.ClearCheckout(ctx, sid); err != nil {
		s.logger.Error().Err(err).Str("session_id", sid).Msg("failed to clear checkout session")
	}

	s.logger.Info().
		Int64("order_id", orderID).
		Str("txnid", form.Get("txnid")).
		Msg("payment confirmed")

	return &model.PaymentResult{
		Succeeded: true,
		OrderID:   orderID,
		Total:     order.Total,
		Status:    status,
	}, nil
}

// dispatchNotifications fans out the admin and customer messages without
// blocking the callback response. Each send gets its own context so an
// already-finished request cannot cancel it.
func (s *paymentService) dispatchNotifications(order *model.Order, items []model.OrderItem) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.NotifyAdmin(ctx, order, items); err != nil {
			s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("admin notification failed")
		}
	}()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		method := model.DeliverySMS
		v, err := s.verificationRepo.LatestByPhone(ctx, order.PhoneNumber)
		if err != nil {
			s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to resolve delivery method")
		} else if v != nil {
			method = v.DeliveryMethod
		}

		if err := s.notifier.NotifyCustomer(ctx, order, items, method); err != nil {
			s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("customer notification failed")
		}
	}()
}

// HandleFailure deletes the pending order named by the callback, if there is
// one, and reports the gateway's message. Unresolvable references are a
// no-op rather than an error.
func (s *paymentService) HandleFailure(ctx context.Context, sid string, form url.Values) (*model.PaymentResult, error) {
	message := form.Get("error_Message")
	if message == "" {
		message = "Payment failed"
	}

	orderID, ok := orderIDFromForm(form)
	if !ok {
		s.logger.Warn().Str("udf1", form.Get("udf1")).Msg("failure callback without resolvable order")
		return &model.PaymentResult{Succeeded: false, Message: message}, nil
	}

	deleted, err := s.orderRepo.DeletePending(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if deleted {
		s.logger.Info().Int64("order_id", orderID).Msg("pending order removed after payment failure")
	} else {
		s.logger.Warn().Int64("order_id", orderID).Msg("failure callback for unknown or non-pending order")
	}

	return &model.PaymentResult{
		Succeeded: false,
		OrderID:   orderID,
		Message:   message,
	}, nil
}
