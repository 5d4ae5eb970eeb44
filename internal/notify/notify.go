// Package notify sends the messages the store pushes out of band: OTP codes
// to customers and order alerts to the admin. Delivery failures are reported
// to callers but never crash the request path.
package notify

import (
	"context"

	"book-bazaar/internal/model"
)

// OTPSender delivers a one-time code to a phone number over the chosen channel.
type OTPSender interface {
	SendOTP(ctx context.Context, phone, code string, method model.DeliveryMethod) error
}

// OrderNotifier announces a confirmed order.
type OrderNotifier interface {
	// NotifyAdmin emails the order summary to the store admin.
	NotifyAdmin(ctx context.Context, order *model.Order, items []model.OrderItem) error

	// NotifyCustomer sends the order confirmation to the customer over the
	// channel they verified with.
	NotifyCustomer(ctx context.Context, order *model.Order, items []model.OrderItem, method model.DeliveryMethod) error
}

// AdminMailer is the admin-facing half of OrderNotifier.
type AdminMailer interface {
	NotifyAdmin(ctx context.Context, order *model.Order, items []model.OrderItem) error
}

// CustomerMessenger is the customer-facing half of OrderNotifier.
type CustomerMessenger interface {
	NotifyCustomer(ctx context.Context, order *model.Order, items []model.OrderItem, method model.DeliveryMethod) error
}

type orderNotifier struct {
	mailer    AdminMailer
	messenger CustomerMessenger
}

// NewOrderNotifier combines the admin email channel and the customer
// messaging channel into one OrderNotifier.
func NewOrderNotifier(mailer AdminMailer, messenger CustomerMessenger) OrderNotifier {
	return &orderNotifier{mailer: mailer, messenger: messenger}
}

func (n *orderNotifier) NotifyAdmin(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	return n.mailer.NotifyAdmin(ctx, order, items)
}

func (n *orderNotifier) NotifyCustomer(ctx context.Context, order *model.Order, items []model.OrderItem, method model.DeliveryMethod) error {
	return n.messenger.NotifyCustomer(ctx, order, items, method)
}
