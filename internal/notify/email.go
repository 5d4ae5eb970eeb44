package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"book-bazaar/internal/model"

	"github.com/rs/zerolog"
)

// emailNotifier sends order alerts to the store admin over SMTP.
type emailNotifier struct {
	host     string
	port     int
	from     string
	password string
	adminTo  string
	logger   zerolog.Logger

	// sendMail is swapped out in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailNotifier creates an SMTP-backed admin notifier.
func NewEmailNotifier(host string, port int, from, password, adminTo string, logger zerolog.Logger) *emailNotifier {
	return &emailNotifier{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		adminTo:  adminTo,
		logger:   logger.With().Str("component", "email-notifier").Logger(),
		sendMail: smtp.SendMail,
	}
}

// NotifyAdmin emails the order summary to the store admin.
func (n *emailNotifier) NotifyAdmin(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.from)
	fmt.Fprintf(&b, "To: %s\r\n", n.adminTo)
	fmt.Fprintf(&b, "Subject: New order #%d from %s\r\n", order.ID, order.FullName)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "Order #%d is paid and ready to pack.\r\n\r\n", order.ID)
	fmt.Fprintf(&b, "Customer: %s (%s, %s)\r\n", order.FullName, order.PhoneNumber, order.Email)
	fmt.Fprintf(&b, "Ship to: %s, %s, %s %s\r\n", order.Address, order.City, order.State, order.PinCode)
	fmt.Fprintf(&b, "Delivery: %s, payment: %s\r\n\r\n", order.DeliveryType, order.PaymentMethod)

	for _, item := range items {
		fmt.Fprintf(&b, "  %dx %s @ Rs %.2f\r\n", item.Quantity, item.Title, item.Price)
	}
	fmt.Fprintf(&b, "\r\nSubtotal: Rs %.2f\r\nShipping: Rs %.2f\r\nTotal: Rs %.2f\r\n",
		order.Subtotal, order.Shipping, order.Total)

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	auth := smtp.PlainAuth("", n.from, n.password, n.host)

	if err := n.sendMail(addr, auth, n.from, []string{n.adminTo}, []byte(b.String())); err != nil {
		n.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to send admin email")
		return fmt.Errorf("failed to send admin email: %w", err)
	}

	n.logger.Debug().Int64("order_id", order.ID).Msg("admin email sent")

	return nil
}
