package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"testing"
	"time"

	"book-bazaar/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMSClientSendOTP(t *testing.T) {
	var got messageRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewSMSClient(server.URL, "test-key", zerolog.Nop())

	err := client.SendOTP(context.Background(), "+919876543210", "482913", model.DeliverySMS)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "+919876543210", got.To)
	assert.Equal(t, "sms", got.Channel)
	assert.Contains(t, got.Message, "482913")
}

func TestSMSClientWhatsAppChannel(t *testing.T) {
	var got messageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewSMSClient(server.URL, "test-key", zerolog.Nop())

	err := client.SendOTP(context.Background(), "+919876543210", "482913", model.DeliveryWhatsApp)
	require.NoError(t, err)
	assert.Equal(t, "whatsapp", got.Channel)
}

func TestSMSClientProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid recipient"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewSMSClient(server.URL, "test-key", zerolog.Nop())

	err := client.SendOTP(context.Background(), "bad", "482913", model.DeliverySMS)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestSMSClientNotifyCustomer(t *testing.T) {
	var got messageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewSMSClient(server.URL, "test-key", zerolog.Nop())

	order := &model.Order{
		ID:          9,
		PhoneNumber: "+919876543210",
		Total:       364,
		City:        "Kolkata",
		State:       "West Bengal",
	}
	items := []model.OrderItem{{Title: "Gitanjali", Quantity: 2, Price: 100}}

	err := client.NotifyCustomer(context.Background(), order, items, model.DeliverySMS)
	require.NoError(t, err)

	assert.Equal(t, "+919876543210", got.To)
	assert.Contains(t, got.Message, "#9")
	assert.Contains(t, got.Message, "364.00")
}

func TestEmailNotifierAdmin(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	n := NewEmailNotifier("smtp.example.com", 587, "store@example.com", "secret", "admin@example.com", zerolog.Nop())
	n.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	order := &model.Order{
		ID:          9,
		FullName:    "Aritra Dutta",
		PhoneNumber: "+919876543210",
		Email:       "aritradatt39@gmail.com",
		Address:     "12 College Street",
		City:        "Kolkata",
		State:       "West Bengal",
		PinCode:     "700073",
		Subtotal:    200,
		Shipping:    49,
		Total:       264,
	}
	items := []model.OrderItem{
		{Title: "Gitanjali", Quantity: 2, Price: 100},
		{Title: "Page Highlighting", Quantity: 1, Price: 15},
	}

	require.NoError(t, n.NotifyAdmin(context.Background(), order, items))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "store@example.com", gotFrom)
	assert.Equal(t, []string{"admin@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: New order #9")
	assert.Contains(t, string(gotMsg), "2x Gitanjali")
	assert.Contains(t, string(gotMsg), "Total: Rs 264.00")
}

func TestEmailNotifierCancelledContext(t *testing.T) {
	n := NewEmailNotifier("smtp.example.com", 587, "store@example.com", "secret", "admin@example.com", zerolog.Nop())
	n.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("sendMail should not be called after cancellation")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	err := n.NotifyAdmin(ctx, &model.Order{ID: 1}, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
