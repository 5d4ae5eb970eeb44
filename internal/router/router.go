package router

import (
	"net/http"
	"strings"
	"time"

	"book-bazaar/internal/handler"
	"book-bazaar/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	otpHandler *handler.OTPHandler,
	checkoutHandler *handler.CheckoutHandler,
	paymentHandler *handler.PaymentHandler,
	sessionCookie string,
	sessionTTL time.Duration,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Search routes
	mux.HandleFunc("/api/search", catalogHandler.Search)
	mux.HandleFunc("/api/search/suggestions", catalogHandler.Suggestions)

	// Catalogue routes (both with and without trailing slash)
	booksRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/books"), "/")
		if path == "" {
			catalogHandler.Books(w, r)
			return
		}
		catalogHandler.BookBySlug(w, r)
	}
	mux.HandleFunc("/api/books", booksRouteHandler)
	mux.HandleFunc("/api/books/", booksRouteHandler)

	// Cart routes
	mux.HandleFunc("/api/cart", cartHandler.List)
	mux.HandleFunc("/api/cart/add", cartHandler.Add)
	mux.HandleFunc("/api/cart/update", cartHandler.Update)
	mux.HandleFunc("/api/cart/remove", cartHandler.Remove)
	mux.HandleFunc("/api/cart/clear", cartHandler.Clear)
	mux.HandleFunc("/api/cart/addons", cartHandler.Addons)
	mux.HandleFunc("/api/buy-now", cartHandler.BuyNow)

	// Phone verification routes
	mux.HandleFunc("/api/otp/send", otpHandler.Send)
	mux.HandleFunc("/api/otp/verify", otpHandler.Verify)
	mux.HandleFunc("/api/otp/resend", otpHandler.Resend)

	// Checkout and payment callback routes
	mux.HandleFunc("/api/checkout", checkoutHandler.Initiate)
	mux.HandleFunc("/payment/success", paymentHandler.Success)
	mux.HandleFunc("/payment/failure", paymentHandler.Failure)

	// Apply middleware in order: Recovery -> Logging -> CORS -> Session
	var h http.Handler = mux
	h = middleware.Session(sessionCookie, sessionTTL, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
