// Package payu builds and verifies the signed parameter sets exchanged with
// the PayU payment gateway. The gateway authenticates both directions with a
// SHA-512 hash over a pipe-delimited field sequence and a shared salt.
package payu

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// Config carries the merchant credentials and redirect endpoints.
type Config struct {
	MerchantKey string
	Salt        string
	GatewayURL  string
	SuccessURL  string
	FailureURL  string
}

// Request is the outbound parameter set posted to the gateway.
type Request struct {
	TxnID       string
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
	Phone       string
	UDF         [5]string
}

// NewTransactionID generates a fresh gateway transaction reference.
func NewTransactionID() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("payu: rand.Read: %v", err))
	}
	return "TXN-" + strings.ToUpper(hex.EncodeToString(buf))
}

// FormatAmount renders an amount the way the gateway expects, with exactly
// two decimal places.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func sha512Hex(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}

// RequestHash computes the outbound signature:
//
//	sha512(key|txnid|amount|productinfo|firstname|email|udf1..udf5|<6 empty>|salt)
func RequestHash(cfg Config, req Request) string {
	fields := []string{
		cfg.MerchantKey,
		req.TxnID,
		req.Amount,
		req.ProductInfo,
		req.FirstName,
		req.Email,
		req.UDF[0], req.UDF[1], req.UDF[2], req.UDF[3], req.UDF[4],
		"", "", "", "", "", "",
	}
	return sha512Hex(strings.Join(fields, "|") + cfg.Salt)
}

// Values renders the full outbound form parameter set, hash included.
func Values(cfg Config, req Request) map[string]string {
	return map[string]string{
		"key":         cfg.MerchantKey,
		"txnid":       req.TxnID,
		"amount":      req.Amount,
		"productinfo": req.ProductInfo,
		"firstname":   req.FirstName,
		"email":       req.Email,
		"phone":       req.Phone,
		"surl":        cfg.SuccessURL,
		"furl":        cfg.FailureURL,
		"udf1":        req.UDF[0],
		"udf2":        req.UDF[1],
		"udf3":        req.UDF[2],
		"udf4":        req.UDF[3],
		"udf5":        req.UDF[4],
		"hash":        RequestHash(cfg, req),
	}
}

// ResponseHash computes the expected callback signature from the gateway's
// posted form. The field order is the reverse of the request:
//
//	sha512(salt|status|<5 empty>|udf5..udf1|email|firstname|productinfo|amount|txnid|key)
func ResponseHash(cfg Config, form url.Values) string {
	fields := []string{
		cfg.Salt,
		form.Get("status"),
		"", "", "", "", "",
		form.Get("udf5"),
		form.Get("udf4"),
		form.Get("udf3"),
		form.Get("udf2"),
		form.Get("udf1"),
		form.Get("email"),
		form.Get("firstname"),
		form.Get("productinfo"),
		form.Get("amount"),
		form.Get("txnid"),
		form.Get("key"),
	}
	return sha512Hex(strings.Join(fields, "|"))
}

// VerifyResponse checks the callback's hash field against the recomputed
// signature in constant time.
func VerifyResponse(cfg Config, form url.Values) bool {
	got := strings.ToLower(form.Get("hash"))
	want := ResponseHash(cfg, form)
	if len(got) != len(want) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
