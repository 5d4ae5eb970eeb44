package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeOTPExpired       = "OTP_EXPIRED"
	ErrCodeOTPMismatch      = "OTP_MISMATCH"
	ErrCodeDeliveryFailure  = "DELIVERY_FAILURE"
	ErrCodeIntegrityFailure = "INTEGRITY_FAILURE"
	ErrCodePhoneNotVerified = "PHONE_NOT_VERIFIED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError carries a machine-readable code alongside the user-visible
// message surfaced in the {success:false, error} envelope.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidPhone         = NewDomainError(ErrCodeValidation, "Please enter a valid phone number")
	ErrPhoneNotTenDigits    = NewDomainError(ErrCodeValidation, "Phone must be exactly 10 digits")
	ErrInvalidPrice         = NewDomainError(ErrCodeValidation, "Invalid item price")
	ErrInvalidQuantity      = NewDomainError(ErrCodeValidation, "Quantity must be a whole number")
	ErrEmptyCart            = NewDomainError(ErrCodeValidation, "Cart is empty")
	ErrMissingCustomerField = NewDomainError(ErrCodeValidation, "All customer details are required")
	ErrPhoneNotVerified     = NewDomainError(ErrCodePhoneNotVerified, "Phone not verified")
	ErrVerificationNotFound = NewDomainError(ErrCodeNotFound, "Invalid verification session")
	ErrOTPExpired           = NewDomainError(ErrCodeOTPExpired, "OTP has expired. Please request a new one.")
	ErrOTPMismatch          = NewDomainError(ErrCodeOTPMismatch, "Invalid OTP. Please try again.")
	ErrOrderNotFound        = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrBookNotFound         = NewDomainError(ErrCodeNotFound, "Book not found")
	// User-visible message stays generic on purpose; the detail is logged
	// server-side as a security event.
	ErrHashMismatch = NewDomainError(ErrCodeIntegrityFailure, "Security verification failed")
)
