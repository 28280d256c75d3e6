package e

import "fmt"

var (
	// Internal transaction errors
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 400 Bad Request
	ErrStatusBadRequest  = fmt.Errorf("bad request")
	ErrMissingFields     = fmt.Errorf("missing required fields")
	ErrExpectedMultipart = fmt.Errorf("expected multipart/form-data")
	ErrInvalidPrice      = fmt.Errorf("price must be a positive number")
	ErrPricePrecision    = fmt.Errorf("price must have at most 2 decimal places")
	ErrNoImages          = fmt.Errorf("no images provided")
	ErrTooManyImages     = fmt.Errorf("too many images")
	ErrFileTooLarge      = fmt.Errorf("file too large")
	ErrEmailTaken        = fmt.Errorf("email already in use")

	// 415 Unsupported Media Type
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 401 Unauthorized
	ErrUnauthorized       = fmt.Errorf("authentication required")
	ErrInvalidToken       = fmt.Errorf("invalid token")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// 403 Forbidden
	ErrForbidden      = fmt.Errorf("admin access required")
	ErrSelfManagement = fmt.Errorf("admins cannot manage their own account through this endpoint")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrUserNotFound    = fmt.Errorf("user not found")
	ErrOrderNotFound   = fmt.Errorf("order not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// ValidationError reports a constraint violation on a single input field.
type ValidationError struct {
	Field   string
	Message string
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Wrap annotates err with msg.
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
