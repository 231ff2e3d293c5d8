package apperrors

import "net/http"

// Factories and predefined values for common domain errors.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a duplicate into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for an operation the current state
// does not allow.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 400 for an illegal status transition.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

// ErrAccountFrozen rejects restricted actions of a frozen account.
var ErrAccountFrozen = New(
	CodeAccountFrozen,
	"moderation",
	"Account is frozen",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email is already registered",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"User not verified",
	http.StatusForbidden,
)

// --- uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// --- payments ---

var ErrInvalidWebhookSignature = New(
	CodeUnauthorized,
	"payment",
	"Invalid webhook signature",
	http.StatusUnauthorized,
)

var ErrGatewayError = New(
	CodeExternalServiceError,
	"payment",
	"Payment provider error",
	http.StatusServiceUnavailable,
)

// --- jobs ---

var ErrJobLimitReached = New(
	CodeLimitExceeded,
	"job",
	"Active job limit for your trust tier reached",
	http.StatusForbidden,
)
