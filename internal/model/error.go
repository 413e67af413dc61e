package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeValidation = "VALIDATION"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeForbidden  = "FORBIDDEN"
	ErrCodeConflict   = "CONFLICT"
	ErrCodeInternal   = "INTERNAL"
)

// DomainError carries a business rule violation with its taxonomy code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewValidationError creates a VALIDATION domain error.
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: ErrCodeValidation, Message: message}
}

// NewNotFoundError creates a NOT_FOUND domain error.
func NewNotFoundError(message string) *DomainError {
	return &DomainError{Code: ErrCodeNotFound, Message: message}
}

// NewForbiddenError creates a FORBIDDEN domain error.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Code: ErrCodeForbidden, Message: message}
}

// NewConflictError creates a CONFLICT domain error. A conflict on the order
// number is retryable by the caller.
func NewConflictError(message string) *DomainError {
	return &DomainError{Code: ErrCodeConflict, Message: message}
}

// Common domain errors
var (
	ErrCustomerNotFound = NewNotFoundError("Cliente não encontrado")
	ErrCustomerInactive = NewForbiddenError("Cliente inativo")
	ErrProductNotFound  = NewNotFoundError("Produto não encontrado")
	ErrOrderNotFound    = NewNotFoundError("Pedido não encontrado")
	ErrCartItemNotFound = NewNotFoundError("Item não encontrado no carrinho")
	ErrEmailTaken       = NewConflictError("Email já cadastrado")
	ErrCPFTaken         = NewConflictError("CPF já cadastrado")
	ErrBadCredentials   = NewValidationError("Usuário ou senha inválidos")
)
