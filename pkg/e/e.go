package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Доменные ошибки заказа (терминальные, повтор без изменения состояния бесполезен)
	ErrCustomerNotFound  = fmt.Errorf("customer not found")
	ErrProductsNotFound  = fmt.Errorf("products not found")
	ErrProductNotFound   = fmt.Errorf("product not found")
	ErrInsufficientStock = fmt.Errorf("insufficient stock")

	// Доменные ошибки каталога
	ErrProductAlreadyExists = fmt.Errorf("product already exists")

	// 400 Bad Request
	ErrEmptyOrder           = fmt.Errorf("order must contain at least one line")
	ErrInvalidQuantity      = fmt.Errorf("quantity must be positive")
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrTooManyImages        = fmt.Errorf("too many images")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
