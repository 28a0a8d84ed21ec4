package apperrors

import "errors"

// ErrNotFound — сущность отсутствует или деактивирована.
var ErrNotFound = errors.New("не найдено")

// ValidationError — нарушение бизнес-правила. Возвращается вызывающему как
// структурированный отказ, никогда не паника.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validation(msg string) error {
	return &ValidationError{Message: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
