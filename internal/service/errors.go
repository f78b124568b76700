package service

import "errors"

// Ошибки бизнес-уровня. Хендлеры отображают их в HTTP-статусы на границе.
var (
	// ErrInvalidCredentials намеренно не различает «нет такого аккаунта» и
	// «неверный пароль».
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailTaken  = errors.New("user with this email already exists")
	ErrSlugTaken   = errors.New("an entry with this slug already exists")
	ErrNoSecret    = errors.New("at least one of email, password, or cookies must be provided")
	ErrAdminSeeded = errors.New("admin already exists")
	ErrNotFound    = errors.New("not found")
)

// ValidationError — нарушение инварианта входных данных с текстом для пользователя.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validation(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation сообщает, относится ли ошибка к классу InvalidInput (400),
// включая конфликты уникальности, всплывшие при записи.
func IsValidation(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	return errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrSlugTaken) ||
		errors.Is(err, ErrNoSecret) ||
		errors.Is(err, ErrAdminSeeded)
}
