package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized сервер ответил 401, токен сброшен
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTOTPRequired для входа требуется одноразовый код
	ErrTOTPRequired = errors.New("totp required")
	// ErrInvalidCredentials неверные учётные данные, код или токен
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// StatusError ответ сервера с кодом вне диапазона 2xx
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("HTTP %d", e.Code)
}
