package service

import "errors"

var (
	// ErrInvalidInput — запрос не прошёл бизнес-валидацию
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthDisabled       = errors.New("authentication is not configured")
	ErrFileTooLarge       = errors.New("file too large")
)
