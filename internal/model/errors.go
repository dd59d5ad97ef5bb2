package model

import "errors"

var (
	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Todo related errors
	ErrTodoNotFound = errors.New("todo not found")

	// Book related errors
	ErrBookNotFound = errors.New("book not found")

	// Permission/Access related errors
	ErrForbidden = errors.New("forbidden")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
