package models

import "errors"

// Storage level errors shared by repositories and services
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
)
