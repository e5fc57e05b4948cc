package user

import "errors"

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrManagementAccessRequired = errors.New("management access required")
)
