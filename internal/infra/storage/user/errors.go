package user

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user.repository: user not found")

	ErrBuildQuery = errors.New("user.repository: failed to build query")
	ErrScanRow    = errors.New("user.repository: failed to scan row")
)
