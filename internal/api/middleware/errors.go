package middleware

import "errors"

var (
	errInvalidUserID     = errors.New("X-User-ID must be a positive integer")
	errInvalidRole       = errors.New("X-User-Role must be one of customer, provider, admin")
	errInvalidProviderID = errors.New("X-Provider-ID is required for provider staff")
)
