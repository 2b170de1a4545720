package provider

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("provider.repository: provider not found")

	// ErrPackageNotFound возвращается, когда пакет услуг не найден у провайдера
	ErrPackageNotFound = errors.New("provider.repository: package not found")

	ErrBuildQuery = errors.New("provider.repository: failed to build query")
	ErrExecQuery  = errors.New("provider.repository: failed to execute query")
	ErrScanRow    = errors.New("provider.repository: failed to scan row")
)
