package create_booking

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrSlotNotFound возвращается, когда слот не найден (или уже занят)
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrPackageNotFound возвращается, когда пакет не найден у провайдера
	ErrPackageNotFound = errors.New("create_booking: package not found")

	// ErrPackageInactive возвращается, когда пакет снят с продажи
	ErrPackageInactive = errors.New("create_booking: package is not active")

	// ErrPackageNotOffered возвращается, когда пакет недоступен в выбранном слоте
	ErrPackageNotOffered = errors.New("create_booking: package is not offered in this slot")

	// ErrSlotInPast возвращается, когда слот уже начался
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
