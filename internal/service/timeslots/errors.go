package timeslots

import "errors"

var (
	// ErrOverlap возвращается, когда новый слот пересекается с существующим
	ErrOverlap = errors.New("timeslots: slot overlaps an existing slot")

	// ErrInvalidTime возвращается при некорректном формате времени или start >= end
	ErrInvalidTime = errors.New("timeslots: invalid slot time")

	// ErrPastDate возвращается, когда дата слота раньше сегодняшней
	ErrPastDate = errors.New("timeslots: date is in the past")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("timeslots: slot not found")

	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("timeslots: provider not found")

	// ErrAccessDenied возвращается, когда пользователь не управляет провайдером
	ErrAccessDenied = errors.New("timeslots: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("timeslots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("timeslots: internal error")
)
