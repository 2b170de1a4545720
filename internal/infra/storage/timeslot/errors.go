package timeslot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("timeslot.repository: slot not found")

	// ErrOverlap возвращается, когда вставка нарушает ограничение на пересечение слотов
	ErrOverlap = errors.New("timeslot.repository: slot overlaps existing slot")

	ErrBuildQuery = errors.New("timeslot.repository: failed to build query")
	ErrExecQuery  = errors.New("timeslot.repository: failed to execute query")
	ErrScanRow    = errors.New("timeslot.repository: failed to scan row")
)
