package notifications

import "errors"

var (
	// ErrDelivery возвращается, когда хотя бы один канал не доставил уведомление
	ErrDelivery = errors.New("notifications: delivery failed")

	// ErrNoContact возвращается, когда контактные данные пользователя недоступны
	ErrNoContact = errors.New("notifications: user contact is unavailable")
)
