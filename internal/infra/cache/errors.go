package cache

import "errors"

var (
	// ErrCacheMiss возвращается, когда ключ отсутствует в кэше
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrCache возвращается при ошибках обращения к Redis
	ErrCache = errors.New("cache: redis error")

	// ErrEncode возвращается при ошибке сериализации значения
	ErrEncode = errors.New("cache: failed to encode value")
)
