package clock

import (
	"fmt"
	"time"
)

// Clock источник текущего времени в часовом поясе приложения
type Clock struct {
	loc *time.Location
}

// New создает Clock для указанного IANA часового пояса ("Asia/Manila")
// Пустая строка означает UTC
func New(timezone string) (*Clock, error) {
	if timezone == "" {
		return &Clock{loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc}, nil
}

// Now возвращает текущее время в часовом поясе приложения
func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location возвращает часовой пояс приложения
func (c *Clock) Location() *time.Location {
	return c.loc
}

// StartOfDay отбрасывает время, сохраняя дату и часовой пояс
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Fixed провайдер времени, всегда возвращающий одно и то же значение
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}
