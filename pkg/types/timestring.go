package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда время выходит за пределы суток
	ErrTimeOverflow = errors.New("time overflows the day")
)

const layout = "15:04"

// TimeString время суток в формате HH:MM (без даты и часового пояса)
type TimeString struct {
	minutes int
	valid   bool
}

// NewTimeString создает TimeString из часов и минут времени t
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute(), valid: true}
}

// NewTimeStringFromString парсит строку "HH:MM" (допускается "HH:MM:SS", секунды отбрасываются)
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("15:04:05") {
		s = s[:len(layout)]
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке. Только для констант и тестов.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return !t.valid
}

// Validate проверяет, что время задано и лежит в пределах суток
func (t TimeString) Validate() error {
	if !t.valid {
		return ErrInvalidTimeString
	}
	if t.minutes < 0 || t.minutes >= 24*60 {
		return ErrTimeOverflow
	}
	return nil
}

// Minutes возвращает количество минут с полуночи
func (t TimeString) Minutes() int {
	return t.minutes
}

// Hour возвращает час
func (t TimeString) Hour() int {
	return t.minutes / 60
}

// Minute возвращает минуту часа
func (t TimeString) Minute() int {
	return t.minutes % 60
}

// AddMinutes возвращает время, сдвинутое на n минут. Переход через полночь считается ошибкой.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m := t.minutes + n
	if m < 0 || m > 24*60 {
		return TimeString{}, ErrTimeOverflow
	}
	return TimeString{minutes: m, valid: true}, nil
}

// IsBefore возвращает true, если t раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter возвращает true, если t позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// On возвращает момент времени t в день day (в часовом поясе day)
func (t TimeString) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location())
}

// String возвращает время в формате HH:MM
func (t TimeString) String() string {
	if !t.valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeString) MarshalJSON() ([]byte, error) {
	if !t.valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON разбирает строку "HH:MM"
func (t *TimeString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TimeString{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeString, err)
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer (колонка TIME)
func (t TimeString) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	return t.String(), nil
}

// Scan реализует sql.Scanner. lib/pq отдает TIME как []byte "HH:MM:SS".
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}
