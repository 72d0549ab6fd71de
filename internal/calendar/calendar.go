package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

var (
	// ErrInvalidDate дата не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("calendar: invalid date format")

	// ErrInvalidAppointment время приема не распознано
	ErrInvalidAppointment = errors.New("calendar: invalid appointment time")

	// ErrInvalidLocation неизвестный часовой пояс
	ErrInvalidLocation = errors.New("calendar: invalid location")
)

// Форматы времени приема без часового пояса, интерпретируются в локации календаря
var localAppointmentLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Форматы с явным смещением или Z
var zonedAppointmentLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// Provider источник текущего времени и календарных дней точки обслуживания
type Provider struct {
	loc *time.Location
	now func() time.Time
}

// New создает календарь в указанной локации
func New(loc *time.Location) *Provider {
	return NewWithClock(loc, time.Now)
}

// NewWithClock создает календарь с подменяемыми часами (для тестов и CLI)
func NewWithClock(loc *time.Location, now func() time.Time) *Provider {
	if loc == nil {
		loc = time.Local
	}
	return &Provider{loc: loc, now: now}
}

// LoadLocation загружает часовой пояс по имени IANA; пустая строка - локальный пояс
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLocation, name, err)
	}
	return loc, nil
}

// Location часовой пояс календаря
func (p *Provider) Location() *time.Location {
	return p.loc
}

// Now текущее время в локации календаря
func (p *Provider) Now() time.Time {
	return p.now().In(p.loc)
}

// Today полночь текущего дня
func (p *Provider) Today() time.Time {
	return p.StartOfDay(p.now())
}

// StartOfDay полночь дня, которому принадлежит t в локации календаря
func (p *Provider) StartOfDay(t time.Time) time.Time {
	t = t.In(p.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.loc)
}

// DayBounds границы дня [from, to)
func (p *Provider) DayBounds(day time.Time) (time.Time, time.Time) {
	from := p.StartOfDay(day)
	return from, from.AddDate(0, 0, 1)
}

// IsToday returns true if t falls on the current calendar day
func (p *Provider) IsToday(t time.Time) bool {
	return p.SameDay(t, p.now())
}

// SameDay returns true if a and b fall on the same calendar day
func (p *Provider) SameDay(a, b time.Time) bool {
	return p.StartOfDay(a).Equal(p.StartOfDay(b))
}

// ParseDate разбирает дату YYYY-MM-DD в полночь дня
func (p *Provider) ParseDate(s string) (time.Time, error) {
	day, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(s), p.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return day, nil
}

// ParseDateOrToday как ParseDate, пустая строка означает сегодня
func (p *Provider) ParseDateOrToday(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return p.Today(), nil
	}
	return p.ParseDate(s)
}

// ParseAppointment разбирает время приема.
// Только дата - прием в 09:00. Время без пояса считается временем календаря.
func (p *Provider) ParseAppointment(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidAppointment)
	}

	if day, err := time.ParseInLocation(domain.DateFormat, s, p.loc); err == nil {
		return day.Add(domain.DefaultAppointmentHour * time.Hour), nil
	}

	for _, layout := range zonedAppointmentLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(p.loc), nil
		}
	}

	for _, layout := range localAppointmentLayouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidAppointment, s)
}

// FormatDate форматирует день как YYYY-MM-DD в локации календаря
func (p *Provider) FormatDate(day time.Time) string {
	return day.In(p.loc).Format(domain.DateFormat)
}
