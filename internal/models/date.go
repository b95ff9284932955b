package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout формат календарной даты в API и в логах.
const DateLayout = "2006-01-02"

// Date календарная дата без времени суток.
// В JSON сериализуется как "YYYY-MM-DD", в PostgreSQL хранится в колонке DATE.
type Date struct {
	time.Time
}

// NewDate отбрасывает время суток и часовой пояс.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate разбирает дату в формате DateLayout.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q must be in format %s", ErrValidation, s, DateLayout)
	}
	return NewDate(t), nil
}

// Today возвращает текущую дату в UTC.
func Today() Date {
	return NewDate(time.Now().UTC())
}

// AddDays сдвигает дату на n дней.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Time.AddDate(0, 0, n))
}

// Before сравнивает только календарные даты.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After сравнивает только календарные даты.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal сравнивает только календарные даты.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// Between проверяет, что дата лежит в отрезке [start, end].
func (d Date) Between(start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON реализует json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON реализует json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan реализует sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("models.Date: cannot scan %T", src)
	}
}

// Value реализует driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}
