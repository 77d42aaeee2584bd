package ledger

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the ISO-8601 layout used for dates in the vault document.
const DateFormat = "2006-01-02"

const readDateFormat = "2006-1-2"

const day = 24 * time.Hour

// Date is a calendar day with no time of day and no time zone.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date.
func NewDate(year int, month time.Month, d int) Date {
	x := Date{year, month, d}
	x.y, x.m, x.d = x.time().Date()
	return x
}

// Today returns the current local date.
func Today() Date { return NewDate(time.Now().Date()) }

// DateOf returns the date of t in t's location.
func DateOf(t time.Time) Date { return NewDate(t.Date()) }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Add returns d shifted by n days.
func (d Date) Add(n int) Date { return NewDate(d.y, d.m, d.d+n) }

// Sub returns the number of days from x to d.
func (d Date) Sub(x Date) int { return int(d.time().Sub(x.time()) / day) }

func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

func (d Date) After(x Date) bool { return d.time().After(x.time()) }

func (d Date) String() string { return d.time().Format(DateFormat) }

// ParseDate parses a date. Single-digit months and days are accepted.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(readDateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", s, DateFormat, err)
	}
	return NewDate(t.Date()), nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)
