package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// JSONTime wraps time.Time so we can control both
// JSON un/marshaling and SQL driver encoding. Client apps send dates
// in several shapes: full RFC3339, fractional-second variants without a
// zone, and bare dates from <input type="date"> controls.
type JSONTime time.Time

func (jt *JSONTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*jt = JSONTime(time.Time{})
		return nil
	}

	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05.000",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			*jt = JSONTime(t)
			return nil
		}
	}
	return fmt.Errorf("JSONTime.UnmarshalJSON: cannot parse %q", s)
}

// MarshalJSON always emits full RFC3339.
func (jt JSONTime) MarshalJSON() ([]byte, error) {
	t := time.Time(jt)
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}

// Value implements driver.Valuer so GORM stores a plain timestamp.
func (jt JSONTime) Value() (driver.Value, error) {
	t := time.Time(jt)
	if t.IsZero() {
		return nil, nil
	}
	return t, nil
}

// Scan implements sql.Scanner.
func (jt *JSONTime) Scan(value interface{}) error {
	if value == nil {
		*jt = JSONTime(time.Time{})
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		*jt = JSONTime(v)
		return nil
	case []byte:
		return jt.UnmarshalJSON(v)
	case string:
		return jt.UnmarshalJSON([]byte(`"` + v + `"`))
	default:
		return fmt.Errorf("JSONTime.Scan: unsupported type %T", value)
	}
}

// Time returns the wrapped time.Time.
func (jt JSONTime) Time() time.Time {
	return time.Time(jt)
}
