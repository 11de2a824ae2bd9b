package pkg

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Flag is a boolean accepted as true/false, 1/0 or their string forms, from
// both JSON bodies and form posts. Admin forms submit status as "1" or "0".
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*f = Flag(v)
	case float64:
		*f = v == 1
	case string:
		*f = Flag(parseFlag(v))
	default:
		*f = false
	}
	return nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler for form values.
func (f *Flag) UnmarshalParam(param string) error {
	*f = Flag(parseFlag(param))
	return nil
}

// Bool returns the flag as a plain bool.
func (f Flag) Bool() bool {
	return bool(f)
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// Or returns the flag's value, or def when the flag was not supplied.
func (f *Flag) Or(def bool) bool {
	if f == nil {
		return def
	}
	return bool(*f)
}
