package pkg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a foreign key accepted as a JSON number or a numeric string, since
// admin forms post select values as strings. Zero means "not supplied" and
// fails a required rule.
type ID uint

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return id.UnmarshalParam(s)
	}
	return id.UnmarshalParam(string(b))
}

// UnmarshalParam implements gin's binding.BindUnmarshaler for form values.
func (id *ID) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", param)
	}
	*id = ID(n)
	return nil
}

// Uint returns the id as a uint.
func (id ID) Uint() uint {
	return uint(id)
}

// Ptr returns nil for zero and a pointer to the value otherwise.
func (id ID) Ptr() *uint {
	if id == 0 {
		return nil
	}
	v := uint(id)
	return &v
}
