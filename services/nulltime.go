package services

import (
	"bytes"
	"fmt"
	"time"
)

// NullableTime distinguishes "field absent" from "field explicitly null" in
// PATCH bodies. The zero value means absent; after unmarshalling, Set is true
// and Value carries the parsed time or nil for an explicit null. Accepts
// RFC3339 timestamps and plain dates.
type NullableTime struct {
	Set   bool
	Value *time.Time
}

var jsonNull = []byte("null")

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		n.Value = nil
		return nil
	}
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			n.Value = &t
			return nil
		}
	}
	return fmt.Errorf("unparseable time %q", s)
}

// MarshalJSON implements json.Marshaler.
func (n NullableTime) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return jsonNull, nil
	}
	return []byte(`"` + n.Value.Format(time.RFC3339Nano) + `"`), nil
}

// At builds a set NullableTime carrying t.
func At(t time.Time) NullableTime {
	return NullableTime{Set: true, Value: &t}
}

// Null builds a set NullableTime carrying an explicit null.
func Null() NullableTime {
	return NullableTime{Set: true, Value: nil}
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
