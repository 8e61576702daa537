package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Float is an optional float64. The zero value is absent, so missing data
// never masquerades as a numeric zero.
type Float struct {
	Value float64
	Valid bool
}

// FloatFrom returns a present Float holding v.
func FloatFrom(v float64) Float {
	return Float{Value: v, Valid: true}
}

// Ptr returns a pointer to the value, or nil when absent. Used by the
// parquet export, which models optional columns as pointers.
func (f Float) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// Format renders the value with the given precision, or fallback when absent.
func (f Float) Format(precision int, fallback string) string {
	if !f.Valid {
		return fallback
	}
	return fmt.Sprintf("%.*f", precision, f.Value)
}

// MarshalJSON encodes an absent Float as null.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON decodes null as absent.
func (f *Float) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = Float{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FloatFrom(v)
	return nil
}
