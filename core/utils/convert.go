package utils

import (
	"encoding/json"
	"fmt"
)

// ToString renders any value as a string, the way the log call sites expect.
func ToString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// MustJSON marshals v, returning "{}" on failure. For values built from
// in-process maps where marshal errors cannot occur.
func MustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return b
}
