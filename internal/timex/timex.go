// Package timex provides a time.Duration wrapper that can be unmarshalled
// from JSON either as a duration string ("10s", "1m30s") or as integer
// nanoseconds. Config files use it so intervals stay human-readable.
package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration for flexible JSON decoding.
type Duration struct {
	time.Duration
}

// UnmarshalJSON accepts either a string parsed by time.ParseDuration or a
// JSON number interpreted as nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", v)
	}
}

// MarshalJSON emits the duration in its string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
