package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/yukikurage/task-assignment-api/internal/utils"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a time that decodes from JSON strings, JSON numbers (epoch
// milliseconds) and form values, and encodes as UTC RFC3339 with
// milliseconds. An empty or null value leaves it zero.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(timestampLayout))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}

	return t.UnmarshalParam(raw)
}

// UnmarshalParam implements gin's binding.BindUnmarshaler for form values.
func (t *Timestamp) UnmarshalParam(param string) error {
	if strings.TrimSpace(param) == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := utils.ParseTime(param)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Ptr returns nil for the zero Timestamp and the wrapped time otherwise.
func (t Timestamp) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}
