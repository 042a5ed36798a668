package opportunity

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrTimestampMissing     = errors.New("timestamp missing")
	ErrTimestampUnparseable = errors.New("timestamp unparseable")
)

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
}

// Naive layouts carry no zone and are read in the parse location.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp keeps the stored creation time as written, either an ISO-8601
// string or a number of epoch seconds.
type Timestamp struct {
	raw json.RawMessage
}

func NewTimestamp(t time.Time) Timestamp {
	b, _ := json.Marshal(t.UTC().Format(time.RFC3339Nano))
	return Timestamp{raw: b}
}

func TimestampFromRaw(raw json.RawMessage) Timestamp {
	if len(raw) == 0 {
		return Timestamp{}
	}
	return Timestamp{raw: append(json.RawMessage(nil), raw...)}
}

func (t Timestamp) IsZero() bool {
	trimmed := bytes.TrimSpace(t.raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// String is the stored value as text, without JSON quoting for strings.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	var s string
	if err := json.Unmarshal(t.raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(t.raw))
}

func (t Timestamp) Time() (time.Time, error) {
	return t.ParseIn(time.Local)
}

func (t Timestamp) ParseIn(loc *time.Location) (time.Time, error) {
	if t.IsZero() {
		return time.Time{}, ErrTimestampMissing
	}
	if loc == nil {
		loc = time.UTC
	}

	trimmed := bytes.TrimSpace(t.raw)
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return time.Time{}, ErrTimestampUnparseable
		}
		return parseISO(s, loc)
	default:
		var secs float64
		if err := json.Unmarshal(trimmed, &secs); err != nil {
			return time.Time{}, ErrTimestampUnparseable
		}
		if math.IsNaN(secs) || math.IsInf(secs, 0) {
			return time.Time{}, ErrTimestampUnparseable
		}
		whole, frac := math.Modf(secs)
		return time.Unix(int64(whole), int64(frac*1e9)).In(loc), nil
	}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return t.raw, nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	*t = TimestampFromRaw(b)
	return nil
}

func parseISO(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrTimestampUnparseable
	}
	for _, layout := range zonedLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v, nil
		}
	}
	for _, layout := range naiveLayouts {
		if v, err := time.ParseInLocation(layout, s, loc); err == nil {
			return v, nil
		}
	}
	return time.Time{}, ErrTimestampUnparseable
}
