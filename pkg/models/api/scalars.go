package api

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Number accepts JSON numbers and numeric strings ("150.000", "$ 99990").
// Anything unparseable decodes to 0.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(finiteOrZero(f))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	*n = Number(parseAmount(s))
	return nil
}

// parseAmount reads CLP-formatted amounts where "." groups thousands and
// "," marks decimals.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	if strings.Count(s, ".") > 1 || (strings.Contains(s, ".") && strings.Contains(s, ",")) {
		s = strings.ReplaceAll(s, ".", "")
	} else if i := strings.Index(s, "."); i >= 0 && len(s)-i-1 == 3 {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(f)
}

// finiteOrZero drops NaN and infinities, which ParseFloat accepts as text.
func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
}

// Timestamp accepts RFC3339 and common date strings, epoch milliseconds and
// Firestore-style {"seconds": n, "nanoseconds": n} objects. Invalid input
// decodes to the zero Timestamp.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		t.Time = parseTime(s)
	case '{':
		var fs struct {
			Seconds     int64 `json:"seconds"`
			Nanoseconds int64 `json:"nanoseconds"`
			LegacySecs  int64 `json:"_seconds"`
		}
		if err := json.Unmarshal(data, &fs); err != nil {
			return nil
		}
		secs := fs.Seconds
		if secs == 0 {
			secs = fs.LegacySecs
		}
		if secs != 0 {
			t.Time = time.Unix(secs, fs.Nanoseconds).UTC()
		}
	default:
		var ms float64
		if err := json.Unmarshal(data, &ms); err != nil || ms <= 0 {
			return nil
		}
		t.Time = time.UnixMilli(int64(ms)).UTC()
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time)
}

// Ptr returns nil for the zero Timestamp.
func (t Timestamp) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Flag accepts booleans and the usual truthy strings ("true", "si", "1").
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = false
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "si", "sí", "yes", "1":
			*f = true
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = n != 0
	}
	return nil
}
