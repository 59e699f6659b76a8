// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"encoding/json"
	"strings"
	"time"
)

// FlexID is a record identifier that tolerates the loose typing of legacy
// snapshot producers: JSON strings, numbers and null all decode cleanly.
// A null or empty identity never matches an existing record.
type FlexID string

// UnmarshalJSON accepts strings, numbers and null.
func (id *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*id = ""
	case len(s) >= 2 && s[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*id = FlexID(v)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*id = FlexID(n.String())
	}
	return nil
}

func (id FlexID) String() string { return string(id) }

// IsZero reports whether the identity is absent.
func (id FlexID) IsZero() bool { return id == "" }

// flexLayouts are tried in order when a timestamp is not strict RFC 3339.
// Older exports used a space separator or bare dates.
var flexLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FlexTime wraps time.Time with lenient snapshot parsing. Invalid or empty
// timestamps decode to the zero time rather than failing the whole record;
// the original producer emitted strings like "0NaN-NaN-NaN..." for corrupt
// dates and downstream code treated them as absent.
type FlexTime struct {
	time.Time
}

// NewFlexTime wraps t.
func NewFlexTime(t time.Time) FlexTime { return FlexTime{Time: t} }

// UnmarshalJSON parses RFC 3339 with fallbacks, epoch milliseconds, or null.
func (t *FlexTime) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		var ms int64
		if err2 := json.Unmarshal(b, &ms); err2 == nil {
			t.Time = time.UnixMilli(ms).UTC()
			return nil
		}
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "0NaN") {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range flexLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	// Unparseable dates degrade to zero instead of aborting the section.
	t.Time = time.Time{}
	return nil
}

// MarshalJSON emits RFC 3339 or null for the zero time.
func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}
