// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/firstlight/gearbase/internal/logging"
	"github.com/firstlight/gearbase/internal/model"
)

// loadedMetadata is the snapshot header in either of its historical shapes.
type loadedMetadata struct {
	FormatVersion string `json:"formatVersion"`
	Version       string `json:"version"`
	CreatedAt     string `json:"createdAt"`
	Timestamp     string `json:"timestamp"`
	AppName       string `json:"appName"`
	Checksum      string `json:"checksum"`
}

// LoadSnapshot parses an externally supplied snapshot, validates its format
// version, and decodes every recognized section into typed records. It
// returns the snapshot plus the list of sections found, in registry order,
// and never touches the live store.
//
// Accepted shapes:
//   - zstd-compressed or plain JSON;
//   - sections at the top level next to formatVersion/createdAt;
//   - the legacy envelope {metadata|_metadata: {...}, data: {sections...}},
//     unwrapped one level when no known section key is present at the top;
//   - camelCase or snake_case section and field names.
func LoadSnapshot(raw []byte) (*model.Snapshot, []model.Section, error) {
	raw, err := maybeDecompress(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	doc, err := decodeObject(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	meta := readMetadata(doc)

	if !hasKnownSection(doc) {
		if inner, ok := doc["data"]; ok {
			innerDoc, err := decodeObject(inner)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: data wrapper: %v", ErrMalformed, err)
			}
			// The envelope may carry the version; the inner document wins
			// when both are set.
			innerMeta := readMetadata(innerDoc)
			if innerMeta.version() != "" {
				meta = innerMeta
			}
			doc = innerDoc
		}
	}

	version := meta.version()
	if version == "" {
		// Early producers wrote no version at all; those files predate the
		// format split, so they are treated as 1.0.
		version = model.SnapshotFormatVersion
	}
	if !supportedVersion(version) {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, version)
	}

	snap := &model.Snapshot{
		FormatVersion: version,
		AppName:       meta.AppName,
		Checksum:      meta.Checksum,
		Sections:      make(map[model.Section][]model.Record),
	}
	if ts := meta.createdAt(); ts != "" {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			snap.CreatedAt = parsed
		}
	}

	var available []model.Section
	rawSections := make(map[string]json.RawMessage)
	for _, entry := range registry {
		raw, ok := sectionPayload(doc, entry.Name)
		if !ok {
			continue
		}
		rawSections[string(entry.Name)] = raw
		normalized, err := normalizeRecordKeys(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: section %s: %v", ErrMalformed, entry.Name, err)
		}
		records, err := entry.decode(normalized)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: section %s: %v", ErrMalformed, entry.Name, err)
		}
		snap.Sections[entry.Name] = records
		available = append(available, entry.Name)
	}

	// Older files carry no checksum at all; a present but mismatching one
	// is suspicious yet not fatal, the per-record validation still runs.
	if snap.Checksum != "" && !verifyChecksum(rawSections, snap.Checksum) {
		logging.Warnf("snapshot checksum does not match its contents")
	}

	return snap, available, nil
}

// decodeObject unmarshals raw into a key/value map, preserving numbers.
func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func readMetadata(doc map[string]json.RawMessage) loadedMetadata {
	var meta loadedMetadata
	for _, key := range []string{"_metadata", "metadata"} {
		if raw, ok := doc[key]; ok {
			_ = json.Unmarshal(raw, &meta)
		}
	}
	// Top-level keys override the nested metadata block. Only the header
	// keys are read; the section payloads stay untouched.
	top := loadedMetadata{}
	for key, dst := range map[string]*string{
		"formatVersion": &top.FormatVersion,
		"version":       &top.Version,
		"createdAt":     &top.CreatedAt,
		"timestamp":     &top.Timestamp,
		"appName":       &top.AppName,
		"checksum":      &top.Checksum,
	} {
		if raw, ok := doc[key]; ok {
			_ = json.Unmarshal(raw, dst)
		}
	}
	if top.version() != "" {
		meta.FormatVersion = top.version()
		meta.Version = ""
	}
	if top.createdAt() != "" {
		meta.CreatedAt = top.createdAt()
		meta.Timestamp = ""
	}
	if top.AppName != "" {
		meta.AppName = top.AppName
	}
	if top.Checksum != "" {
		meta.Checksum = top.Checksum
	}
	return meta
}

func (m loadedMetadata) version() string {
	if m.FormatVersion != "" {
		return m.FormatVersion
	}
	return m.Version
}

func (m loadedMetadata) createdAt() string {
	if m.CreatedAt != "" {
		return m.CreatedAt
	}
	return m.Timestamp
}

// supportedVersion accepts any version whose major component matches the
// current format's major component.
func supportedVersion(v string) bool {
	major, _, _ := strings.Cut(v, ".")
	currentMajor, _, _ := strings.Cut(model.SnapshotFormatVersion, ".")
	return major == currentMajor
}

func hasKnownSection(doc map[string]json.RawMessage) bool {
	for _, entry := range registry {
		if _, ok := sectionPayload(doc, entry.Name); ok {
			return true
		}
	}
	return false
}

// sectionPayload finds a section's raw payload under its canonical name or
// the snake_case spelling older producers used.
func sectionPayload(doc map[string]json.RawMessage, name model.Section) (json.RawMessage, bool) {
	if raw, ok := doc[string(name)]; ok {
		return raw, true
	}
	if raw, ok := doc[camelToSnake(string(name))]; ok {
		return raw, true
	}
	return nil, false
}

// normalizeRecordKeys rewrites snake_case field names to camelCase in every
// record object so one set of struct tags decodes both historical shapes.
// Values are untouched; numbers survive via json.Number.
func normalizeRecordKeys(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return raw, nil
	}
	switch trimmed[0] {
	case '[':
		var rows []map[string]any
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&rows); err != nil {
			return nil, err
		}
		for i, row := range rows {
			rows[i] = normalizeKeys(row)
		}
		return json.Marshal(rows)
	case '{':
		var row map[string]any
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&row); err != nil {
			return nil, err
		}
		return json.Marshal(normalizeKeys(row))
	default:
		return raw, nil
	}
}

func normalizeKeys(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		ck := snakeToCamel(k)
		if _, exists := out[ck]; exists && ck != k {
			// A camelCase twin already present wins over its snake_case alias.
			continue
		}
		out[ck] = v
	}
	return out
}

func snakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
