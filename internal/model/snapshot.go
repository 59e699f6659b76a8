// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "time"

// SnapshotFormatVersion is the format written by this build. On load, any
// version with the same major component is accepted.
const SnapshotFormatVersion = "1.0"

// Snapshot is a versioned, timestamped capture of one or more sections'
// data. It holds validated, typed records: by the time a Snapshot exists,
// the loader has already rejected malformed payloads and unsupported
// versions. A snapshot is owned by one backup or restore workflow and
// discarded when that workflow finishes.
type Snapshot struct {
	FormatVersion string
	CreatedAt     time.Time
	AppName       string
	Checksum      string
	Sections      map[Section][]Record
}

// Has reports whether the snapshot carries the named section. Absence of
// a section is not an error; it simply wasn't exported.
func (s *Snapshot) Has(sec Section) bool {
	_, ok := s.Sections[sec]
	return ok
}

// Records returns the section's records in snapshot order.
func (s *Snapshot) Records(sec Section) []Record {
	return s.Sections[sec]
}
