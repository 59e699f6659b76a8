// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/firstlight/gearbase/internal/model"
)

// zstdMagic is the frame header every zstd stream starts with. Snapshots are
// compressed on export but plain JSON files restore just as well.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func maybeDecompress(raw []byte) ([]byte, error) {
	if !bytes.HasPrefix(raw, zstdMagic) {
		return raw, nil
	}
	dec, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

// EncodeSnapshot writes snap as zstd-compressed JSON. Sections sit at the
// top level next to the header fields so the output round-trips through
// LoadSnapshot, and the checksum covers the serialized section data.
func EncodeSnapshot(w io.Writer, snap *model.Snapshot) error {
	sections := make(map[string]json.RawMessage, len(snap.Sections))
	for _, entry := range registry {
		records, ok := snap.Sections[entry.Name]
		if !ok {
			continue
		}
		var payload any = records
		if entry.Singleton && len(records) == 1 {
			payload = records[0]
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode section %s: %w", entry.Name, err)
		}
		sections[string(entry.Name)] = raw
	}

	doc := map[string]any{
		"formatVersion": snap.FormatVersion,
		"createdAt":     snap.CreatedAt.UTC().Format(time.RFC3339),
		"appName":       snap.AppName,
		"checksum":      sectionChecksum(sections),
	}
	for name, raw := range sections {
		doc[name] = raw
	}

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("init compressor: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		zw.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return zw.Close()
}

// sectionChecksum hashes the serialized sections in registry order so the
// digest is stable for identical data.
func sectionChecksum(sections map[string]json.RawMessage) string {
	h := sha256.New()
	for _, entry := range registry {
		raw, ok := sections[string(entry.Name)]
		if !ok {
			continue
		}
		h.Write([]byte(entry.Name))
		h.Write(raw)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// verifyChecksum reports whether want matches the digest of the given raw
// section payloads. Payloads are compacted before hashing because the
// digest is produced over compact JSON while files carry indented JSON.
func verifyChecksum(sections map[string]json.RawMessage, want string) bool {
	compact := make(map[string]json.RawMessage, len(sections))
	var buf bytes.Buffer
	for name, raw := range sections {
		buf.Reset()
		if err := json.Compact(&buf, raw); err != nil {
			return false
		}
		compact[name] = append(json.RawMessage(nil), buf.Bytes()...)
	}
	return sectionChecksum(compact) == want
}

// WriteSnapshotFile encodes snap into path, creating parent directories as
// needed. The write goes through a temp file and rename so a crash never
// leaves a truncated snapshot behind.
func WriteSnapshotFile(path string, snap *model.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	tmpName := tmp.Name()
	if err := EncodeSnapshot(tmp, snap); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("finalize snapshot file: %w", err)
	}
	return nil
}

// ReadSnapshotFile loads and parses a snapshot from disk.
func ReadSnapshotFile(path string) (*model.Snapshot, []model.Section, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read snapshot file: %w", err)
	}
	return LoadSnapshot(raw)
}
