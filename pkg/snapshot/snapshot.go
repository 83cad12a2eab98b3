// Package snapshot persists a whole graph as a single compressed blob so a
// query-serving process can bootstrap without re-running ETL.
package snapshot

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/golang/snappy"

	"github.com/dd0wney/orggraph/pkg/graph"
)

// Blob layout: magic, format version, CRC32 of the compressed payload,
// snappy-compressed JSON dump.
const (
	magic         = "OGSN"
	formatVersion = uint16(1)
	headerSize    = 4 + 2 + 4
)

var (
	ErrBadFormat       = errors.New("snapshot: unrecognized format")
	ErrVersionMismatch = errors.New("snapshot: unsupported format version")
	ErrChecksum        = errors.New("snapshot: checksum mismatch")
)

// Save serializes the graph to path. The blob is written to a temporary
// file first and renamed into place so readers never see a partial write.
func Save(g *graph.Graph, path string) error {
	payload, err := json.Marshal(g.Dump())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	compressed := snappy.Encode(nil, payload)

	blob := make([]byte, headerSize+len(compressed))
	copy(blob[0:4], magic)
	binary.LittleEndian.PutUint16(blob[4:6], formatVersion)
	binary.LittleEndian.PutUint32(blob[6:10], crc32.ChecksumIEEE(compressed))
	copy(blob[headerSize:], compressed)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, blob, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename snapshot: %w", err)
	}
	return nil
}

// Load reads a graph back from path. An absent file is the first-run case
// and yields an empty graph. A present but unreadable blob is an explicit
// error: bad magic, an unknown format version, or a failed checksum must
// never silently produce a corrupt in-memory graph.
func Load(path string) (*graph.Graph, error) {
	blob, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return graph.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if len(blob) < headerSize || string(blob[0:4]) != magic {
		return nil, ErrBadFormat
	}
	version := binary.LittleEndian.Uint16(blob[4:6])
	if version != formatVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, version, formatVersion)
	}

	compressed := blob[headerSize:]
	if crc32.ChecksumIEEE(compressed) != binary.LittleEndian.Uint32(blob[6:10]) {
		return nil, ErrChecksum
	}

	payload, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
	}

	var dump graph.Dump
	if err := json.Unmarshal(payload, &dump); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	// Restore with the multiset policy so counts survive the round trip
	// exactly regardless of how the graph was built.
	g, err := graph.FromDump(&dump, graph.EdgeMultiset)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild graph: %w", err)
	}
	return g, nil
}
