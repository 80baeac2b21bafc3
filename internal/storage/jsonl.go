// Package storage persists view snapshots in JSONL and SQLite formats.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/ppaat/internal/engine"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines.
// One line holds a whole view snapshot, so the limit is generous (64MB).
const MaxJSONLLineCapacity = 64 * 1024 * 1024

// ReadSnapshots reads all snapshots from a JSONL file.
func ReadSnapshots(path string) ([]engine.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file reads as empty
		}
		return nil, fmt.Errorf("opening snapshots file: %w", err)
	}
	defer f.Close()

	var snaps []engine.Snapshot
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var s engine.Snapshot
		if err := json.Unmarshal(line, &s); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		snaps = append(snaps, s)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshots file: %w", err)
	}

	return snaps, nil
}

// WriteSnapshots writes snapshots to a JSONL file, replacing existing content.
func WriteSnapshots(path string, snaps []engine.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshots file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, s := range snaps {
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encoding snapshot %d: %w", i, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("writing snapshot %d: %w", i, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing snapshots file: %w", err)
	}
	return nil
}
