package calibration

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/dice-tray/vmath"
)

// fileEntry is the on-disk form: {"face": 1, "angles": [x, y, z]}
type fileEntry struct {
	Face   int        `json:"face"`
	Angles [3]float64 `json:"angles"`
}

// Load decodes an ordered JSON list of face/angle pairs
// Angles are preserved exactly; face-outcome reproducibility depends on them
func Load(r io.Reader) (*Table, error) {
	var raw []fileEntry
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode calibration: %w", err)
	}

	entries := make([]Entry, len(raw))
	for i, fe := range raw {
		entries[i] = Entry{
			Face:      fe.Face,
			Reference: vmath.Orientation{X: fe.Angles[0], Y: fe.Angles[1], Z: fe.Angles[2]},
		}
	}
	return New(entries)
}

// LoadFile reads a calibration table from path
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open calibration: %w", err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Save writes the table in the Load format
func Save(w io.Writer, t *Table) error {
	raw := make([]fileEntry, 0, t.Faces())
	for _, e := range t.entries {
		raw = append(raw, fileEntry{Face: e.Face, Angles: [3]float64{e.Reference.X, e.Reference.Y, e.Reference.Z}})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}
