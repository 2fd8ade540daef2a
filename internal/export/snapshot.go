package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/san-kum/attractors/internal/attractor"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/sim"
)

// Coord is a point encoded as [x, y, z]. Non-finite coordinates are written
// as null.
type Coord [3]float64

func (c Coord) MarshalJSON() ([]byte, error) {
	buf := []byte{'['}
	for i, v := range c {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 32)
	}
	return append(buf, ']'), nil
}

func coord(p dynamo.Point) Coord {
	return Coord{float64(p.X), float64(p.Y), float64(p.Z)}
}

// Snapshot is a one-shot dump of the trails after a run. It is written for
// inspection and plotting; nothing reads it back.
type Snapshot struct {
	Variant      string             `json:"variant"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         uint64             `json:"seed"`
	Dt           float32            `json:"dt"`
	Ticks        uint64             `json:"ticks"`
	Trajectories int                `json:"trajectories"`
	TrailLength  int                `json:"trail_length"`
	Params       map[string]float64 `json:"params,omitempty"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
	Trails       [][]Coord          `json:"trails"`
}

// NewSnapshot captures the current trails of a. Each trail is newest first.
func NewSnapshot(variant string, seed uint64, dt float32, a *attractor.Attractor, result *sim.Result) *Snapshot {
	snap := &Snapshot{
		Variant:      variant,
		Timestamp:    time.Now(),
		Seed:         seed,
		Dt:           dt,
		Ticks:        a.Ticks(),
		Trajectories: a.Len(),
		TrailLength:  a.TrailLength(),
		Trails:       make([][]Coord, a.Len()),
	}
	if cfg, ok := a.Dynamics().(dynamo.Configurable); ok {
		snap.Params = cfg.Params()
	}
	if result != nil {
		snap.Metrics = finiteOnly(result.Metrics)
	}
	for i, tr := range a.Trails() {
		coords := make([]Coord, len(tr.Points))
		for r, p := range tr.Points {
			coords[r] = coord(p)
		}
		snap.Trails[i] = coords
	}
	return snap
}

func finiteOnly(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

func WriteJSON(w io.Writer, snap *Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

func ExportJSON(path string, snap *Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, snap)
}

// WriteCSV writes one row per trail point: trajectory, rank, x, y, z.
func WriteCSV(w io.Writer, trails []attractor.Trail) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"trajectory", "rank", "x", "y", "z"}); err != nil {
		return err
	}
	for _, tr := range trails {
		for r, p := range tr.Points {
			row := []string{
				strconv.Itoa(tr.Index),
				strconv.Itoa(r),
				formatFloat(p.X),
				formatFloat(p.Y),
				formatFloat(p.Z),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesCSV writes the sampled series of a run: time, x, y, z.
func WriteSeriesCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "x", "y", "z"}); err != nil {
		return err
	}
	for i, p := range result.Series {
		t := 0.0
		if i < len(result.Times) {
			t = result.Times[i]
		}
		row := []string{
			strconv.FormatFloat(t, 'g', -1, 64),
			formatFloat(p.X),
			formatFloat(p.Y),
			formatFloat(p.Z),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, trails []attractor.Trail) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(file, trails)
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
