package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/san-kum/simcore/internal/dynamo"
)

// Recorder collects per-frame metrics from a loop's OnFrame callback.
// Body positions are not retained.
type Recorder struct {
	Frames []FrameRow
}

// FrameRow is the metric record of one published frame.
type FrameRow struct {
	Frame   int                `json:"frame"`
	Time    float64            `json:"time"`
	Dt      float64            `json:"dt"`
	Metrics map[string]float64 `json:"metrics"`
}

func (r *Recorder) Observe(s dynamo.Snapshot) {
	r.Frames = append(r.Frames, FrameRow{Frame: s.Frame, Time: s.Time, Dt: s.Dt, Metrics: s.Metrics})
}

// Series returns the named metric across all recorded frames.
func (r *Recorder) Series(name string) []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Metrics[name]
	}
	return out
}

// Keys returns the sorted union of metric names.
func (r *Recorder) Keys() []string {
	seen := make(map[string]bool)
	for _, f := range r.Frames {
		for k := range f.Metrics {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteFramesCSV writes frame,time,dt followed by one column per metric.
// Missing metrics are written empty.
func WriteFramesCSV(w io.Writer, frames []FrameRow, keys []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"frame", "time", "dt"}, keys...)); err != nil {
		return err
	}
	row := make([]string, 3+len(keys))
	for _, f := range frames {
		row[0] = strconv.Itoa(f.Frame)
		row[1] = formatFloat(f.Time)
		row[2] = formatFloat(f.Dt)
		for i, k := range keys {
			if v, ok := f.Metrics[k]; ok {
				row[3+i] = formatFloat(v)
			} else {
				row[3+i] = ""
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// RunData summarises a headless run.
type RunData struct {
	Scenario string             `json:"scenario"`
	Seed     int64              `json:"seed"`
	Frames   int                `json:"frames"`
	Time     float64            `json:"time"`
	Bodies   int                `json:"bodies"`
	Metrics  map[string]float64 `json:"metrics"`
}

func WriteRunJSON(w io.Writer, scenario string, seed int64, final dynamo.Snapshot) error {
	data := RunData{
		Scenario: scenario,
		Seed:     seed,
		Frames:   final.Frame,
		Time:     final.Time,
		Bodies:   len(final.Bodies),
		Metrics:  final.Metrics,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
