package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/simcore/internal/trajectory"
)

// TrajectoryData is the JSON form of a planned flight.
type TrajectoryData struct {
	Launch     trajectory.Launch  `json:"launch"`
	MaxHeight  float64            `json:"max_height"`
	Range      float64            `json:"range"`
	FlightTime float64            `json:"flight_time"`
	Landed     bool               `json:"landed"`
	Points     []trajectory.Point `json:"points"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTrajectoryCSV writes one t,x,y row per sample.
func WriteTrajectoryCSV(w io.Writer, r trajectory.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "x", "y"}); err != nil {
		return err
	}
	for _, p := range r.Points {
		if err := cw.Write([]string{formatFloat(p.T), formatFloat(p.X), formatFloat(p.Y)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteTrajectoryJSON(w io.Writer, l trajectory.Launch, r trajectory.Result) error {
	data := TrajectoryData{
		Launch:     l,
		MaxHeight:  r.MaxHeight,
		Range:      r.Range,
		FlightTime: r.FlightTime,
		Landed:     r.Landed,
		Points:     r.Points,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// SaveTrajectory writes a flight to path in the format named by its
// extension: .csv, .json or .svg.
func SaveTrajectory(path string, l trajectory.Launch, r trajectory.Result) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".json", ".svg":
	default:
		return fmt.Errorf("unsupported export format %q", ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch ext {
	case ".csv":
		err = WriteTrajectoryCSV(file, r)
	case ".json":
		err = WriteTrajectoryJSON(file, l, r)
	case ".svg":
		_, err = io.WriteString(file, TrajectoryToSVG(r.Points, 800, 400, "#00ff88", "#ff4466"))
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
