package exporter

import (
	"io"
	"os"

	gojson "github.com/goccy/go-json"

	"github.com/dbsmedya/golaps/internal/types"
)

// DriverRecord is one ranked driver as serialized in both artifacts.
// The capitalised Driver key is what downstream consumers expect.
type DriverRecord struct {
	Driver      string  `json:"Driver"`
	AverageTime float64 `json:"average_time"`
	FastestTime float64 `json:"fastest_time"`
	LapCount    int     `json:"lap_count"`
	Rank        int     `json:"rank"`
}

// Document is the JSON artifact.
type Document struct {
	TopDrivers           []DriverRecord `json:"top_drivers"`
	TotalDriversAnalyzed int            `json:"total_drivers_analyzed"`
	TotalLapsAnalyzed    int            `json:"total_laps_analyzed"`
}

// NewDocument converts result to its serialized form, rounding times.
func NewDocument(result types.PipelineResult) Document {
	doc := Document{
		TopDrivers:           make([]DriverRecord, len(result.TopDrivers)),
		TotalDriversAnalyzed: result.TotalDriversAnalyzed,
		TotalLapsAnalyzed:    result.TotalLapsAnalyzed,
	}
	for i, d := range result.TopDrivers {
		doc.TopDrivers[i] = DriverRecord{
			Driver:      d.Driver,
			AverageTime: Round3(d.AverageTime),
			FastestTime: Round3(d.FastestTime),
			LapCount:    d.LapCount,
			Rank:        d.Rank,
		}
	}
	return doc
}

// Result converts a decoded document back to a PipelineResult.
func (d Document) Result() types.PipelineResult {
	top := make([]types.RankedDriver, len(d.TopDrivers))
	for i, rec := range d.TopDrivers {
		top[i] = types.RankedDriver{
			DriverStats: types.DriverStats{
				Driver:      rec.Driver,
				AverageTime: rec.AverageTime,
				FastestTime: rec.FastestTime,
				LapCount:    rec.LapCount,
			},
			Rank: rec.Rank,
		}
	}
	return types.NewPipelineResult(top, d.TotalDriversAnalyzed, d.TotalLapsAnalyzed)
}

// EncodeJSON writes result as an indented JSON document.
func EncodeJSON(w io.Writer, result types.PipelineResult) error {
	data, err := gojson.MarshalIndent(NewDocument(result), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ReadJSON parses a JSON artifact.
func ReadJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeJSON(f)
}

// DecodeJSON parses JSON artifact content from r.
func DecodeJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := gojson.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
