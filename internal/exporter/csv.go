package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dbsmedya/golaps/internal/types"
)

// CSVHeader is the header row of the CSV artifact.
var CSVHeader = []string{"Driver", "average_time", "fastest_time", "lap_count", "rank"}

// EncodeCSV writes the top drivers of result as CSV in rank order.
func EncodeCSV(w io.Writer, result types.PipelineResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, d := range result.TopDrivers {
		row := []string{
			d.Driver,
			formatTime(d.AverageTime),
			formatTime(d.FastestTime),
			strconv.Itoa(d.LapCount),
			strconv.Itoa(d.Rank),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatTime renders a rounded time with '.' as separator and no exponent.
func formatTime(v float64) string {
	return strconv.FormatFloat(Round3(v), 'f', -1, 64)
}

// ReadCSV parses a CSV artifact back into driver records.
func ReadCSV(path string) ([]DriverRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeCSV(f)
}

// DecodeCSV parses CSV artifact content from r.
func DecodeCSV(r io.Reader) ([]DriverRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, name := range CSVHeader {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected column %q at position %d, want %q", header[i], i, name)
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	records := make([]DriverRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := parseCSVRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseCSVRow(row []string) (DriverRecord, error) {
	avg, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return DriverRecord{}, fmt.Errorf("average_time: %w", err)
	}
	fastest, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return DriverRecord{}, fmt.Errorf("fastest_time: %w", err)
	}
	laps, err := strconv.Atoi(row[3])
	if err != nil {
		return DriverRecord{}, fmt.Errorf("lap_count: %w", err)
	}
	rank, err := strconv.Atoi(row[4])
	if err != nil {
		return DriverRecord{}, fmt.Errorf("rank: %w", err)
	}
	return DriverRecord{
		Driver:      row[0],
		AverageTime: avg,
		FastestTime: fastest,
		LapCount:    laps,
		Rank:        rank,
	}, nil
}
