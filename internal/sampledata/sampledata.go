// Package sampledata generates synthetic lap time files for trying the pipeline out.
package sampledata

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dbsmedya/golaps/internal/loader"
	"github.com/dbsmedya/golaps/internal/types"
)

// MinLapTime is the floor applied to every generated lap.
const MinLapTime = 1.0

// Driver is a generated driver and the lap time their laps scatter around.
type Driver struct {
	Name     string
	BaseTime float64
}

// DefaultDrivers is the 2023 grid used when Options.Drivers is empty.
var DefaultDrivers = []Driver{
	{"Hamilton", 4.56},
	{"Verstappen", 4.52},
	{"Leclerc", 4.58},
	{"Perez", 4.61},
	{"Sainz", 4.59},
	{"Russell", 4.57},
	{"Norris", 4.63},
	{"Alonso", 4.65},
	{"Ocon", 4.68},
	{"Gasly", 4.67},
	{"Piastri", 4.64},
	{"Stroll", 4.70},
	{"Tsunoda", 4.69},
	{"Hulkenberg", 4.71},
	{"Ricciardo", 4.66},
}

// Options controls generation. A zero Seed seeds from the clock.
type Options struct {
	Seed     int64
	Variance float64
	MinLaps  int
	MaxLaps  int
	Drivers  []Driver
}

// DefaultOptions returns 3 to 8 laps per driver at ±0.5s.
func DefaultOptions() Options {
	return Options{
		Variance: 0.5,
		MinLaps:  3,
		MaxLaps:  8,
	}
}

func (o Options) validate() error {
	if o.Variance < 0 {
		return fmt.Errorf("variance must be >= 0, got %v", o.Variance)
	}
	if o.MinLaps < 1 {
		return fmt.Errorf("min laps must be >= 1, got %d", o.MinLaps)
	}
	if o.MaxLaps < o.MinLaps {
		return fmt.Errorf("max laps (%d) must be >= min laps (%d)", o.MaxLaps, o.MinLaps)
	}
	return nil
}

// Generate returns shuffled lap records. Line numbers match the order rows are written in.
func Generate(opts Options) ([]types.LapRecord, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	drivers := opts.Drivers
	if len(drivers) == 0 {
		drivers = DefaultDrivers
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var records []types.LapRecord
	for _, d := range drivers {
		laps := opts.MinLaps + rng.Intn(opts.MaxLaps-opts.MinLaps+1)
		for i := 0; i < laps; i++ {
			lap := d.BaseTime + (rng.Float64()*2-1)*opts.Variance
			records = append(records, types.LapRecord{
				Driver:  d.Name,
				LapTime: math.Round(math.Max(lap, MinLapTime)*100) / 100,
			})
		}
	}

	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
	for i := range records {
		records[i].Line = i + 2
	}
	return records, nil
}

// Write encodes records as a Driver,Time file.
func Write(w io.Writer, records []types.LapRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{loader.DriverColumn, loader.TimeColumn}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.Driver, strconv.FormatFloat(r.LapTime, 'f', -1, 64)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile generates a dataset and writes it to path, creating parent directories.
func WriteFile(path string, opts Options) (records []types.LapRecord, err error) {
	records, err = Generate(opts)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Write(bw, records); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return records, nil
}
