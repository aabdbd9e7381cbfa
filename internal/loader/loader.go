// Package loader reads lap timing CSV files and validates them before aggregation.
//
// The loader aborts on the first invalid row instead of skipping it, so a
// dataset is either accepted whole or rejected whole.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dimchansky/utfbom"

	"github.com/dbsmedya/golaps/internal/laperr"
	"github.com/dbsmedya/golaps/internal/types"
)

// lapTimePattern accepts plain decimal or exponent notation only. strconv alone
// would also take Go literal forms such as 1_0 or 0x1p2.
var lapTimePattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Required input columns.
const (
	DriverColumn = "Driver"
	TimeColumn   = "Time"
)

// Rules holds the dataset-wide acceptance thresholds. Zero disables a check.
type Rules struct {
	MinDrivers       int
	MinLapsPerDriver int
}

// DefaultRules returns the standard thresholds: 10 drivers, 3 laps each.
func DefaultRules() Rules {
	return Rules{
		MinDrivers:       10,
		MinLapsPerDriver: 3,
	}
}

// Load opens path and reads validated lap records from it.
func Load(path string, rules Rules) ([]types.LapRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, laperr.Newf(laperr.ErrFileNotFound, "cannot open input").WithPath(path).WithCause(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, laperr.Newf(laperr.ErrFileNotFound, "cannot stat input").WithPath(path).WithCause(err)
	}
	if info.IsDir() {
		return nil, laperr.Newf(laperr.ErrFileNotFound, "input is a directory").WithPath(path)
	}

	records, err := Read(f, rules)
	if err != nil {
		var lapErr *laperr.Error
		if errors.As(err, &lapErr) && lapErr.Path == "" {
			lapErr.Path = path
		}
		return nil, err
	}
	return records, nil
}

// Read parses and validates lap records from r.
func Read(r io.Reader, rules Rules) ([]types.LapRecord, error) {
	cr := csv.NewReader(utfbom.SkipOnly(r))

	header, err := cr.Read()
	if err == io.EOF {
		return nil, laperr.Newf(laperr.ErrEmptyInput, "input has no header row")
	}
	if err != nil {
		return nil, rowError(err, 1)
	}

	driverIdx, timeIdx, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []types.LapRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rowError(err, 0)
		}

		line, _ := cr.FieldPos(0)
		rec, err := parseRow(row, driverIdx, timeIdx, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, laperr.Newf(laperr.ErrEmptyInput, "no data rows after header")
	}

	if err := checkDataset(records, rules); err != nil {
		return nil, err
	}

	return records, nil
}

// resolveColumns maps the header to the driver and time column indexes.
// The header must contain exactly the required columns, in any order.
func resolveColumns(header []string) (driverIdx, timeIdx int, err error) {
	seen := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if _, dup := seen[name]; dup {
			return 0, 0, laperr.Newf(laperr.ErrSchema, "duplicate column %q", name).AtLine(1)
		}
		if name != DriverColumn && name != TimeColumn {
			return 0, 0, laperr.Newf(laperr.ErrSchema, "unexpected column %q, expected exactly %s,%s",
				name, DriverColumn, TimeColumn).AtLine(1)
		}
		seen[name] = i
	}

	for _, required := range []string{DriverColumn, TimeColumn} {
		if _, ok := seen[required]; !ok {
			return 0, 0, laperr.Newf(laperr.ErrSchema, "missing required column %q", required).AtLine(1)
		}
	}

	return seen[DriverColumn], seen[TimeColumn], nil
}

func parseRow(row []string, driverIdx, timeIdx, line int) (types.LapRecord, error) {
	driver := strings.TrimSpace(row[driverIdx])
	if driver == "" {
		return types.LapRecord{}, laperr.Newf(laperr.ErrValidation, "driver name is empty").AtLine(line)
	}
	if !utf8.ValidString(driver) {
		return types.LapRecord{}, laperr.Newf(laperr.ErrValidation, "driver name is not valid UTF-8").
			AtLine(line).WithValue(driver)
	}

	raw := strings.TrimSpace(row[timeIdx])
	if !lapTimePattern.MatchString(raw) {
		return types.LapRecord{}, laperr.Newf(laperr.ErrValidation, "lap time for %s is not a number", driver).
			AtLine(line).WithValue(raw).WithDriver(driver)
	}
	lapTime, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(lapTime) || math.IsInf(lapTime, 0) {
		return types.LapRecord{}, laperr.Newf(laperr.ErrValidation, "lap time for %s is not a number", driver).
			AtLine(line).WithValue(raw).WithDriver(driver)
	}
	if lapTime <= 0 {
		return types.LapRecord{}, laperr.Newf(laperr.ErrValidation, "lap time for %s must be positive", driver).
			AtLine(line).WithValue(raw).WithDriver(driver)
	}

	return types.LapRecord{
		Driver:  driver,
		LapTime: lapTime,
		Line:    line,
	}, nil
}

// rowError converts an encoding/csv failure into a schema error. fallbackLine is
// used when the parser does not report a position.
func rowError(err error, fallbackLine int) error {
	line := fallbackLine
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		line = parseErr.Line
	}

	msg := "malformed row"
	if errors.Is(err, csv.ErrFieldCount) {
		msg = "row field count does not match header"
	}
	return laperr.Newf(laperr.ErrSchema, "%s", msg).AtLine(line).WithCause(err)
}

// checkDataset enforces the driver count and per-driver lap count thresholds.
func checkDataset(records []types.LapRecord, rules Rules) error {
	laps := make(map[string]int)
	for _, rec := range records {
		laps[rec.Driver]++
	}

	if rules.MinDrivers > 0 && len(laps) < rules.MinDrivers {
		return laperr.Newf(laperr.ErrValidation, "found %d distinct drivers, at least %d required",
			len(laps), rules.MinDrivers)
	}

	if rules.MinLapsPerDriver > 0 {
		var short []string
		for driver, n := range laps {
			if n < rules.MinLapsPerDriver {
				short = append(short, driver)
			}
		}
		if len(short) > 0 {
			sort.Strings(short)
			detail := make([]string, len(short))
			for i, driver := range short {
				detail[i] = fmt.Sprintf("%s (%d)", driver, laps[driver])
			}
			return laperr.Newf(laperr.ErrValidation, "drivers with fewer than %d laps: %s",
				rules.MinLapsPerDriver, strings.Join(detail, ", ")).WithDriver(short[0])
		}
	}

	return nil
}
