// Package exporter serializes a PipelineResult to the CSV and JSON artifacts and
// renders the console summary.
//
// Times are rounded to three decimals here and nowhere else.
package exporter

import (
	"bufio"
	"io"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/dbsmedya/golaps/internal/laperr"
	"github.com/dbsmedya/golaps/internal/types"
)

// Artifact identifies one of the two output formats.
type Artifact string

const (
	// ArtifactCSV is the comma separated results file.
	ArtifactCSV Artifact = "csv"
	// ArtifactJSON is the structured results document.
	ArtifactJSON Artifact = "json"
)

// Targets holds the destination path of each artifact.
type Targets struct {
	CSVPath  string
	JSONPath string
}

// ArtifactResult is the outcome of writing one artifact.
type ArtifactResult struct {
	Kind Artifact
	Path string
	Err  error
}

// OK reports whether the artifact was written.
func (a ArtifactResult) OK() bool {
	return a.Err == nil
}

// Report collects the independent outcome of both artifacts.
type Report struct {
	CSV  ArtifactResult
	JSON ArtifactResult
}

// Artifacts returns both outcomes, CSV first.
func (r *Report) Artifacts() []ArtifactResult {
	return []ArtifactResult{r.CSV, r.JSON}
}

// Err combines the artifact failures, or returns nil when both were written.
func (r *Report) Err() error {
	return multierr.Combine(r.CSV.Err, r.JSON.Err)
}

// Partial reports whether exactly one artifact failed.
func (r *Report) Partial() bool {
	return r.CSV.OK() != r.JSON.OK()
}

// Export writes both artifacts. A failure on one does not stop the other.
func Export(result types.PipelineResult, targets Targets) *Report {
	return &Report{
		CSV: ArtifactResult{
			Kind: ArtifactCSV,
			Path: targets.CSVPath,
			Err:  WriteCSV(targets.CSVPath, result),
		},
		JSON: ArtifactResult{
			Kind: ArtifactJSON,
			Path: targets.JSONPath,
			Err:  WriteJSON(targets.JSONPath, result),
		},
	}
}

// WriteCSV creates or overwrites path with the CSV artifact.
func WriteCSV(path string, result types.PipelineResult) error {
	return writeFile(ArtifactCSV, path, func(w io.Writer) error {
		return EncodeCSV(w, result)
	})
}

// WriteJSON creates or overwrites path with the JSON artifact.
func WriteJSON(path string, result types.PipelineResult) error {
	return writeFile(ArtifactJSON, path, func(w io.Writer) error {
		return EncodeJSON(w, result)
	})
}

// writeFile creates path and its parent directory, runs encode against a
// buffered writer, and closes the file on every path.
func writeFile(kind Artifact, path string, encode func(io.Writer) error) (err error) {
	wrap := func(msg string, cause error) error {
		return laperr.Newf(laperr.ErrWrite, "%s artifact: %s", kind, msg).WithPath(path).WithCause(cause)
	}

	if path == "" {
		return laperr.Newf(laperr.ErrWrite, "%s artifact: empty output path", kind)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return wrap("cannot create directory", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return wrap("cannot create file", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = wrap("cannot close file", cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := encode(bw); err != nil {
		return wrap("cannot encode", err)
	}
	if err := bw.Flush(); err != nil {
		return wrap("cannot flush", err)
	}
	return nil
}

// Round3 rounds v to three decimal places, halves away from zero.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
