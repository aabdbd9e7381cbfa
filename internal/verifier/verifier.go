// Package verifier re-reads written artifacts and checks them against the result they were produced from.
package verifier

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/golaps/internal/exporter"
	"github.com/dbsmedya/golaps/internal/laperr"
	"github.com/dbsmedya/golaps/internal/logger"
	"github.com/dbsmedya/golaps/internal/types"
)

// VerificationMethod defines how thoroughly artifacts are checked.
type VerificationMethod string

const (
	// MethodRoundTrip compares every serialized driver record and the totals (thorough)
	MethodRoundTrip VerificationMethod = "roundtrip"
	// MethodCount compares the number of driver rows only (fast)
	MethodCount VerificationMethod = "count"
	// MethodSkip skips verification entirely
	MethodSkip VerificationMethod = "skip"
)

// VerifyResult holds the verification outcome of a single artifact.
type VerifyResult struct {
	Artifact     exporter.Artifact
	Path         string
	Method       VerificationMethod
	Expected     int
	Found        int
	Match        bool
	ErrorMessage string
}

// VerifyStats contains overall verification statistics.
type VerifyStats struct {
	ArtifactsVerified int
	ArtifactsPassed   int
	ArtifactsFailed   int
	Results           []VerifyResult
	Method            VerificationMethod
}

// Verifier checks written artifacts.
type Verifier struct {
	method VerificationMethod
	logger *logger.Logger
}

// NewVerifier creates a verifier. An empty method defaults to MethodRoundTrip.
func NewVerifier(method VerificationMethod, log *logger.Logger) (*Verifier, error) {
	if log == nil {
		log = logger.NewDefault()
	}
	if method == "" {
		method = MethodRoundTrip
	}

	switch method {
	case MethodRoundTrip, MethodCount, MethodSkip:
	default:
		return nil, fmt.Errorf("unknown verification method %q", method)
	}

	return &Verifier{
		method: method,
		logger: log,
	}, nil
}

// Method returns the configured verification method.
func (v *Verifier) Method() VerificationMethod {
	return v.method
}

// Verify checks every successfully written artifact against result.
// Artifacts that failed to write are not re-checked; their error is already reported.
func (v *Verifier) Verify(result types.PipelineResult, artifacts []exporter.ArtifactResult) (*VerifyStats, error) {
	stats := &VerifyStats{
		Method: v.method,
	}

	if v.method == MethodSkip {
		v.logger.Info("Verification SKIPPED (method=skip)")
		return stats, nil
	}

	expected := exporter.NewDocument(result)
	var failed []string

	for _, a := range artifacts {
		if !a.OK() {
			continue
		}

		res := v.verifyArtifact(expected, a)
		stats.Results = append(stats.Results, res)
		stats.ArtifactsVerified++

		if res.Match {
			stats.ArtifactsPassed++
			v.logger.Debugw("Artifact verified",
				"artifact", a.Kind,
				"path", a.Path,
				"method", v.method,
				"rows", res.Found,
			)
			continue
		}

		stats.ArtifactsFailed++
		failed = append(failed, fmt.Sprintf("%s (%s)", a.Path, res.ErrorMessage))
		v.logger.Errorw("Artifact verification failed",
			"artifact", a.Kind,
			"path", a.Path,
			"method", v.method,
			"error", res.ErrorMessage,
		)
	}

	if len(failed) > 0 {
		return stats, laperr.Newf(laperr.ErrWrite, "verification failed: %s", strings.Join(failed, "; "))
	}
	return stats, nil
}

func (v *Verifier) verifyArtifact(expected exporter.Document, a exporter.ArtifactResult) VerifyResult {
	res := VerifyResult{
		Artifact: a.Kind,
		Path:     a.Path,
		Method:   v.method,
		Expected: len(expected.TopDrivers),
	}

	got, err := readBack(a)
	if err != nil {
		res.ErrorMessage = fmt.Sprintf("cannot read back: %v", err)
		return res
	}
	res.Found = len(got.TopDrivers)

	if res.Found != res.Expected {
		res.ErrorMessage = fmt.Sprintf("row count mismatch: expected %d, found %d", res.Expected, res.Found)
		return res
	}

	if v.method == MethodRoundTrip {
		if msg := compare(expected, *got, a.Kind == exporter.ArtifactJSON); msg != "" {
			res.ErrorMessage = msg
			return res
		}
	}

	res.Match = true
	return res
}

// readBack parses an artifact into a Document. CSV artifacts carry no totals.
func readBack(a exporter.ArtifactResult) (*exporter.Document, error) {
	switch a.Kind {
	case exporter.ArtifactCSV:
		records, err := exporter.ReadCSV(a.Path)
		if err != nil {
			return nil, err
		}
		return &exporter.Document{TopDrivers: records}, nil
	case exporter.ArtifactJSON:
		return exporter.ReadJSON(a.Path)
	default:
		return nil, fmt.Errorf("unknown artifact kind %q", a.Kind)
	}
}

// compare returns a description of the first difference, or "" when equal.
func compare(expected, got exporter.Document, withTotals bool) string {
	for i, want := range expected.TopDrivers {
		have := got.TopDrivers[i]
		if have.Driver != want.Driver || have.Rank != want.Rank {
			return fmt.Sprintf("row %d: expected %s at rank %d, found %s at rank %d",
				i+1, want.Driver, want.Rank, have.Driver, have.Rank)
		}
		if have != want {
			return fmt.Sprintf("row %d: statistics for %s differ", i+1, want.Driver)
		}
	}

	if withTotals {
		if got.TotalDriversAnalyzed != expected.TotalDriversAnalyzed {
			return fmt.Sprintf("total_drivers_analyzed: expected %d, found %d",
				expected.TotalDriversAnalyzed, got.TotalDriversAnalyzed)
		}
		if got.TotalLapsAnalyzed != expected.TotalLapsAnalyzed {
			return fmt.Sprintf("total_laps_analyzed: expected %d, found %d",
				expected.TotalLapsAnalyzed, got.TotalLapsAnalyzed)
		}
	}
	return ""
}
