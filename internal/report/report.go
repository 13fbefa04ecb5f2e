package report

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"httpchain/internal/logging"
	"httpchain/internal/session"
	"httpchain/internal/validate"
)

// ErrSessionNotFound is returned when a report is requested for an
// unknown session id. No file is written in that case.
var ErrSessionNotFound = errors.New("session not found")

// Summary holds the aggregate pass/fail statistics of one session.
// A request passes when its status, content-type and body validations
// all pass.
type Summary struct {
	TotalRequests      int     `json:"totalRequests"`
	SuccessfulRequests int     `json:"successfulRequests"`
	FailedRequests     int     `json:"failedRequests"`
	SuccessRate        float64 `json:"successRate"`
	ValidationsPassed  int     `json:"validationsPassed"`
	ValidationsFailed  int     `json:"validationsFailed"`
	ValidationRate     float64 `json:"validationRate"`
	ChainRequests      int     `json:"chainRequests"`
	SingleRequests     int     `json:"singleRequests"`
}

// TimedRequest is one request placed on the session timeline.
type TimedRequest struct {
	Label      string    `json:"label"`
	Timestamp  time.Time `json:"timestamp"`
	OffsetMs   int64     `json:"offsetMs"`
	IntervalMs int64     `json:"intervalMs"`
}

// TimingAnalysis describes request pacing within one session.
type TimingAnalysis struct {
	Requests          []TimedRequest `json:"requests"`
	AverageIntervalMs int64          `json:"averageIntervalMs"`
	SessionDurationMs int64          `json:"sessionDurationMs"`
}

// Summarize computes the summary statistics for a session by walking every
// request entry: chain steps through their per-step entries, standalone
// calls through theirs. Chain container entries are skipped so a request
// is never counted twice, and steps of an aborted chain (which never gets
// a container entry) still count.
func Summarize(s *session.Session) Summary {
	var sum Summary
	for _, entry := range s.Logs {
		if entry.Type != session.EntryRequest {
			continue
		}
		switch {
		case entry.Step != nil:
			sum.ChainRequests++
			tally(&sum, validate.Passed(entry.Step.Validation, entry.Step.BodyValidation))
		case entry.Request != nil && entry.Response != nil:
			sum.SingleRequests++
			passed := entry.Validation != nil && entry.BodyValidation != nil &&
				validate.Passed(*entry.Validation, *entry.BodyValidation)
			tally(&sum, passed)
		}
	}
	sum.TotalRequests = sum.ChainRequests + sum.SingleRequests
	if sum.TotalRequests > 0 {
		sum.SuccessRate = round2(float64(sum.SuccessfulRequests) / float64(sum.TotalRequests))
		sum.ValidationRate = round2(float64(sum.ValidationsPassed) / float64(sum.TotalRequests))
	}
	return sum
}

func tally(sum *Summary, passed bool) {
	if passed {
		sum.SuccessfulRequests++
		sum.ValidationsPassed++
	} else {
		sum.FailedRequests++
		sum.ValidationsFailed++
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Timing places every timed request on the session timeline: offsets from
// the session start, inter-arrival intervals (the first interval is 0),
// the average interval, and the duration from first to last request.
// Like Summarize, it walks the per-step request entries and skips chain
// containers. Returns nil when the session holds no timed requests.
func Timing(s *session.Session) *TimingAnalysis {
	var items []TimedRequest
	for _, entry := range s.Logs {
		if entry.Type != session.EntryRequest {
			continue
		}
		switch {
		case entry.Step != nil:
			items = append(items, TimedRequest{Label: entry.Step.Name, Timestamp: entry.Step.Timestamp})
		case entry.Request != nil && entry.Response != nil:
			label := fmt.Sprintf("%s %s", entry.Request.Method, entry.Request.URL)
			items = append(items, TimedRequest{Label: label, Timestamp: entry.Timestamp})
		}
	}
	if len(items) == 0 {
		return nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.Before(items[j].Timestamp)
	})

	var intervalSum int64
	for i := range items {
		items[i].OffsetMs = items[i].Timestamp.Sub(s.StartTime).Milliseconds()
		if i > 0 {
			items[i].IntervalMs = items[i].Timestamp.Sub(items[i-1].Timestamp).Milliseconds()
			intervalSum += items[i].IntervalMs
		}
	}

	analysis := &TimingAnalysis{
		Requests:          items,
		SessionDurationMs: items[len(items)-1].Timestamp.Sub(items[0].Timestamp).Milliseconds(),
	}
	if len(items) > 1 {
		analysis.AverageIntervalMs = int64(math.Round(float64(intervalSum) / float64(len(items)-1)))
	}
	return analysis
}

// FileWriter defines the interface for persisting rendered reports.
// This allows mocking file system interactions.
type FileWriter interface {
	WriteFile(filename string, data []byte, perm fs.FileMode) error
}

// defaultFileWriter writes through os, creating the directory first.
type defaultFileWriter struct{}

func (d *defaultFileWriter) WriteFile(filename string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(filename)
	if mkDirErr := os.MkdirAll(dir, 0755); mkDirErr != nil {
		if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
			return fmt.Errorf("cannot create directory for report: path '%s' exists but is not a directory", dir)
		}
		return fmt.Errorf("failed to create report directory '%s': %w", dir, mkDirErr)
	}
	return os.WriteFile(filename, data, perm)
}

// Generator renders session reports and persists them under OutDir.
type Generator struct {
	store  *session.Store
	writer FileWriter
	outDir string
}

// GeneratorOpts allows replacing the Generator's file writer for testing.
type GeneratorOpts struct {
	FileWriter FileWriter
}

// NewGenerator creates a report generator writing real files under outDir.
func NewGenerator(store *session.Store, outDir string) *Generator {
	return NewGeneratorWithOpts(store, outDir, GeneratorOpts{})
}

// NewGeneratorWithOpts creates a report generator with injected dependencies.
func NewGeneratorWithOpts(store *session.Store, outDir string, opts GeneratorOpts) *Generator {
	writer := opts.FileWriter
	if writer == nil {
		writer = &defaultFileWriter{}
	}
	return &Generator{
		store:  store,
		writer: writer,
		outDir: outDir,
	}
}

// Generate renders the session's report and writes it to the path derived
// from the session id, returning that path. An unknown session returns
// ErrSessionNotFound without writing anything.
func (g *Generator) Generate(sessionID string) (string, error) {
	sess, ok := g.store.Get(sessionID)
	if !ok {
		return "", ErrSessionNotFound
	}

	doc, err := Render(sess)
	if err != nil {
		return "", fmt.Errorf("failed to render report for session '%s': %w", sessionID, err)
	}

	path := filepath.Join(g.outDir, fmt.Sprintf("session-report-%s.html", sessionID))
	if err := g.writer.WriteFile(path, []byte(doc), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file '%s': %w", path, err)
	}
	logging.Logf(logging.Info, "Wrote session report: %s", path)
	return path, nil
}
