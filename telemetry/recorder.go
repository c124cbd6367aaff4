// Package telemetry records per tick simulation measurements and writes
// them out as CSV for offline analysis. The physics world never depends on
// it; the caller feeds the recorder after each update.
package telemetry

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

// StepRecord is the measurement of one fixed step.
type StepRecord struct {
	Tick     uint64        `csv:"tick"`
	Bodies   int           `csv:"bodies"`
	Events   int           `csv:"events"`
	Triggers int           `csv:"triggers"`
	Step     time.Duration `csv:"step_ns"`
}

// Recorder collects StepRecords in memory.
type Recorder struct {
	records []StepRecord
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one measurement.
func (r *Recorder) Record(record StepRecord) {
	r.records = append(r.records, record)
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	return len(r.records)
}

// WriteCSV writes all records to path, header included.
func (r *Recorder) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&r.records, f); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}

	return nil
}

// Summary aggregates the recorded step times.
type Summary struct {
	Steps       int
	MeanStep    time.Duration
	StdDevStep  time.Duration
	MaxStep     time.Duration
	TotalEvents int
	MeanBodies  float64
}

// Summarize computes aggregate statistics over all recorded steps.
func (r *Recorder) Summarize() Summary {
	if len(r.records) == 0 {
		return Summary{}
	}

	steps := make([]float64, len(r.records))
	bodies := make([]float64, len(r.records))

	summary := Summary{Steps: len(r.records)}
	for i, record := range r.records {
		steps[i] = float64(record.Step)
		bodies[i] = float64(record.Bodies)
		summary.TotalEvents += record.Events
		summary.MaxStep = max(summary.MaxStep, record.Step)
	}

	mean, std := stat.MeanStdDev(steps, nil)
	summary.MeanStep = time.Duration(mean)
	if len(r.records) > 1 {
		summary.StdDevStep = time.Duration(std)
	}
	summary.MeanBodies = stat.Mean(bodies, nil)

	return summary
}
