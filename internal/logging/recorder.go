package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"stringgenetics/internal/ga"
)

// Recorder writes one CSV row and one JSON line per generation
type Recorder struct {
	csvPath     string
	jsonPath    string
	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	initialized bool
}

// GenerationSummary holds per-generation statistics
type GenerationSummary struct {
	RunID       string  `json:"run_id"`
	Generation  int     `json:"generation"`
	Best        string  `json:"best"`
	BestFitness float64 `json:"best_fitness"`
	MeanFitness float64 `json:"mean_fitness"`
	StdFitness  float64 `json:"std_fitness"`
	MinFitness  float64 `json:"min_fitness"`
	PoolSize    int     `json:"pool_size"`
	BreedingSet int     `json:"breeding_set"`
}

// Summarize computes the statistics of a generation snapshot
func Summarize(runID string, snap *ga.Snapshot) GenerationSummary {
	fitnesses := snap.Fitnesses()
	mean, std := stat.MeanStdDev(fitnesses, nil)

	return GenerationSummary{
		RunID:       runID,
		Generation:  snap.Generation,
		Best:        snap.Best.String(),
		BestFitness: snap.BestFitness,
		MeanFitness: mean,
		StdFitness:  std,
		MinFitness:  floats.Min(fitnesses),
		PoolSize:    len(snap.Ranked),
		BreedingSet: len(ga.BreedingPool(snap.Ranked)),
	}
}

var csvHeader = []string{
	"run_id", "generation", "best", "best_fitness", "mean_fitness", "std_fitness",
	"min_fitness", "pool_size", "breeding_set",
}

// NewRecorder creates a recorder for the two output paths. Missing parent
// directories are created up front so Init only has to open files.
func NewRecorder(csvPath, jsonPath string) (*Recorder, error) {
	for _, path := range []string{csvPath, jsonPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("output directory for %s: %w", path, err)
		}
	}
	return &Recorder{csvPath: csvPath, jsonPath: jsonPath}, nil
}

// Init truncates both outputs and writes the CSV header. Nothing is left
// open when it fails.
func (r *Recorder) Init() error {
	csvFile, err := os.Create(r.csvPath)
	if err != nil {
		return err
	}
	jsonFile, err := os.Create(r.jsonPath)
	if err != nil {
		csvFile.Close()
		return err
	}

	w := csv.NewWriter(csvFile)
	if err := w.Write(csvHeader); err != nil {
		csvFile.Close()
		jsonFile.Close()
		return err
	}

	r.csvFile, r.csvWriter, r.jsonFile = csvFile, w, jsonFile
	r.initialized = true
	return nil
}

// Close flushes and closes all output files
func (r *Recorder) Close() error {
	var firstErr error
	if r.csvWriter != nil {
		r.csvWriter.Flush()
		firstErr = r.csvWriter.Error()
	}
	if r.csvFile != nil {
		if err := r.csvFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if r.jsonFile != nil {
		if err := r.jsonFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.csvWriter, r.csvFile, r.jsonFile = nil, nil, nil
	r.initialized = false
	return firstErr
}

// LogGeneration summarizes the snapshot and appends it to both outputs.
// Before Init it only computes the summary.
func (r *Recorder) LogGeneration(runID string, snap *ga.Snapshot) (GenerationSummary, error) {
	summary := Summarize(runID, snap)
	if !r.initialized {
		return summary, nil
	}

	row := []string{
		summary.RunID,
		strconv.Itoa(summary.Generation),
		summary.Best,
		fmt.Sprintf("%.4f", summary.BestFitness),
		fmt.Sprintf("%.4f", summary.MeanFitness),
		fmt.Sprintf("%.4f", summary.StdFitness),
		fmt.Sprintf("%.4f", summary.MinFitness),
		strconv.Itoa(summary.PoolSize),
		strconv.Itoa(summary.BreedingSet),
	}
	if err := r.csvWriter.Write(row); err != nil {
		return summary, err
	}
	r.csvWriter.Flush()
	if err := r.csvWriter.Error(); err != nil {
		return summary, err
	}

	line, err := json.Marshal(summary)
	if err != nil {
		return summary, err
	}
	if _, err := r.jsonFile.Write(append(line, '\n')); err != nil {
		return summary, err
	}

	return summary, nil
}
