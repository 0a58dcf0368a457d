package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/ilc/internal/config"
	"github.com/san-kum/ilc/internal/ilc"
)

// Store persists learning runs under a base directory. Each run gets its
// own timestamped directory holding the config as params.yaml plus one CSV
// per trial and quantity, and a relative "latest" symlink points at the
// most recent run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo is the summary shown by listings.
type RunInfo struct {
	ID       string
	Time     time.Time
	System   string
	Trials   int
	Dt       float64
	Duration float64
}

// Run is a fully loaded persisted run. Slices are indexed by trial;
// Responses is indexed by control channel and holds one row per probed
// step. ZAxis, AngVel and Responses are nil when the run never wrote them.
type Run struct {
	ID          string
	Config      *config.Config
	Positions   [][][]float64
	Controls    [][][]float64
	Corrections [][][]float64
	ZAxis       [][][]float64
	AngVel      [][][]float64
	Responses   [][][]float64
}

// Save writes the config and every trial record of the report, then
// repoints the "latest" symlink. It returns the run ID.
func (s *Store) Save(cfg *config.Config, report *ilc.Report) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	runID := time.Now().Format("20060102-150405")
	runDir := filepath.Join(s.baseDir, runID)
	for n := 2; ; n++ {
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", err
		}
		runID = fmt.Sprintf("%s-%d", time.Now().Format("20060102-150405"), n)
		runDir = filepath.Join(s.baseDir, runID)
	}

	if err := config.Save(filepath.Join(runDir, "params.yaml"), cfg); err != nil {
		return "", err
	}

	for i, rec := range report.Records {
		suffix := fmt.Sprintf("_%02d.csv", i)
		if err := writeMatrix(filepath.Join(runDir, "pos"+suffix), "x", rec.Positions); err != nil {
			return "", err
		}
		if err := writeMatrix(filepath.Join(runDir, "controls"+suffix), "u", rec.Controls); err != nil {
			return "", err
		}
		if err := writeMatrix(filepath.Join(runDir, "corrections"+suffix), "u", controlRows(rec.Correction, rec.Controls)); err != nil {
			return "", err
		}
		if rec.ZAxis != nil {
			if err := writeMatrix(filepath.Join(runDir, "zaxis"+suffix), "z", rec.ZAxis); err != nil {
				return "", err
			}
		}
		if rec.AngVel != nil {
			if err := writeMatrix(filepath.Join(runDir, "angvel"+suffix), "w", rec.AngVel); err != nil {
				return "", err
			}
		}
	}

	final := report.Final()
	if final != nil && len(final.Responses) > 0 {
		channels, _ := final.Responses[0].Dims()
		for c := 0; c < channels; c++ {
			rows := make([][]float64, len(final.Responses))
			for k, resp := range final.Responses {
				rows[k] = resp.RawRowView(c)
			}
			path := filepath.Join(runDir, fmt.Sprintf("fbresp_%d.csv", c))
			if err := writeMatrix(path, "x", rows); err != nil {
				return "", err
			}
		}
	}

	latest := filepath.Join(s.baseDir, "latest")
	if err := os.Remove(latest); err != nil && !os.IsNotExist(err) {
		return "", err
	}
	if err := os.Symlink(runID, latest); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the stored runs sorted oldest first. Directories without a
// readable params.yaml are skipped.
func (s *Store) List() ([]RunInfo, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunInfo{}, nil
		}
		return nil, err
	}

	runs := make([]RunInfo, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		cfg, err := config.Load(filepath.Join(s.baseDir, entry.Name(), "params.yaml"))
		if err != nil {
			continue
		}

		info := RunInfo{
			ID:       entry.Name(),
			System:   cfg.System,
			Trials:   cfg.Trials,
			Dt:       cfg.Dt,
			Duration: cfg.Duration,
		}
		if len(entry.Name()) >= 15 {
			if ts, err := time.ParseInLocation("20060102-150405", entry.Name()[:15], time.Local); err == nil {
				info.Time = ts
			}
		}
		runs = append(runs, info)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].ID < runs[j].ID })
	return runs, nil
}

// Load reads a run back. runID may be "latest".
func (s *Store) Load(runID string) (*Run, error) {
	runDir := filepath.Join(s.baseDir, runID)
	cfg, err := config.Load(filepath.Join(runDir, "params.yaml"))
	if err != nil {
		return nil, err
	}

	run := &Run{ID: runID, Config: cfg}
	for i := 0; ; i++ {
		suffix := fmt.Sprintf("_%02d.csv", i)
		pos, err := readMatrix(filepath.Join(runDir, "pos"+suffix))
		if err != nil {
			if os.IsNotExist(err) {
				break
			}
			return nil, err
		}
		run.Positions = append(run.Positions, pos)

		if m, err := readMatrix(filepath.Join(runDir, "controls"+suffix)); err == nil {
			run.Controls = append(run.Controls, m)
		}
		if m, err := readMatrix(filepath.Join(runDir, "corrections"+suffix)); err == nil {
			run.Corrections = append(run.Corrections, m)
		}
		if m, err := readMatrix(filepath.Join(runDir, "zaxis"+suffix)); err == nil {
			run.ZAxis = append(run.ZAxis, m)
		}
		if m, err := readMatrix(filepath.Join(runDir, "angvel"+suffix)); err == nil {
			run.AngVel = append(run.AngVel, m)
		}
	}
	if len(run.Positions) == 0 {
		return nil, fmt.Errorf("run %s has no trial data", runID)
	}

	for c := 0; ; c++ {
		m, err := readMatrix(filepath.Join(runDir, fmt.Sprintf("fbresp_%d.csv", c)))
		if err != nil {
			break
		}
		run.Responses = append(run.Responses, m)
	}

	return run, nil
}

// controlRows reshapes the flat stacked correction into one row per step,
// using the control matrix for the channel count.
func controlRows(correction []float64, controls [][]float64) [][]float64 {
	if len(controls) == 0 || len(controls[0]) == 0 {
		return nil
	}
	nc := len(controls[0])
	rows := make([][]float64, 0, len(correction)/nc)
	for i := 0; i+nc <= len(correction); i += nc {
		rows = append(rows, correction[i:i+nc])
	}
	return rows
}

func writeMatrix(path, prefix string, rows [][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if len(rows) > 0 {
		header := make([]string, len(rows[0]))
		for i := range header {
			header[i] = fmt.Sprintf("%s%d", prefix, i)
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}
	for _, row := range rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func readMatrix(path string) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}
		row := make([]float64, 0, len(record))
		for _, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
