package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/ilc/internal/config"
	"github.com/san-kum/ilc/internal/ilc"
)

// ExportData is the single-file JSON form of a run: the full config plus
// per-trial summary statistics, for consumption outside the tool.
type ExportData struct {
	System  string         `json:"system"`
	Config  *config.Config `json:"config"`
	Steps   int            `json:"steps"`
	Dt      float64        `json:"dt"`
	Times   []float64      `json:"times"`
	Desired [][]float64    `json:"desired"`
	Trials  []TrialStats   `json:"trials"`
}

// TrialStats summarizes one trial.
type TrialStats struct {
	Trial        int     `json:"trial"`
	MeanAbsError float64 `json:"mean_abs_error"`
	MaxAbsError  float64 `json:"max_abs_error"`
	Effort       float64 `json:"effort"`
}

func exportData(cfg *config.Config, report *ilc.Report) ExportData {
	data := ExportData{
		System:  report.System,
		Config:  cfg,
		Steps:   report.Steps,
		Dt:      report.Dt,
		Times:   report.Times,
		Desired: report.Desired,
		Trials:  make([]TrialStats, len(report.Records)),
	}
	for i, rec := range report.Records {
		data.Trials[i] = TrialStats{
			Trial:        rec.Trial,
			MeanAbsError: rec.MeanAbsError,
			MaxAbsError:  rec.MaxAbsError,
			Effort:       rec.Effort,
		}
	}
	return data
}

func writeExport(w io.Writer, cfg *config.Config, report *ilc.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(cfg, report))
}

// ExportJSON writes the run summary to a file.
func ExportJSON(path string, cfg *config.Config, report *ilc.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, cfg, report)
}

// ExportJSONStdout writes the run summary to standard output.
func ExportJSONStdout(cfg *config.Config, report *ilc.Report) error {
	return writeExport(os.Stdout, cfg, report)
}
