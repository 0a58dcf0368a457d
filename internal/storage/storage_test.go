package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/config"
	"github.com/san-kum/ilc/internal/ilc"
)

func testReport() *ilc.Report {
	return &ilc.Report{
		System:  "simple",
		Steps:   2,
		Dt:      0.5,
		Times:   []float64{0, 0.5, 1.0},
		Desired: [][]float64{{0}, {0.5}, {1}},
		Records: []ilc.TrialRecord{
			{
				Trial:        0,
				Positions:    [][]float64{{0}, {0.4}, {0.9}},
				Controls:     [][]float64{{1.5}, {2.5}},
				Correction:   []float64{0, 0},
				MeanAbsError: 0.1,
				MaxAbsError:  0.1,
				Effort:       2,
			},
			{
				Trial:        1,
				Positions:    [][]float64{{0}, {0.5}, {1}},
				Controls:     [][]float64{{1.25}, {2.25}},
				Correction:   []float64{-0.25, -0.25},
				MeanAbsError: 0.01,
				MaxAbsError:  0.02,
				Effort:       1.9,
			},
		},
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.System = "simple"
	cfg.Trials = 2
	return cfg
}

func TestSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testConfig(), testReport())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run id")
	}

	run, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if run.Config.System != "simple" || run.Config.Trials != 2 {
		t.Errorf("config round trip lost fields: %+v", run.Config)
	}
	if len(run.Positions) != 2 {
		t.Fatalf("got %d trials, want 2", len(run.Positions))
	}
	want := [][]float64{{0}, {0.4}, {0.9}}
	if !reflect.DeepEqual(run.Positions[0], want) {
		t.Errorf("positions[0] = %v, want %v", run.Positions[0], want)
	}
	wantCorr := [][]float64{{-0.25}, {-0.25}}
	if !reflect.DeepEqual(run.Corrections[1], wantCorr) {
		t.Errorf("corrections[1] = %v, want %v", run.Corrections[1], wantCorr)
	}
	if run.ZAxis != nil || run.Responses != nil {
		t.Error("planar run should not load 3-D or probe data")
	}
}

func TestSaveFiles(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runID, err := st.Save(testConfig(), testReport())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{
		"params.yaml",
		"pos_00.csv", "pos_01.csv",
		"controls_00.csv", "controls_01.csv",
		"corrections_00.csv", "corrections_01.csv",
	} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	target, err := os.Readlink(filepath.Join(dir, "latest"))
	if err != nil {
		t.Fatalf("latest symlink: %v", err)
	}
	if target != runID {
		t.Errorf("latest -> %s, want %s", target, runID)
	}

	run, err := st.Load("latest")
	if err != nil {
		t.Fatalf("load via latest failed: %v", err)
	}
	if len(run.Positions) != 2 {
		t.Errorf("latest run has %d trials, want 2", len(run.Positions))
	}
}

func TestSaveResponses(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	report := testReport()
	report.Records[1].Responses = []*mat.Dense{
		mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}),
		mat.NewDense(2, 3, []float64{10, 20, 30, 40, 50, 60}),
	}

	runID, err := st.Save(testConfig(), report)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	for _, name := range []string{"fbresp_0.csv", "fbresp_1.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	run, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(run.Responses) != 2 {
		t.Fatalf("got %d response channels, want 2", len(run.Responses))
	}
	want := [][]float64{{1, 2, 3}, {10, 20, 30}}
	if !reflect.DeepEqual(run.Responses[0], want) {
		t.Errorf("responses[0] = %v, want %v", run.Responses[0], want)
	}
	want = [][]float64{{4, 5, 6}, {40, 50, 60}}
	if !reflect.DeepEqual(run.Responses[1], want) {
		t.Errorf("responses[1] = %v, want %v", run.Responses[1], want)
	}
}

func TestSaveAxes(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	report := testReport()
	for i := range report.Records {
		report.Records[i].ZAxis = [][]float64{{0, 0, 1}, {0, 0.1, 0.99}, {0, 0, 1}}
		report.Records[i].AngVel = [][]float64{{0, 0, 0}, {0.5, 0, 0}, {0, 0, 0}}
	}

	runID, err := st.Save(testConfig(), report)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	for _, name := range []string{"zaxis_00.csv", "angvel_01.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	run, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(run.ZAxis) != 2 || len(run.AngVel) != 2 {
		t.Fatalf("axes not loaded: %d zaxis, %d angvel", len(run.ZAxis), len(run.AngVel))
	}
	if run.ZAxis[0][1][2] != 0.99 {
		t.Errorf("zaxis value = %g, want 0.99", run.ZAxis[0][1][2])
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	if _, err := st.Save(testConfig(), testReport()); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	cfg := testConfig()
	cfg.System = "3d"
	if _, err := st.Save(cfg, testReport()); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i-1].ID >= runs[i].ID {
			t.Errorf("runs not sorted: %v", runs)
		}
	}
	if runs[0].System != "simple" || runs[1].System != "3d" {
		t.Errorf("systems = %s, %s", runs[0].System, runs[1].System)
	}
	if runs[0].Trials != 2 {
		t.Errorf("trials = %d, want 2", runs[0].Trials)
	}
	if runs[0].Time.IsZero() {
		t.Error("run time should parse from the directory name")
	}

	target, err := os.Readlink(filepath.Join(dir, "latest"))
	if err != nil {
		t.Fatalf("latest symlink: %v", err)
	}
	if target != runs[1].ID {
		t.Errorf("latest -> %s, want newest run %s", target, runs[1].ID)
	}
}

func TestListEmpty(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs, want 0", len(runs))
	}
}

func TestLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("20200101-000000"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, testConfig(), testReport()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var exported ExportData
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if exported.System != "simple" || exported.Steps != 2 {
		t.Errorf("header fields wrong: %+v", exported)
	}
	if len(exported.Trials) != 2 {
		t.Fatalf("got %d trials, want 2", len(exported.Trials))
	}
	if exported.Trials[1].MeanAbsError != 0.01 {
		t.Errorf("trial stats wrong: %+v", exported.Trials[1])
	}
	if exported.Config == nil || exported.Config.System != "simple" {
		t.Error("config should be embedded")
	}
}
