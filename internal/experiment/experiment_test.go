package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/ilc/internal/ilc"
)

func baseParams() ilc.Params {
	return ilc.Params{
		System:    "trivial",
		Trials:    2,
		Dt:        0.02,
		Duration:  1.0,
		Dist:      1.0,
		Alpha:     1.0,
		Weight:    1e-2,
		RelinTime: true,
		RelinIter: true,
		Seed:      42,
	}
}

func TestRun_AlphaSweep(t *testing.T) {
	jobs, err := ParamJobs(baseParams(), "alpha", []float64{0.25, 0.5, 1.0})
	if err != nil {
		t.Fatalf("param jobs: %v", err)
	}

	outcomes := Run(context.Background(), jobs, 2)
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}

	finals := make([]float64, len(outcomes))
	for i, out := range outcomes {
		if out.Err != nil {
			t.Fatalf("job %s failed: %v", out.Job.Name, out.Err)
		}
		if out.Job.Name != jobs[i].Name {
			t.Errorf("outcome %d is %s, want %s", i, out.Job.Name, jobs[i].Name)
		}
		finals[i] = out.Report.Final().MeanAbsError
	}

	// One update leaves roughly (1-alpha) of the initial error, so a
	// larger step always lands lower here.
	for i := 1; i < len(finals); i++ {
		if finals[i] >= finals[i-1] {
			t.Errorf("final errors not decreasing with alpha: %v", finals)
		}
	}
	if finals[2] > 0.01 {
		t.Errorf("full step should nearly cancel the error, got %g", finals[2])
	}
}

func TestRun_FailureIsolated(t *testing.T) {
	bad := baseParams()
	bad.System = "warp"
	jobs := []Job{
		{Name: "bad", Params: bad},
		{Name: "good", Params: baseParams()},
	}

	outcomes := Run(context.Background(), jobs, 4)
	if outcomes[0].Err == nil {
		t.Error("unknown system should fail its job")
	}
	if outcomes[1].Err != nil {
		t.Errorf("good job failed: %v", outcomes[1].Err)
	}
	if outcomes[1].Report == nil {
		t.Error("good job should carry a report")
	}
}

func TestRun_WorkerClamp(t *testing.T) {
	jobs, err := ParamJobs(baseParams(), "alpha", []float64{0.5, 1.0})
	if err != nil {
		t.Fatal(err)
	}
	outcomes := Run(context.Background(), jobs, 0)
	for _, out := range outcomes {
		if out.Err != nil {
			t.Errorf("job %s failed: %v", out.Job.Name, out.Err)
		}
	}
}

func TestRange(t *testing.T) {
	got := Range(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %g, want %g", i, got[i], want[i])
		}
	}
	if got := Range(2, 9, 1); len(got) != 1 || got[0] != 2 {
		t.Errorf("single count should return lo, got %v", got)
	}
	if Range(0, 1, 0) != nil {
		t.Error("zero count should return nil")
	}
}

func TestParamJobs(t *testing.T) {
	base := baseParams()
	jobs, err := ParamJobs(base, "w", []float64{0.1, 0.2})
	if err != nil {
		t.Fatal(err)
	}
	if jobs[0].Params.Weight != 0.1 || jobs[1].Params.Weight != 0.2 {
		t.Errorf("weights not applied: %+v", jobs)
	}
	if jobs[0].Name != "w=0.1" {
		t.Errorf("name = %q", jobs[0].Name)
	}
	if base.Weight != 1e-2 {
		t.Error("base params should not be mutated")
	}

	if _, err := ParamJobs(base, "gravity", nil); err == nil {
		t.Error("unknown parameter should error")
	}
}
