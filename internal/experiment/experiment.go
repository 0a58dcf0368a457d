// Package experiment runs batches of learning problems, typically while
// sweeping a single parameter across a range.
package experiment

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/ilc/internal/ilc"
)

// Job is one learning run inside a batch.
type Job struct {
	Name   string
	Params ilc.Params
}

// Outcome pairs a job with its report or failure.
type Outcome struct {
	Job    Job
	Report *ilc.Report
	Err    error
}

// Run executes the jobs concurrently, at most workers at a time, and
// returns the outcomes in job order. Individual failures land in their
// outcome instead of aborting the batch.
func Run(ctx context.Context, jobs []Job, workers int) []Outcome {
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]Outcome, len(jobs))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			report, err := ilc.Run(ctx, jobs[idx].Params, nil)
			outcomes[idx] = Outcome{Job: jobs[idx], Report: report, Err: err}
		}(i)
	}
	wg.Wait()

	return outcomes
}

// Range returns count evenly spaced values from lo to hi inclusive.
func Range(lo, hi float64, count int) []float64 {
	if count < 1 {
		return nil
	}
	if count == 1 {
		return []float64{lo}
	}
	values := make([]float64, count)
	step := (hi - lo) / float64(count-1)
	for i := range values {
		values[i] = lo + float64(i)*step
	}
	return values
}

// ParamJobs builds one job per value, each a copy of the base parameters
// with the named parameter replaced.
func ParamJobs(base ilc.Params, param string, values []float64) ([]Job, error) {
	set, err := setter(param)
	if err != nil {
		return nil, err
	}
	jobs := make([]Job, len(values))
	for i, v := range values {
		p := base
		set(&p, v)
		jobs[i] = Job{Name: fmt.Sprintf("%s=%g", param, v), Params: p}
	}
	return jobs, nil
}

func setter(param string) (func(*ilc.Params, float64), error) {
	switch param {
	case "alpha":
		return func(p *ilc.Params, v float64) { p.Alpha = v }, nil
	case "w":
		return func(p *ilc.Params, v float64) { p.Weight = v }, nil
	case "dist":
		return func(p *ilc.Params, v float64) { p.Dist = v }, nil
	case "thrust-dist":
		return func(p *ilc.Params, v float64) { p.ThrustDist = v }, nil
	case "drag-dist":
		return func(p *ilc.Params, v float64) { p.DragDist = v }, nil
	case "poke-strength":
		return func(p *ilc.Params, v float64) { p.PokeStrength = v }, nil
	default:
		return nil, fmt.Errorf("unknown sweep parameter %q (available: alpha, w, dist, thrust-dist, drag-dist, poke-strength)", param)
	}
}
