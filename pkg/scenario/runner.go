/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package scenario

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spjmurray/go-util/pkg/set"

	"github.com/unikorn-cloud/contactlist/pkg/report"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// ErrReport is returned when step outcomes could not be persisted.
var ErrReport = errors.New("report failure")

// Runner executes steps sequentially, threading a session between them.
type Runner struct {
	// sink receives one entry per step.
	sink report.Sink

	// now is replaceable for tests.
	now func() time.Time
}

// NewRunner returns a runner reporting to the given sink.
func NewRunner(sink report.Sink) *Runner {
	return &Runner{
		sink: sink,
		now:  time.Now,
	}
}

// Run plans and executes the steps.  Step failures are reported in the
// summary, the returned error is reserved for invalid plans and report
// failures.  The sink is finalized whatever happens.
func (r *Runner) Run(ctx context.Context, steps []Step) (summary *Summary, err error) {
	log := log.FromContext(ctx)

	// The report must be written even if the run was interrupted.
	defer func() {
		if finalizeErr := r.sink.Finalize(context.WithoutCancel(ctx)); finalizeErr != nil {
			err = errors.Join(err, fmt.Errorf("%w: finalizing: %w", ErrReport, finalizeErr))
		}
	}()

	plan, err := Plan(steps)
	if err != nil {
		return nil, err
	}

	summary = &Summary{}

	var (
		session    Session
		passed     []string
		recordErrs []error
	)

	for _, step := range plan {
		log := log.WithValues("step", step.Name)

		started := r.now()

		next, result := r.execute(ctx, step, session, passed)

		duration := r.now().Sub(started)

		switch result.Status {
		case report.StatusPassed:
			// Only a passing step may change the session.
			session = next
			summary.Passes++
			passed = append(passed, step.Name)

			log.Info("step passed", "duration", duration)
		case report.StatusSkipped:
			summary.Skips++

			log.Info("step skipped", "reason", result.Message)
		default:
			// Anything unrecognised counts as a failure.
			result.Status = report.StatusFailed
			summary.Failures++

			log.Info("step failed", "reason", result.Message, "duration", duration)
		}

		summary.Outcomes = append(summary.Outcomes, Outcome{
			Name:     step.Name,
			Result:   result,
			Started:  started,
			Duration: duration,
		})

		entry := report.Entry{
			Name:     step.Name,
			Status:   result.Status,
			Message:  result.Message,
			Started:  started,
			Duration: duration,
			Fields:   result.Fields,
		}

		if err := r.sink.Record(context.WithoutCancel(ctx), entry); err != nil {
			log.Error(err, "failed to record step")

			recordErrs = append(recordErrs, err)
		}
	}

	if len(recordErrs) > 0 {
		return summary, fmt.Errorf("%w: recording: %w", ErrReport, errors.Join(recordErrs...))
	}

	return summary, nil
}

// execute runs a single step unless a dependency did not pass or the run
// has been cancelled, in which case the step is skipped.
func (r *Runner) execute(ctx context.Context, step Step, session Session, passed []string) (Session, Result) {
	dependencies := set.New[string](step.DependsOn...)
	unsatisfied := dependencies.Difference(set.New[string](passed...))

	var blocked []string

	for name := range unsatisfied.All() {
		blocked = append(blocked, name)
	}

	if len(blocked) > 0 {
		slices.Sort(blocked)

		return session, Result{
			Status:  report.StatusSkipped,
			Message: fmt.Sprintf("skipped: dependency %s did not pass", strings.Join(blocked, ", ")),
		}
	}

	if err := ctx.Err(); err != nil {
		return session, Result{
			Status:  report.StatusSkipped,
			Message: fmt.Sprintf("skipped: run cancelled: %v", err),
		}
	}

	log.FromContext(ctx).V(1).Info("running step", "step", step.Name)

	return step.Execute(ctx, session)
}
