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
	"time"

	"github.com/unikorn-cloud/contactlist/pkg/report"
)

// Session is the state threaded from one step to the next.  It is a value,
// steps return a modified copy rather than mutating shared state.
type Session struct {
	// AuthToken is the bearer token of the most recent signup or login.
	AuthToken string
	// ResourceID is the identifier of the most recently created resource.
	ResourceID string
}

// WithAuthToken returns a copy of the session with the token replaced.
func (s Session) WithAuthToken(token string) Session {
	s.AuthToken = token
	return s
}

// WithResourceID returns a copy of the session with the resource replaced.
func (s Session) WithResourceID(id string) Session {
	s.ResourceID = id
	return s
}

// Result is the outcome of a single step.
type Result struct {
	Status  report.Status
	Message string
	// Fields are values extracted from the step's response.
	Fields map[string]string
}

// Passed returns true if the step ran and every assertion held.
func (r Result) Passed() bool {
	return r.Status == report.StatusPassed
}

// Pass is a convenience constructor for a passed result.
func Pass(message string, fields map[string]string) Result {
	return Result{
		Status:  report.StatusPassed,
		Message: message,
		Fields:  fields,
	}
}

// Fail is a convenience constructor for a failed result.
func Fail(message string) Result {
	return Result{
		Status:  report.StatusFailed,
		Message: message,
	}
}

// ExecuteFunc runs a step against the current session, returning the
// session for subsequent steps along with the result.  Assertion and
// transport failures are reported through the result, never as panics.
type ExecuteFunc func(ctx context.Context, session Session) (Session, Result)

// Step is one ordered unit of a scenario.
type Step struct {
	// Name uniquely identifies the step, and is what gets reported.
	Name string
	// Order is the preferred position of the step, lower runs first
	// whenever dependencies allow.
	Order int
	// DependsOn names steps that must pass before this one may run.
	DependsOn []string
	// Execute does the work.
	Execute ExecuteFunc
}

// Outcome is the recorded result of a step in a run.
type Outcome struct {
	Name     string
	Result   Result
	Started  time.Time
	Duration time.Duration
}

// Summary describes a complete run.
type Summary struct {
	Outcomes []Outcome
	Passes   int
	Failures int
	Skips    int
}

// Failed returns true if any step failed or was skipped.
func (s *Summary) Failed() bool {
	return s.Failures > 0 || s.Skips > 0
}

// Outcome looks up a step's outcome by name.
func (s *Summary) Outcome(name string) (Outcome, bool) {
	for _, outcome := range s.Outcomes {
		if outcome.Name == name {
			return outcome, true
		}
	}

	return Outcome{}, false
}
