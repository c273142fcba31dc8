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

//go:generate mockgen -source=interfaces.go -destination=mock/interfaces.go -package=mock

package report

import (
	"context"
	"time"
)

// Status is the outcome of a single step.
type Status string

const (
	StatusPassed  Status = "pass"
	StatusFailed  Status = "fail"
	StatusSkipped Status = "skip"
)

// Entry is one line of a report.
type Entry struct {
	// Name is the human readable step name.
	Name string
	// Status is the outcome of the step.
	Status Status
	// Message describes the outcome, for failures this is the diagnostic.
	Message string
	// Started is when the step began executing.
	Started time.Time
	// Duration is how long the step took.
	Duration time.Duration
	// Fields are any values extracted from the step's response.
	Fields map[string]string
}

// Sink persists step outcomes.
type Sink interface {
	// Record appends an entry to the report.
	Record(ctx context.Context, entry Entry) error
	// Finalize flushes the report, no entries may be recorded afterwards.
	Finalize(ctx context.Context) error
}
